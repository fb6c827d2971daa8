package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// mockService implements driving.RetrievalService for testing.
type mockService struct {
	queryResult *domain.QueryResult
	queryErr    error
	addResult   *domain.AddResult
	addErr      error
	clearErr    error
	deleteErr   error

	calls        []string
	lastQuery    string
	lastNotes    []domain.Note
	lastDeleteID string
}

func (m *mockService) Refresh(_ context.Context) (int, error) {
	m.calls = append(m.calls, "refresh")
	return 0, nil
}

func (m *mockService) Query(_ context.Context, text string) (*domain.QueryResult, error) {
	m.calls = append(m.calls, "query")
	m.lastQuery = text
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.queryResult != nil {
		return m.queryResult, nil
	}
	return &domain.QueryResult{
		Answer:            domain.NoDocumentsAnswer,
		RelevantDocuments: []domain.RetrievedDocument{},
		Timing:            map[string]float64{domain.StageTotal: 0},
	}, nil
}

func (m *mockService) AddNotes(_ context.Context, notes []domain.Note) (*domain.AddResult, error) {
	m.calls = append(m.calls, "add")
	m.lastNotes = notes
	if m.addErr != nil {
		return nil, m.addErr
	}
	if m.addResult != nil {
		return m.addResult, nil
	}
	return &domain.AddResult{Success: true, DocumentCount: len(notes), CachedCount: len(notes)}, nil
}

func (m *mockService) ClearDocuments(_ context.Context) error {
	m.calls = append(m.calls, "clear")
	return m.clearErr
}

func (m *mockService) DeleteDocument(_ context.Context, id string) error {
	m.calls = append(m.calls, "delete")
	m.lastDeleteID = id
	return m.deleteErr
}

// run feeds the input through a server and returns the decoded output
// lines.
func run(t *testing.T, service *mockService, input string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(service, strings.NewReader(input), &out)
	require.NoError(t, server.Run(context.Background()))

	var lines []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &decoded))
		lines = append(lines, decoded)
	}
	return lines
}

func TestServerAnnouncesReady(t *testing.T) {
	lines := run(t, &mockService{}, "")

	require.Len(t, lines, 1)
	assert.Equal(t, "ready", lines[0]["status"])
	assert.Equal(t, "Service manager started", lines[0]["message"])
}

func TestServerQueryCommand(t *testing.T) {
	service := &mockService{queryResult: &domain.QueryResult{
		Answer: "the answer",
		RelevantDocuments: []domain.RetrievedDocument{
			{Title: "Note", Content: "snippet", Similarity: 91.25},
		},
		Timing: map[string]float64{domain.StageTotal: 12.5},
	}}

	lines := run(t, service, `["query","u1","what did I write?"]`+"\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "what did I write?", service.lastQuery)
	assert.Equal(t, "the answer", lines[1]["answer"])
	docs, ok := lines[1]["relevant_documents"].([]any)
	require.True(t, ok)
	require.Len(t, docs, 1)
	doc := docs[0].(map[string]any)
	assert.Equal(t, "Note", doc["title"])
	assert.InDelta(t, 91.25, doc["similarity"], 1e-9)
}

func TestServerSyncClearsThenAdds(t *testing.T) {
	service := &mockService{}

	lines := run(t, service, `["sync","u1","[{\"title\":\"A\",\"content\":\"alpha\"}]"]`+"\n")

	require.Len(t, lines, 2)
	assert.Equal(t, []string{"clear", "add"}, service.calls)
	require.Len(t, service.lastNotes, 1)
	assert.Equal(t, "A", service.lastNotes[0].Title)
	assert.Equal(t, true, lines[1]["success"])
	assert.Equal(t, "Notes synced and ready for querying", lines[1]["message"])
}

func TestServerInsertCommand(t *testing.T) {
	service := &mockService{}

	lines := run(t, service, `["insert","u1","[{\"title\":\"B\",\"content\":\"beta\",\"id\":\"b-1\"}]"]`+"\n")

	require.Len(t, lines, 2)
	assert.Equal(t, []string{"add"}, service.calls)
	assert.Equal(t, "b-1", service.lastNotes[0].ID)
	assert.Equal(t, "Notes added and ready for querying", lines[1]["message"])
}

func TestServerDeleteCommand(t *testing.T) {
	service := &mockService{}

	lines := run(t, service, `["delete","u1","doc-42"]`+"\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "doc-42", service.lastDeleteID)
	assert.Equal(t, true, lines[1]["success"])
	assert.Equal(t, "Document deleted successfully", lines[1]["message"])
}

func TestServerUnknownCommand(t *testing.T) {
	lines := run(t, &mockService{}, `["flush","u1","x"]`+"\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Unknown command: flush", lines[1]["error"])
}

func TestServerInvalidLines(t *testing.T) {
	input := strings.Join([]string{
		`not json`,
		`["query"]`,
		`["query","u1","a","extra"]`,
	}, "\n") + "\n"

	lines := run(t, &mockService{}, input)

	require.Len(t, lines, 4)
	for _, line := range lines[1:] {
		assert.Equal(t, "Invalid command format", line["error"])
	}
}

func TestServerSkipsBlankLines(t *testing.T) {
	service := &mockService{}

	lines := run(t, service, "\n   \n"+`["delete","u1","doc-1"]`+"\n\n")

	require.Len(t, lines, 2)
	assert.Equal(t, []string{"delete"}, service.calls)
}

func TestServerCommandErrorKeepsServing(t *testing.T) {
	service := &mockService{deleteErr: errors.New("delete document doc-1: permission denied")}

	input := `["delete","u1","doc-1"]` + "\n" + `["query","u1","still alive?"]` + "\n"
	lines := run(t, service, input)

	require.Len(t, lines, 3)
	errText, ok := lines[1]["error"].(string)
	require.True(t, ok)
	assert.Contains(t, errText, "permission denied")
	assert.Equal(t, domain.NoDocumentsAnswer, lines[2]["answer"])
}

func TestServerSequencedSyncThenQuery(t *testing.T) {
	service := &mockService{}

	input := `["sync","u1","[]"]` + "\n" + `["query","u1","hello"]` + "\n"
	lines := run(t, service, input)

	require.Len(t, lines, 3)
	assert.Equal(t, "Notes synced and ready for querying", lines[1]["message"])
	assert.Equal(t, domain.NoDocumentsAnswer, lines[2]["answer"])
	assert.Equal(t, map[string]any{domain.StageTotal: 0.0}, lines[2]["timing"].(map[string]any))
}

func TestServerMalformedNotesPayload(t *testing.T) {
	service := &mockService{}

	lines := run(t, service, `["insert","u1","not an array"]`+"\n")

	require.Len(t, lines, 2)
	errText, ok := lines[1]["error"].(string)
	require.True(t, ok)
	assert.Contains(t, errText, "parse notes")
	assert.Empty(t, service.calls)
}
