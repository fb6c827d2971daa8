package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the notes corpus"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Answer            string                     `json:"answer"`
	RelevantDocuments []domain.RetrievedDocument `json:"relevant_documents"`
	Timing            map[string]float64         `json:"timing"`
}

// NoteInput is a single note in an insert or sync call.
type NoteInput struct {
	Title   string `json:"title" jsonschema:"the note title"`
	Content string `json:"content" jsonschema:"the note body"`
	ID      string `json:"id,omitempty" jsonschema:"optional stable id; generated when absent"`
}

// NotesInput is the input schema for the insert and sync tools.
type NotesInput struct {
	Notes []NoteInput `json:"notes" jsonschema:"the notes to add"`
}

// NotesOutput is the output schema for the insert and sync tools.
type NotesOutput struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DocumentCount int    `json:"document_count"`
	CachedCount   int    `json:"cached_count"`
}

// DeleteInput is the input schema for the delete tool.
type DeleteInput struct {
	ID string `json:"id" jsonschema:"the id of the document to delete"`
}

// DeleteOutput is the output schema for the delete tool.
type DeleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_notes",
		Description: "Answer a question grounded in the notes corpus",
	}, s.handleQuery)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insert_notes",
		Description: "Add notes to the existing corpus",
	}, s.handleInsert)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_notes",
		Description: "Replace the entire corpus with the supplied notes",
	}, s.handleSync)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a single document from the corpus by id",
	}, s.handleDelete)
}

func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	result, err := s.retrieval.Query(ctx, input.Question)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, QueryOutput{
		Answer:            result.Answer,
		RelevantDocuments: result.RelevantDocuments,
		Timing:            result.Timing,
	}, nil
}

func (s *Server) handleInsert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NotesInput,
) (*mcp.CallToolResult, NotesOutput, error) {
	result, err := s.retrieval.AddNotes(ctx, toNotes(input.Notes))
	if err != nil {
		return nil, NotesOutput{}, err
	}
	return nil, notesOutput(result), nil
}

func (s *Server) handleSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NotesInput,
) (*mcp.CallToolResult, NotesOutput, error) {
	if err := s.retrieval.ClearDocuments(ctx); err != nil {
		return nil, NotesOutput{}, err
	}
	result, err := s.retrieval.AddNotes(ctx, toNotes(input.Notes))
	if err != nil {
		return nil, NotesOutput{}, err
	}
	return nil, notesOutput(result), nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.retrieval.DeleteDocument(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Success: true, Message: "Document deleted successfully"}, nil
}

func toNotes(inputs []NoteInput) []domain.Note {
	notes := make([]domain.Note, len(inputs))
	for i, n := range inputs {
		notes[i] = domain.Note{Title: n.Title, Content: n.Content, ID: n.ID}
	}
	return notes
}

func notesOutput(result *domain.AddResult) NotesOutput {
	return NotesOutput{
		Success:       result.Success,
		Message:       result.Message,
		DocumentCount: result.DocumentCount,
		CachedCount:   result.CachedCount,
	}
}
