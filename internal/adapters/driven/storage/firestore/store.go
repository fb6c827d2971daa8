// Package firestore provides the hosted durable document store, backed
// by the Cloud Firestore REST API. Each document is stored in a single
// collection keyed by id with fields content, meta.title, embedding
// (array of doubles or null) and updated_at (server timestamp).
package firestore

import (
	"context"
	"fmt"
	"time"

	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
	"github.com/Sph3inz/MindFeed/internal/core/ports/driven"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentBackend = (*Store)(nil)

// Default configuration values.
const (
	DefaultCollection = "documents"

	// listPageSize is the page size for full collection scans.
	listPageSize = 300
)

// Config holds configuration for the Firestore store.
type Config struct {
	// ProjectID is the Firebase/GCP project id.
	ProjectID string

	// Collection is the document collection name (default: documents).
	Collection string

	// CredentialsFile is the path to a service account JSON key.
	// When empty, application default credentials are used.
	CredentialsFile string
}

// Store is a Firestore implementation of driven.DocumentBackend.
type Store struct {
	svc        *firestore.Service
	database   string // projects/{pid}/databases/(default)
	parent     string // {database}/documents
	collection string
}

// NewStore creates a Firestore store for the configured project.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore: project id is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create service: %w", err)
	}

	database := fmt.Sprintf("projects/%s/databases/(default)", cfg.ProjectID)
	return &Store{
		svc:        svc,
		database:   database,
		parent:     database + "/documents",
		collection: cfg.Collection,
	}, nil
}

// SaveDocuments writes documents in a single commit, overwriting by id.
// The updated_at field is assigned server-side via a REQUEST_TIME
// transform.
func (s *Store) SaveDocuments(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	writes := make([]*firestore.Write, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		writes = append(writes, &firestore.Write{
			Update: &firestore.Document{
				Name:   s.docName(doc.ID),
				Fields: encodeFields(doc),
			},
			UpdateTransforms: []*firestore.FieldTransform{{
				FieldPath:        "updated_at",
				SetToServerValue: "REQUEST_TIME",
			}},
		})
	}

	req := &firestore.CommitRequest{Writes: writes}
	resp, err := s.svc.Projects.Databases.Documents.Commit(s.database, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("firestore: commit %d writes: %w", len(writes), err)
	}

	if t, perr := time.Parse(time.RFC3339Nano, resp.CommitTime); perr == nil {
		for i := range docs {
			docs[i].UpdatedAt = t
		}
	}
	return nil
}

// LoadDocuments performs a full scan of the collection.
func (s *Store) LoadDocuments(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document

	pageToken := ""
	for {
		call := s.svc.Projects.Databases.Documents.List(s.parent, s.collection).
			PageSize(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("firestore: list documents: %w", err)
		}

		for _, fdoc := range resp.Documents {
			doc, err := decodeDocument(fdoc)
			if err != nil {
				logger.Warn("Skipping undecodable document %s: %v", fdoc.Name, err)
				continue
			}
			docs = append(docs, doc)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return docs, nil
}

// DeleteDocument removes a single document by id. Firestore deletes are
// idempotent; deleting a missing id is not an error.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.svc.Projects.Databases.Documents.Delete(s.docName(id)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("firestore: delete document %s: %w", id, err)
	}
	return nil
}

// DeleteDocuments removes documents by id in a single commit.
func (s *Store) DeleteDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	writes := make([]*firestore.Write, 0, len(ids))
	for _, id := range ids {
		writes = append(writes, &firestore.Write{Delete: s.docName(id)})
	}

	req := &firestore.CommitRequest{Writes: writes}
	if _, err := s.svc.Projects.Databases.Documents.Commit(s.database, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("firestore: delete %d documents: %w", len(ids), err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	// The underlying HTTP client needs no explicit cleanup.
	return nil
}

// docName returns the full Firestore resource name for a document id.
func (s *Store) docName(id string) string {
	return fmt.Sprintf("%s/%s/%s", s.parent, s.collection, id)
}

// encodeFields maps a document to Firestore field values. The embedding
// vector is serialised as a plain array of doubles, or null when the
// document has not been embedded.
func encodeFields(doc *domain.Document) map[string]firestore.Value {
	embedding := firestore.Value{
		NullValue:       "NULL_VALUE",
		ForceSendFields: []string{"NullValue"},
	}
	if doc.HasEmbedding() {
		values := make([]*firestore.Value, len(doc.Embedding))
		for i, f := range doc.Embedding {
			values[i] = &firestore.Value{
				DoubleValue:     float64(f),
				ForceSendFields: []string{"DoubleValue"},
			}
		}
		embedding = firestore.Value{ArrayValue: &firestore.ArrayValue{Values: values}}
	}

	return map[string]firestore.Value{
		"content": {StringValue: doc.Content, ForceSendFields: []string{"StringValue"}},
		"meta": {MapValue: &firestore.MapValue{
			Fields: map[string]firestore.Value{
				"title": {StringValue: doc.Title, ForceSendFields: []string{"StringValue"}},
			},
		}},
		"embedding": embedding,
	}
}

// decodeDocument maps a Firestore document back to the domain type.
func decodeDocument(fdoc *firestore.Document) (domain.Document, error) {
	doc := domain.Document{
		ID: idFromName(fdoc.Name),
	}

	if v, ok := fdoc.Fields["content"]; ok {
		doc.Content = v.StringValue
	}
	if meta, ok := fdoc.Fields["meta"]; ok && meta.MapValue != nil {
		if title, ok := meta.MapValue.Fields["title"]; ok {
			doc.Title = title.StringValue
		}
	}
	if v, ok := fdoc.Fields["embedding"]; ok && v.ArrayValue != nil {
		embedding := make([]float32, len(v.ArrayValue.Values))
		for i, elem := range v.ArrayValue.Values {
			if elem == nil {
				return doc, fmt.Errorf("nil element at index %d in embedding", i)
			}
			embedding[i] = float32(elem.DoubleValue)
		}
		doc.Embedding = embedding
	}
	if fdoc.UpdateTime != "" {
		if t, err := time.Parse(time.RFC3339Nano, fdoc.UpdateTime); err == nil {
			doc.UpdatedAt = t
		}
	}

	return doc, nil
}

// idFromName extracts the document id from a full resource name.
func idFromName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
