package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/export"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/search"
	"github.com/dmitrijs2005/docspace/internal/client/validation"
	"github.com/dmitrijs2005/docspace/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/singleflight"
)

// DocumentService keeps the client-side cache of the user's documents.
// The cache only ever holds what the service reported, minus documents
// deleted since the last refresh.
type DocumentService interface {
	Refresh(ctx context.Context) error
	Upload(ctx context.Context, req models.UploadRequest) (models.ID, error)
	Remove(ctx context.Context, id models.ID) error
	Export(ctx context.Context, id models.ID, sink export.Sink) (string, error)
	Get(ctx context.Context, id models.ID) (*models.Document, error)
	Documents() []models.Document
	Search(query string) []models.Document
	Reset()
}

type documentService struct {
	client client.Client
	log    logging.Logger
	group  singleflight.Group

	// opMu serializes every fetch-and-write of the cache.
	opMu sync.Mutex

	mu   sync.RWMutex
	docs []models.Document
	gen  uint64 // bumped by Reset; stale fetches are dropped
}

// NewDocumentService constructs a DocumentService bound to the given API client.
// The cache starts empty.
func NewDocumentService(c client.Client, log logging.Logger) DocumentService {
	return &documentService{client: c, log: log.With("component", "documents")}
}

func (s *documentService) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *documentService) Search(query string) []models.Document {
	return search.Filter(s.Documents(), query)
}

func (s *documentService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.gen++
}

// Refresh replaces the cache with the service's list. Concurrent callers
// share one request and all receive its result. The shared request runs on a
// context detached from any single caller, so it is bounded by the HTTP
// client timeout only; each caller still stops waiting when its own ctx ends.
func (s *documentService) Refresh(ctx context.Context) error {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("refresh", func() (any, error) {
		s.opMu.Lock()
		defer s.opMu.Unlock()
		return nil, s.refreshLocked(shared)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *documentService) refreshLocked(ctx context.Context) error {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	docs, err := s.client.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if docs == nil {
		docs = []models.Document{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.log.Debug(ctx, "dropping document list fetched before reset")
		return nil
	}
	s.docs = docs
	return nil
}

// Upload validates req locally, sends it and refreshes the cache. If the
// upload succeeds but the refresh fails, the new id is returned along with
// the refresh error.
func (s *documentService) Upload(ctx context.Context, req models.UploadRequest) (models.ID, error) {
	mime, err := validation.Upload(req)
	if err != nil {
		return "", err
	}

	name := req.FileName
	if name == "" {
		name = "document" + mimetype.Lookup(mime).Extension()
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	id, err := s.client.Upload(ctx, req.Title, name, mime, req.Data)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	s.log.Info(ctx, "document uploaded", "doc_id", id.String(), "bytes", req.SizeBytes())

	if err := s.refreshLocked(ctx); err != nil {
		return id, fmt.Errorf("refresh after upload: %w", err)
	}
	return id, nil
}

func (s *documentService) Remove(ctx context.Context, id models.ID) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.docs = kept
	return nil
}

func (s *documentService) Get(ctx context.Context, id models.ID) (*models.Document, error) {
	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

// Export fetches the text export of a document and hands it to sink under
// "<title>.txt", or "document.txt" when the cached title is empty or the
// document is not cached.
func (s *documentService) Export(ctx context.Context, id models.ID, sink export.Sink) (string, error) {
	data, err := s.client.Export(ctx, id)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}

	title := "document"
	s.mu.RLock()
	for _, d := range s.docs {
		if d.ID == id && d.Title != "" {
			title = d.Title
			break
		}
	}
	s.mu.RUnlock()

	loc, err := sink.Save(ctx, title+".txt", data)
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	return loc, nil
}
