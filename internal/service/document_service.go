package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"piscopy/internal/models"
	"piscopy/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDocumentCompleted = errors.New("document is completed")
	ErrUnknownDocType    = errors.New("unknown document type")
	ErrItemIndex         = errors.New("item index out of range")
	ErrItemField         = errors.New("unknown item field")
)

// DocumentService is the template and invoice engine. It keeps the in-memory
// document collection, enforces the draft -> completed lifecycle and keeps
// content.total equal to the sum of row subtotals across every item mutation.
//
// Whether documents also reach the remote store is a policy switch: with
// storeSync off they stay session-local and only the in-memory collection is
// maintained.
type DocumentService struct {
	repo      *repository.DocumentRepository
	storeSync bool
	logger    *zap.Logger

	mu        sync.Mutex
	documents []models.Document
}

func NewDocumentService(repo *repository.DocumentRepository, storeSync bool, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		repo:      repo,
		storeSync: storeSync,
		logger:    logger,
	}
}

// Load fills the document collection from the store. A no-op when documents
// are session-local.
func (s *DocumentService) Load(ctx context.Context) error {
	if !s.storeSync {
		return nil
	}

	documents, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	sort.Slice(documents, func(i, j int) bool {
		if documents[i].CreatedAt != documents[j].CreatedAt {
			return documents[i].CreatedAt < documents[j].CreatedAt
		}
		return documents[i].ID < documents[j].ID
	})

	s.mu.Lock()
	s.documents = documents
	s.mu.Unlock()

	s.logger.Info("Documents loaded", zap.Int("count", len(documents)))
	return nil
}

// Create instantiates a new draft from the type's template and appends it
// to the collection.
func (s *DocumentService) Create(ctx context.Context, docType models.DocumentType) (*models.Document, error) {
	if !models.IsAllowedDocumentType(docType) {
		return nil, ErrUnknownDocType
	}

	now := time.Now()
	doc := models.Document{
		ID:        uuid.NewString(),
		DocType:   docType,
		Status:    models.DocumentStatusDraft,
		Content:   models.NewDocumentContent(docType, now),
		CreatedAt: now.Format(time.RFC3339),
	}

	if s.storeSync {
		if err := s.repo.Save(ctx, &doc); err != nil {
			s.logger.Error("Failed to persist new document", zap.String("id", doc.ID), zap.Error(err))
			return nil, err
		}
	}

	s.mu.Lock()
	s.documents = append(s.documents, doc.Clone())
	s.mu.Unlock()

	return &doc, nil
}

// List returns snapshots of the collection, optionally filtered by status.
func (s *DocumentService) List(status models.DocumentStatus) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if status == "" || doc.Status == status {
			out = append(out, doc.Clone())
		}
	}
	return out
}

func (s *DocumentService) Get(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

// getLocked returns a snapshot detached from the live collection. The
// caller may hold it across the lock without seeing concurrent edits.
func (s *DocumentService) getLocked(id string) (*models.Document, error) {
	for i := range s.documents {
		if s.documents[i].ID == id {
			doc := s.documents[i].Clone()
			return &doc, nil
		}
	}
	return nil, ErrDocumentNotFound
}

// UpdateFields edits top-level content fields of a draft. Edits are local;
// they reach the store on the next Save or Complete.
func (s *DocumentService) UpdateFields(id string, companyName, date *string) (*models.Document, error) {
	return s.mutate(id, func(doc *models.Document) error {
		if companyName != nil {
			doc.Content.CompanyName = *companyName
		}
		if date != nil {
			doc.Content.Date = *date
		}
		return nil
	})
}

// AddItem appends an empty line item.
func (s *DocumentService) AddItem(id string) (*models.Document, error) {
	return s.mutate(id, func(doc *models.Document) error {
		doc.Content.Items = append(doc.Content.Items, models.LineItem{Quantity: 1, Price: 0})
		doc.Content.RecomputeTotal()
		return nil
	})
}

// EditItem replaces one field of one line item. Numeric fields are parsed
// from the raw input and coerce to zero when unparsable.
func (s *DocumentService) EditItem(id string, index int, field, value string) (*models.Document, error) {
	return s.mutate(id, func(doc *models.Document) error {
		if index < 0 || index >= len(doc.Content.Items) {
			return ErrItemIndex
		}
		item := &doc.Content.Items[index]
		switch field {
		case "description":
			item.Description = value
		case "quantity":
			item.Quantity = parseAmount(value)
		case "price":
			item.Price = parseAmount(value)
		default:
			return ErrItemField
		}
		doc.Content.RecomputeTotal()
		return nil
	})
}

// RemoveItem deletes one line item by index.
func (s *DocumentService) RemoveItem(id string, index int) (*models.Document, error) {
	return s.mutate(id, func(doc *models.Document) error {
		if index < 0 || index >= len(doc.Content.Items) {
			return ErrItemIndex
		}
		doc.Content.Items = append(doc.Content.Items[:index], doc.Content.Items[index+1:]...)
		doc.Content.RecomputeTotal()
		return nil
	})
}

// mutate applies an edit to a draft under the lock. Completed documents
// reject every mutation. The edit runs on a clone so a failed edit leaves
// the collection untouched, and the returned snapshot is detached from
// the stored document.
func (s *DocumentService) mutate(id string, edit func(*models.Document) error) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.documents {
		if s.documents[i].ID == id {
			if s.documents[i].Status == models.DocumentStatusCompleted {
				return nil, ErrDocumentCompleted
			}
			doc := s.documents[i].Clone()
			if err := edit(&doc); err != nil {
				return nil, err
			}
			s.documents[i] = doc
			snapshot := doc.Clone()
			return &snapshot, nil
		}
	}
	return nil, ErrDocumentNotFound
}

// Save persists the current state of a draft to the store, when document
// sync is enabled. Session-local mode keeps it a no-op beyond the draft
// check, since edits already live in the collection.
func (s *DocumentService) Save(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if doc.Status == models.DocumentStatusCompleted {
		return nil, ErrDocumentCompleted
	}

	if s.storeSync {
		if err := s.repo.Save(ctx, doc); err != nil {
			s.logger.Error("Failed to save document", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	return doc, nil
}

// Complete transitions a draft to completed and stamps completedAt.
// The transition is one-way: there is no path back to draft.
func (s *DocumentService) Complete(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if doc.Status == models.DocumentStatusCompleted {
		return nil, ErrDocumentCompleted
	}

	completedAt := time.Now().Format(time.RFC3339)
	updated := *doc
	updated.Status = models.DocumentStatusCompleted
	updated.CompletedAt = &completedAt

	if s.storeSync {
		if err := s.repo.Save(ctx, &updated); err != nil {
			s.logger.Error("Failed to persist completed document", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID == id {
			s.documents[i] = updated.Clone()
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("Document completed", zap.String("id", id), zap.String("type", string(updated.DocType)))
	return &updated, nil
}

// Discard deletes a draft from the collection. Completed documents are
// kept as the permanent record and cannot be discarded.
func (s *DocumentService) Discard(ctx context.Context, id string) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if doc.Status == models.DocumentStatusCompleted {
		return ErrDocumentCompleted
	}

	if s.storeSync {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.logger.Error("Failed to delete document", zap.String("id", id), zap.Error(err))
			return err
		}
	}

	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// parseAmount mirrors the form behavior for numeric inputs: anything that
// does not parse as a float becomes zero.
func parseAmount(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
