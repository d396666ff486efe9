package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"piscopy/internal/models"
	"piscopy/internal/store"

	"go.uber.org/zap"
)

type DocumentRepository struct {
	store  *store.Client
	logger *zap.Logger
}

func NewDocumentRepository(store *store.Client, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		store:  store,
		logger: logger,
	}
}

func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	records, err := r.store.List(ctx, store.KindDocuments)
	if err != nil {
		return nil, err
	}

	documents := make([]models.Document, 0, len(records))
	for key, raw := range records {
		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("malformed document record %s: %w", key, err)
		}
		doc.ID = key
		documents = append(documents, doc)
	}

	return documents, nil
}

// Save writes the full document under its client-generated ID. A PUT to a
// fresh key creates the record, so the same call covers create and update.
func (r *DocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	return r.store.Update(ctx, store.KindDocuments, doc.ID, doc)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.KindDocuments, id)
}
