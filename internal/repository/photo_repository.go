package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"piscopy/internal/models"
	"piscopy/internal/store"

	"go.uber.org/zap"
)

type PhotoRepository struct {
	store  *store.Client
	logger *zap.Logger
}

func NewPhotoRepository(store *store.Client, logger *zap.Logger) *PhotoRepository {
	return &PhotoRepository{
		store:  store,
		logger: logger,
	}
}

// List fetches every stored photo, merging the store key into each record
// as its ID. An empty store yields an empty slice.
func (r *PhotoRepository) List(ctx context.Context) ([]models.Photo, error) {
	records, err := r.store.List(ctx, store.KindPhotos)
	if err != nil {
		return nil, err
	}

	photos := make([]models.Photo, 0, len(records))
	for key, raw := range records {
		var photo models.Photo
		if err := json.Unmarshal(raw, &photo); err != nil {
			return nil, fmt.Errorf("malformed photo record %s: %w", key, err)
		}
		photo.ID = key
		photos = append(photos, photo)
	}

	return photos, nil
}

// Create submits the record body without an ID and returns the key the
// store assigned to it.
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) (string, error) {
	body := *photo
	body.ID = ""
	return r.store.Create(ctx, store.KindPhotos, &body)
}

func (r *PhotoRepository) Update(ctx context.Context, id string, photo *models.Photo) error {
	return r.store.Update(ctx, store.KindPhotos, id, photo)
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.KindPhotos, id)
}
