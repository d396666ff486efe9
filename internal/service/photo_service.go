package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"piscopy/internal/models"
	"piscopy/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrPendingNotFound = errors.New("pending file not found")
	ErrPreviewNotReady = errors.New("preview not ready")
	ErrCommitInFlight  = errors.New("commit already in progress")
)

// UploadedFile is one file accepted from the upload form, already read
// into memory.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportedPhoto is a photo unpacked from its data URL for download.
type ExportedPhoto struct {
	FileName  string
	MediaType string
	Data      []byte
}

// PhotoService owns the intake pipeline for new uploads and the in-memory
// mirror of persisted photos. The mirror is authoritative for reads; every
// write goes to the store first and is applied locally only on success.
type PhotoService struct {
	repo   *repository.PhotoRepository
	logger *zap.Logger

	mu      sync.Mutex
	photos  []models.Photo
	pending []models.PendingFile

	// pending IDs with a commit in flight. The store write runs outside
	// the lock, so without this a second commit of the same entry could
	// slip in and create a duplicate record.
	committing map[string]struct{}
}

func NewPhotoService(repo *repository.PhotoRepository, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		repo:       repo,
		logger:     logger,
		committing: make(map[string]struct{}),
	}
}

// Load fills the photo mirror from the store. Called once at startup.
func (s *PhotoService) Load(ctx context.Context) error {
	photos, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	sort.Slice(photos, func(i, j int) bool {
		if photos[i].UploadedAt != photos[j].UploadedAt {
			return photos[i].UploadedAt < photos[j].UploadedAt
		}
		return photos[i].ID < photos[j].ID
	})

	s.mu.Lock()
	s.photos = photos
	s.mu.Unlock()

	s.logger.Info("Photos loaded", zap.Int("count", len(photos)))
	return nil
}

// Accept registers a batch of files as pending entries. The entries appear
// immediately with an empty preview; one goroutine per file encodes the
// bytes into a data URL and patches the entry in place, matched by ID.
// Previews may therefore populate in any order.
func (s *PhotoService) Accept(files []UploadedFile) []models.PendingFile {
	entries := make([]models.PendingFile, len(files))
	for i, f := range files {
		entries[i] = models.PendingFile{
			ID:       uuid.NewString(),
			FileName: f.Name,
			Note:     "",
		}
	}

	s.mu.Lock()
	s.pending = append(s.pending, entries...)
	s.mu.Unlock()

	for i, f := range files {
		go s.encodePreview(entries[i].ID, f)
	}

	return entries
}

func (s *PhotoService) encodePreview(id string, f UploadedFile) {
	preview := encodeDataURL(f.ContentType, f.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending[i].Preview = preview
			return
		}
	}
	// Entry was discarded while encoding; nothing to patch.
}

func (s *PhotoService) Pending() []models.PendingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PendingFile, len(s.pending))
	copy(out, s.pending)
	return out
}

// UpdatePendingNote replaces the note on one pending entry. Local only.
func (s *PhotoService) UpdatePendingNote(id, note string) (*models.PendingFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending[i].Note = note
			entry := s.pending[i]
			return &entry, nil
		}
	}
	return nil, ErrPendingNotFound
}

// DiscardPending removes a pending entry without any store interaction.
func (s *PhotoService) DiscardPending(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	return ErrPendingNotFound
}

// CommitPending promotes a pending entry to a stored photo record. The
// entry must have a finished preview. On store failure the entry stays in
// the pending collection, eligible for retry. At most one commit per entry
// runs at a time; a concurrent second commit gets ErrCommitInFlight.
func (s *PhotoService) CommitPending(ctx context.Context, id string) (*models.Photo, error) {
	s.mu.Lock()
	var entry *models.PendingFile
	for i := range s.pending {
		if s.pending[i].ID == id {
			entry = &s.pending[i]
			break
		}
	}
	if entry == nil {
		s.mu.Unlock()
		return nil, ErrPendingNotFound
	}
	if !entry.Ready() {
		s.mu.Unlock()
		return nil, ErrPreviewNotReady
	}
	if _, inFlight := s.committing[id]; inFlight {
		s.mu.Unlock()
		return nil, ErrCommitInFlight
	}
	if s.committing == nil {
		s.committing = make(map[string]struct{})
	}
	s.committing[id] = struct{}{}

	photo := models.Photo{
		FileName:   entry.FileName,
		ImageURL:   entry.Preview,
		Note:       entry.Note,
		UploadedAt: time.Now().Format(time.RFC3339),
	}
	s.mu.Unlock()

	storeID, err := s.repo.Create(ctx, &photo)
	if err != nil {
		s.mu.Lock()
		delete(s.committing, id)
		s.mu.Unlock()
		s.logger.Error("Failed to save photo", zap.String("fileName", photo.FileName), zap.Error(err))
		return nil, err
	}
	photo.ID = storeID

	s.mu.Lock()
	delete(s.committing, id)
	s.photos = append(s.photos, photo)
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("Photo saved", zap.String("id", storeID), zap.String("fileName", photo.FileName))
	return &photo, nil
}

func (s *PhotoService) Photos() []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

func (s *PhotoService) Photo(id string) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.photos {
		if s.photos[i].ID == id {
			photo := s.photos[i]
			return &photo, nil
		}
	}
	return nil, ErrPhotoNotFound
}

// SaveNote replaces a stored photo's note, sending the full record to the
// store. The mirror is only updated once the store accepts the write.
func (s *PhotoService) SaveNote(ctx context.Context, id, note string) (*models.Photo, error) {
	current, err := s.Photo(id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Note = note

	if err := s.repo.Update(ctx, id, &updated); err != nil {
		s.logger.Error("Failed to update note", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.photos {
		if s.photos[i].ID == id {
			s.photos[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return &updated, nil
}

// Delete removes a photo from the store and, on success, from the mirror.
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	if _, err := s.Photo(id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete photo", zap.String("id", id), zap.Error(err))
		return err
	}

	s.mu.Lock()
	for i := range s.photos {
		if s.photos[i].ID == id {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// Export unpacks a photo's image data for download under its original file
// name. No store interaction.
func (s *PhotoService) Export(id string) (*ExportedPhoto, error) {
	photo, err := s.Photo(id)
	if err != nil {
		return nil, err
	}

	mediaType, data, err := decodeDataURL(photo.ImageURL)
	if err != nil {
		return nil, err
	}

	return &ExportedPhoto{
		FileName:  photo.FileName,
		MediaType: mediaType,
		Data:      data,
	}, nil
}
