package services

import (
	"errors"
	"math/rand/v2"
	"mime/multipart"
	"strings"
	"time"
	"weddingsite/internal/models"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
	"weddingsite/internal/uploads"
)

const defaultAdminUploader = "Admin"

type UploadInput struct {
	Uploader    string
	Description string
	Files       []*multipart.FileHeader
}

type UploadResult struct {
	Photos    []models.Photo
	Stats     models.GalleryStats
	Persisted bool
}

type GalleryServiceInterface interface {
	List() *models.GalleryDocument
	GuestUpload(input *UploadInput) (*UploadResult, error)
	AdminUpload(input *UploadInput) (*UploadResult, error)
	Delete(id string) error
}

type GalleryService struct {
	store        interfaces.DocumentStore
	uploads      uploads.ManagerInterface
	guestPolicy  CreatePolicy
	placeholders []string
	logger       providers.Logger
	now          func() time.Time
}

func NewGalleryService(store interfaces.DocumentStore, manager uploads.ManagerInterface, conf *structures.Config, logger providers.Logger) GalleryServiceInterface {
	return &GalleryService{
		store:        store,
		uploads:      manager,
		guestPolicy:  DemoPolicy(conf),
		placeholders: conf.Demo.Placeholders,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GalleryService) List() *models.GalleryDocument {
	var doc models.GalleryDocument
	s.store.Load(storage.KeyGallery, &doc)
	return &doc
}

// GuestUpload accepts guest photos. In demo mode the temp files are removed
// right away and the returned photos point at an existing placeholder image.
func (s *GalleryService) GuestUpload(input *UploadInput) (*UploadResult, error) {
	uploader := strings.TrimSpace(input.Uploader)
	if uploader == "" {
		return nil, invalid("uploader name is required")
	}

	stored, err := s.uploads.Save(uploads.GuestPolicy, input.Files, 0)
	if err != nil {
		return nil, uploadError(err)
	}

	if s.guestPolicy.Persist {
		return s.persist(stored, uploader, input.Description)
	}

	s.uploads.Discard(stored)

	doc := s.List()
	now := s.now()
	photos := make([]models.Photo, 0, len(stored))
	for _, f := range stored {
		photos = append(photos, models.Photo{
			ID:           models.NewID(now),
			URL:          s.placeholder(doc),
			OriginalName: f.OriginalName,
			Uploader:     uploader,
			Description:  input.Description,
			UploadedAt:   now.UTC(),
		})
	}

	all := append(append(make([]models.Photo, 0, len(doc.Photos)+len(photos)), doc.Photos...), photos...)
	s.logger.Infof(providers.TypePost, "[DEMO] %d photo(s) from %s simulated (not stored)", len(photos), uploader)
	return &UploadResult{Photos: photos, Stats: models.DeriveGalleryStats(all)}, nil
}

// placeholder picks a random existing guest photo, then the first configured
// demo image that exists on disk, then the first configured one regardless.
func (s *GalleryService) placeholder(doc *models.GalleryDocument) string {
	var existing []string
	for _, p := range doc.Photos {
		if strings.HasPrefix(p.URL, uploads.GuestPrefix) {
			existing = append(existing, p.URL)
		}
	}
	if len(existing) > 0 {
		return existing[rand.IntN(len(existing))]
	}
	for _, url := range s.placeholders {
		if s.uploads.Exists(url) {
			return url
		}
	}
	if len(s.placeholders) > 0 {
		return s.placeholders[0]
	}
	return ""
}

// AdminUpload stores the files under their original names and records one
// photo per file.
func (s *GalleryService) AdminUpload(input *UploadInput) (*UploadResult, error) {
	stored, err := s.uploads.Save(uploads.AdminPolicy, input.Files, 0)
	if err != nil {
		return nil, uploadError(err)
	}
	uploader := strings.TrimSpace(input.Uploader)
	if uploader == "" {
		uploader = defaultAdminUploader
	}
	return s.persist(stored, uploader, input.Description)
}

func (s *GalleryService) persist(stored []uploads.StoredFile, uploader, description string) (*UploadResult, error) {
	now := s.now()
	photos := make([]models.Photo, 0, len(stored))
	for _, f := range stored {
		photos = append(photos, models.Photo{
			ID:           models.NewID(now),
			URL:          f.URL,
			OriginalName: f.OriginalName,
			Uploader:     uploader,
			Description:  description,
			UploadedAt:   now.UTC(),
		})
	}

	var doc models.GalleryDocument
	err := s.store.Update(storage.KeyGallery, &doc, func() error {
		doc.Photos = append(doc.Photos, photos...)
		return nil
	})
	if err != nil {
		s.uploads.Discard(stored)
		return nil, &StorageError{Op: "save gallery", Err: err}
	}

	s.logger.Infof(providers.TypePost, "%d photo(s) from %s stored", len(photos), uploader)
	return &UploadResult{Photos: photos, Stats: doc.Stats, Persisted: true}, nil
}

// Delete removes the record, then the file it points to. The file goes only
// after the document was saved, so a failed save never leaves a record
// pointing at a deleted file.
func (s *GalleryService) Delete(id string) error {
	var (
		doc     models.GalleryDocument
		removed models.Photo
	)
	err := s.store.Update(storage.KeyGallery, &doc, func() error {
		idx := doc.IndexOf(id)
		if idx == -1 {
			return ErrNotFound
		}
		removed = doc.Photos[idx]
		doc.Photos = append(doc.Photos[:idx], doc.Photos[idx+1:]...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &StorageError{Op: "delete photo", Err: err}
	}

	if err := s.uploads.RemoveByURL(removed.URL); err != nil {
		s.logger.Warnf(providers.TypeApp, "Photo %s deleted but file %s could not be removed: %s", id, removed.URL, err)
	}
	return nil
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, uploads.ErrNoFiles),
		errors.Is(err, uploads.ErrTooManyFiles),
		errors.Is(err, uploads.ErrTooLarge),
		errors.Is(err, uploads.ErrNotImage):
		return invalidErr(err)
	default:
		return &StorageError{Op: "store upload", Err: err}
	}
}
