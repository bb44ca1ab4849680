package services

import (
	"mime/multipart"
	"weddingsite/internal/models"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/uploads"

	"github.com/gookit/validate"
)

type LinksServiceInterface interface {
	Get(includeHidden bool) *models.SiteConfig
	Replace(patch []byte) (*models.SiteConfig, error)
	PatchLink(index int, patch []byte) (*models.LinkEntry, error)
	UploadImage(file *multipart.FileHeader) (string, error)
}

// LinksService manages the site config document: titles, profile,
// background and the link list.
type LinksService struct {
	store   interfaces.DocumentStore
	uploads uploads.ManagerInterface
	logger  providers.Logger
}

func NewLinksService(store interfaces.DocumentStore, manager uploads.ManagerInterface, logger providers.Logger) LinksServiceInterface {
	return &LinksService{
		store:   store,
		uploads: manager,
		logger:  logger,
	}
}

func (s *LinksService) Get(includeHidden bool) *models.SiteConfig {
	var cfg models.SiteConfig
	s.store.Load(storage.KeyLinks, &cfg)
	if includeHidden {
		return &cfg
	}
	return cfg.VisibleOnly()
}

// Replace merges the top-level keys of patch over the stored config.
func (s *LinksService) Replace(patch []byte) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := s.store.Update(storage.KeyLinks, &cfg, func() error {
		if err := mergeJSON(&cfg, patch); err != nil {
			return err
		}
		if cfg.PageTitles == nil {
			cfg.PageTitles = map[string]string{}
		}
		if cfg.Links == nil {
			cfg.Links = []models.LinkEntry{}
		}
		v := validate.Struct(&cfg.Background)
		if !v.Validate() {
			return invalid("%s", v.Errors.One())
		}
		return nil
	})
	if err != nil {
		return nil, wrapMutation("save links", err)
	}
	return &cfg, nil
}

// PatchLink merges patch into the link at index.
func (s *LinksService) PatchLink(index int, patch []byte) (*models.LinkEntry, error) {
	var (
		cfg     models.SiteConfig
		updated models.LinkEntry
	)
	err := s.store.Update(storage.KeyLinks, &cfg, func() error {
		if index < 0 || index >= len(cfg.Links) {
			return invalid("invalid index")
		}
		link := cfg.Links[index]
		if err := mergeJSON(&link, patch); err != nil {
			return err
		}
		cfg.Links[index] = link
		updated = link
		return nil
	})
	if err != nil {
		return nil, wrapMutation("save link", err)
	}
	return &updated, nil
}

// UploadImage stores a single profile or background image with the admin
// naming policy and returns its public url. The config itself is untouched.
func (s *LinksService) UploadImage(file *multipart.FileHeader) (string, error) {
	var files []*multipart.FileHeader
	if file != nil {
		files = append(files, file)
	}
	stored, err := s.uploads.Save(uploads.AdminPolicy, files, 1)
	if err != nil {
		return "", uploadError(err)
	}
	s.logger.Infof(providers.TypePost, "Site image uploaded: %s", stored[0].URL)
	return stored[0].URL, nil
}
