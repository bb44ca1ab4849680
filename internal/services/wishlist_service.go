package services

import (
	"errors"
	"time"
	"weddingsite/internal/models"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
)

type WishlistInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Purchased   bool   `json:"purchased"`
	Visible     *bool  `json:"visible"`
}

type WishlistServiceInterface interface {
	List(includeHidden bool) *models.WishlistDocument
	Create(input *WishlistInput) (*models.WishlistItem, error)
	Update(id string, patch []byte) (*models.WishlistItem, error)
	Delete(id string) error
}

type WishlistService struct {
	store  interfaces.DocumentStore
	logger providers.Logger
	now    func() time.Time
}

func NewWishlistService(store interfaces.DocumentStore, logger providers.Logger) WishlistServiceInterface {
	return &WishlistService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the wishlist. Public readers only see visible items.
func (s *WishlistService) List(includeHidden bool) *models.WishlistDocument {
	var doc models.WishlistDocument
	s.store.Load(storage.KeyWishlist, &doc)
	if includeHidden {
		return &doc
	}
	return doc.VisibleOnly()
}

func (s *WishlistService) Create(input *WishlistInput) (*models.WishlistItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	item := models.WishlistItem{
		ID:          models.NewID(s.now()),
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		Purchased:   input.Purchased,
		Visible:     models.Bool(input.Visible == nil || *input.Visible),
	}

	var doc models.WishlistDocument
	err := s.store.Update(storage.KeyWishlist, &doc, func() error {
		doc.Items = append(doc.Items, item)
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "save wishlist", Err: err}
	}
	return &item, nil
}

// Update merges the given fields into the item. The id can't be changed.
func (s *WishlistService) Update(id string, patch []byte) (*models.WishlistItem, error) {
	var (
		doc     models.WishlistDocument
		updated models.WishlistItem
	)
	err := s.store.Update(storage.KeyWishlist, &doc, func() error {
		idx := doc.IndexOf(id)
		if idx == -1 {
			return ErrNotFound
		}
		item := doc.Items[idx]
		if err := mergeJSON(&item, patch, "id"); err != nil {
			return err
		}
		doc.Items[idx] = item
		updated = item
		return nil
	})
	if err != nil {
		return nil, wrapMutation("update wishlist", err)
	}
	return &updated, nil
}

func (s *WishlistService) Delete(id string) error {
	var doc models.WishlistDocument
	err := s.store.Update(storage.KeyWishlist, &doc, func() error {
		idx := doc.IndexOf(id)
		if idx == -1 {
			return ErrNotFound
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		return nil
	})
	return wrapMutation("delete wishlist", err)
}

// wrapMutation passes taxonomy errors through and marks the rest as storage failures.
func wrapMutation(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &ve) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
