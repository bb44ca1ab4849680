package services

import (
	"time"
	"weddingsite/internal/models"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
)

type SongInput struct {
	Title     string `json:"title" validate:"required"`
	Artist    string `json:"artist" validate:"required"`
	Genre     string `json:"genre"`
	Mood      string `json:"mood"`
	Reason    string `json:"reason"`
	Submitter string `json:"submitter" validate:"required"`
}

type SongResult struct {
	Song      models.Song
	Stats     models.PlaylistStats
	Persisted bool
}

type PlaylistServiceInterface interface {
	List() *models.PlaylistDocument
	Create(input *SongInput) (*SongResult, error)
}

type PlaylistService struct {
	store  interfaces.DocumentStore
	policy CreatePolicy
	logger providers.Logger
	now    func() time.Time
}

func NewPlaylistService(store interfaces.DocumentStore, conf *structures.Config, logger providers.Logger) PlaylistServiceInterface {
	return &PlaylistService{
		store:  store,
		policy: DemoPolicy(conf),
		logger: logger,
		now:    time.Now,
	}
}

func (s *PlaylistService) List() *models.PlaylistDocument {
	var doc models.PlaylistDocument
	s.store.Load(storage.KeyPlaylist, &doc)
	return &doc
}

func (s *PlaylistService) Create(input *SongInput) (*SongResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	song := models.Song{
		ID:          models.NewID(now),
		Title:       input.Title,
		Artist:      input.Artist,
		Genre:       input.Genre,
		Mood:        input.Mood,
		Reason:      input.Reason,
		Submitter:   input.Submitter,
		SubmittedAt: now.UTC(),
	}

	if !s.policy.Persist {
		doc := s.List()
		songs := append(append(make([]models.Song, 0, len(doc.Songs)+1), doc.Songs...), song)
		s.logger.Infof(providers.TypePost, "[DEMO] Song from %s simulated (not stored): %s - %s", song.Submitter, song.Title, song.Artist)
		return &SongResult{Song: song, Stats: models.DerivePlaylistStats(songs)}, nil
	}

	var doc models.PlaylistDocument
	err := s.store.Update(storage.KeyPlaylist, &doc, func() error {
		doc.Songs = append(doc.Songs, song)
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "save song", Err: err}
	}
	return &SongResult{Song: song, Stats: doc.Stats, Persisted: true}, nil
}
