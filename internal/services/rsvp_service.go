package services

import (
	"time"
	"weddingsite/internal/models"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
)

type RSVPInput struct {
	Name       string         `json:"name" validate:"required"`
	Email      string         `json:"email" validate:"required|email"`
	Phone      string         `json:"phone"`
	Guests     models.FlexInt `json:"guests"`
	Attendance string         `json:"attendance" validate:"required|in:yes,no"`
	Dietary    string         `json:"dietary"`
	Message    string         `json:"message"`
}

type RSVPResult struct {
	RSVP      models.RSVP
	Stats     models.RSVPStats
	Persisted bool
}

type RSVPServiceInterface interface {
	Stats() models.RSVPStats
	All() *models.RSVPDocument
	Create(input *RSVPInput) (*RSVPResult, error)
}

type RSVPService struct {
	store  interfaces.DocumentStore
	policy CreatePolicy
	logger providers.Logger
	now    func() time.Time
}

func NewRSVPService(store interfaces.DocumentStore, conf *structures.Config, logger providers.Logger) RSVPServiceInterface {
	return &RSVPService{
		store:  store,
		policy: DemoPolicy(conf),
		logger: logger,
		now:    time.Now,
	}
}

func (s *RSVPService) Stats() models.RSVPStats {
	return s.All().Stats
}

func (s *RSVPService) All() *models.RSVPDocument {
	var doc models.RSVPDocument
	s.store.Load(storage.KeyRSVP, &doc)
	return &doc
}

func (s *RSVPService) Create(input *RSVPInput) (*RSVPResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Attendance == models.AttendanceYes && input.Guests.Int() < 1 {
		return nil, invalid("guests must be at least 1")
	}

	now := s.now()
	rsvp := models.RSVP{
		ID:          models.NewID(now),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Guests:      input.Guests,
		Attendance:  input.Attendance,
		Dietary:     input.Dietary,
		Message:     input.Message,
		SubmittedAt: now.UTC(),
	}

	if !s.policy.Persist {
		doc := s.All()
		records := append(append(make([]models.RSVP, 0, len(doc.RSVPs)+1), doc.RSVPs...), rsvp)
		s.logger.Infof(providers.TypePost, "[DEMO] RSVP from %s simulated (not stored): %s", rsvp.Name, rsvp.Attendance)
		return &RSVPResult{RSVP: rsvp, Stats: models.DeriveRSVPStats(records)}, nil
	}

	var doc models.RSVPDocument
	err := s.store.Update(storage.KeyRSVP, &doc, func() error {
		doc.RSVPs = append(doc.RSVPs, rsvp)
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "save rsvp", Err: err}
	}
	s.logger.Infof(providers.TypePost, "RSVP from %s stored: %s", rsvp.Name, rsvp.Attendance)
	return &RSVPResult{RSVP: rsvp, Stats: doc.Stats, Persisted: true}, nil
}
