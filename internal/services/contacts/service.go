package contacts

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/startuplab/landing-api/internal/models"
	"github.com/startuplab/landing-api/internal/validation"
)

type ContactRepository interface {
	Create(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
}

// Service runs the contact-form flow. Validation happens before any I/O;
// storage failures collapse to models.ErrStorageUnavailable.
type Service struct {
	repo ContactRepository
	log  zerolog.Logger
}

func NewService(repo ContactRepository, logger zerolog.Logger) *Service {
	logger = logger.With().Str("component", "ContactService").Logger()
	return &Service{repo: repo, log: logger}
}

func (s *Service) Record(ctx context.Context, name, email, message string) (models.ContactMessage, error) {
	in, err := validation.ContactInput{Name: name, Email: email, Message: message}.Normalize()
	if err != nil {
		return models.ContactMessage{}, err
	}

	stored, err := s.repo.Create(ctx, models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("contact insert failed")
		return models.ContactMessage{}, models.ErrStorageUnavailable
	}
	return stored, nil
}
