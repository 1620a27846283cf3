package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/startuplab/landing-api/internal/models"
	"github.com/startuplab/landing-api/internal/validation"
)

type SubscriberRepository interface {
	Create(ctx context.Context, email string) (models.Subscriber, error)
}

// seenCache is the optional duplicate fast path. Entries are written only
// after the store has confirmed the email exists, so a hit is always
// truthful; a miss or any cache error falls through to the insert.
type seenCache interface {
	Get(ctx context.Context, key string, returnValue *string) error
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// Service runs the subscription flow: normalize, fast-path check, insert,
// map storage failures to domain outcomes.
type Service struct {
	repo    SubscriberRepository
	cache   seenCache
	log     zerolog.Logger
	seenTTL time.Duration
}

// NewService builds the service. cache may be nil, the fast path is then
// skipped entirely.
func NewService(
	repo SubscriberRepository,
	cache seenCache,
	logger zerolog.Logger,
	seenTTL time.Duration,
) *Service {
	logger = logger.With().Str("component", "SubscriptionService").Logger()
	return &Service{repo: repo, cache: cache, log: logger, seenTTL: seenTTL}
}

func seenKey(email string) string {
	return "subscriber:seen:" + email
}

// Subscribe validates and normalizes rawEmail, then inserts it. Returns
// models.ErrEmailRequired / models.ErrEmailFormat before any I/O,
// models.ErrDuplicateEmail when the email is already stored and
// models.ErrStorageUnavailable for every other storage failure.
func (s *Service) Subscribe(ctx context.Context, rawEmail string) (models.Subscriber, error) {
	email, err := validation.NormalizeEmail(rawEmail)
	if err != nil {
		return models.Subscriber{}, err
	}

	if s.cache != nil {
		var seen string
		if err := s.cache.Get(ctx, seenKey(email), &seen); err == nil {
			s.log.Debug().Str("email", email).Msg("seen-cache hit, skipping insert")
			return models.Subscriber{}, models.ErrDuplicateEmail
		}
	}

	sub, err := s.repo.Create(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			s.markSeen(ctx, email)
			return models.Subscriber{}, models.ErrDuplicateEmail
		}
		s.log.Error().Err(err).Str("email", email).Msg("subscriber insert failed")
		return models.Subscriber{}, models.ErrStorageUnavailable
	}

	s.markSeen(ctx, email)
	return sub, nil
}

func (s *Service) markSeen(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, seenKey(email), time.Now().UTC().Format(time.RFC3339), s.seenTTL); err != nil {
		s.log.Debug().Err(err).Str("email", email).Msg("seen-cache set failed")
	}
}
