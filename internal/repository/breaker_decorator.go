package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/startuplab/landing-api/internal/models"
)

const (
	timeInterval = time.Duration(30) * time.Second
	timeTimeOut  = time.Duration(15) * time.Second

	repeatNumber = 5
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    timeInterval,
		Timeout:     timeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= repeatNumber
		},
		// A duplicate key is a healthy answer from the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrDuplicateEmail)
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}

func breakerShortCircuited(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// BreakerSubscriberRepository wraps a SubscriberRepository with a circuit
// breaker. While the breaker is open every call fails fast with
// models.ErrStorageUnavailable instead of piling onto a dead store.
type BreakerSubscriberRepository struct {
	cb      *gobreaker.CircuitBreaker
	wrapped SubscriberRepository
}

func NewBreakerSubscriberRepository(name string, wrapped SubscriberRepository) *BreakerSubscriberRepository {
	return &BreakerSubscriberRepository{
		cb:      newBreaker(name),
		wrapped: wrapped,
	}
}

func (b *BreakerSubscriberRepository) Create(ctx context.Context, email string) (models.Subscriber, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Create(ctx, email)
	})
	if err != nil {
		if breakerShortCircuited(err) {
			return models.Subscriber{}, models.ErrStorageUnavailable
		}
		return models.Subscriber{}, err
	}
	sub, ok := result.(models.Subscriber)
	if !ok {
		return models.Subscriber{}, models.ErrStorageUnavailable
	}
	return sub, nil
}

// BreakerContactRepository is the contact-store counterpart.
type BreakerContactRepository struct {
	cb      *gobreaker.CircuitBreaker
	wrapped ContactRepository
}

func NewBreakerContactRepository(name string, wrapped ContactRepository) *BreakerContactRepository {
	return &BreakerContactRepository{
		cb:      newBreaker(name),
		wrapped: wrapped,
	}
}

func (b *BreakerContactRepository) Create(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Create(ctx, msg)
	})
	if err != nil {
		if breakerShortCircuited(err) {
			return models.ContactMessage{}, models.ErrStorageUnavailable
		}
		return models.ContactMessage{}, err
	}
	stored, ok := result.(models.ContactMessage)
	if !ok {
		return models.ContactMessage{}, models.ErrStorageUnavailable
	}
	return stored, nil
}
