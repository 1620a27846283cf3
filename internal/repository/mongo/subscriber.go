// Package mongo implements the repositories on the MongoDB document store.
// The unique index on subscribers.email is the authoritative duplicate
// guard; the driver's duplicate-key error is mapped to
// models.ErrDuplicateEmail.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/models"
)

const subscribersCollection = "subscribers"

// SubscriberRepository stores unique email records in the subscribers
// collection.
type SubscriberRepository struct {
	coll    *mongodrv.Collection
	log     zerolog.Logger
	m       *metrics.Metrics
	timeout time.Duration
}

func NewSubscriberRepository(
	db *mongodrv.Database,
	logger zerolog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *SubscriberRepository {
	logger = logger.With().Str("component", "MongoSubscriberRepository").Logger()
	return &SubscriberRepository{
		coll:    db.Collection(subscribersCollection),
		log:     logger,
		m:       m,
		timeout: timeout,
	}
}

// EnsureIndexes declares the unique index on email. Safe to call on every
// start.
func (r *SubscriberRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongodrv.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique email index: %w", err)
	}
	return nil
}

// Create inserts a new subscriber, returns models.ErrDuplicateEmail when
// the unique index rejects the write.
func (r *SubscriberRepository) Create(ctx context.Context, email string) (models.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	sub := models.Subscriber{Email: email, CreatedAt: time.Now().UTC()}

	res, err := r.coll.InsertOne(ctx, sub)
	dur := time.Since(start)
	if err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			r.log.Info().
				Str("email", email).
				Dur("duration", dur).
				Msg("duplicate subscription attempt")
			r.m.BusinessErrors.WithLabelValues("duplicate_email", "warning").Inc()
			r.m.DuplicateSubscriptions.Inc()
			return models.Subscriber{}, models.ErrDuplicateEmail
		}
		r.log.Error().Err(err).
			Str("email", email).
			Dur("duration", dur).
			Msg("failed to insert subscriber")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.Subscriber{}, fmt.Errorf("insert subscriber: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		sub.ID = id.Hex()
	}

	r.log.Info().
		Str("email", email).
		Str("id", sub.ID).
		Dur("duration", dur).
		Msg("subscriber created")
	r.m.SubscriptionsCreated.Inc()
	return sub, nil
}
