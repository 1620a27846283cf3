package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/models"
)

const contactsCollection = "contacts"

// ContactRepository stores contact-form submissions. No uniqueness rule,
// repeated submissions all land.
type ContactRepository struct {
	coll    *mongodrv.Collection
	log     zerolog.Logger
	m       *metrics.Metrics
	timeout time.Duration
}

func NewContactRepository(
	db *mongodrv.Database,
	logger zerolog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *ContactRepository {
	logger = logger.With().Str("component", "MongoContactRepository").Logger()
	return &ContactRepository{
		coll:    db.Collection(contactsCollection),
		log:     logger,
		m:       m,
		timeout: timeout,
	}
}

func (r *ContactRepository) Create(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	msg.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, msg)
	dur := time.Since(start)
	if err != nil {
		r.log.Error().Err(err).
			Str("email", msg.Email).
			Dur("duration", dur).
			Msg("failed to insert contact message")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		msg.ID = id.Hex()
	}

	r.log.Info().
		Str("email", msg.Email).
		Str("id", msg.ID).
		Dur("duration", dur).
		Msg("contact message stored")
	r.m.ContactMessagesCreated.Inc()
	return msg, nil
}
