package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/models"
)

// ContactRepository handles contact-message inserts.
type ContactRepository struct {
	DB      *sql.DB
	log     zerolog.Logger
	m       *metrics.Metrics
	timeout time.Duration
}

func NewContactRepository(
	db *sql.DB,
	logger zerolog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *ContactRepository {
	logger = logger.With().Str("component", "SqliteContactRepository").Logger()
	return &ContactRepository{DB: db, log: logger, m: m, timeout: timeout}
}

func (r *ContactRepository) Create(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	msg.CreatedAt = time.Now().UTC()

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	dur := time.Since(start)
	if err != nil {
		r.log.Error().Err(err).
			Str("email", msg.Email).
			Dur("duration", dur).
			Msg("failed to insert contact message")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		msg.ID = strconv.FormatInt(id, 10)
	}

	r.log.Info().
		Str("email", msg.Email).
		Str("id", msg.ID).
		Dur("duration", dur).
		Msg("contact message stored")
	r.m.ContactMessagesCreated.Inc()
	return msg, nil
}
