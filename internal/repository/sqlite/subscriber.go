// Package sqlite implements the repositories on SQLite, used for local
// development and the integration suite. The UNIQUE column on
// subscribers.email plays the same role as the Mongo unique index.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	sqlitedrv "modernc.org/sqlite"

	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/models"
)

// SQLITE_CONSTRAINT_UNIQUE
const constraintUnique = 2067

func isUniqueViolation(err error) bool {
	var serr *sqlitedrv.Error
	return errors.As(err, &serr) && serr.Code() == constraintUnique
}

// SubscriberRepository handles subscriber inserts with structured logging
// and metrics.
type SubscriberRepository struct {
	DB      *sql.DB
	log     zerolog.Logger
	m       *metrics.Metrics
	timeout time.Duration
}

func NewSubscriberRepository(
	db *sql.DB,
	logger zerolog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *SubscriberRepository {
	logger = logger.With().Str("component", "SqliteSubscriberRepository").Logger()
	return &SubscriberRepository{DB: db, log: logger, m: m, timeout: timeout}
}

// Create inserts a new subscriber, returns models.ErrDuplicateEmail when
// the UNIQUE constraint rejects the write.
func (r *SubscriberRepository) Create(ctx context.Context, email string) (models.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	sub := models.Subscriber{Email: email, CreatedAt: time.Now().UTC()}

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO subscribers (email, created_at) VALUES (?, ?)`,
		sub.Email, sub.CreatedAt,
	)
	dur := time.Since(start)
	if err != nil {
		if isUniqueViolation(err) {
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

	if id, err := res.LastInsertId(); err == nil {
		sub.ID = strconv.FormatInt(id, 10)
	}

	r.log.Info().
		Str("email", email).
		Str("id", sub.ID).
		Dur("duration", dur).
		Msg("subscriber created")
	r.m.SubscriptionsCreated.Inc()
	return sub, nil
}
