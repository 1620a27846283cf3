// Package storage owns the connection lifecycle for both backends: the
// MongoDB connector with its retry loop and readiness watchdog, and the
// SQLite open/migrate helpers.
package storage

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/startuplab/landing-api/internal/metrics"
)

const (
	pingTimeout   = 3 * time.Second
	watchdogSpec  = "@every 15s"
	retryDelaySec = 5
)

// MongoConnector holds the shared client handle. The driver manages its
// own pool, the handle is safe for concurrent use by all request handlers.
type MongoConnector struct {
	client *mongodrv.Client
	db     *mongodrv.Database
	log    zerolog.Logger
	m      *metrics.Metrics
	ready  atomic.Bool
	cron   *cron.Cron
}

// MongoSettings is the connector's slice of the config.
type MongoSettings struct {
	URI      string
	Database string

	// ConnectAttempts bounds the startup retry loop; 0 retries until the
	// context is cancelled.
	ConnectAttempts uint
}

// ConnectMongo establishes the connection, retrying with a fixed delay.
// Every failed attempt is logged; exhausting a bounded attempt count
// returns an error instead of giving up silently.
func ConnectMongo(
	ctx context.Context,
	settings MongoSettings,
	logger zerolog.Logger,
	m *metrics.Metrics,
) (*MongoConnector, error) {
	logger = logger.With().Str("component", "MongoConnector").Logger()

	var client *mongodrv.Client
	err := retry.Do(
		func() error {
			c, err := mongodrv.Connect(options.Client().ApplyURI(settings.URI))
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			if err := c.Ping(pingCtx, nil); err != nil {
				_ = c.Disconnect(ctx)
				return err
			}
			client = c
			return nil
		},
		retry.Attempts(settings.ConnectAttempts),
		retry.Delay(retryDelaySec*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().Uint("attempt", n+1).Err(err).Msg("mongo connect failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	conn := &MongoConnector{
		client: client,
		db:     client.Database(settings.Database),
		log:    logger,
		m:      m,
	}
	conn.ready.Store(true)
	m.StorageUp.Set(1)
	logger.Info().Str("database", settings.Database).Msg("mongo connected")
	return conn, nil
}

// StartWatchdog schedules a periodic ping that keeps the readiness flag
// and the storage_up gauge honest.
func (c *MongoConnector) StartWatchdog() error {
	c.cron = cron.New()
	if _, err := c.cron.AddFunc(watchdogSpec, c.pingOnce); err != nil {
		return fmt.Errorf("schedule storage watchdog: %w", err)
	}
	c.cron.Start()
	return nil
}

func (c *MongoConnector) pingOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.client.Ping(ctx, nil); err != nil {
		if c.ready.Swap(false) {
			c.log.Warn().Err(err).Msg("storage ping failed, marking not ready")
		}
		c.m.StorageUp.Set(0)
		return
	}
	if !c.ready.Swap(true) {
		c.log.Info().Msg("storage ping recovered")
	}
	c.m.StorageUp.Set(1)
}

// Ready reports the last observed connectivity state. Handlers still
// attempt operations while not ready; their bounded timeouts surface the
// unavailable outcome.
func (c *MongoConnector) Ready() bool {
	return c.ready.Load()
}

func (c *MongoConnector) Database() *mongodrv.Database {
	return c.db
}

func (c *MongoConnector) Close(ctx context.Context) error {
	if c.cron != nil {
		c.cron.Stop()
	}
	return c.client.Disconnect(ctx)
}
