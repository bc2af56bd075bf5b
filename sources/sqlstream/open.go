package sqlstream

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/resilience"
)

// Open connects to a database with retry and connection pooling,
// returning a GORM handle ready for Query.
func Open(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*gorm.DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sqlstream config: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormCfg := &gorm.Config{
		Logger: newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts:    cfg.MaxRetries,
		InitialBackoff: time.Second,
		BackoffFactor:  1.5,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.Warn("database connection attempt failed, retrying", logger.Fields(
				logger.FieldAttempt, attempt,
				logger.FieldError, err.Error(),
				"backoff", backoff.String(),
			))
		},
	}

	db, err := resilience.Retry(ctx, retryCfg, func() (*gorm.DB, error) {
		db, err := gorm.Open(dialector, gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	if idleTime, err := time.ParseDuration(cfg.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	log.Info("database connection established")
	return db, nil
}
