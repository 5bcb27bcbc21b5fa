// Package database opens the Postgres store that keeps the console's audit trail.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/otcheredev/hms-console/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

// DSN renders the libpq connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Connect opens the audit database and migrates the audit table
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  gormLogger(cfg.LogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	// writes are one small insert per console action
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate audit table: %w", err)
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("Audit database ready")
	return db, nil
}

// Ping checks the connection within ctx
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// zerologWriter lets gorm log through the application logger. gorm
// already filters by its own level, so every line is written at level.
type zerologWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.logger.WithLevel(w.level).Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

func gormLevel(name string) logger.LogLevel {
	if level, ok := gormLevels[strings.ToLower(name)]; ok {
		return level
	}
	return logger.Warn
}

func gormLogger(name string) logger.Interface {
	level := gormLevel(name)

	// SQL traces are debug noise; slow queries and errors are not
	zlevel := zerolog.WarnLevel
	switch level {
	case logger.Info:
		zlevel = zerolog.DebugLevel
	case logger.Error:
		zlevel = zerolog.ErrorLevel
	}

	w := zerologWriter{logger: log.With().Str("component", "gorm").Logger(), level: zlevel}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
