package database

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "hms", Password: "secret", DBName: "console", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=hms password=secret dbname=console sslmode=require", cfg.DSN())
}

func TestGormLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"ERROR":  logger.Error,
		"warn":   logger.Warn,
		"info":   logger.Info,
		"":       logger.Warn,
		"trace":  logger.Warn,
	}
	for name, want := range tests {
		assert.Equal(t, want, gormLevel(name), name)
	}
}

func TestZerologWriter(t *testing.T) {
	var buf bytes.Buffer
	w := zerologWriter{logger: zerolog.New(&buf), level: zerolog.WarnLevel}

	w.Printf("%s [%.3fms] %s\n", "audit_repository.go:30", 1.5, "SELECT 1")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `audit_repository.go:30 [1.500ms] SELECT 1`)
}
