package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SessionConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("SESSION_COOKIE_NAME", "test_session")
	os.Setenv("SESSION_TTL_MINUTES", "30")
	defer func() {
		os.Unsetenv("SESSION_COOKIE_NAME")
		os.Unsetenv("SESSION_TTL_MINUTES")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify session config
	assert.Equal(t, "test_session", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("SESSION_COOKIE_NAME")
	os.Unsetenv("SESSION_TTL_MINUTES")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "hms_session", cfg.Session.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "hospital_management", cfg.Database.Database)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "hms",
		Password: "secret",
		Database: "hospital_management",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=hms password=secret dbname=hospital_management sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
