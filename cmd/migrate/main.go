package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitalmanagement/backend/pkg/config"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		department TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (email, department)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		patient_email TEXT NOT NULL,
		patient_name TEXT NOT NULL,
		gender TEXT NOT NULL,
		slot TEXT NOT NULL,
		disease TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		department TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		action TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS archived_bookings (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		doctor TEXT NOT NULL,
		patient_name TEXT NOT NULL,
		patient_email TEXT NOT NULL,
		disease TEXT NOT NULL,
		department TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		feedback TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_department ON bookings (department)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_booking_id ON audit_log (booking_id)`,
	`CREATE INDEX IF NOT EXISTS idx_archived_bookings_doctor ON archived_bookings (doctor)`,
	`CREATE INDEX IF NOT EXISTS idx_archived_bookings_patient_email ON archived_bookings (patient_email)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()
	for _, stmt := range statements {
		if _, err := pgClient.DB().ExecContext(ctx, stmt); err != nil {
			log.Fatal().Err(err).Msg("migration statement failed")
		}
	}

	log.Info().Msg("migrations applied")
}
