package main

import (
	"context"
	"log"
	"os"

	"github.com/zatekoja/hospitalmanagement/backend/internal/adapters/database"
	"github.com/zatekoja/hospitalmanagement/backend/internal/application/services"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitalmanagement/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	accountRepo := database.NewAccountAdapter(pgClient)
	doctorRepo := database.NewDoctorAdapter(pgClient)
	accountService := services.NewAccountService(accountRepo)
	directoryService := services.NewDirectoryService(doctorRepo)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				archived_bookings,
				audit_log,
				bookings,
				doctors,
				accounts
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed accounts
	type seedAccount struct {
		username string
		email    string
		password string
		role     entities.Role
	}

	accounts := []seedAccount{
		{username: "drhouse", email: "house@hospital.example", password: "lupus-is-never-it", role: entities.RoleDoctor},
		{username: "drgrey", email: "grey@hospital.example", password: "seattle-grace-1", role: entities.RoleDoctor},
		{username: "jdoe", email: "jdoe@patients.example", password: "patient-pass-1", role: entities.RolePatient},
		{username: "asmith", email: "asmith@patients.example", password: "patient-pass-2", role: entities.RolePatient},
	}

	for _, a := range accounts {
		if _, err := accountService.Register(ctx, a.username, a.email, a.password, a.role); err != nil {
			log.Printf("Failed to create account %s: %v", a.username, err)
		}
	}

	// 2. Seed doctor directory entries. Registration is gated on a Doctor
	// session, so build one directly instead of logging in.
	doctorSession := &entities.Session{
		Username: "drhouse",
		Email:    "house@hospital.example",
		Role:     entities.RoleDoctor,
	}

	type seedDoctor struct {
		name       string
		email      string
		department string
	}

	doctors := []seedDoctor{
		{name: "Gregory House", email: "house@hospital.example", department: "Diagnostics"},
		{name: "Meredith Grey", email: "grey@hospital.example", department: "Surgery"},
		{name: "Meredith Grey", email: "grey@hospital.example", department: "Cardiology"},
	}

	for _, d := range doctors {
		if _, err := directoryService.RegisterDoctor(ctx, doctorSession, d.name, d.email, d.department); err != nil {
			log.Printf("Failed to register doctor %s (%s): %v", d.name, d.department, err)
		}
	}

	log.Println("Seeding complete")
}
