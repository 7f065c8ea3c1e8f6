// Command seed provisions the initial admin account and, in development,
// a handful of sample employees.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	authrepo "github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/config"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load("seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("seed", cfg.Server.Environment)

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("VECCHIA_SEED_ADMIN_PASSWORD must be set")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := authrepo.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	if _, err := userRepo.GetByUsername(ctx, cfg.Seed.AdminUsername); err == nil {
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin account already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := &authrepo.User{
		Username:     cfg.Seed.AdminUsername,
		PasswordHash: string(hash),
		Role:         actor.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin account")
	}
	log.Info().Str("username", admin.Username).Msg("admin account created")

	if cfg.Server.Environment != config.EnvDevelopment {
		return
	}

	// Development fixtures
	samples := []repository.Employee{
		{FirstName: "Giulia", LastName: "Bianchi", Color: "#ef4444"},
		{FirstName: "Marco", LastName: "Rossi", Color: "#3b82f6"},
		{FirstName: "Sara", LastName: "Conti", Color: "#22c55e"},
	}
	for i := range samples {
		if err := employeeRepo.Create(ctx, &samples[i]); err != nil {
			log.Error().Err(err).Str("name", samples[i].FullName()).Msg("failed to create sample employee")
			continue
		}
		log.Info().Str("name", samples[i].FullName()).Msg("sample employee created")
	}
}
