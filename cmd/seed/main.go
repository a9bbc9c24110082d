package main

import (
	"context"
	"flag"
	"os"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/database"
	"github.com/MaxKochergin/NNGP-sub002/internal/logger"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/MaxKochergin/NNGP-sub002/internal/seed"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "fixtures.yaml", "path to the YAML fixture")
	flag.Parse()

	logger.Init(os.Getenv("GIN_MODE"))

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Server.GinMode)
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open fixture")
	}
	defer f.Close()

	fixture, err := seed.Load(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to parse fixture")
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	specRepo := repository.NewSpecializationRepository(db)
	testRepo := repository.NewTestRepository(db)

	seeder := seed.NewSeeder(
		service.NewUserService(userRepo, roleRepo),
		userRepo,
		service.NewSpecializationService(specRepo),
		service.NewAdminTestService(testRepo, specRepo),
	)
	summary, err := seeder.Apply(context.Background(), fixture)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().
		Int("users", summary.Users).
		Int("specializations", summary.Specializations).
		Int("tests", summary.Tests).
		Msg("Seeding completed")
}
