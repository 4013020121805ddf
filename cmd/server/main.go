package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/archilab/renderstudio/internal/config"
	"github.com/archilab/renderstudio/internal/database"
	"github.com/archilab/renderstudio/internal/gemini"
	"github.com/archilab/renderstudio/internal/imaging"
	"github.com/archilab/renderstudio/internal/quota"
	"github.com/archilab/renderstudio/internal/repository"
	"github.com/archilab/renderstudio/internal/server"
	"github.com/archilab/renderstudio/internal/service"
	"github.com/archilab/renderstudio/internal/session"
	"github.com/archilab/renderstudio/internal/storage"
	"github.com/archilab/renderstudio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	generationRepo := repository.NewGenerationRepository(db)

	gate := quota.NewGate(userRepo, logr)

	backend := gemini.New(gemini.Options{
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		Timeout:    cfg.RequestTimeout,
		Logger:     logr,
	})

	var uploader service.RenderUploader
	if cfg.S3Enabled() {
		up, err := storage.NewUploader(storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
			Prefix:        cfg.S3Prefix,
		})
		if err != nil {
			log.Fatalf("storage uploader: %v", err)
		}
		uploader = up
	}

	generationService := service.NewGenerationService(cfg, logr, userRepo, settingsRepo, gate, backend, generationRepo, uploader)

	sessions := session.NewManager()
	transformer := imaging.NewTransformer(logr)

	srv := server.New(cfg.ListenAddr, logr, sessions, generationService, transformer)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("server stopped", "err", err)
	}
}
