package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"elec-mate/api"
	"elec-mate/config"
	"elec-mate/content"
	"elec-mate/services"
	"elec-mate/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Content
	var lib *content.Library
	if cfg.ContentDir != "" {
		lib, err = content.LoadDir(cfg.ContentDir)
	} else {
		lib, err = content.LoadEmbedded()
	}
	if err != nil {
		logging.Fatal("Failed to load course content", zap.String("dir", cfg.ContentDir), zap.Error(err))
	}
	logging.Info("Course content loaded",
		zap.Int("categories", len(lib.Categories)),
		zap.Int("courses", len(lib.Courses)),
		zap.Int("exams", len(lib.Exams)))

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	store := services.NewGormStore(db)
	logging.Info("Running database auto-migration...")
	if err := store.Migrate(); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Services
	var archiver *services.Archiver
	if cfg.ArchiveEnabled {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Settings{
			URL:    cfg.S3URL,
			Region: cfg.S3Region,
			Key:    cfg.S3Key,
			Secret: cfg.S3Secret,
			Bucket: cfg.S3Bucket,
		})
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		archiver = services.NewArchiver(s3Store, "coshh-assessments")
		logging.Info("Assessment archiving enabled", zap.String("bucket", cfg.S3Bucket))
	}
	assessments := services.NewAssessmentService(store, archiver, logging)
	drafts := services.NewDraftService(assessments, cfg.DraftTTL, logging)
	reviews := services.NewReviewService(store, cfg.ReviewWindowDays, logging)

	// Setup Router
	router := api.NewRouter(&api.Server{
		Config:      cfg,
		Library:     lib,
		Store:       store,
		Assessments: assessments,
		Drafts:      drafts,
		Reviews:     reviews,
		Logger:      logging,
	})

	// Setup Cron
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.CronSchedule, reviews.RunReviewJob); err != nil {
		logging.Fatal("Invalid CRON_SCHEDULE", zap.String("schedule", cfg.CronSchedule), zap.Error(err))
	}
	cronScheduler.AddFunc("@every 5m", func() { drafts.Sweep() })
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
