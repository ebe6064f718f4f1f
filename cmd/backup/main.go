package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"elec-mate/models"
	"elec-mate/services"
	"elec-mate/storage"
)

type BackupConfig struct {
	PostgresHost     string `envconfig:"POSTGRES_HOST" required:"true"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" required:"true"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	PostgresDB       string `envconfig:"POSTGRES_DB" required:"true"`
	BackupBucket     string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint   string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey  string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey  string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion     string `envconfig:"BACKUP_S3_REGION" required:"true"`
	BackupPrefix     string `envconfig:"BACKUP_PREFIX" default:"backups/"`
	KeepBackups      int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

func (c BackupConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)
}

// Snapshot is the exported content of the database.
type Snapshot struct {
	ExportedAt  time.Time            `json:"exported_at"`
	Assessments []models.Assessment  `json:"assessments"`
	Attempts    []models.QuizAttempt `json:"quiz_attempts"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	logging.Info("Starting backup")

	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// 1. Export
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	snap, err := export(ctx, services.NewGormStore(db), time.Now().UTC())
	if err != nil {
		logging.Fatal("Export failed", zap.Error(err))
	}

	var buf bytes.Buffer
	if err := writeSnapshot(&buf, snap); err != nil {
		logging.Fatal("Compressing export failed", zap.Error(err))
	}

	// 2. Upload
	store, err := storage.NewS3Store(ctx, storage.S3Settings{
		URL:    cfg.BackupEndpoint,
		Region: cfg.BackupRegion,
		Key:    cfg.BackupAccessKey,
		Secret: cfg.BackupSecretKey,
		Bucket: cfg.BackupBucket,
	})
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	key := backupKey(cfg.BackupPrefix, snap.ExportedAt)
	if _, err := store.Upload(ctx, key, "application/gzip", buf.Bytes()); err != nil {
		logging.Fatal("Upload failed", zap.Error(err))
	}
	logging.Info("Backup uploaded",
		zap.String("key", key),
		zap.Int("assessments", len(snap.Assessments)),
		zap.Int("quiz_attempts", len(snap.Attempts)),
		zap.Int("bytes", buf.Len()))

	// 3. Rotate
	objs, err := store.List(ctx, cfg.BackupPrefix)
	if err != nil {
		logging.Fatal("Listing backups failed", zap.Error(err))
	}
	for _, obj := range storage.Expired(objs, cfg.KeepBackups) {
		logging.Info("Deleting old backup", zap.String("key", obj.Key))
		if err := store.Delete(ctx, obj.Key); err != nil {
			logging.Error("Deleting old backup failed", zap.String("key", obj.Key), zap.Error(err))
		}
	}
	logging.Info("Backup finished")
}

func export(ctx context.Context, store services.Store, now time.Time) (Snapshot, error) {
	assessments, err := store.ListAssessments(ctx, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list assessments: %w", err)
	}
	attempts, err := store.ListAttempts(ctx, "", 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list quiz attempts: %w", err)
	}
	return Snapshot{ExportedAt: now, Assessments: assessments, Attempts: attempts}, nil
}

func writeSnapshot(w io.Writer, snap Snapshot) error {
	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return gz.Close()
}

func backupKey(prefix string, at time.Time) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%sbackup-%s.json.gz", prefix, at.UTC().Format("2006-01-02T15-04-05Z"))
}
