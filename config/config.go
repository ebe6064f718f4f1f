package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting read from the environment.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Review scan
	CronSchedule     string `envconfig:"CRON_SCHEDULE" default:"0 6 * * *"`
	ReviewWindowDays int    `envconfig:"REVIEW_WINDOW_DAYS" default:"30"`

	// Drafts left untouched for longer than this are dropped by the sweeper.
	DraftTTL time.Duration `envconfig:"DRAFT_TTL" default:"2h"`

	// Optional directory with course YAML overriding the embedded library.
	ContentDir string `envconfig:"CONTENT_DIR"`

	ArchiveEnabled bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	S3Key          string `envconfig:"S3_KEY"`
	S3Secret       string `envconfig:"S3_SECRET"`
	S3URL          string `envconfig:"S3_URL"`
	S3Region       string `envconfig:"S3_REGION" default:"eu-west-2"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
}

// DSN returns the data source name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Validate checks settings that envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.ReviewWindowDays < 0 {
		return fmt.Errorf("REVIEW_WINDOW_DAYS must not be negative, got %d", c.ReviewWindowDays)
	}
	if c.ArchiveEnabled && (c.S3URL == "" || c.S3Bucket == "" || c.S3Key == "" || c.S3Secret == "") {
		return fmt.Errorf("ARCHIVE_ENABLED requires S3_URL, S3_BUCKET, S3_KEY and S3_SECRET")
	}
	return nil
}

// Load reads the configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
