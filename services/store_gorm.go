package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"elec-mate/models"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates or updates the tables this store writes to.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&models.Assessment{}, &models.QuizAttempt{})
}

func (s *GormStore) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *GormStore) GetAssessment(ctx context.Context, id string) (models.Assessment, error) {
	var a models.Assessment
	err := s.DB.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, ErrNotFound
	}
	return a, err
}

func (s *GormStore) ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error) {
	var out []models.Assessment
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (s *GormStore) DueForReview(ctx context.Context, before time.Time) ([]models.Assessment, error) {
	var out []models.Assessment
	err := s.DB.WithContext(ctx).
		Where("review_date <= ?", before).
		Order("review_date ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) RecordAttempt(ctx context.Context, a *models.QuizAttempt) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *GormStore) ListAttempts(ctx context.Context, reference string, limit int) ([]models.QuizAttempt, error) {
	var out []models.QuizAttempt
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if reference != "" {
		q = q.Where("reference = ?", reference)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
