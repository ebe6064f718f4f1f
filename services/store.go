package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"elec-mate/models"
)

var ErrNotFound = errors.New("record not found")

// Store persists committed assessments and quiz attempts. Assessments are
// append-only: there is no update or delete.
type Store interface {
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	GetAssessment(ctx context.Context, id string) (models.Assessment, error)
	// ListAssessments returns the newest first. limit <= 0 means no limit.
	ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error)
	// DueForReview returns assessments whose review date is on or before the
	// given day, soonest first.
	DueForReview(ctx context.Context, before time.Time) ([]models.Assessment, error)

	RecordAttempt(ctx context.Context, a *models.QuizAttempt) error
	// ListAttempts filters by reference when it is non-empty, newest first.
	ListAttempts(ctx context.Context, reference string, limit int) ([]models.QuizAttempt, error)
}

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments []models.Assessment // newest first
	attempts    []models.QuizAttempt
	nextAttempt uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) CreateAssessment(_ context.Context, a *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.assessments {
		if existing.ID == a.ID {
			return errors.New("duplicate assessment id " + a.ID)
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.assessments = append([]models.Assessment{cloneAssessment(*a)}, m.assessments...)
	return nil
}

func (m *MemoryStore) GetAssessment(_ context.Context, id string) (models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assessments {
		if a.ID == id {
			return cloneAssessment(a), nil
		}
	}
	return models.Assessment{}, ErrNotFound
}

func (m *MemoryStore) ListAssessments(_ context.Context, limit int) ([]models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.assessments)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Assessment, 0, n)
	for _, a := range m.assessments[:n] {
		out = append(out, cloneAssessment(a))
	}
	return out, nil
}

func (m *MemoryStore) DueForReview(_ context.Context, before time.Time) ([]models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Assessment
	for _, a := range m.assessments {
		if !a.ReviewDate.After(before) {
			out = append(out, cloneAssessment(a))
		}
	}
	sortByReviewDate(out)
	return out, nil
}

func (m *MemoryStore) RecordAttempt(_ context.Context, a *models.QuizAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAttempt++
	a.ID = m.nextAttempt
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.attempts = append([]models.QuizAttempt{*a}, m.attempts...)
	return nil
}

func (m *MemoryStore) ListAttempts(_ context.Context, reference string, limit int) ([]models.QuizAttempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.QuizAttempt{}
	for _, a := range m.attempts {
		if reference != "" && a.Reference != reference {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func cloneAssessment(a models.Assessment) models.Assessment {
	a.Hazards = slices.Clone(a.Hazards)
	a.ExposureRoutes = slices.Clone(a.ExposureRoutes)
	a.ControlMeasures = slices.Clone(a.ControlMeasures)
	a.PPE = slices.Clone(a.PPE)
	return a
}

func sortByReviewDate(as []models.Assessment) {
	sort.SliceStable(as, func(i, j int) bool {
		return as[i].ReviewDate.Before(as[j].ReviewDate)
	})
}
