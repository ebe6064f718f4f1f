package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"elec-mate/coshh"
	"elec-mate/metrics"
	"elec-mate/models"
)

var ErrDraftNotFound = errors.New("draft not found or expired")

// DraftView is the client-facing snapshot of one wizard session.
type DraftView struct {
	ID         string      `json:"id"`
	Step       int         `json:"step"`
	StepName   string      `json:"step_name"`
	TotalSteps int         `json:"total_steps"`
	CanAdvance bool        `json:"can_advance"`
	IsLastStep bool        `json:"is_last_step"`
	Draft      coshh.Draft `json:"draft"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

type draftEntry struct {
	mu      sync.Mutex
	wizard  *coshh.Wizard
	touched time.Time
}

// DraftService holds in-progress wizards keyed by a random id. Drafts that
// have not been touched for TTL are dropped by Sweep.
type DraftService struct {
	Assessments *AssessmentService
	TTL         time.Duration
	Logger      *zap.Logger

	mu     sync.Mutex
	drafts map[string]*draftEntry
	now    func() time.Time
	newID  func() string
}

func NewDraftService(assessments *AssessmentService, ttl time.Duration, logger *zap.Logger) *DraftService {
	return &DraftService{
		Assessments: assessments,
		TTL:         ttl,
		Logger:      logger,
		drafts:      make(map[string]*draftEntry),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Open starts a fresh wizard and returns its first snapshot.
func (s *DraftService) Open() DraftView {
	id := s.newID()
	e := &draftEntry{wizard: coshh.NewWizard(s.now, s.newID), touched: s.now()}

	s.mu.Lock()
	s.drafts[id] = e
	metrics.DraftsOpen.Set(float64(len(s.drafts)))
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return s.view(id, e)
}

func (s *DraftService) Get(id string) (DraftView, error) {
	return s.Update(id, nil)
}

// Update runs fn against the wizard of draft id and returns the new snapshot.
// A nil fn only refreshes the draft's idle timer.
func (s *DraftService) Update(id string, fn func(w *coshh.Wizard) error) (DraftView, error) {
	e, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.wizard.IsOpen() {
		return DraftView{}, ErrDraftNotFound
	}
	e.touched = s.now()
	if fn != nil {
		if err := fn(e.wizard); err != nil {
			return s.view(id, e), err
		}
	}
	return s.view(id, e), nil
}

// Save commits draft id. On success the draft is closed and forgotten; when
// the commit fails the draft stays as it was so the user can retry.
func (s *DraftService) Save(ctx context.Context, id string) (models.Assessment, error) {
	e, err := s.lookup(id)
	if err != nil {
		return models.Assessment{}, err
	}
	e.mu.Lock()
	if !e.wizard.IsOpen() {
		e.mu.Unlock()
		return models.Assessment{}, ErrDraftNotFound
	}
	e.touched = s.now()
	a, err := e.wizard.SaveWith(func(a *models.Assessment) error {
		return s.Assessments.Commit(ctx, a)
	})
	e.mu.Unlock()
	if err != nil {
		return models.Assessment{}, err
	}
	s.remove(id)
	return a, nil
}

// Discard closes draft id without saving.
func (s *DraftService) Discard(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.wizard.Close()
	e.mu.Unlock()
	s.remove(id)
	return nil
}

// Sweep drops drafts idle for longer than TTL and returns how many went.
// Drafts busy in another request are left for the next sweep.
func (s *DraftService) Sweep() int {
	cutoff := s.now().Add(-s.TTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.drafts {
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			e.wizard.Close()
			delete(s.drafts, id)
			removed++
		}
		e.mu.Unlock()
	}
	metrics.DraftsOpen.Set(float64(len(s.drafts)))
	if removed > 0 {
		s.Logger.Info("Expired idle drafts", zap.Int("removed", removed), zap.Int("remaining", len(s.drafts)))
	}
	return removed
}

// Len returns the number of drafts held.
func (s *DraftService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *DraftService) lookup(id string) (*draftEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return e, nil
}

func (s *DraftService) remove(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	metrics.DraftsOpen.Set(float64(len(s.drafts)))
	s.mu.Unlock()
}

// view must be called with e.mu held.
func (s *DraftService) view(id string, e *draftEntry) DraftView {
	step := e.wizard.Step()
	return DraftView{
		ID:         id,
		Step:       int(step),
		StepName:   step.String(),
		TotalSteps: int(coshh.LastStep) + 1,
		CanAdvance: e.wizard.CanAdvance(),
		IsLastStep: step == coshh.LastStep,
		Draft:      e.wizard.Draft(),
		ExpiresAt:  e.touched.Add(s.TTL),
	}
}
