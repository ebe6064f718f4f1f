package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elec-mate/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateAssessment(ctx, &models.Assessment{ID: id, Hazards: []string{}}))
	}

	all, err := s.ListAssessments(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	two, err := s.ListAssessments(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, "c", two[0].ID)
}

func TestMemoryStore_GetAndDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateAssessment(ctx, &models.Assessment{ID: "a", Hazards: []string{"toxic"}}))
	assert.Error(t, s.CreateAssessment(ctx, &models.Assessment{ID: "a"}))

	got, err := s.GetAssessment(ctx, "a")
	require.NoError(t, err)
	got.Hazards[0] = "changed"

	again, err := s.GetAssessment(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"toxic"}, again.Hazards, "stored records are not aliased")

	_, err = s.GetAssessment(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DueForReview(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateAssessment(ctx, &models.Assessment{ID: "late", ReviewDate: day(2026, time.November, 10)}))
	require.NoError(t, s.CreateAssessment(ctx, &models.Assessment{ID: "early", ReviewDate: day(2026, time.October, 1)}))
	require.NoError(t, s.CreateAssessment(ctx, &models.Assessment{ID: "far", ReviewDate: day(2027, time.June, 1)}))

	due, err := s.DueForReview(ctx, day(2026, time.November, 10))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "early", due[0].ID)
	assert.Equal(t, "late", due[1].ID)
}

func TestMemoryStore_Attempts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.RecordAttempt(ctx, &models.QuizAttempt{Kind: "mock-exam", Reference: "coshh-awareness", Total: 6}))
	require.NoError(t, s.RecordAttempt(ctx, &models.QuizAttempt{Kind: "section-quiz", Reference: "level2-module1/hasawa", Total: 3}))
	second := &models.QuizAttempt{Kind: "mock-exam", Reference: "coshh-awareness", Total: 6, Passed: true}
	require.NoError(t, s.RecordAttempt(ctx, second))
	assert.Equal(t, uint(3), second.ID)

	exams, err := s.ListAttempts(ctx, "coshh-awareness", 0)
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.True(t, exams[0].Passed)

	latest, err := s.ListAttempts(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, uint(3), latest[0].ID)
}
