package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elec-mate/config"
	"elec-mate/content"
	"elec-mate/models"
	"elec-mate/quiz"
	"elec-mate/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *services.MemoryStore
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	lib, err := content.LoadEmbedded()
	require.NoError(t, err)
	if cfg == nil {
		cfg = &config.Config{ReviewWindowDays: 30, DraftTTL: time.Hour}
	}
	log := zap.NewNop()
	store := services.NewMemoryStore()
	assessments := services.NewAssessmentService(store, nil, log)
	srv := &Server{
		Config:      cfg,
		Library:     lib,
		Store:       store,
		Assessments: assessments,
		Drafts:      services.NewDraftService(assessments, cfg.DraftTTL, log),
		Reviews:     services.NewReviewService(store, cfg.ReviewWindowDays, log),
		Logger:      log,
		NewRand:     func() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) },
	}
	return &testEnv{router: NewRouter(srv), store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestAPIKeyMiddleware(t *testing.T) {
	env := newTestEnv(t, &config.Config{APISecretKey: "s3cret", DraftTTL: time.Hour})

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/courses", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/courses", nil, "X-API-KEY", "wrong").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/courses", nil, "X-API-KEY", "s3cret").Code)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cats := decode[[]categoryResponse](t, w)
	require.NotEmpty(t, cats)
	byID := map[string]categoryResponse{}
	for _, c := range cats {
		byID[c.ID] = c
	}
	assert.Equal(t, "GraduationCap", byID["apprentice"].IconName)
	assert.Equal(t, 1, byID["upskilling"].Courses)
}

func TestSection_HidesAnswersAndLinksNeighbours(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/courses/coshh-awareness/sections/types-of-hazardous-substances", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_index")

	var body struct {
		ID       string                `json:"id"`
		SEO      content.SEO           `json:"seo"`
		Checks   []quiz.PublicQuestion `json:"inline_checks"`
		Previous *content.NavLink      `json:"previous"`
		Next     *content.NavLink      `json:"next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "types-of-hazardous-substances", body.ID)
	assert.NotEmpty(t, body.SEO.Title)
	assert.Len(t, body.Checks, 2)
	require.NotNil(t, body.Previous)
	assert.Equal(t, "what-is-coshh", body.Previous.SectionID)
	require.NotNil(t, body.Next)
	assert.Equal(t, "assessment-process", body.Next.SectionID)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/courses/coshh-awareness/sections/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/courses/nope", nil).Code)
}

func TestInlineCheck(t *testing.T) {
	env := newTestEnv(t, nil)
	path := "/courses/coshh-awareness/sections/what-is-coshh/checks/coshh-stands-for"

	w := env.do(t, http.MethodPost, path, gin.H{"selected": 1})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[quiz.Result](t, w)
	assert.True(t, res.Correct)
	assert.NotEmpty(t, res.Explanation)

	res = decode[quiz.Result](t, env.do(t, http.MethodPost, path, gin.H{"selected": 0}))
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.CorrectIndex)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, path, gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodPost, "/courses/coshh-awareness/sections/what-is-coshh/checks/nope", gin.H{"selected": 0}).Code)
}

func TestSectionQuiz_ScoresAndRecordsAttempt(t *testing.T) {
	env := newTestEnv(t, nil)
	answers := map[string]int{"q1": 0, "q2": 2, "q3": 2, "q4": 2, "q5": 0}

	w := env.do(t, http.MethodPost, "/courses/coshh-awareness/sections/what-is-coshh/quiz", gin.H{"answers": answers})
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[quiz.Summary](t, w)
	assert.Equal(t, 4, sum.Correct)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 80, sum.Percentage)
	assert.True(t, sum.Passed)

	attempts, err := env.store.ListAttempts(context.Background(), "coshh-awareness/what-is-coshh", 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "section-quiz", attempts[0].Kind)
	assert.True(t, attempts[0].Passed)

	w = env.do(t, http.MethodGet, "/attempts?reference=coshh-awareness/what-is-coshh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.QuizAttempt](t, w), 1)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/attempts?limit=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/attempts?limit=-1", nil).Code)
}

func TestExam_QuestionsAndSubmit(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/exams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exams := decode[[]quiz.ExamConfig](t, w)
	require.Len(t, exams, 1)
	assert.Equal(t, 80, exams[0].PassThreshold)

	w = env.do(t, http.MethodGet, "/exams/coshh-awareness/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_index")
	got := decode[examQuestionsResponse](t, w)
	require.Len(t, got.Questions, 6)
	perCategory := map[string]int{}
	for _, q := range got.Questions {
		perCategory[q.Category]++
	}
	for _, cat := range got.Exam.Categories {
		assert.Equal(t, 2, perCategory[cat], cat)
	}

	got = decode[examQuestionsResponse](t, env.do(t, http.MethodGet, "/exams/coshh-awareness/questions?n=3", nil))
	assert.Len(t, got.Questions, 3)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/exams/coshh-awareness/questions?n=x", nil).Code)

	w = env.do(t, http.MethodPost, "/exams/coshh-awareness/submit", gin.H{"answers": []quiz.Answer{
		{QuestionID: "1", Selected: 0},
		{QuestionID: "2", Selected: 1},
		{QuestionID: "5", Selected: 0},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[quiz.Summary](t, w)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 33, sum.Percentage)
	assert.False(t, sum.Passed)

	// One right answer on a six question exam is not a pass.
	w = env.do(t, http.MethodPost, "/exams/coshh-awareness/submit", gin.H{"answers": []quiz.Answer{{QuestionID: "1", Selected: 0}}})
	require.Equal(t, http.StatusOK, w.Code)
	sum = decode[quiz.Summary](t, w)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 16, sum.Percentage)
	assert.False(t, sum.Passed)

	w = env.do(t, http.MethodGet, "/attempts?reference=coshh-awareness", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, a := range decode[[]models.QuizAttempt](t, w) {
		assert.False(t, a.Passed)
		assert.Equal(t, 6, a.Total)
	}

	w = env.do(t, http.MethodPost, "/exams/coshh-awareness/submit", gin.H{"answers": []quiz.Answer{{QuestionID: "999", Selected: 0}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/exams/nope/questions", nil).Code)
}

func TestCoshhCatalogue(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/coshh/catalogue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cat struct {
		Hazards     []json.RawMessage `json:"hazards"`
		Routes      []json.RawMessage `json:"routes"`
		RiskRatings []json.RawMessage `json:"risk_ratings"`
		Steps       []string          `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.Len(t, cat.Hazards, 8)
	assert.Len(t, cat.Routes, 4)
	assert.Len(t, cat.RiskRatings, 4)
	assert.Equal(t, []string{"substance-details", "hazard-classification", "controls-ppe", "emergency-sign-off"}, cat.Steps)

	w = env.do(t, http.MethodGet, "/coshh/substances?q=FLUX", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "Flux (Soldering)", subs[0].Name)
}
