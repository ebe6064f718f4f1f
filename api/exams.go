package api

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"elec-mate/content"
	"elec-mate/quiz"
	"elec-mate/services"
)

type examQuestionsResponse struct {
	Exam      quiz.ExamConfig       `json:"exam"`
	Questions []quiz.PublicQuestion `json:"questions"`
}

func setupExamRoutes(router *gin.RouterGroup, lib *content.Library, store services.Store, newRand func() *rand.Rand, log *zap.Logger) {
	rg := router.Group("/exams")

	rg.GET("", func(c *gin.Context) {
		out := make([]quiz.ExamConfig, 0, len(lib.Exams))
		for _, e := range lib.Exams {
			out = append(out, e.ExamConfig)
		}
		c.JSON(http.StatusOK, out)
	})

	// ?n= overrides the configured number of questions
	rg.GET("/:exam/questions", func(c *gin.Context) {
		exam, err := lib.Exam(c.Param("exam"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		n := exam.TotalQuestions
		if raw := c.Query("n"); raw != "" {
			n, err = strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
				return
			}
		}
		picked := quiz.SelectBalanced(exam.Questions, n, exam.Categories, newRand())
		c.JSON(http.StatusOK, examQuestionsResponse{
			Exam:      exam.ExamConfig,
			Questions: publicQuestions(picked),
		})
	})

	rg.POST("/:exam/submit", func(c *gin.Context) {
		var req struct {
			Answers []quiz.Answer `json:"answers" binding:"required,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		exam, err := lib.Exam(c.Param("exam"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		summary, err := quiz.ScoreExam(exam.ExamConfig, exam.Questions, req.Answers)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, quiz.ErrUnknownQuestion) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		recordAttempt(c, store, log, "mock-exam", exam.ID, summary)
		c.JSON(http.StatusOK, summary)
	})
}

func setupAttemptRoutes(router *gin.RouterGroup, store services.Store, log *zap.Logger) {
	router.GET("/attempts", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		attempts, err := store.ListAttempts(c.Request.Context(), c.Query("reference"), limit)
		if err != nil {
			log.Error("Listing quiz attempts failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, attempts)
	})
}
