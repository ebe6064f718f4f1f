package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"elec-mate/content"
	"elec-mate/metrics"
	"elec-mate/models"
	"elec-mate/quiz"
	"elec-mate/services"
)

type categoryResponse struct {
	content.Category
	IconName string `json:"icon_name"`
	Courses  int    `json:"courses"`
}

func setupCategoryRoutes(router *gin.RouterGroup, lib *content.Library) {
	router.GET("/categories", func(c *gin.Context) {
		out := make([]categoryResponse, 0, len(lib.Categories))
		for _, cat := range lib.Categories {
			out = append(out, categoryResponse{
				Category: cat,
				IconName: cat.Icon.IconName(),
				Courses:  len(lib.CoursesIn(cat.ID)),
			})
		}
		c.JSON(http.StatusOK, out)
	})
}

// sectionResponse hides correct answers; grading happens server side.
type sectionResponse struct {
	content.Section

	CourseID string                `json:"course_id"`
	Checks   []quiz.PublicQuestion `json:"inline_checks"`
	Quiz     []quiz.PublicQuestion `json:"quiz"`
	Previous *content.NavLink      `json:"previous"`
	Next     *content.NavLink      `json:"next"`
}

func publicQuestions(qs []quiz.Question) []quiz.PublicQuestion {
	out := make([]quiz.PublicQuestion, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Public())
	}
	return out
}

func setupCourseRoutes(router *gin.RouterGroup, lib *content.Library, store services.Store, log *zap.Logger) {
	rg := router.Group("/courses")

	// ?category= narrows the list to one category
	rg.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, lib.CoursesIn(c.Query("category")))
	})

	rg.GET("/:course", func(c *gin.Context) {
		course, err := lib.Course(c.Param("course"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, course)
	})

	rg.GET("/:course/sections/:section", func(c *gin.Context) {
		courseID, sectionID := c.Param("course"), c.Param("section")
		section, err := lib.Section(courseID, sectionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		prev, next, err := lib.Navigation(courseID, sectionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sectionResponse{
			CourseID: courseID,
			Section:  section,
			Checks:   publicQuestions(section.Checks),
			Quiz:     publicQuestions(section.Quiz),
			Previous: prev,
			Next:     next,
		})
	})

	rg.POST("/:course/sections/:section/checks/:check", func(c *gin.Context) {
		var req struct {
			Selected *int `json:"selected" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "selected is required"})
			return
		}
		section, err := lib.Section(c.Param("course"), c.Param("section"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		q, err := section.Check(c.Param("check"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, quiz.Grade(q, *req.Selected))
	})

	rg.POST("/:course/sections/:section/quiz", func(c *gin.Context) {
		var req struct {
			Answers map[string]int `json:"answers"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		courseID, sectionID := c.Param("course"), c.Param("section")
		section, err := lib.Section(courseID, sectionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if len(section.Quiz) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "section has no quiz"})
			return
		}

		summary := quiz.Score(section.Quiz, req.Answers, section.PassThreshold)
		recordAttempt(c, store, log, "section-quiz", courseID+"/"+sectionID, summary)
		c.JSON(http.StatusOK, summary)
	})
}

func setupGuideRoutes(router *gin.RouterGroup, lib *content.Library) {
	rg := router.Group("/guides")
	rg.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, lib.Guides)
	})
	rg.GET("/:guide", func(c *gin.Context) {
		g, err := lib.Guide(c.Param("guide"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, g)
	})
}

// recordAttempt stores a graded submission. A storage failure is logged but
// does not withhold the result from the learner.
func recordAttempt(c *gin.Context, store services.Store, log *zap.Logger, kind, ref string, s quiz.Summary) {
	metrics.QuizSubmissions.WithLabelValues(kind, metrics.Result(s.Passed)).Inc()
	attempt := &models.QuizAttempt{
		Kind:       kind,
		Reference:  ref,
		Correct:    s.Correct,
		Total:      s.Total,
		Percentage: s.Percentage,
		Passed:     s.Passed,
	}
	if err := store.RecordAttempt(c.Request.Context(), attempt); err != nil {
		log.Error("Recording quiz attempt failed", zap.String("kind", kind), zap.String("reference", ref), zap.Error(err))
	}
}
