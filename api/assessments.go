package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"elec-mate/coshh"
	"elec-mate/services"
)

func setupAssessmentRoutes(router *gin.RouterGroup, assessments *services.AssessmentService, reviews *services.ReviewService, log *zap.Logger) {
	rg := router.Group("/coshh")

	// Newest first. ?limit= caps the list; 0 or absent returns everything.
	rg.GET("/assessments", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		list, err := assessments.List(c.Request.Context(), limit)
		if err != nil {
			log.Error("Database query for assessments failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/assessments/:id", func(c *gin.Context) {
		a, err := assessments.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
				return
			}
			log.Error("Database query for assessment failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, a)
	})

	rg.GET("/assessments/:id/document", func(c *gin.Context) {
		a, err := assessments.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
				return
			}
			log.Error("Database query for assessment failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(coshh.RenderDocument(a)))
	})

	rg.GET("/reviews", func(c *gin.Context) {
		report, err := reviews.Scan(c.Request.Context())
		if err != nil {
			log.Error("Review scan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, report)
	})
}
