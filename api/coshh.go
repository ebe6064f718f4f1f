package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"elec-mate/coshh"
	"elec-mate/services"
)

var errInvalidInput = errors.New("invalid input")

func setupCoshhCatalogueRoutes(router *gin.RouterGroup) {
	rg := router.Group("/coshh")

	rg.GET("/catalogue", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"hazards":      coshh.Hazards,
			"routes":       coshh.Routes,
			"risk_ratings": coshh.RiskRatings,
			"steps":        stepNames(),
		})
	})

	rg.GET("/substances", func(c *gin.Context) {
		c.JSON(http.StatusOK, coshh.FilterSubstances(c.Query("q")))
	})
}

func stepNames() []string {
	out := make([]string, 0, int(coshh.LastStep)+1)
	for s := coshh.StepSubstance; s <= coshh.LastStep; s++ {
		out = append(out, s.String())
	}
	return out
}

// draftStatus maps wizard and registry errors onto HTTP statuses.
func draftStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, coshh.ErrUnknownSubstance):
		return http.StatusNotFound
	case errors.Is(err, coshh.ErrStepIncomplete),
		errors.Is(err, coshh.ErrFinalStep),
		errors.Is(err, coshh.ErrNotFinalStep),
		errors.Is(err, coshh.ErrWizardClosed):
		return http.StatusConflict
	case errors.Is(err, errInvalidInput),
		errors.Is(err, coshh.ErrUnknownHazard),
		errors.Is(err, coshh.ErrUnknownRoute),
		errors.Is(err, coshh.ErrUnknownRiskRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func setupDraftRoutes(router *gin.RouterGroup, drafts *services.DraftService, log *zap.Logger) {
	rg := router.Group("/coshh/drafts")

	// respond writes the snapshot, or the error alongside it when there is one.
	respond := func(c *gin.Context, view services.DraftView, err error) {
		if err == nil {
			c.JSON(http.StatusOK, view)
			return
		}
		status := draftStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("Draft operation failed", zap.String("draft_id", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": "internal error"})
			return
		}
		if status == http.StatusNotFound && errors.Is(err, services.ErrDraftNotFound) {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": err.Error(), "draft": view})
	}

	update := func(fn func(w *coshh.Wizard) error) gin.HandlerFunc {
		return func(c *gin.Context) {
			view, err := drafts.Update(c.Param("id"), fn)
			respond(c, view, err)
		}
	}

	rg.POST("", func(c *gin.Context) {
		c.JSON(http.StatusCreated, drafts.Open())
	})

	rg.GET("/:id", func(c *gin.Context) {
		view, err := drafts.Get(c.Param("id"))
		respond(c, view, err)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		if err := drafts.Discard(c.Param("id")); err != nil {
			c.JSON(draftStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	rg.PATCH("/:id", func(c *gin.Context) {
		var patch coshh.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		view, err := drafts.Update(c.Param("id"), func(w *coshh.Wizard) error {
			return w.Edit(func(d *coshh.Draft) error {
				if err := d.Apply(patch); err != nil {
					return fmt.Errorf("%w: %w", errInvalidInput, err)
				}
				return nil
			})
		})
		respond(c, view, err)
	})

	rg.POST("/:id/continue", update(func(w *coshh.Wizard) error { return w.Continue() }))
	rg.POST("/:id/back", update(func(w *coshh.Wizard) error { return w.Back() }))

	rg.POST("/:id/substance", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		update(func(w *coshh.Wizard) error { return w.LoadSubstance(req.Name) })(c)
	})

	rg.POST("/:id/hazards/:hazard", func(c *gin.Context) {
		update(func(w *coshh.Wizard) error {
			return w.Edit(func(d *coshh.Draft) error { return d.ToggleHazard(c.Param("hazard")) })
		})(c)
	})
	rg.POST("/:id/routes/:route", func(c *gin.Context) {
		update(func(w *coshh.Wizard) error {
			return w.Edit(func(d *coshh.Draft) error { return d.ToggleRoute(c.Param("route")) })
		})(c)
	})

	addEntry := func(add func(d *coshh.Draft, text string) bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			var req struct {
				Text string `json:"text"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			update(func(w *coshh.Wizard) error {
				return w.Edit(func(d *coshh.Draft) error {
					if !add(d, req.Text) {
						return fmt.Errorf("%w: text is blank", errInvalidInput)
					}
					return nil
				})
			})(c)
		}
	}
	// Removing an index that does not exist leaves the list unchanged.
	removeEntry := func(remove func(d *coshh.Draft, index int) bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			index, err := strconv.Atoi(c.Param("index"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
				return
			}
			update(func(w *coshh.Wizard) error {
				return w.Edit(func(d *coshh.Draft) error {
					remove(d, index)
					return nil
				})
			})(c)
		}
	}

	rg.POST("/:id/controls", addEntry((*coshh.Draft).AddControl))
	rg.DELETE("/:id/controls/:index", removeEntry((*coshh.Draft).RemoveControl))
	rg.POST("/:id/ppe", addEntry((*coshh.Draft).AddPPE))
	rg.DELETE("/:id/ppe/:index", removeEntry((*coshh.Draft).RemovePPE))

	rg.POST("/:id/save", func(c *gin.Context) {
		a, err := drafts.Save(c.Request.Context(), c.Param("id"))
		if err != nil {
			status := draftStatus(err)
			if status == http.StatusInternalServerError {
				log.Error("Saving assessment failed", zap.String("draft_id", c.Param("id")), zap.Error(err))
				c.JSON(status, gin.H{"error": "failed to save assessment"})
				return
			}
			view, _ := drafts.Get(c.Param("id"))
			respond(c, view, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	})
}
