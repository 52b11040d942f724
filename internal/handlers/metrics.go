package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ghpulse/ghpulse/internal/chart"
	"github.com/ghpulse/ghpulse/internal/metrics"
	"github.com/ghpulse/ghpulse/internal/models"
)

// RegisterMetricRoutes registers the analytics endpoints.
//
// GET /metrics/average-pr-time?repo_name=...
// GET /metrics/event-counts?offset_minutes=...
// GET /metrics/pr-counts
// GET /metrics/visualization?offset_minutes=... (default 60)
func RegisterMetricRoutes(r gin.IRoutes, eng *metrics.Engine) {
	r.GET("/metrics/average-pr-time", func(c *gin.Context) {
		repo := c.Query("repo_name")
		if repo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "repo_name is required"})
			return
		}

		avg, msg := eng.AveragePRInterval(repo)
		if avg == nil {
			// Not an error: a well-defined result with an explanation.
			c.JSON(http.StatusOK, models.AveragePRResponse{Message: msg})
			return
		}
		c.JSON(http.StatusOK, models.AveragePRResponse{AverageSeconds: avg})
	})

	r.GET("/metrics/event-counts", func(c *gin.Context) {
		offset, ok := offsetMinutes(c, 0)
		if !ok {
			return
		}

		counts, err := eng.EventCounts(offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, counts)
	})

	r.GET("/metrics/pr-counts", func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.PRCountsByRepo())
	})

	r.GET("/metrics/visualization", func(c *gin.Context) {
		offset, ok := offsetMinutes(c, 60)
		if !ok {
			return
		}

		counts, err := eng.VisualizationData(offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		png, err := chart.Render(counts, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "chart rendering failed"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	})
}

// offsetMinutes parses the offset_minutes query param. fallback is used
// when the param is absent; fallback 0 makes the param required. On
// invalid input it writes the 400 response and returns ok=false.
func offsetMinutes(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("offset_minutes")
	if raw == "" {
		if fallback > 0 {
			return fallback, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset_minutes is required"})
		return 0, false
	}

	offset, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": metrics.ErrInvalidOffset.Error()})
		return 0, false
	}
	return offset, true
}
