package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghpulse/ghpulse/internal/handlers"
	"github.com/ghpulse/ghpulse/internal/metrics"
	"github.com/ghpulse/ghpulse/internal/observability"
	"github.com/ghpulse/ghpulse/internal/store"
)

// NewRouter wires the public endpoints.
//
// /health                  — liveness plus stored-event count
// /metrics/*               — analytics API (unauthenticated)
// /internal/metrics        — Prometheus exposition, kept off /metrics/*
func NewRouter(st *store.MemoryStore, eng *metrics.Engine, obs *observability.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	// Liveness: confirms the process is running; the event count gives
	// a quick read on whether ingestion is making progress.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "events": st.Count()})
	})

	r.GET("/internal/metrics", gin.WrapH(obs.Handler()))

	handlers.RegisterMetricRoutes(r, eng)

	return r
}
