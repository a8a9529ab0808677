package handlers

import (
	"errors"
	"net/http"

	"vidtrack/internal/auth"
	"vidtrack/internal/database"
	"vidtrack/internal/logging"
	"vidtrack/internal/metrics"
	"vidtrack/internal/middleware"
	"vidtrack/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth     *auth.Service
	Users    *database.UserStore
	Videos   *database.VideoStore
	Sessions session.Options
	Metrics  *metrics.Metrics
}

func (h *Handler) session(c *gin.Context) session.Store {
	return session.FromGin(c, h.Sessions)
}

func (h *Handler) observe(op, outcome string) {
	if h.Metrics != nil {
		h.Metrics.ObserveAuth(op, outcome)
	}
}

// fail maps a service error onto its HTTP response. Every flavour of
// authentication failure produces the same 401 body.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	_ = c.Error(err)

	switch {
	case auth.IsUnauthorized(err):
		h.observe(op, metrics.OutcomeUnauthorized)
		middleware.AbortUnauthorized(c)
	case errors.Is(err, auth.ErrInvalidEmail):
		h.observe(op, metrics.OutcomeRejected)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email provided is invalid"})
	case errors.Is(err, auth.ErrInvalidPassword):
		h.observe(op, metrics.OutcomeRejected)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "password must be 1 to 72 bytes"})
	case errors.Is(err, auth.ErrDuplicateEmail):
		h.observe(op, metrics.OutcomeRejected)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
	default:
		h.observe(op, metrics.OutcomeError)
		logging.Error(logging.FromContext(c.Request.Context()), op+" failed", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
