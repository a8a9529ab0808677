package handlers

import (
	"net/http"

	"vidtrack/internal/auth"
	"vidtrack/internal/metrics"
	"vidtrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SignUp(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		h.observe("signup", metrics.OutcomeRejected)
		badRequest(c, "invalid body")
		return
	}

	user, err := h.Auth.SignUp(c.Request.Context(), h.session(c), creds)
	if err != nil {
		h.fail(c, "signup", err)
		return
	}

	h.observe("signup", metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		h.observe("login", metrics.OutcomeRejected)
		badRequest(c, "invalid body")
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), h.session(c), creds)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	h.observe("login", metrics.OutcomeSuccess)
	msg := "logged in"
	if res.Resumed {
		msg = "already logged in"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "user": res.User})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), h.session(c)); err != nil {
		h.fail(c, "logout", err)
		return
	}
	h.observe("logout", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) Secret(c *gin.Context) {
	user, err := h.Auth.Secret(c.Request.Context(), h.session(c))
	if err != nil {
		h.fail(c, "secret", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) IssueAPIKey(c *gin.Context) {
	key, err := h.Auth.IssueAPIKey(c.Request.Context(), h.session(c))
	if err != nil {
		h.fail(c, "apikey", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"api_key": key})
}

// Index tells the client whether its session is authenticated.
func (h *Handler) Index(c *gin.Context) {
	id, _ := middleware.Value[middleware.Identity](c, middleware.IdentityKey)
	c.JSON(http.StatusOK, gin.H{"authenticated": id.Present})
}
