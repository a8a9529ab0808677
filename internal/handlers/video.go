package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vidtrack/internal/database"
	"vidtrack/internal/logging"
	"vidtrack/internal/middleware"
	"vidtrack/internal/models"

	"github.com/gin-gonic/gin"
)

type videoForm struct {
	Title   string `json:"title"`
	VideoID int    `json:"video_id"`
	Type    string `json:"type"`
}

// AddVideo records a liked or watched video for the logged-in user.
func (h *Handler) AddVideo(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.FromContext(ctx).With("handler", "add_video")

	id, _ := middleware.Value[middleware.Identity](c, middleware.IdentityKey)
	if !id.Present {
		middleware.AbortUnauthorized(c)
		return
	}

	var form videoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid body")
		return
	}
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		badRequest(c, "title is required")
		return
	}
	typ, err := models.ParseVideoType(form.Type)
	if err != nil {
		badRequest(c, "type must be liked or watched")
		return
	}

	user, err := h.Users.FindByEmail(ctx, id.Value)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// session outlived its user row
			middleware.AbortUnauthorized(c)
			return
		}
		logging.Error(l, "find user failed", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	video, err := h.Videos.Add(ctx, user.ID, form.Title, form.VideoID, typ)
	if err != nil {
		logging.Error(l, "add video failed", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	l.Info("video added", "user_id", user.ID, "type", typ)
	c.JSON(http.StatusCreated, video)
}
