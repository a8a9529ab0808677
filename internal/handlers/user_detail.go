package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vidtrack/internal/database"
	"vidtrack/internal/logging"

	"github.com/gin-gonic/gin"
)

// ShowUser returns another user's full record. The router only reaches it
// through the identity and admin role guards.
func (h *Handler) ShowUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid user id")
		return
	}

	user, err := h.Users.WithVideos(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logging.Error(logging.FromContext(c.Request.Context()), "load user failed", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
