package middleware

import (
	"errors"
	"net/http"

	"vidtrack/internal/auth"
	"vidtrack/internal/metrics"
	"vidtrack/internal/models"
	"vidtrack/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
)

// Context keys under which guards publish their results.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// Extractor pulls a typed value out of an incoming request. Optional
// extractors never fail; required ones fail closed.
type Extractor[T any] interface {
	Extract(c *gin.Context) (T, error)
}

// Identity is the authenticated user as seen by IdentityGuard. Absence is a
// normal value.
type Identity struct {
	Present bool
	Value   string
}

type IdentityGuard struct {
	Sessions session.Options
}

func (g IdentityGuard) Extract(c *gin.Context) (Identity, error) {
	v, ok := session.FromGin(c, g.Sessions).Get(session.KeyUser)
	return Identity{Present: ok, Value: v}, nil
}

type RoleGuard struct {
	Sessions session.Options
}

func (g RoleGuard) Extract(c *gin.Context) (models.Role, error) {
	raw, ok := session.FromGin(c, g.Sessions).Get(session.KeyRole)
	if !ok {
		return "", oops.Code("AUTH_MALFORMED_ROLE").Wrapf(auth.ErrMalformedRole, "role missing")
	}
	role, err := models.ParseRole(raw)
	if err != nil {
		return "", oops.Code("AUTH_MALFORMED_ROLE").With("role", raw).Wrap(errors.Join(auth.ErrMalformedRole, err))
	}
	return role, nil
}

// Guard runs ex once per request and stores the result under key. An
// extraction error aborts the request as unauthorized.
func Guard[T any](key string, ex Extractor[T], m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := ex.Extract(c)
		if err != nil {
			if m != nil {
				m.ObserveDenied(key)
			}
			_ = c.Error(err)
			AbortUnauthorized(c)
			return
		}
		c.Set(key, v)
		c.Next()
	}
}

// Value returns what a guard stored under key.
func Value[T any](c *gin.Context, key string) (T, bool) {
	var zero T
	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// RequireIdentity rejects anonymous requests. IdentityGuard must run first.
func RequireIdentity(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := Value[Identity](c, IdentityKey)
		if !id.Present {
			if m != nil {
				m.ObserveDenied(IdentityKey)
			}
			AbortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireRole admits only authenticated callers whose guarded role is want.
func RequireRole(want models.Role, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := Value[Identity](c, IdentityKey)
		role, _ := Value[models.Role](c, RoleKey)
		if err := auth.Authorize(id.Present, role, want); err != nil {
			if m != nil {
				m.ObserveDenied(RoleKey)
			}
			_ = c.Error(err)
			AbortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// AbortUnauthorized writes the one response used for every authentication
// and authorization failure.
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
