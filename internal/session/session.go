// Package session wraps the encrypted cookie session that carries the
// authenticated identity between requests.
package session

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
)

const (
	CookieName = "vidtrack_session"
	DefaultTTL = 24 * time.Hour

	KeyUser   = "user"
	KeyRole   = "role"
	KeyAPIKey = "api-key"
)

// Store is the per-request view of a client's session. Mutations are not
// persisted until Save is called.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	Clear()
	// Renew extends the session lifetime without touching its values.
	Renew()
	Save() error
}

type Options struct {
	AuthKey []byte
	EncKey  []byte
	Secure  bool
	TTL     time.Duration
}

func (o Options) maxAge() int {
	ttl := o.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return int(ttl / time.Second)
}

func (o Options) cookieOptions() sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   o.maxAge(),
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// Middleware installs the cookie-backed session on every request. Cookie
// values are signed with AuthKey and encrypted with EncKey.
func Middleware(o Options) gin.HandlerFunc {
	return sessions.Sessions(CookieName, newCookieStore(o))
}

// cookieStore is the gin-contrib cookie store with the codec timestamp
// window tied to the session TTL. Cookies signed longer ago than the TTL
// decode as an empty session, whatever the browser kept.
type cookieStore struct {
	*gsessions.CookieStore
}

func newCookieStore(o Options) *cookieStore {
	gs := gsessions.NewCookieStore(o.AuthKey, o.EncKey)
	gs.MaxAge(o.maxAge())
	s := &cookieStore{CookieStore: gs}
	s.Options(o.cookieOptions())
	return s
}

func (s *cookieStore) Options(opts sessions.Options) {
	s.CookieStore.Options = opts.ToGorillaOptions()
}

// FromGin returns the session for the current request. Middleware must run
// first.
func FromGin(c *gin.Context, o Options) Store {
	return &ginStore{sess: sessions.Default(c), opts: o.cookieOptions()}
}

type ginStore struct {
	sess sessions.Session
	opts sessions.Options
}

func (s *ginStore) Get(key string) (string, bool) {
	v, ok := s.sess.Get(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *ginStore) Set(key, value string) { s.sess.Set(key, value) }

func (s *ginStore) Delete(key string) { s.sess.Delete(key) }

func (s *ginStore) Clear() { s.sess.Clear() }

// Renew marks the session dirty so Save re-issues the cookie with a fresh
// MaxAge and a new securecookie timestamp.
func (s *ginStore) Renew() { s.sess.Options(s.opts) }

func (s *ginStore) Save() error { return s.sess.Save() }
