package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"vidtrack/internal/metrics"
	"vidtrack/internal/models"
	"vidtrack/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessOpts = session.Options{
	AuthKey: []byte("0123456789abcdef0123456789abcdef"),
	EncKey:  []byte("abcdef0123456789abcdef0123456789"),
}

func newRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(session.Middleware(sessOpts))
	r.Use(Guard[Identity](IdentityKey, IdentityGuard{Sessions: sessOpts}, m))

	// seeds arbitrary session values for the tests below
	r.POST("/seed", func(c *gin.Context) {
		s := session.FromGin(c, sessOpts)
		for k, v := range c.Request.URL.Query() {
			s.Set(k, v[0])
		}
		_ = s.Save()
		c.Status(http.StatusOK)
	})

	r.GET("/optional", func(c *gin.Context) {
		id, ok := Value[Identity](c, IdentityKey)
		c.JSON(http.StatusOK, gin.H{"guarded": ok, "present": id.Present, "value": id.Value})
	})
	r.GET("/identity", RequireIdentity(m), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin",
		Guard[models.Role](RoleKey, RoleGuard{Sessions: sessOpts}, m),
		RequireRole(models.RoleAdmin, m),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func seed(t *testing.T, r http.Handler, values map[string]string) []*http.Cookie {
	t.Helper()
	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/seed?"+q.Encode(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Result().Cookies()
}

func get(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdentityGuard_AbsenceIsNotAnError(t *testing.T) {
	r := newRouter(nil)

	rec := get(r, "/optional", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"guarded":true,"present":false,"value":""}`, rec.Body.String())

	cookies := seed(t, r, map[string]string{session.KeyUser: "a@x.com"})
	rec = get(r, "/optional", cookies)
	assert.JSONEq(t, `{"guarded":true,"present":true,"value":"a@x.com"}`, rec.Body.String())
}

func TestRequireIdentity(t *testing.T) {
	r := newRouter(nil)

	rec := get(r, "/identity", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	cookies := seed(t, r, map[string]string{session.KeyUser: "a@x.com"})
	assert.Equal(t, http.StatusOK, get(r, "/identity", cookies).Code)
}

func TestAdminRoute(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   int
	}{
		{name: "anonymous", values: nil, want: http.StatusUnauthorized},
		{name: "no role", values: map[string]string{session.KeyUser: "a@x.com"}, want: http.StatusUnauthorized},
		{name: "unparsable role", values: map[string]string{session.KeyUser: "a@x.com", session.KeyRole: "root"}, want: http.StatusUnauthorized},
		{name: "upper-case admin", values: map[string]string{session.KeyUser: "a@x.com", session.KeyRole: "ADMIN"}, want: http.StatusUnauthorized},
		{name: "user role", values: map[string]string{session.KeyUser: "a@x.com", session.KeyRole: "user"}, want: http.StatusUnauthorized},
		{name: "admin role without identity", values: map[string]string{session.KeyRole: "admin"}, want: http.StatusUnauthorized},
		{name: "admin", values: map[string]string{session.KeyUser: "boss@x.com", session.KeyRole: "admin"}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(nil)
			var cookies []*http.Cookie
			if tt.values != nil {
				cookies = seed(t, r, tt.values)
			}
			rec := get(r, "/admin", cookies)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestGuard_CountsDenials(t *testing.T) {
	m := metrics.New()
	r := newRouter(m)

	get(r, "/admin", nil)
	cookies := seed(t, r, map[string]string{session.KeyUser: "a@x.com", session.KeyRole: "user"})
	get(r, "/admin", cookies)

	// the anonymous request fails in RoleGuard, the user one in RequireRole
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GuardDenied.WithLabelValues(RoleKey)))
}

func TestValue_WrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(RoleKey, "admin")

	_, ok := Value[models.Role](c, RoleKey)
	assert.False(t, ok)
	_, ok = Value[Identity](c, IdentityKey)
	assert.False(t, ok)
}
