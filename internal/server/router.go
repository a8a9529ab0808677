package server

import (
	"log/slog"
	"net/http"

	"vidtrack/internal/apikey"
	"vidtrack/internal/auth"
	"vidtrack/internal/config"
	"vidtrack/internal/database"
	"vidtrack/internal/handlers"
	"vidtrack/internal/logging"
	"vidtrack/internal/metrics"
	"vidtrack/internal/middleware"
	"vidtrack/internal/models"
	"vidtrack/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*gin.Engine, error) {
	m := metrics.New()
	sessOpts := session.Options{
		AuthKey: cfg.SessionAuthKey,
		EncKey:  cfg.SessionEncKey,
		Secure:  cfg.CookieSecure,
	}

	users := database.NewUserStore(db)
	svc, err := auth.NewService(
		users,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.AdminSecrets{Email: cfg.AdminKey, Password: cfg.AdminSecondKey},
		apikey.NewStore(),
	)
	if err != nil {
		return nil, err
	}

	h := &handlers.Handler{
		Auth:     svc,
		Users:    users,
		Videos:   database.NewVideoStore(db),
		Sessions: sessOpts,
		Metrics:  m,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(log))
	r.Use(session.Middleware(sessOpts))
	r.Use(middleware.Guard[middleware.Identity](middleware.IdentityKey, middleware.IdentityGuard{Sessions: sessOpts}, m))

	r.GET("/", h.Index)

	// AUTH
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	authed := r.Group("/")
	authed.Use(middleware.RequireIdentity(m))

	authed.GET("/secret", h.Secret)
	authed.POST("/apikey", h.IssueAPIKey)
	authed.POST("/videos", h.AddVideo)

	// admin only
	authed.GET("/users/:id",
		middleware.Guard[models.Role](middleware.RoleKey, middleware.RoleGuard{Sessions: sessOpts}, m),
		middleware.RequireRole(models.RoleAdmin, m),
		h.ShowUser,
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r, nil
}
