package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/charityhub/charityhub/internal/auth"
	"github.com/charityhub/charityhub/internal/cache"
	"github.com/charityhub/charityhub/internal/config"
	"github.com/charityhub/charityhub/internal/http/handlers"
	"github.com/charityhub/charityhub/internal/http/middlewares"
	"github.com/charityhub/charityhub/internal/observability"
	"github.com/charityhub/charityhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires repositories, handlers and middleware. causeCache may be
// nil; cause listings then always hit the database.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, causeCache *cache.Cache) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics live per router instance so tests never collide on a global registry
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("charityhub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(prom.GinHandleMiddleware())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Charity Server!")
	})

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	causesRepo := postgres.NewCausesRepo(pool, prom)
	donationsRepo := postgres.NewDonationsRepo(pool, prom)

	// wire up handlers
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL())
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, usersRepo, jwtManager, log)
	causesHandler := handlers.NewCausesHandler(causesRepo, causeCache, prom, log)
	donationsHandler := handlers.NewDonationsHandler(donationsRepo, log)

	// signup historically answered on three paths; all stay routed
	r.POST("/signup", authHandler.SignUp)
	r.POST("/register", authHandler.SignUp)
	r.POST("/users", authHandler.SignUp)
	r.POST("/login", authHandler.Login)
	r.GET("/users", authHandler.ListUsers)

	r.GET("/causes", causesHandler.ListCauses)
	r.GET("/causes/:id", causesHandler.GetCauseByID)
	r.POST("/causes", causesHandler.CreateCause)
	r.PUT("/causes/:id", causesHandler.UpdateCause)
	r.DELETE("/causes/:id", causesHandler.DeleteCause)

	r.GET("/donations", donationsHandler.ListDonations)
	r.POST("/donations", donationsHandler.CreateDonation)

	return r
}
