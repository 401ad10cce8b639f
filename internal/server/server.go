// Package server exposes the punch clock over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/observability/logger"
	reportservice "github.com/HenryKun55/ponto/internal/report/service"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(Start),
)

type ServerParam struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	DB        *gorm.DB
	ClockSvc  entrydomain.Service
	ReportSvc reportservice.Service
}

// Server holds the handler dependencies.
type Server struct {
	cfg       config.Config
	log       *zap.Logger
	db        *gorm.DB
	clockSvc  entrydomain.Service
	reportSvc reportservice.Service
	punchRate *rateLimiter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:       p.Cfg,
		log:       p.Log.Named("server"),
		db:        p.DB,
		clockSvc:  p.ClockSvc,
		reportSvc: p.ReportSvc,
		punchRate: newRateLimiter(10, time.Minute),
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Logger:    s.log,
		SkipPaths: []string{"/healthz"},
	}))

	r.GET("/healthz", s.Healthz)

	v1 := r.Group("/v1")
	{
		punches := v1.Group("/punches")
		punches.POST("/clock-in", s.ClockIn)
		punches.POST("/clock-out", s.ClockOut)

		entries := v1.Group("/entries")
		entries.GET("/today", s.TodayEntry)
		entries.GET("", s.ListEntries)

		v1.GET("/reports/summary", s.ReportSummary)
	}

	return r
}

// Healthz pings the database so load balancers stop routing to a pod
// that lost its storage.
func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start binds the HTTP listener to the fx lifecycle.
func Start(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTP.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
