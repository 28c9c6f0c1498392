package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"radio-charts/internal/config"

	"radio-charts/internal/api/handlers"
	"radio-charts/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	catalog handlers.Cataloger
	charts  handlers.Charter
	router  *gin.Engine
}

func New(cfg *config.Config, catalog handlers.Cataloger, charts handlers.Charter) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Both spellings of each route are registered explicitly.
	router.RedirectTrailingSlash = false

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		charts:  charts,
		router:  router,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}

	s.router.Use(
		middleware.RequestID(),
		middleware.SilentLogger(),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(corsConfig),
	)
}

func (s *Server) setupRoutes() {
	catalogHandler := handlers.NewCatalogHandler(s.catalog, s.cfg.Server.QueryTimeout)
	chartsHandler := handlers.NewChartsHandler(s.charts, handlers.ChartsOptions{
		DefaultLimit: s.cfg.Charts.DefaultLimit,
		MaxLimit:     s.cfg.Charts.MaxLimit,
		Timeout:      s.cfg.Server.QueryTimeout,
	})

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "radio-charts"})
	})

	s.handle(http.MethodPost, "/add_channel", catalogHandler.AddChannel)
	s.handle(http.MethodPost, "/add_performer", catalogHandler.AddPerformer)
	s.handle(http.MethodPost, "/add_song", catalogHandler.AddSong)
	s.handle(http.MethodPost, "/add_play", catalogHandler.AddPlay)

	s.handle(http.MethodGet, "/get_song_plays", chartsHandler.GetSongPlays)
	s.handle(http.MethodGet, "/get_channel_plays", chartsHandler.GetChannelPlays)
	s.handle(http.MethodGet, "/get_top", chartsHandler.GetTop)

	s.router.NoRoute(handlers.NotFound)
}

// handle registers path with and without a trailing slash.
func (s *Server) handle(method, path string, h gin.HandlerFunc) {
	s.router.Handle(method, path, h)
	s.router.Handle(method, path+"/", h)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
