package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	http   *http.Server
}

func New(h *handlers.Handlers, recorder *metrics.Recorder, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: cfg,
		router: router,
	}

	s.setupRoutes(h, recorder)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes(h *handlers.Handlers, recorder *metrics.Recorder) {
	s.router.GET("/health", h.Health)
	s.router.GET("/ready", h.Ready)
	s.router.GET("/live", h.Live)
	s.router.GET("/version", h.Version)
	s.router.GET("/metrics", gin.WrapH(recorder.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/menu", h.GetMenu)
		v1.POST("/orders", h.PlaceOrder)
		v1.GET("/orders", h.ListOrders)
		v1.GET("/orders/:id", h.GetOrder)
		v1.GET("/orders/:id/receipt", h.GetOrderReceipt)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
