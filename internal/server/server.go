// Package server exposes the storefront usecases and the cart over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vtex-storefront/internal/app/usecases"
	"vtex-storefront/internal/cart"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	Products    usecases.ProductDetailsService
	Listing     usecases.ProductListingService
	Suggestions usecases.SuggestionsService
	Carts       *cart.Manager
}

type Server struct {
	config   config.ServerConfig
	services Services
	logger   logging.LoggerService
	engine   *gin.Engine
}

func New(cfg config.ServerConfig, services Services, logger logging.LoggerService) *Server {
	s := &Server{
		config:   cfg,
		services: services,
		logger:   logger,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), cors.New(s.corsConfig()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/products/:slug", s.productDetails)
	api.GET("/search", s.search)
	api.GET("/suggestions", s.suggestions)

	carts := api.Group("/cart")
	carts.GET("", s.getCart)
	carts.POST("/items", s.addItems)
	carts.POST("/items/update", s.updateItems)
	carts.DELETE("/items", s.removeAllItems)
	carts.POST("/coupons", s.addCoupon)
	carts.POST("/items/:index/attachments/:name", s.updateItemAttachment)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, requestIDHeader)
	cfg.ExposeHeaders = []string{requestIDHeader}
	if len(s.config.AllowedOrigins) == 0 || (len(s.config.AllowedOrigins) == 1 && s.config.AllowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = s.config.AllowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Log(fmt.Sprintf("Storefront api listening on %s", s.config.Addr))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
