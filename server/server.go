package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"setmore-schedules/config"
	"setmore-schedules/utils"
)

// NewRouter wires the HTTP routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/events", h.ListEvents)
		api.POST("/events/:event/uploads", h.Upload)
	}

	return router
}

// Run serves the API on cfg.HTTPAddr until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, profiles config.Profiles, logger *utils.Logger) error {
	h := NewHandler(profiles, logger, cfg.ReportWorkers, int64(cfg.MaxUploadMB)<<20)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[server] Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("[server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
