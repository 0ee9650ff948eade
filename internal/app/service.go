package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"order-service/internal/config"
	apphttp "order-service/internal/http"
	"order-service/internal/repository/postgres"
	"order-service/internal/resettoken"
)

// Service represents the order management application
type Service struct {
	config     *config.Config
	db         *postgres.DB
	resetStore *resettoken.Store
	server     *apphttp.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start runs the HTTP server and blocks until shutdown. SIGINT and SIGTERM
// trigger a graceful shutdown bounded by the configured timeout.
func (s *Service) Start() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Start(":" + s.config.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.closeResources()
		return err
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeResources()
	return err
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.closeResources()
	return err
}

func (s *Service) closeResources() {
	if s.resetStore != nil {
		if err := s.resetStore.Close(); err != nil {
			log.Printf("failed to close redis client: %v", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
}
