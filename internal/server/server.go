package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/handler"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

const (
	shutdownTimeout       = 15 * time.Second
	healthRefreshInterval = 15 * time.Second
)

// Servers runs every transport enabled in the configuration.
type Servers struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer binds the listeners of all transports present in handlers.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (*Servers, error) {
	logger.Info().Msg("creating new server...")
	servers := &Servers{logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		srv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = srv
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		srv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			if servers.httpServer != nil {
				servers.httpServer.listener.Close()
			}
			return nil, err
		}
		servers.gRPCServer = srv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Run serves until ctx is cancelled or one of the servers fails, then shuts
// every server down. A cancelled ctx is a normal stop and yields nil.
func (s *Servers) Run(ctx context.Context) error {
	running := s.running()
	errCh := make(chan error, len(running))

	for _, srv := range running {
		go func() {
			errCh <- srv.RunServer()
		}()
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if s.gRPCServer != nil {
		go s.gRPCServer.handler.WatchHealth(watchCtx, healthRefreshInterval)
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err := <-errCh:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}
		runErr = err
		s.logger.Error().Err(err).Msg("server failed")
	}
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	if runErr != nil {
		return fmt.Errorf("error running server: %w", runErr)
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// Shutdown stops every created server.
func (s *Servers) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range s.running() {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Servers) running() []Server {
	servers := make([]Server, 0, 2)
	if s.httpServer != nil {
		servers = append(servers, s.httpServer)
	}
	if s.gRPCServer != nil {
		servers = append(servers, s.gRPCServer)
	}
	return servers
}
