package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/config"
	grpcserver "github.com/Belphemur/ShowFinder/internal/grpc"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/web"
)

const (
	shutdownTimeout = 15 * time.Second
	sentryFlushWait = 2 * time.Second
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ShowFinder page, its JSON API and the side channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := config.GetLogger()

	logger.Info().
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("search_host", cfg.SearchHost).
		Str("episodes_host", cfg.EpisodesHost).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(sentryFlushWait)
		}
	}

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := newServer(cfg)
	if err := srv.start(); err != nil {
		srv.shutdown(context.Background())
		return err
	}

	<-ctx.Done()
	logger.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.shutdown(shutdownCtx)

	logger.Info().Msg("Server stopped gracefully")
	return nil
}

// server groups the page server with the optional gRPC and metrics servers.
type server struct {
	cfg     *config.Config
	http    *http.Server
	grpc    *grpcserver.Server
	metrics *http.Server

	// sessions is the base context of every request; cancelling it ends the
	// WebSocket page sessions, which http.Server.Shutdown does not track.
	sessions      context.Context
	closeSessions context.CancelFunc

	httpAddr net.Addr
	grpcAddr net.Addr
}

func newServer(cfg *config.Config) *server {
	search, episodes := pipelines(cfg)

	s := &server{cfg: cfg}
	s.sessions, s.closeSessions = context.WithCancel(context.Background())
	s.http = &http.Server{
		Handler:           web.NewRouter(search, episodes),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return s.sessions
		},
	}
	if cfg.GRPC.Enabled {
		s.grpc = grpcserver.NewGRPCServer()
	}
	if cfg.Metrics.Enabled {
		s.metrics = metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
	}
	return s
}

// start binds every enabled listener and serves in the background.
func (s *server) start() error {
	logger := config.GetLogger()

	if s.metrics != nil {
		lis, err := net.Listen("tcp", s.metrics.Addr)
		if err != nil {
			return fmt.Errorf("listen metrics on %s: %w", s.metrics.Addr, err)
		}
		logger.Info().Str("address", lis.Addr().String()).Msg("Starting Prometheus metrics HTTP server")
		go func() {
			if err := s.metrics.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
	}

	if s.grpc != nil {
		address := net.JoinHostPort(s.cfg.Server.Address, strconv.Itoa(s.cfg.GRPC.Port))
		lis, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("listen gRPC on %s: %w", address, err)
		}
		s.grpcAddr = lis.Addr()
		logger.Info().Str("address", s.grpcAddr.String()).Msg("Starting gRPC health server")
		go func() {
			if err := s.grpc.Serve(lis); err != nil {
				logger.Error().Err(err).Msg("Failed to serve gRPC")
			}
		}()
	}

	address := net.JoinHostPort(s.cfg.Server.Address, strconv.Itoa(s.cfg.Server.Port))
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen HTTP on %s: %w", address, err)
	}
	s.httpAddr = lis.Addr()
	logger.Info().Str("address", s.httpAddr.String()).Msg("Starting HTTP server")
	go func() {
		if err := s.http.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	return nil
}

// shutdown drains the page server first, reporting NOT_SERVING meanwhile.
func (s *server) shutdown(ctx context.Context) {
	logger := config.GetLogger()

	if s.grpc != nil {
		s.grpc.SetServing(false)
	}
	if err := s.http.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}
	s.closeSessions()

	if s.grpc != nil {
		s.grpc.Shutdown()
	}
	if s.metrics != nil {
		if err := s.metrics.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}
}
