// Package server boots the HTTP (and optional gRPC) front of the app:
// config, logging, database, cache, storage, routes, graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fennwick/brasserie/app/routes"
	"github.com/fennwick/brasserie/config"
	"github.com/fennwick/brasserie/pkg/cache"
	"github.com/fennwick/brasserie/pkg/database"
	pkggrpc "github.com/fennwick/brasserie/pkg/grpc"
	"github.com/fennwick/brasserie/pkg/logger"
	"github.com/fennwick/brasserie/pkg/metrics"
	"github.com/fennwick/brasserie/pkg/middleware"
	"github.com/fennwick/brasserie/pkg/reqid"
	"github.com/fennwick/brasserie/pkg/router"
	"github.com/fennwick/brasserie/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.EnableMongoSink(uri)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				closeSink(ctx)
			}()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	cache.Connect()
	storage.Connect()

	r := NewRouter()
	if err := routes.RegisterAPI(r, database.DB); err != nil {
		return err
	}

	if port := config.GRPCPort(); port != "" {
		grpcSrv, lis, err := pkggrpc.Start(port)
		if err != nil {
			return err
		}
		defer pkggrpc.Stop(grpcSrv)
		logger.Info("grpc listening", "addr", lis.Addr().String())
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter builds the router with the standard middleware stack applied.
func NewRouter() *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	return r
}
