package http

import (
	"context"
	goerrors "errors"
	"net"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/turtacn/apiecho/internal/config"
	"github.com/turtacn/apiecho/internal/infrastructure/monitoring"
	"github.com/turtacn/apiecho/internal/interfaces/http/handlers"
	"github.com/turtacn/apiecho/internal/interfaces/http/middleware"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// RouterDependencies holds everything the router wires together.
type RouterDependencies struct {
	Config         *config.Config
	Logger         logger.Logger
	Tracing        *monitoring.TracingManager
	APIHandler     *handlers.APIHandler
	MetricsHandler *handlers.MetricsHandler
	HealthHandler  *handlers.HealthHandler
}

// Router owns the gin engine and the HTTP server serving it.
type Router struct {
	engine *gin.Engine
	config *config.Config
	logger logger.Logger
	server *http.Server
}

// NewRouter creates the engine and registers middleware and routes.
func NewRouter(deps RouterDependencies) *Router {
	if deps.Config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	r := &Router{
		engine: engine,
		config: deps.Config,
		logger: deps.Logger,
	}
	r.setupRoutes(deps)

	r.server = &http.Server{
		Addr:           deps.Config.Server.Address(),
		Handler:        engine,
		ReadTimeout:    config.Seconds(deps.Config.Server.ReadTimeout),
		WriteTimeout:   config.Seconds(deps.Config.Server.WriteTimeout),
		IdleTimeout:    config.Seconds(deps.Config.Server.IdleTimeout),
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	return r
}

func (r *Router) setupRoutes(deps RouterDependencies) {
	r.engine.Use(
		handlers.RecoveryMiddleware(deps.Logger),
		middleware.RequestIDMiddleware(),
		middleware.TracingMiddleware(deps.Tracing),
		handlers.LoggingMiddleware(deps.Logger),
		handlers.CORSMiddleware(deps.Config.Server.AllowedOrigins),
	)

	r.engine.GET(constants.EndpointRoot, deps.HealthHandler.LivenessCheck)
	r.engine.GET(constants.EndpointHealth, deps.HealthHandler.LivenessCheck)

	r.engine.GET(constants.EndpointMetrics, deps.MetricsHandler.Metrics)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		r.engine.Handle(method, constants.EndpointAPI, deps.APIHandler.Handle)
	}

	if deps.Config.Monitoring.PprofEnabled {
		pprof.Register(r.engine)
	}

	r.engine.NoRoute(handlers.NotFound)
	r.engine.NoMethod(handlers.MethodNotAllowed)
}

// Engine exposes the gin engine, e.g. for httptest.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run listens on the configured address and serves until ctx is cancelled.
func (r *Router) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", r.server.Addr)
	if err != nil {
		return err
	}
	return r.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully
// within server.shutdown_timeout.
func (r *Router) Serve(ctx context.Context, lis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info(gctx, "Starting HTTP server", logger.Fields{"address": lis.Addr().String()})
		if err := r.server.Serve(lis); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info(context.Background(), "Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(r.config.Server.ShutdownTimeout))
		defer cancel()

		if err := r.server.Shutdown(shutdownCtx); err != nil {
			r.logger.Error(shutdownCtx, "Server forced to shutdown", err)
			return err
		}
		r.logger.Info(shutdownCtx, "HTTP server stopped")
		return nil
	})

	return g.Wait()
}
