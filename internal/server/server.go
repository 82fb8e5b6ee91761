package server

import (
	"context"
	"log/slog"
	"net/http"

	apprankings "github.com/preston-bernstein/qb-rankings-service/internal/app/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/config"
	"github.com/preston-bernstein/qb-rankings-service/internal/fetcher"
	httpserver "github.com/preston-bernstein/qb-rankings-service/internal/http"
	"github.com/preston-bernstein/qb-rankings-service/internal/http/handlers"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
	"github.com/preston-bernstein/qb-rankings-service/internal/poller"
	"github.com/preston-bernstein/qb-rankings-service/internal/snapshots"
	"github.com/preston-bernstein/qb-rankings-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *apprankings.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured tab source and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil, nil)
}

// newServerWithSource builds every component. A nil source is selected from
// cfg; an injected source is treated as configured.
func newServerWithSource(cfg config.Config, logger *slog.Logger, source *builtSource, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newSourceFactory(logger, recorder)
	var built builtSource
	if source == nil {
		built = factory.build(cfg)
	} else {
		built = factory.wrap(cfg, source.name, source.source, source.configured)
	}

	svc := buildService(cfg, logger, recorder, built)
	plr := poller.New(svc, logger, recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, plr)

	logging.Info(logger, "rankings source selected",
		slog.String(logging.FieldSource, built.name),
		slog.Bool("configured", built.configured),
	)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *apprankings.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildService(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, built builtSource) *apprankings.Service {
	f := fetcher.New(fetcher.Config{
		Source:  built.source,
		Cache:   store.NewSnapshotCache(nil),
		Tabs:    tabsFromConfig(cfg.Sheets.Tabs),
		TTL:     cfg.Sheets.CacheTTL,
		Logger:  logger,
		Metrics: recorder,
	})
	return apprankings.NewService(apprankings.Config{
		Fetcher:    f,
		Static:     snapshots.LoadStatic(cfg.Static.Path, logger),
		Configured: built.configured,
		Logger:     logger,
	})
}

func buildHTTPServer(cfg config.Config, svc *apprankings.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, logger, recorder)

	return newNetHTTPServer(cfg.Addr(), router)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(cfg.Metrics.Addr(), handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
