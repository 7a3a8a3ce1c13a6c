package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hearthwatch/planner-core/internal/audit"
	"github.com/hearthwatch/planner-core/internal/infrastructure/config"
	"github.com/hearthwatch/planner-core/internal/infrastructure/database"
	"github.com/hearthwatch/planner-core/internal/infrastructure/influxdb"
	"github.com/hearthwatch/planner-core/internal/infrastructure/logging"
	"github.com/hearthwatch/planner-core/internal/infrastructure/mqtt"
	"github.com/hearthwatch/planner-core/internal/layout"
	"github.com/hearthwatch/planner-core/internal/plan"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Layouts  layout.Repository
	Plans    plan.Store
	Audit    audit.Repository // optional: audit trail disabled when nil
	MQTT     *mqtt.Client     // optional: event publishing disabled when nil
	Metrics  *influxdb.Client // optional: usage metrics disabled when nil
	DB       *database.DB     // optional: pool stats in /metrics when set
	Version  string
}

// Server is the HTTP API server for the Hearthwatch planner.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	secCfg    config.SecurityConfig
	logger    *logging.Logger
	layouts   layout.Repository
	plans     plan.Store
	auditRepo audit.Repository
	auditCh   chan *audit.AuditLog
	mqtt      *mqtt.Client
	metrics   *influxdb.Client
	db        *database.DB
	version   string
	startTime time.Time
	server    *http.Server
	hub       *Hub
	cancel    context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, repositories)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Layouts == nil {
		return nil, fmt.Errorf("layout repository is required")
	}
	if deps.Plans == nil {
		return nil, fmt.Errorf("plan store is required")
	}
	// MQTT and metrics are optional — events and timings are simply not
	// published without them.

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		secCfg:    deps.Security,
		logger:    deps.Logger,
		layouts:   deps.Layouts,
		plans:     deps.Plans,
		auditRepo: deps.Audit,
		mqtt:      deps.MQTT,
		metrics:   deps.Metrics,
		db:        deps.DB,
		version:   deps.Version,
		startTime: time.Now(),
	}

	if deps.Audit != nil {
		s.auditCh = make(chan *audit.AuditLog, auditChanSize)
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It sets up the router, starts the WebSocket hub and the audit drain,
// and launches the HTTP listener in a background goroutine. The server
// can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation (not used for listener lifetime)
//
// Returns:
//   - error: If the server fails to start (port in use, etc.)
func (s *Server) Start(ctx context.Context) error {
	// Create internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	// Create WebSocket hub
	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
		go s.hub.Run(srvCtx)
	}

	// Start serial audit log writer
	if s.auditCh != nil {
		go s.drainAuditLog(srvCtx)
	}

	// Build router
	router := s.buildRouter()

	// Create HTTP server
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	// Start listening in background
	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	// Cancel background goroutines (hub, audit drain)
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
