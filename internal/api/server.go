// Package api provides the HTTP REST API and WebSocket server for dmxcore.
//
// It exposes universe, fixture, scene, and effect operations plus a
// real-time event stream to lighting consoles, show-control software,
// and web front-ends.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stagelight/dmxcore/internal/adapter"
	"github.com/stagelight/dmxcore/internal/effect"
	"github.com/stagelight/dmxcore/internal/events"
	"github.com/stagelight/dmxcore/internal/fixture"
	"github.com/stagelight/dmxcore/internal/infrastructure/config"
	"github.com/stagelight/dmxcore/internal/infrastructure/logging"
	"github.com/stagelight/dmxcore/internal/scene"
	"github.com/stagelight/dmxcore/internal/universe"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	WS        config.WebSocketConfig
	Logger    *logging.Logger
	Universes *universe.Registry
	Fixtures  *fixture.Registry
	Effects   *effect.Engine
	Scenes    *scene.Store
	Adapters  adapter.Provider
	Bus       *events.Bus
	Version   string
}

// Server is the HTTP API server for dmxcore.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	universes *universe.Registry
	fixtures  *fixture.Registry
	effects   *effect.Engine
	scenes    *scene.Store
	adapters  adapter.Provider
	bus       *events.Bus
	version   string
	server    *http.Server
	hub       *Hub
	cancel    context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, registries, engine)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Universes == nil {
		return nil, fmt.Errorf("universe registry is required")
	}
	if deps.Fixtures == nil {
		return nil, fmt.Errorf("fixture registry is required")
	}
	if deps.Effects == nil {
		return nil, fmt.Errorf("effect engine is required")
	}
	if deps.Scenes == nil {
		return nil, fmt.Errorf("scene store is required")
	}
	if deps.Adapters == nil {
		return nil, fmt.Errorf("adapter provider is required")
	}
	// Bus is optional. Without it the WebSocket stream carries no events
	// but every REST endpoint still functions.

	return &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		universes: deps.Universes,
		fixtures:  deps.Fixtures,
		effects:   deps.Effects,
		scenes:    deps.Scenes,
		adapters:  deps.Adapters,
		bus:       deps.Bus,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, bridges engine events onto the hub for
// real-time broadcast, and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
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

	s.hub = NewHub(s.wsCfg, s.logger)
	go s.hub.Run(srvCtx)

	// Bridge engine events onto the hub for WebSocket broadcast
	if s.bus != nil {
		go s.relayEvents(srvCtx)
	}

	router := s.buildRouter()

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
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// relayEvents forwards engine bus events to WebSocket clients subscribed
// to the matching event type. It runs until the context is cancelled.
func (s *Server) relayEvents(ctx context.Context) {
	ch, cancel := s.bus.Subscribe(events.DefaultBuffer * 2)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			s.hub.Broadcast(ev.Type, map[string]any{
				"type":        ev.Type,
				"universe_id": ev.UniverseID,
				"at":          ev.At.UTC().Format(time.RFC3339Nano),
				"payload":     ev.Payload,
			})
		}
	}
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

	// Cancel background goroutines (hub, event relay)
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

// HealthCheck verifies the API server is running.
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
