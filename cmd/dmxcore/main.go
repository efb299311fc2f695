// dmxcore - DMX512 lighting control engine
//
// This is the main entry point for the dmxcore application. dmxcore
// drives DMX512 universes for stage and architectural lighting:
//   - 512-channel universes bound to output adapters
//   - Named fixtures over contiguous channel ranges
//   - Scene capture, storage, and recall
//   - Timed effects: fades, chases, strobes
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stagelight/dmxcore/internal/adapter"
	"github.com/stagelight/dmxcore/internal/api"
	"github.com/stagelight/dmxcore/internal/effect"
	"github.com/stagelight/dmxcore/internal/events"
	"github.com/stagelight/dmxcore/internal/fixture"
	"github.com/stagelight/dmxcore/internal/infrastructure/config"
	"github.com/stagelight/dmxcore/internal/infrastructure/database"
	"github.com/stagelight/dmxcore/internal/infrastructure/influxdb"
	"github.com/stagelight/dmxcore/internal/infrastructure/logging"
	"github.com/stagelight/dmxcore/internal/infrastructure/mqtt"
	"github.com/stagelight/dmxcore/internal/scene"
	"github.com/stagelight/dmxcore/internal/telemetry"
	"github.com/stagelight/dmxcore/internal/universe"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting dmxcore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open scene database (optional; scenes fall back to memory)
	var sceneRepo scene.Repository
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database connected", "path", cfg.Database.Path)

		sceneRepo, err = scene.NewSQLiteRepository(db.DB)
		if err != nil {
			return fmt.Errorf("initialising scene repository: %w", err)
		}
	} else {
		log.Info("database disabled, scenes stored in memory only")
		sceneRepo = scene.NewMemoryRepository()
	}

	// Event bus connects the engine to its observers
	bus := events.NewBus()
	defer bus.Close()

	// Adapter provider seeded from configuration
	adapters := adapter.NewStaticProvider(cfg.Adapters)
	log.Info("adapters configured", "count", len(adapters.List()))

	// Core engine: universes, effects, fixtures, scenes
	universes := universe.NewRegistry(adapters, bus)
	universes.SetLogger(log)

	engine := effect.New(universes, bus, cfg.FadeTick())
	engine.SetChaseInterval(cfg.ChaseInterval())
	engine.SetLogger(log)
	defer func() {
		log.Info("stopping effect engine")
		if closeErr := engine.Close(); closeErr != nil {
			log.Error("error closing effect engine", "error", closeErr)
		}
	}()

	fixtures := fixture.NewRegistry(universes)
	fixtures.SetLogger(log)

	universes.SetEffects(engine)
	universes.SetFixtures(fixtures)

	scenes := scene.NewStore(sceneRepo, universes, bus)
	scenes.SetLogger(log)

	// Connect to MQTT broker and relay engine events (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		mqttClient.SetLogger(log)

		relay := events.NewRelay(bus, mqttClient, byte(cfg.MQTT.QoS))
		relay.SetLogger(log)
		relay.Start(ctx)
		defer relay.Stop()
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB and record telemetry (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		recorder := telemetry.NewRecorder(bus, influxClient)
		recorder.SetLogger(log)
		recorder.Start(ctx)
		defer recorder.Stop()
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start HTTP API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		WS:        cfg.WebSocket,
		Logger:    log,
		Universes: universes,
		Fixtures:  fixtures,
		Effects:   engine,
		Scenes:    scenes,
		Adapters:  adapters,
		Bus:       bus,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify infrastructure connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server (stops accepting requests)
	// 2. Telemetry recorder and InfluxDB (if enabled)
	// 3. Event relay and MQTT (if enabled)
	// 4. Effect engine (stops all running effects)
	// 5. Event bus
	// 6. Database (if enabled)

	log.Info("dmxcore stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses DMXCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("DMXCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
// Optional components are skipped when nil.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, server *api.Server) error {
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
