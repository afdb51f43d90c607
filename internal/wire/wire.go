// Package wire provides dependency injection for the courier application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/example/courier/internal/adapters/automation"
	"github.com/example/courier/internal/adapters/inbox"
	"github.com/example/courier/internal/adapters/source"
	"github.com/example/courier/internal/adapters/sqlite"
	"github.com/example/courier/internal/app"
	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/db"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/ports/secondary"
	"github.com/example/courier/internal/registry"
)

var (
	cfg               *config.Config
	coordRegistry     *registry.Registry
	inboxWriter       *inbox.Writer
	attemptRepo       secondary.AttemptRepository
	deliveryService   primary.DeliveryService
	registryService   primary.RegistryService
	validationService primary.ValidationService
	once              sync.Once
)

// Config returns the loaded process configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Registry returns the singleton coordinate registry.
func Registry() *registry.Registry {
	once.Do(initServices)
	return coordRegistry
}

// InboxWriter returns the singleton fallback inbox writer.
func InboxWriter() *inbox.Writer {
	once.Do(initServices)
	return inboxWriter
}

// Attempts returns the delivery audit repository.
func Attempts() secondary.AttemptRepository {
	once.Do(initServices)
	return attemptRepo
}

// DeliveryService returns the singleton DeliveryService instance.
func DeliveryService() primary.DeliveryService {
	once.Do(initServices)
	return deliveryService
}

// RegistryService returns the singleton RegistryService instance.
func RegistryService() primary.RegistryService {
	once.Do(initServices)
	return registryService
}

// ValidationService returns the singleton ValidationService instance.
func ValidationService() primary.ValidationService {
	once.Do(initServices)
	return validationService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.LoadConfig(cwd)
	if err != nil {
		log.Fatalf("no courier config found (run 'courier init'): %v", err)
	}

	roster := source.NewRosterYAML(cfg.RosterPath)
	coordRegistry = registry.New(roster, cfg.EffectiveOffset())
	if _, err := coordRegistry.Load(); err != nil {
		log.Fatalf("failed to load roster: %v", err)
	}

	inboxRoot := cfg.InboxRoot
	if inboxRoot == "" {
		inboxRoot, err = config.DefaultInboxRoot()
		if err != nil {
			log.Fatalf("failed to resolve inbox root: %v", err)
		}
	}
	inboxWriter = inbox.NewWriter(inboxRoot)

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	attemptRepo = sqlite.NewAttemptRepository(database)

	sim := newSimulator(cfg)
	engine := app.NewDeliveryEngine(coordRegistry, sim, inboxWriter, attemptRepo)

	deliveryService = app.NewRouterService(coordRegistry, engine)
	registryService = app.NewRegistryService(coordRegistry)
	validationService = app.NewValidationService(ssotSources(cfg, roster))
}

// newSimulator selects the configured backend.
func newSimulator(cfg *config.Config) secondary.InputSimulator {
	switch cfg.EffectiveBackend() {
	case config.BackendTmux:
		return automation.NewTmuxSimulator(cfg.Timing)
	case config.BackendRecording:
		return automation.NewRecordingSimulator()
	default:
		return automation.NewXdotoolSimulator(cfg.Timing)
	}
}

// ssotSources builds the validator inputs: the roster plus every configured
// SSOT source, adapted by file extension.
func ssotSources(cfg *config.Config, roster *source.RosterYAML) []secondary.ConfigSource {
	sources := []secondary.ConfigSource{roster}
	for _, path := range cfg.SSOTSources {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			sources = append(sources, source.NewUnifiedJSON(path))
		case ".yaml", ".yml":
			sources = append(sources, source.NewCapabilityMatrix(path))
		default:
			log.Printf("skipping SSOT source %s: unknown format", path)
		}
	}
	return sources
}
