package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/raidreplay/tobengine/adapter"
	redisadapter "github.com/raidreplay/tobengine/adapter/redis"
	"github.com/raidreplay/tobengine/adapter/webhook"
	"github.com/raidreplay/tobengine/analyzers"
	"github.com/raidreplay/tobengine/challenge"
	"github.com/raidreplay/tobengine/config"
	"github.com/raidreplay/tobengine/engine"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/log"
	"github.com/raidreplay/tobengine/metadata"
	"github.com/raidreplay/tobengine/store"
)

// runtime bundles every collaborator bootstrap assembles from a
// HostConfig: the started engine, the challenge loader, and the
// logger every command/handler shares.
type runtime struct {
	cfg    *config.HostConfig
	engine *engine.Engine
	loader *challenge.Loader
	logger *log.Logger
}

// bootstrap wires the engine's collaborators from a host config path:
// the event backend (filesystem or S3, by EventRepository's URI
// scheme), the relational metadata store, the item registry, the
// built-in analyzer set, and the run-completion adapter.
func bootstrap(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.LoadHostConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger()

	backend, err := buildBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build event backend: %w", err)
	}

	decoder, err := newDecoder()
	if err != nil {
		logger.Warnw("event decoder not configured; stage event reads will fail", "error", err)
	}
	repository := store.NewRepository(backend, decoder)

	db, err := sql.Open("postgres", cfg.MetadataDSN)
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w", err)
	}
	metadataStore := metadata.NewStore(db)

	registry, err := items.LoadRegistry(cfg.ItemRegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load item registry: %w", err)
	}

	e := engine.New(logger, analyzers.DefaultRegistry(), registry)

	if publishAdapter, err := buildAdapter(cfg.Adapter); err != nil {
		return nil, fmt.Errorf("build adapter: %w", err)
	} else if publishAdapter != nil {
		e.SetAdapter(publishAdapter)
	}

	if err := e.LoadFromDirectory(cfg.ProgramDir); err != nil {
		return nil, fmt.Errorf("load programs: %w", err)
	}
	e.Start(cfg.Workers)

	loader := challenge.NewLoader(metadataStore, repository)

	return &runtime{cfg: cfg, engine: e, loader: loader, logger: logger}, nil
}

// buildBackend selects a store.Backend by EventRepository's URI
// scheme: file:// for a local directory tree, s3:// for an
// S3-compatible bucket.
func buildBackend(ctx context.Context, cfg *config.HostConfig) (store.Backend, error) {
	u, err := url.Parse(cfg.EventRepository)
	if err != nil {
		return nil, fmt.Errorf("invalid event_repository URI %q: %w", cfg.EventRepository, err)
	}

	switch u.Scheme {
	case "file", "":
		return store.NewFSBackend(u.Path), nil
	case "s3":
		return store.NewS3Backend(ctx, store.S3Config{
			Bucket:       u.Host,
			Prefix:       u.Path,
			Endpoint:     cfg.EventRepositoryEndpoint,
			UsePathStyle: cfg.EventRepositoryEndpoint != "",
		})
	default:
		return nil, fmt.Errorf("unsupported event_repository scheme: %q", u.Scheme)
	}
}

// buildAdapter constructs the configured run-completion adapter, or
// nil if none is configured. Mirrors the teacher's own
// adapter-selection dispatch (CLI flag driven there, host config
// driven here).
func buildAdapter(cfg config.AdapterConfig) (adapter.Adapter, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "webhook":
		return webhook.New(webhook.Config{
			URL:     cfg.URL,
			Headers: cfg.Headers,
			Timeout: cfg.Timeout.Duration,
		})
	case "redis":
		return redisadapter.New(redisadapter.Config{
			URL:     cfg.URL,
			Channel: cfg.Channel,
			Timeout: cfg.Timeout.Duration,
		})
	default:
		return nil, fmt.Errorf("unknown adapter type: %q", cfg.Type)
	}
}

// shutdownTimeout bounds how long a graceful HTTP server shutdown
// waits for in-flight requests.
const shutdownTimeout = 30 * time.Second
