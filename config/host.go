package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML string parsing (e.g. "10s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// HostConfig is the engine's deployment-level configuration: the
// environment inputs the core's contract names as out of scope for
// the core itself, but which the host binary must supply.
type HostConfig struct {
	// Workers is the worker-pool size. Default 8.
	Workers int `yaml:"workers"`

	// ProgramDir is the directory of TOML program definitions scanned
	// at startup.
	ProgramDir string `yaml:"program_dir"`

	// MetadataDSN is the connection URI for the relational metadata
	// store.
	MetadataDSN string `yaml:"metadata_dsn"`

	// EventRepository is the event repository's URI (scheme file://
	// or s3://).
	EventRepository string `yaml:"event_repository"`

	// EventRepositoryEndpoint is an optional custom endpoint for an
	// S3-compatible object store.
	EventRepositoryEndpoint string `yaml:"event_repository_endpoint"`

	// ItemRegistryPath is the path to the item-stat JSON dump.
	ItemRegistryPath string `yaml:"item_registry_path"`

	// ListenPort is the HTTP admission surface's listen port.
	ListenPort int `yaml:"listen_port"`

	// RequestTimeout is decoded from request_timeout; no component
	// of the engine or the admission handler applies it to a run.
	RequestTimeout Duration `yaml:"request_timeout"`

	// Adapter selects where run-completion events are published.
	Adapter AdapterConfig `yaml:"adapter"`
}

// AdapterConfig selects and configures the run-completion notification
// adapter, mirroring the teacher's own adapter selection block.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
}

// defaultWorkers is applied when a host config omits worker count.
const defaultWorkers = 8

// LoadHostConfig reads a YAML host config file, expands environment
// variables, and rejects unknown keys to catch typos early.
func LoadHostConfig(path string) (*HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	expanded := ExpandEnv(string(data))

	cfg := HostConfig{Workers: defaultWorkers}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return &cfg, nil
}
