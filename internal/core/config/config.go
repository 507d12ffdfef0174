package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PRIMSTATS_"

// Storage backends. Memory and filesystem stores are serialised by one
// process only, so a filesystem directory must not be shared by replicas.
// Postgres updates hold a row lock and may be shared.
const (
	StorageMemory     = "memory"
	StorageFileSystem = "filesystem"
	StoragePostgres   = "postgres"
)

// Config represents the top-level application config.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Reduce  ReduceConfig  `koanf:"reduce"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type StorageConfig struct {
	Type string `koanf:"type"` // memory | filesystem | postgres
	// Path is the snapshot directory for the filesystem backend.
	Path         string `koanf:"path"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type ReduceConfig struct {
	WorkerCount  int `koanf:"worker_count"`
	MinChunkSize int `koanf:"min_chunk_size"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageFileSystem:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("storage.path is required for the filesystem backend")
		}
	case StoragePostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for the postgres backend")
		}
		if c.Storage.MaxOpenConns <= 0 {
			return fmt.Errorf("storage.max_open_conns must be > 0")
		}
		if c.Storage.MaxIdleConns <= 0 {
			return fmt.Errorf("storage.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported storage.type %q (must be memory, filesystem or postgres)", c.Storage.Type)
	}

	if c.Reduce.WorkerCount <= 0 {
		return fmt.Errorf("reduce.worker_count must be > 0")
	}
	if c.Reduce.MinChunkSize <= 0 {
		return fmt.Errorf("reduce.min_chunk_size must be > 0")
	}

	return nil
}

// Load layers defaults, the optional YAML file at configPath and PRIMSTATS_
// environment variables, then validates the result. A double underscore in
// an env name separates sections: PRIMSTATS_STORAGE__TYPE sets storage.type.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_mb": 1,
		"server.mode":             "release",
		"storage.type":            StorageMemory,
		"storage.path":            "./data/accumulators",
		"storage.dsn":             "",
		"storage.max_open_conns":  25,
		"storage.max_idle_conns":  25,
		"storage.auto_migrate":    true,
		"reduce.worker_count":     8,
		"reduce.min_chunk_size":   1024,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
