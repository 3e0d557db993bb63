// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < env.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all flowgate configuration.
type Config struct {
	Version int `yaml:"version"`

	Router    RouterConfig    `yaml:"router"`
	Routes    RoutesConfig    `yaml:"routes"`
	Store     StoreConfig     `yaml:"store"`
	Audit     AuditConfig     `yaml:"audit"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RouterConfig controls the router's worker pool and intake queue.
type RouterConfig struct {
	Threads        int           `yaml:"threads"`
	QueueCapacity  int           `yaml:"queue_capacity"`
	DequeueTimeout time.Duration `yaml:"dequeue_timeout"`
}

// RoutesConfig controls file-based route seeding and hot reload.
type RoutesConfig struct {
	SeedFile string `yaml:"seed_file"`
	Watch    bool   `yaml:"watch"`
}

// StoreConfig selects and configures the route-table persistence
// backend. Exactly one of S3 or Redis is used, chosen by Backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"` // "s3" | "redis"
	S3      S3Config    `yaml:"s3"`
	Redis   RedisConfig `yaml:"redis"`
}

// S3Config mirrors pkg/store/s3.Config's YAML-facing fields.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// RedisConfig mirrors pkg/store/redis.Config's YAML-facing fields.
type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// AuditConfig controls the embedded DuckDB audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty = in-memory
}

// ServerConfig for the administrative HTTP surface.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// TelemetryConfig for OpenTelemetry export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	flowgateDir := filepath.Join(homeDir, ".flowgate")

	return &Config{
		Version: 1,
		Router: RouterConfig{
			Threads:        4,
			QueueCapacity:  1024,
			DequeueTimeout: time.Second,
		},
		Routes: RoutesConfig{
			SeedFile: filepath.Join(flowgateDir, "routes.yaml"),
			Watch:    false,
		},
		Store: StoreConfig{
			Backend: "redis",
			Redis:   RedisConfig{Address: "127.0.0.1:6379", Prefix: "flowgate:router:"},
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    filepath.Join(flowgateDir, "audit.duckdb"),
		},
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // paths that were loaded
}

// NewManager creates a configuration manager seeded with defaults.
func NewManager() *Manager {
	return &Manager{config: Default()}
}

// Load loads configuration from all sources in priority order,
// ignoring files that do not exist.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()

	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("config: load %s: %w", path, err)
			}
			continue
		}
		m.paths = append(m.paths, path)
	}

	m.loadEnv()
	m.ensureDirs()
	return nil
}

func (m *Manager) getConfigPaths() []string {
	var paths []string
	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/flowgate/config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".flowgate", "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".flowgate.yaml"))
	}
	return paths
}

func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}
	m.merge(&partial)
	return nil
}

// merge overlays non-zero values from src onto the accumulated config.
func (m *Manager) merge(src *Config) {
	if src.Router.Threads != 0 {
		m.config.Router.Threads = src.Router.Threads
	}
	if src.Router.QueueCapacity != 0 {
		m.config.Router.QueueCapacity = src.Router.QueueCapacity
	}
	if src.Router.DequeueTimeout != 0 {
		m.config.Router.DequeueTimeout = src.Router.DequeueTimeout
	}
	if src.Routes.SeedFile != "" {
		m.config.Routes.SeedFile = src.Routes.SeedFile
	}
	if src.Routes.Watch {
		m.config.Routes.Watch = true
	}
	if src.Store.Backend != "" {
		m.config.Store.Backend = src.Store.Backend
	}
	if src.Store.S3.Bucket != "" {
		m.config.Store.S3 = src.Store.S3
	}
	if src.Store.Redis.Address != "" {
		m.config.Store.Redis = src.Store.Redis
	}
	if src.Audit.Path != "" {
		m.config.Audit.Path = src.Audit.Path
	}
	if src.Server.Port != 0 {
		m.config.Server.Port = src.Server.Port
	}
	if src.Server.Host != "" {
		m.config.Server.Host = src.Server.Host
	}
	if src.Telemetry.Endpoint != "" {
		m.config.Telemetry.Endpoint = src.Telemetry.Endpoint
		m.config.Telemetry.Enabled = true
	}
}

// loadEnv overlays environment variable overrides, the highest
// priority source short of explicit flags.
func (m *Manager) loadEnv() {
	if v := os.Getenv("FLOWGATE_STORE_BACKEND"); v != "" {
		m.config.Store.Backend = v
	}
	if v := os.Getenv("FLOWGATE_REDIS_ADDRESS"); v != "" {
		m.config.Store.Redis.Address = v
	}
	if v := os.Getenv("FLOWGATE_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			m.config.Server.Port = port
		}
	}
	if v := os.Getenv("FLOWGATE_ROUTES_SEED_FILE"); v != "" {
		m.config.Routes.SeedFile = v
	}
}

// ensureDirs creates directories the configured paths depend on.
func (m *Manager) ensureDirs() {
	dirs := []string{
		filepath.Dir(m.config.Audit.Path),
		filepath.Dir(m.config.Routes.SeedFile),
	}
	for _, dir := range dirs {
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0755)
		}
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the config file paths that were actually loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}

// Save writes the current config to the user config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".flowgate")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644)
}

// Global instance.
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Global returns the global configuration manager, loading it on
// first use.
func Global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
		globalManager.Load()
	})
	return globalManager
}
