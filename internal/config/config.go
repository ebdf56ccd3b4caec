package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Graph   GraphConfig
	Logging LoggingConfig
	Dataset DatasetConfig
	Filter  FilterConfig
	Physics PhysicsConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// GraphConfig describes connectivity to the Neo4j category store.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// DatasetConfig points at a file or SQLite category store.
type DatasetConfig struct {
	Path  string // .json, .yaml, .yml, .db or .sqlite
	Watch bool
}

// FilterConfig holds the defaults and bounds of the dashboard filter controls.
type FilterConfig struct {
	DefaultMaxEdges     int
	MaxEdgesLimit       int
	MaxEdgesStep        int
	DefaultMinNodeCount int
}

// PhysicsConfig is the force-layout tuning block handed to the renderer.
type PhysicsConfig struct {
	GravitationalConstant float64
	CentralGravity        float64
	SpringLength          float64
	SpringConstant        float64
	Damping               float64
	AvoidOverlap          float64
	MinVelocity           float64
	TooltipDelay          int
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultDatasetPath      = "graphs.json"
	defaultMaxEdges         = 100
	defaultMaxEdgesLimit    = 2000
	defaultMaxEdgesStep     = 100
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Dataset: DatasetConfig{
			Path: defaultDatasetPath,
		},
		Filter: FilterConfig{
			DefaultMaxEdges: defaultMaxEdges,
			MaxEdgesLimit:   defaultMaxEdgesLimit,
			MaxEdgesStep:    defaultMaxEdgesStep,
		},
		Physics: PhysicsConfig{
			GravitationalConstant: -500,
			CentralGravity:        0.3,
			SpringLength:          150,
			SpringConstant:        0.05,
			Damping:               0.09,
			AvoidOverlap:          0.1,
			MinVelocity:           0.75,
			TooltipDelay:          200,
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// RECIPENET_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("RECIPENET_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.Dataset.Path = valueOrDefault("DATASET_PATH", cfg.Dataset.Path)
	cfg.Dataset.Watch = parseBoolWithDefault("DATASET_WATCH", cfg.Dataset.Watch)

	cfg.Filter.DefaultMaxEdges = parseIntWithDefault("FILTER_DEFAULT_MAX_EDGES", cfg.Filter.DefaultMaxEdges)
	cfg.Filter.MaxEdgesLimit = parseIntWithDefault("FILTER_MAX_EDGES_LIMIT", cfg.Filter.MaxEdgesLimit)
	cfg.Filter.DefaultMinNodeCount = parseIntWithDefault("FILTER_DEFAULT_MIN_COUNT", cfg.Filter.DefaultMinNodeCount)

	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)

	if err := cfg.Filter.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f FilterConfig) validate() error {
	if f.MaxEdgesLimit < 1 {
		return fmt.Errorf("max edges limit must be positive, got %d", f.MaxEdgesLimit)
	}
	if f.DefaultMaxEdges < 1 || f.DefaultMaxEdges > f.MaxEdgesLimit {
		return fmt.Errorf("default max edges %d outside 1..%d", f.DefaultMaxEdges, f.MaxEdgesLimit)
	}
	if f.DefaultMinNodeCount < 0 {
		return fmt.Errorf("default min node count must not be negative, got %d", f.DefaultMinNodeCount)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
