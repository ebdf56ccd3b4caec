package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileConfig is the TOML layout of the optional config file. Only keys present
// in the file override the defaults.
type fileConfig struct {
	Server struct {
		Host           *string `toml:"host"`
		Port           *int    `toml:"port"`
		MetricsEnabled *bool   `toml:"metrics_enabled"`
		AllowedOrigins *string `toml:"allowed_origins"`
	} `toml:"server"`
	Logging struct {
		Level         *string `toml:"level"`
		Format        *string `toml:"format"`
		IncludeCaller *bool   `toml:"include_caller"`
	} `toml:"logging"`
	Graph struct {
		URI            *string `toml:"uri"`
		Database       *string `toml:"database"`
		Username       *string `toml:"username"`
		MaxConnections *int    `toml:"max_connections"`
	} `toml:"graph"`
	Dataset struct {
		Path  *string `toml:"path"`
		Watch *bool   `toml:"watch"`
	} `toml:"dataset"`
	Filter struct {
		DefaultMaxEdges     *int `toml:"default_max_edges"`
		MaxEdgesLimit       *int `toml:"max_edges_limit"`
		MaxEdgesStep        *int `toml:"max_edges_step"`
		DefaultMinNodeCount *int `toml:"default_min_count"`
	} `toml:"filter"`
	Physics struct {
		GravitationalConstant *float64 `toml:"gravitational_constant"`
		CentralGravity        *float64 `toml:"central_gravity"`
		SpringLength          *float64 `toml:"spring_length"`
		SpringConstant        *float64 `toml:"spring_constant"`
		Damping               *float64 `toml:"damping"`
		AvoidOverlap          *float64 `toml:"avoid_overlap"`
		MinVelocity           *float64 `toml:"min_velocity"`
		TooltipDelay          *int     `toml:"tooltip_delay"`
	} `toml:"physics"`
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %s", path, undecoded[0])
	}

	set(&cfg.HTTP.Host, fc.Server.Host)
	set(&cfg.HTTP.Port, fc.Server.Port)
	set(&cfg.HTTP.MetricsEnabled, fc.Server.MetricsEnabled)
	set(&cfg.HTTP.AllowedOriginsCSV, fc.Server.AllowedOrigins)

	set(&cfg.Logging.Level, fc.Logging.Level)
	set(&cfg.Logging.Format, fc.Logging.Format)
	set(&cfg.Logging.IncludeCaller, fc.Logging.IncludeCaller)

	set(&cfg.Graph.URI, fc.Graph.URI)
	set(&cfg.Graph.Database, fc.Graph.Database)
	set(&cfg.Graph.Username, fc.Graph.Username)
	set(&cfg.Graph.MaxConnections, fc.Graph.MaxConnections)

	set(&cfg.Dataset.Path, fc.Dataset.Path)
	set(&cfg.Dataset.Watch, fc.Dataset.Watch)

	set(&cfg.Filter.DefaultMaxEdges, fc.Filter.DefaultMaxEdges)
	set(&cfg.Filter.MaxEdgesLimit, fc.Filter.MaxEdgesLimit)
	set(&cfg.Filter.MaxEdgesStep, fc.Filter.MaxEdgesStep)
	set(&cfg.Filter.DefaultMinNodeCount, fc.Filter.DefaultMinNodeCount)

	set(&cfg.Physics.GravitationalConstant, fc.Physics.GravitationalConstant)
	set(&cfg.Physics.CentralGravity, fc.Physics.CentralGravity)
	set(&cfg.Physics.SpringLength, fc.Physics.SpringLength)
	set(&cfg.Physics.SpringConstant, fc.Physics.SpringConstant)
	set(&cfg.Physics.Damping, fc.Physics.Damping)
	set(&cfg.Physics.AvoidOverlap, fc.Physics.AvoidOverlap)
	set(&cfg.Physics.MinVelocity, fc.Physics.MinVelocity)
	set(&cfg.Physics.TooltipDelay, fc.Physics.TooltipDelay)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
