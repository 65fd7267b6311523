// Package config reads the polymesh.toml file that drives the command line
// tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/polymesh/engine/core"
)

const DefaultPath = "polymesh.toml"

type LogConfig struct {
	Level        string `toml:"level"`
	Prefix       string `toml:"prefix"`
	ReportCaller bool   `toml:"report_caller"`
}

type WatchConfig struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

// OutputConfig controls the exporter. An empty Dir disables exporting.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

type NormalsConfig struct {
	Recalculate bool `toml:"recalculate"`
}

// JobsConfig sizes the worker pool that parses mesh files.
type JobsConfig struct {
	Workers int `toml:"workers"`
}

type BridgeConfig struct {
	Kind string `toml:"kind"`
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Watch   WatchConfig   `toml:"watch"`
	Output  OutputConfig  `toml:"output"`
	Normals NormalsConfig `toml:"normals"`
	Bridge  BridgeConfig  `toml:"bridge"`
	Jobs    JobsConfig    `toml:"jobs"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Prefix: "polymesh",
		},
		Watch: WatchConfig{
			Dir:     "meshes",
			Enabled: true,
		},
		Normals: NormalsConfig{
			Recalculate: true,
		},
		Bridge: BridgeConfig{
			Kind: "none",
		},
		Jobs: JobsConfig{
			Workers: 4,
		},
	}
}

// Load decodes the file at path over the defaults. A missing file is not an
// error: the defaults are returned as they are.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogDebug("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays the TOML document in data onto cfg and validates the result.
// Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w\n%s", err, strict.String())
		}
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Bridge.Kind {
	case "none", "registry":
	default:
		return fmt.Errorf("bridge.kind %q: %w", c.Bridge.Kind, core.ErrUnknownBridge)
	}
	if c.Jobs.Workers < 1 {
		return fmt.Errorf("jobs.workers must be at least 1, got %d", c.Jobs.Workers)
	}
	if c.Watch.Enabled && c.Watch.Dir == "" {
		return errors.New("watch.dir must be set when watching is enabled")
	}
	return nil
}

// Encode returns c as a TOML document.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
