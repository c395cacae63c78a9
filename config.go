package geobind

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment is a process wide gdal setup, usually loaded from a yaml file:
//
//	config_options:
//	  GDAL_NUM_THREADS: "4"
//	  CPL_DEBUG: "ON"
//	cache_max: 268435456
//	log_level: debug
//	log_format: json
type Environment struct {
	ConfigOptions map[string]string `yaml:"config_options"`
	// CacheMax is the raster block cache size in bytes. Zero leaves gdal's default.
	CacheMax int64 `yaml:"cache_max"`
	// LogLevel is one of debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json. Defaults to text.
	LogFormat string `yaml:"log_format"`
}

// LoadEnvironment reads and parses the yaml file at path
func LoadEnvironment(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	env, err := ParseEnvironment(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}

// ParseEnvironment parses a yaml environment. Unknown keys are rejected.
func ParseEnvironment(data []byte) (*Environment, error) {
	env := &Environment{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(env); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

// Validate checks the log level, log format and cache size
func (env *Environment) Validate() error {
	if _, err := env.level(); err != nil {
		return err
	}
	switch strings.ToLower(env.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", env.LogFormat)
	}
	if env.CacheMax < 0 {
		return fmt.Errorf("negative cache_max %d", env.CacheMax)
	}
	return nil
}

func (env *Environment) level() (slog.Level, error) {
	var lvl slog.Level
	if env.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(env.LogLevel)); err != nil {
		return lvl, fmt.Errorf("unknown log level %q", env.LogLevel)
	}
	return lvl, nil
}

// NewLogger returns a logger writing to w with the environment's level and format
func (env *Environment) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := env.level()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(env.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return slog.New(slog.NewTextHandler(w, hopts)), nil
}

// Apply sets the environment's config options and cache size, and installs a
// logger writing to stderr as the package logger.
func (env *Environment) Apply() error {
	logger, err := env.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(env.ConfigOptions))
	for k := range env.ConfigOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		SetConfigOption(k, env.ConfigOptions[k])
	}
	if env.CacheMax > 0 {
		SetCacheMax(env.CacheMax)
	}
	SetLogger(logger)
	return nil
}
