// Package serverconfig loads cmd/stringspace-server's configuration,
// following the teacher's config.go precedence chain (defaults, then a
// config file, then explicit CLI overrides) simplified from four
// locations to one: a single daemon has no per-project/per-user split.
package serverconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds the daemon's runtime configuration.
type Config struct {
	ListenAddr   string `json:"listen_addr"`   //nolint:tagliatelle // snake_case for config file
	DataFile     string `json:"data_file"`     //nolint:tagliatelle // snake_case for config file
	DefaultLimit int    `json:"default_limit"` //nolint:tagliatelle // snake_case for config file
	LogJSON      bool   `json:"log_json"`      //nolint:tagliatelle // snake_case for config file
}

// Default returns the configuration used when no file or flags override
// it.
func Default() Config {
	return Config{
		ListenAddr:   ":9315",
		DataFile:     "stringspace.data",
		DefaultLimit: 15,
		LogJSON:      false,
	}
}

// LoadFile reads a HuJSON (JSON with comments and trailing commas) config
// file at path and merges any fields it sets over base. A field absent
// from the file, or set to its Go zero value, leaves base's value
// unchanged - matching the teacher's mergeConfig "only override non-empty
// fields" behavior.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is operator-configured
	if err != nil {
		return Config{}, fmt.Errorf("serverconfig: reading %s: %w", path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("serverconfig: parsing %s: %w", path, err)
	}

	var fileCfg Config

	if err := json.Unmarshal(std, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("serverconfig: decoding %s: %w", path, err)
	}

	return merge(base, fileCfg), nil
}

// merge overlays any non-zero field of override onto base.
func merge(base, override Config) Config {
	out := base

	if override.ListenAddr != "" {
		out.ListenAddr = override.ListenAddr
	}

	if override.DataFile != "" {
		out.DataFile = override.DataFile
	}

	if override.DefaultLimit != 0 {
		out.DefaultLimit = override.DefaultLimit
	}

	if override.LogJSON {
		out.LogJSON = true
	}

	return out
}
