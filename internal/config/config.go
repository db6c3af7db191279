// Package config loads wayfarer's process configuration from a JSON file,
// with WAYFARER_* environment-variable overrides for the values most often
// changed at deploy time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds wayfarer's process configuration (SPEC_FULL.md §6.4).
type Config struct {
	IP               string `json:"ip"`
	Port             int    `json:"port"`
	LogLevel         string `json:"log_level"`
	GraphFilePath    string `json:"graph_file_path"`
	RoutingAlgorithm string `json:"routing_algorithm"`
}

// defaults mirror what a fresh checkout can run with no config file at all.
func defaults() Config {
	return Config{
		IP:               "0.0.0.0",
		Port:             8080,
		LogLevel:         "info",
		GraphFilePath:    "./graph.fmi",
		RoutingAlgorithm: "Greedy",
	}
}

// Load reads a JSON config file at path, falling back to defaults for any
// field the file omits, then applies WAYFARER_* environment overrides. An
// empty path skips the file and uses defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.IP = envStr("WAYFARER_IP", cfg.IP)
	cfg.Port = envInt("WAYFARER_PORT", cfg.Port)
	cfg.LogLevel = envStr("WAYFARER_LOG_LEVEL", cfg.LogLevel)
	cfg.GraphFilePath = envStr("WAYFARER_GRAPH_FILE_PATH", cfg.GraphFilePath)
	cfg.RoutingAlgorithm = envStr("WAYFARER_ROUTING_ALGORITHM", cfg.RoutingAlgorithm)

	return &cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
