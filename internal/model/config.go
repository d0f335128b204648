package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Sources defines where each dashboard dataset is loaded from
type Sources struct {
	Launches string `json:"launches"` // csv path or URL
	Sales    string `json:"sales"`    // csv path or URL
}

// ServerConfig defines the HTTP adapter settings
type ServerConfig struct {
	Addr         string `json:"addr"`
	ReadTimeout  string `json:"readTimeout"`  // e.g., "15s"
	WriteTimeout string `json:"writeTimeout"` // e.g., "15s"
	LoadTimeout  string `json:"loadTimeout"`  // dataset download limit
}

// CacheConfig defines the in-memory report cache
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"` // shared-cache database name
}

// DashboardConfig is the full configuration of the dashboard service
type DashboardConfig struct {
	Sources Sources      `json:"sources"`
	Server  ServerConfig `json:"server"`
	Cache   CacheConfig  `json:"cache"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() DashboardConfig {
	return DashboardConfig{
		Sources: Sources{
			Launches: "spacex_launch_dash.csv",
			Sales:    "https://cf-courses-data.s3.us.cloud-object-storage.appdomain.cloud/IBMDeveloperSkillsNetwork-DV0101EN-SkillsNetwork/Data%20Files/historical_automobile_sales.csv",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "15s",
			LoadTimeout:  "1m",
		},
		Cache: CacheConfig{
			Enabled: true,
			Name:    "dashboard",
		},
	}
}

// LoadConfig reads a JSON config file over DefaultConfig. Fields absent from
// the file keep their defaults. An empty path returns the defaults.
func LoadConfig(path string) (DashboardConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
