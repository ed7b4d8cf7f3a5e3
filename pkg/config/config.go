// Package config loads the app's yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the app.
type Config struct {
	User struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"user"`
	Google struct {
		CredentialsPath string `yaml:"credentials_path"`
		TokenPath       string `yaml:"token_path"`
		CalendarID      string `yaml:"calendar_id"`
		// SpreadsheetID overrides the cached spreadsheet and skips creation.
		SpreadsheetID string `yaml:"spreadsheet_id"`
	} `yaml:"google"`
	CachePath string `yaml:"cache_path"`
	LogPath   string `yaml:"log_path"`
	TimeZone  string `yaml:"time_zone"`
}

// Load reads the config file at path, filling in sane defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config at %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config at %s: %w", path, err)
	}

	if cfg.User.ID == "" {
		return nil, fmt.Errorf("config at %s is missing user.id", path)
	}

	dir := filepath.Dir(path)

	if cfg.Google.CredentialsPath == "" {
		cfg.Google.CredentialsPath = filepath.Join(dir, "credentials.json")
	}

	if cfg.Google.TokenPath == "" {
		cfg.Google.TokenPath = filepath.Join(dir, "token.json")
	}

	if cfg.Google.CalendarID == "" {
		cfg.Google.CalendarID = "primary"
	}

	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(dir, "lifequest.sqlite")
	}

	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, "lifequest.log")
	}

	if cfg.TimeZone == "" {
		cfg.TimeZone = "UTC"
	}

	return &cfg, nil
}
