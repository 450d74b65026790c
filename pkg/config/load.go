package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file
// Variables from the given .env files (default ".env" if none given) are loaded first; a missing file is not an error.
// ${VAR} references in host and credential fields are then expanded from the environment,
// so API keys can stay out of the YAML file.
// The result is not validated.
func Load(path string, envFiles ...string) (*AppConfig, error) {
	if err := LoadEnv(envFiles...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}
	return Parse(data)
}

// LoadEnv loads variables from the given .env files, ".env" if none are given.
// Missing files are skipped and variables already set in the environment win.
func LoadEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading env file '%s': %w", envFile, err)
		}
	}
	return nil
}

// Parse decodes YAML config content and expands environment references in site credentials
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	for key, site := range cfg.Sites {
		site.Host = os.ExpandEnv(site.Host)
		site.APIKey = os.ExpandEnv(site.APIKey)
		site.APIKeyLocation = os.ExpandEnv(site.APIKeyLocation)
		cfg.Sites[key] = site
	}
	return &cfg, nil
}
