package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML page/font configuration for the CLI.
type Config struct {
	Page struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Font struct {
		Path string  `yaml:"path"`
		Size float64 `yaml:"size"`
	} `yaml:"font"`
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.Page.Width = 800
	cfg.Page.Height = 600
	cfg.Font.Size = 16
	return cfg
}

// LoadConfig reads a YAML config file over the defaults. Zero-valued fields
// in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, err
	}
	if loaded.Page.Width > 0 {
		cfg.Page.Width = loaded.Page.Width
	}
	if loaded.Page.Height > 0 {
		cfg.Page.Height = loaded.Page.Height
	}
	if loaded.Font.Path != "" {
		cfg.Font.Path = loaded.Font.Path
	}
	if loaded.Font.Size > 0 {
		cfg.Font.Size = loaded.Font.Size
	}
	return cfg, nil
}
