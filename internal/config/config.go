package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfig   = "SAI_CONFIG"
	EnvDataFile = "SAI_DATA_FILE"

	DefaultDataFile = "./data/sai.txt"
)

type Config struct {
	DataFile     string `yaml:"data_file"`
	AtomicWrites bool   `yaml:"atomic_writes"`
	Color        bool   `yaml:"color"`
}

func Default() Config {
	return Config{
		DataFile: DefaultDataFile,
		Color:    true,
	}
}

// Path returns the config file location: $SAI_CONFIG, else ~/.sai/config.yaml.
func Path() string {
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return ExpandHome(env)
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join(".sai", "config.yaml")
	}
	return filepath.Join(home, ".sai", "config.yaml")
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if env := strings.TrimSpace(os.Getenv(EnvDataFile)); env != "" {
		cfg.DataFile = env
	}
	if strings.TrimSpace(cfg.DataFile) == "" {
		cfg.DataFile = DefaultDataFile
	}
	cfg.DataFile = ExpandHome(cfg.DataFile)
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
