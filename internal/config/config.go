package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "RECALLPAD_"

// Config holds the runtime settings. Values layer in order: defaults, config
// file, environment, command-line flags.
type Config struct {
	Addr         string `koanf:"addr" validate:"required"`
	DB           string `koanf:"db" validate:"required"`
	NotesPerPage int    `koanf:"notes_per_page" validate:"min=1"`
	CardsPerPage int    `koanf:"cards_per_page" validate:"min=1"`
	BackupDir    string `koanf:"backup_dir" validate:"required"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DB:           "recallpad.db",
		NotesPerPage: 20,
		CardsPerPage: 1,
		BackupDir:    "backups",
	}
}

// Load assembles the configuration from an optional YAML file, the
// environment, and the given flag set, then validates it.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return key, value
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to read flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
