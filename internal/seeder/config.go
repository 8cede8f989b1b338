package seeder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config selects the CSV directory and the tables to load, in load order.
type Config struct {
	// Dir holds one <table>.csv per table, header row first.
	Dir    string   `yaml:"dir"     env:"SEEDER_DIR"     env-default:"./data"`
	Tables []string `yaml:"tables"  env:"SEEDER_TABLES"  env-default:"authors,users,posts,post_metadata,engagements"`
	DryRun bool     `yaml:"dry_run" env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads path when given, otherwise the environment alone.
// Environment variables override the file; tag defaults fill the rest.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	read := func() error { return cleanenv.ReadEnv(&cfg) }
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seeder config: %s: %w", path, err)
		}
		read = func() error { return cleanenv.ReadConfig(path, &cfg) }
	}

	if err := read(); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}
	if len(cfg.Tables) == 0 {
		return nil, errors.New("seeder config: no tables")
	}
	return &cfg, nil
}
