// Package config loads tool configuration from an optional YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/millworks/cutlist/internal/engine"
	"github.com/millworks/cutlist/internal/model"
	"github.com/millworks/cutlist/internal/project"
)

// Config defines cutlist tool configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Store    StoreConfig    `yaml:"store"`
	Costing  CostingConfig  `yaml:"costing"`
}

type DefaultsConfig struct {
	KerfMM     float64 `yaml:"kerf_mm"`
	Priority   string  `yaml:"priority"`
	DeepBudget int     `yaml:"deep_budget"`
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

type CostingConfig struct {
	DBPath string `yaml:"db_path"`
}

// Load reads configuration from an optional YAML file and environment
// variables. CUTLIST_CONFIG_PATH names the file; CUTLIST_KERF_MM,
// CUTLIST_PRIORITY, CUTLIST_DEEP_BUDGET, CUTLIST_STORE_DIR, and
// CUTLIST_COSTING_DB override individual values.
func Load() (Config, error) {
	storeDir := "items"
	if d, err := project.DefaultStoreDir(); err == nil {
		storeDir = d
	}

	cfg := Config{
		Defaults: DefaultsConfig{
			KerfMM:     3.2,
			Priority:   string(model.PriorityFast),
			DeepBudget: engine.DeepBudget,
		},
		Store: StoreConfig{
			Dir: storeDir,
		},
		Costing: CostingConfig{
			DBPath: "costing.db",
		},
	}

	if path := os.Getenv("CUTLIST_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if kerfStr := os.Getenv("CUTLIST_KERF_MM"); kerfStr != "" {
		kerf, err := strconv.ParseFloat(kerfStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CUTLIST_KERF_MM: %w", err)
		}
		cfg.Defaults.KerfMM = kerf
	}
	if priority := os.Getenv("CUTLIST_PRIORITY"); priority != "" {
		cfg.Defaults.Priority = priority
	}
	if budgetStr := os.Getenv("CUTLIST_DEEP_BUDGET"); budgetStr != "" {
		budget, err := strconv.Atoi(budgetStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CUTLIST_DEEP_BUDGET: %w", err)
		}
		cfg.Defaults.DeepBudget = budget
	}
	if dir := os.Getenv("CUTLIST_STORE_DIR"); dir != "" {
		cfg.Store.Dir = dir
	}
	if dbPath := os.Getenv("CUTLIST_COSTING_DB"); dbPath != "" {
		cfg.Costing.DBPath = dbPath
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch model.OptimizationPriority(c.Defaults.Priority) {
	case model.PriorityFast, model.PriorityOffcut, model.PriorityDeep:
	default:
		return fmt.Errorf("invalid priority %q (expected fast, offcut, or deep)", c.Defaults.Priority)
	}
	if c.Defaults.KerfMM < 0 {
		return fmt.Errorf("kerf_mm must not be negative, got %g", c.Defaults.KerfMM)
	}
	if c.Defaults.DeepBudget < 1 {
		return fmt.Errorf("deep_budget must be at least 1, got %d", c.Defaults.DeepBudget)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
