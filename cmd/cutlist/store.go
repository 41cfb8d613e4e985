package main

import (
	"fmt"

	"github.com/millworks/cutlist/internal/config"
	"github.com/millworks/cutlist/internal/model"
	"github.com/millworks/cutlist/internal/project"
)

// loadConfig resolves tool configuration, honoring an explicit store
// directory flag over the configured one.
func loadConfig(storeDir string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if storeDir != "" {
		cfg.Store.Dir = storeDir
	}
	return cfg, nil
}

// loadSnapshot reads the saved snapshot for an item. A missing or stale
// snapshot is an error at the CLI boundary: there is nothing to operate on.
func loadSnapshot(store project.Store, itemID string) (*model.Snapshot, error) {
	snap, err := store.Load(itemID)
	if err != nil {
		return nil, fmt.Errorf("load item %q: %w", itemID, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("no saved snapshot for item %q", itemID)
	}
	return snap, nil
}

// loadOrNewSnapshot reads the saved snapshot for an item, falling back to a
// fresh snapshot with configured defaults when none exists.
func loadOrNewSnapshot(store project.Store, itemID string, cfg config.Config) (*model.Snapshot, error) {
	snap, err := store.Load(itemID)
	if err != nil {
		return nil, fmt.Errorf("load item %q: %w", itemID, err)
	}
	if snap == nil {
		fresh := model.NewSnapshot()
		fresh.KerfMM = cfg.Defaults.KerfMM
		fresh.Priority = model.OptimizationPriority(cfg.Defaults.Priority)
		snap = &fresh
	}
	return snap, nil
}
