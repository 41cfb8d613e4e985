package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/millworks/cutlist/internal/engine"
	"github.com/millworks/cutlist/internal/model"
	"github.com/millworks/cutlist/internal/project"
)

func newComputeCmd() *cobra.Command {
	var (
		itemID     string
		storeDir   string
		priority   string
		kerfMM     float64
		deepBudget int
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the cutlist for a saved item",
		Long:  "Loads the item's snapshot, packs its parts onto sheets, and prints the sheet, edging, and backer summary. Flags override the snapshot's saved settings for this run only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, itemID, storeDir, priority, kerfMM, deepBudget)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to compute (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "optimization priority: fast, offcut, or deep")
	cmd.Flags().Float64VarP(&kerfMM, "kerf", "k", -1, "saw kerf in mm")
	cmd.Flags().IntVar(&deepBudget, "deep-budget", 0, "candidate layouts per material for the deep strategy")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func runCompute(cmd *cobra.Command, itemID, storeDir, priority string, kerfMM float64, deepBudget int) error {
	cfg, err := loadConfig(storeDir)
	if err != nil {
		return err
	}

	store := project.NewFileStore(cfg.Store.Dir)
	snap, err := loadSnapshot(store, itemID)
	if err != nil {
		return err
	}

	if priority != "" {
		switch p := model.OptimizationPriority(priority); p {
		case model.PriorityFast, model.PriorityOffcut, model.PriorityDeep:
			snap.Priority = p
		default:
			return fmt.Errorf("invalid priority %q (expected fast, offcut, or deep)", priority)
		}
	}
	if kerfMM >= 0 {
		snap.KerfMM = kerfMM
	}

	opts := engine.Options{DeepBudget: cfg.Defaults.DeepBudget}
	if deepBudget > 0 {
		opts.DeepBudget = deepBudget
	}

	summary, err := engine.ComputeWithOptions(cmd.Context(), *snap, opts)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary, snap)
	return nil
}
