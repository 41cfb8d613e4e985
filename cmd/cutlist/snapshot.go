package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/millworks/cutlist/internal/model"
	"github.com/millworks/cutlist/internal/project"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and edit an item's saved snapshot",
	}

	cmd.AddCommand(newSnapshotShowCmd())
	cmd.AddCommand(newSnapshotSetCmd())
	return cmd
}

func newSnapshotShowCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print an item's snapshot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(storeDir)
			if err != nil {
				return err
			}
			store := project.NewFileStore(cfg.Store.Dir)
			snap, err := loadSnapshot(store, itemID)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to show (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newSnapshotSetCmd() *cobra.Command {
	var (
		itemID     string
		storeDir   string
		kerfMM     float64
		priority   string
		lamination string
		backerID   string
		globalFull string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update an item's snapshot settings",
		Long:  "Updates kerf, priority, lamination, backer material, or global full-board billing on the saved snapshot. Creates the snapshot with configured defaults if the item has none.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotSet(cmd, itemID, storeDir, kerfMM, priority, lamination, backerID, globalFull)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to update (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().Float64VarP(&kerfMM, "kerf", "k", -1, "saw kerf in mm")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "optimization priority: fast, offcut, or deep")
	cmd.Flags().StringVar(&lamination, "lamination", "", "lamination on or off")
	cmd.Flags().StringVar(&backerID, "backer", "", "backer board material id")
	cmd.Flags().StringVar(&globalFull, "full-board", "", "bill all sheets as full: on or off")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func runSnapshotSet(cmd *cobra.Command, itemID, storeDir string, kerfMM float64,
	priority, lamination, backerID, globalFull string) error {

	cfg, err := loadConfig(storeDir)
	if err != nil {
		return err
	}
	store := project.NewFileStore(cfg.Store.Dir)
	snap, err := loadOrNewSnapshot(store, itemID, cfg)
	if err != nil {
		return err
	}

	if kerfMM >= 0 {
		snap.KerfMM = kerfMM
	}
	if priority != "" {
		switch p := model.OptimizationPriority(priority); p {
		case model.PriorityFast, model.PriorityOffcut, model.PriorityDeep:
			snap.Priority = p
		default:
			return fmt.Errorf("invalid priority %q (expected fast, offcut, or deep)", priority)
		}
	}
	if lamination != "" {
		on, err := parseOnOff(lamination)
		if err != nil {
			return fmt.Errorf("invalid --lamination: %w", err)
		}
		snap.LaminationOn = on
	}
	if backerID != "" {
		snap.BackerMaterialID = backerID
	}
	if globalFull != "" {
		on, err := parseOnOff(globalFull)
		if err != nil {
			return fmt.Errorf("invalid --full-board: %w", err)
		}
		snap.GlobalFullBoard = on
	}

	if err := store.Save(itemID, snap); err != nil {
		return fmt.Errorf("save item %q: %w", itemID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot for %s\n", itemID)
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
