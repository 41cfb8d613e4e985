package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/millworks/cutlist/internal/costing"
	"github.com/millworks/cutlist/internal/engine"
	"github.com/millworks/cutlist/internal/project"
)

func newCostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage quote line items derived from cutlists",
	}

	cmd.AddCommand(newCostExportCmd())
	cmd.AddCommand(newCostLinesCmd())
	return cmd
}

func newCostExportCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
		dbPath   string
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an item's cutlist as quote line items",
		Long:  "Computes the item's cutlist and writes one line per board material, edging material, backer, and banding tape aggregate into the costing database. Replace mode removes the item's previously exported lines first; append mode adds alongside them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCostExport(cmd, itemID, storeDir, dbPath, mode)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to export (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVar(&dbPath, "db", "", "costing database path")
	cmd.Flags().StringVarP(&mode, "mode", "m", "replace", "export mode: replace or append")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func runCostExport(cmd *cobra.Command, itemID, storeDir, dbPath, mode string) error {
	var exportMode costing.ExportMode
	switch mode {
	case "replace":
		exportMode = costing.ModeReplace
	case "append":
		exportMode = costing.ModeAppend
	default:
		return fmt.Errorf("invalid mode %q (expected replace or append)", mode)
	}

	cfg, err := loadConfig(storeDir)
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.Costing.DBPath
	}

	store := project.NewFileStore(cfg.Store.Dir)
	snap, err := loadSnapshot(store, itemID)
	if err != nil {
		return err
	}

	summary, err := engine.ComputeWithOptions(cmd.Context(), *snap,
		engine.Options{DeepBudget: cfg.Defaults.DeepBudget})
	if err != nil {
		return err
	}

	db, err := costing.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	refs, err := db.Export(itemID, summary, *snap, exportMode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported %d line items for %s (%s mode)\n", len(refs), itemID, mode)
	slots := make([]string, 0, len(refs))
	for slot := range refs {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		fmt.Fprintf(out, "  %-24s line %d\n", slot, refs[slot])
	}
	return nil
}

func newCostLinesCmd() *cobra.Command {
	var (
		itemID string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "lines",
		Short: "List an item's quote line items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCostLines(cmd, itemID, dbPath)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to list (required)")
	cmd.Flags().StringVar(&dbPath, "db", "", "costing database path")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func runCostLines(cmd *cobra.Command, itemID, dbPath string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.Costing.DBPath
	}

	db, err := costing.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	lines, err := db.Lines(itemID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lines) == 0 {
		fmt.Fprintf(out, "No line items for %s\n", itemID)
		return nil
	}
	var total float64
	for _, l := range lines {
		fmt.Fprintf(out, "%-24s %-40s %8.3f %-6s @ %8.2f = %10.2f\n",
			l.Slot, l.Description, l.Quantity, l.Unit, l.UnitCost, l.TotalCost)
		total += l.TotalCost
	}
	fmt.Fprintf(out, "%-73s total %10.2f\n", "", total)
	return nil
}
