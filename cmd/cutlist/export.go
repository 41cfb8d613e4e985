package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/millworks/cutlist/internal/engine"
	"github.com/millworks/cutlist/internal/export"
	"github.com/millworks/cutlist/internal/model"
	"github.com/millworks/cutlist/internal/project"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export computed layouts, labels, or a costing workbook",
	}

	cmd.AddCommand(newExportPDFCmd())
	cmd.AddCommand(newExportXLSXCmd())
	cmd.AddCommand(newExportLabelsCmd())
	return cmd
}

func newExportPDFCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export sheet layout diagrams as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, itemID, storeDir, outPath, export.LayoutPDF)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to export (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVarP(&outPath, "out", "o", "cutlist.pdf", "output file path")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newExportXLSXCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Export a costing workbook as XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, itemID, storeDir, outPath, export.CostingWorkbook)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to export (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVarP(&outPath, "out", "o", "cutlist.xlsx", "output file path")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newExportLabelsCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Export QR part labels (Avery 5160) as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, itemID, storeDir, outPath, export.Labels)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to export (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVarP(&outPath, "out", "o", "labels.pdf", "output file path")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// runExport computes the item's summary and hands it to a writer function.
func runExport(cmd *cobra.Command, itemID, storeDir, outPath string,
	write func(string, model.CutlistSummary, model.Snapshot) error) error {

	cfg, err := loadConfig(storeDir)
	if err != nil {
		return err
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

	if err := write(outPath, summary, *snap); err != nil {
		return fmt.Errorf("write %q: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
	return nil
}
