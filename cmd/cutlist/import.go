package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/millworks/cutlist/internal/importer"
	"github.com/millworks/cutlist/internal/project"
)

func newImportCmd() *cobra.Command {
	var (
		itemID   string
		storeDir string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import parts from a CSV, XLSX, or DXF file into an item",
		Long:  "Appends parts parsed from FILE to the item's snapshot and saves it. The format is inferred from the file extension unless --format is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], itemID, storeDir, format)
		},
	}

	cmd.Flags().StringVarP(&itemID, "item", "i", "", "item id to import into (required)")
	cmd.Flags().StringVar(&storeDir, "store", "", "snapshot store directory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "file format: csv, xlsx, or dxf (default: by extension)")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func runImport(cmd *cobra.Command, path, itemID, storeDir, format string) error {
	cfg, err := loadConfig(storeDir)
	if err != nil {
		return err
	}

	if format == "" {
		switch {
		case strings.HasSuffix(strings.ToLower(path), ".csv"):
			format = "csv"
		case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
			format = "xlsx"
		case strings.HasSuffix(strings.ToLower(path), ".dxf"):
			format = "dxf"
		default:
			return fmt.Errorf("cannot infer format of %q, pass --format csv, xlsx, or dxf", path)
		}
	}

	var result importer.ImportResult
	switch format {
	case "csv":
		result = importer.ImportCSV(path)
	case "xlsx":
		result = importer.ImportXLSX(path)
	case "dxf":
		result = importer.ImportDXF(path)
	default:
		return fmt.Errorf("unknown format %q (expected csv, xlsx, or dxf)", format)
	}

	if len(result.Parts) == 0 && len(result.Errors) > 0 {
		printImportResult(cmd.OutOrStdout(), 0, result.Errors, result.Warnings)
		return fmt.Errorf("no parts imported from %q", path)
	}

	store := project.NewFileStore(cfg.Store.Dir)
	snap, err := loadOrNewSnapshot(store, itemID, cfg)
	if err != nil {
		return err
	}

	snap.Parts = append(snap.Parts, result.Parts...)
	if err := store.Save(itemID, snap); err != nil {
		return fmt.Errorf("save item %q: %w", itemID, err)
	}

	printImportResult(cmd.OutOrStdout(), len(result.Parts), result.Errors, result.Warnings)
	return nil
}
