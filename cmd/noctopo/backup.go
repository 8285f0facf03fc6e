package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored panel topology as a backup",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored panel topology with a backup and save it",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "backup format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "backup format (default: from file extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	if err := a.svc.Export(out, exportFormat); err != nil {
		return err
	}
	if exportOutput != "" {
		a.logger.Info("panel exported", zap.String("file", exportOutput), zap.String("format", exportFormat))
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	format := importFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(args[0]), ".")
	}
	if err := a.svc.Import(f, format); err != nil {
		return err
	}
	if err := a.svc.Save(cmd.Context()); err != nil {
		return err
	}

	view := a.svc.View()
	a.logger.Info("panel imported",
		zap.String("file", args[0]),
		zap.Int("nodes", len(view.Nodes)),
		zap.Int("edges", len(view.Edges)))
	return nil
}
