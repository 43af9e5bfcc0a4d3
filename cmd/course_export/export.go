package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/course-export/internal/export"
	"github.com/jonathan/course-export/internal/observability"
	"github.com/jonathan/course-export/internal/sink"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selected courses as a tab-separated report",
	Long: `Read a course-registration page, collect the highlighted (selected) courses, group them by
department and write the report to --out (a directory, or "-" for stdout).`,
	RunE: runExport,
}

var (
	exportSource   sourceFlags
	exportOut      string
	exportFilename string
)

func init() {
	exportSource.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory, or - for stdout (default \".\")")
	exportCmd.Flags().StringVar(&exportFilename, "filename", "", "Report file name (default \""+sink.DefaultFilename+"\")")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := exportSource.resolve(exportOut, exportFilename)
	if err != nil {
		return err
	}
	if cfg.Out == "" {
		cfg.Out = "."
	}

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	html, err := loadPage(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	session := export.NewSession(table, &export.Options{
		Filename:    cfg.Filename,
		SkipInvalid: cfg.SkipInvalid,
		Verbose:     cfg.Verbose,
	})

	// The report owns stdout when writing there; the summary goes to stderr.
	factory := sink.FileFactory(cfg.Out)
	summaryOut := cmd.OutOrStdout()
	if cfg.Out == "-" {
		factory = sink.WriterFactory(cmd.OutOrStdout())
		summaryOut = cmd.ErrOrStderr()
	}

	summary, err := session.Run(cmd.Context(), strings.NewReader(html), factory)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	location := "stdout"
	if cfg.Out != "-" {
		location = filepath.Join(cfg.Out, summary.Filename)
	}
	observability.NewPrinter(summaryOut).PrintSummary(summary, location)
	return nil
}
