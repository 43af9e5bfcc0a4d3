package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/course-export/internal/export"
	"github.com/jonathan/course-export/internal/observability"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the selected courses grouped by department",
	Long:  "Read a course-registration page and print the courses that would be exported, without writing a report.",
	RunE:  runPreview,
}

var previewSource sourceFlags

func init() {
	previewSource.register(previewCmd)
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := previewSource.resolve("", "")
	if err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	html, err := loadPage(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	// Unknown departments are listed rather than rejected so the whole page can be inspected.
	session := export.NewSession(table, &export.Options{
		SkipInvalid: true,
		Verbose:     cfg.Verbose,
	})
	plan, err := session.Build(strings.NewReader(html))
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintGroups(plan.Groups, table)
	for _, s := range plan.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠ %s\n", s) //nolint:errcheck // writing to stdout
	}
	return nil
}
