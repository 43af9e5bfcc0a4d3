package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/course-export/internal/config"
	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/server"
	"github.com/jonathan/course-export/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

// EnvMaxConcurrent bounds concurrent exports when --max-concurrent is not set.
const EnvMaxConcurrent = "EXPORT_MAX_CONCURRENT"

var (
	servePort          int
	serveMaxConcurrent int
	serveDepartments   string
	serveVerbose       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the export HTTP server",
	Long: `Start an HTTP server that accepts registration pages on POST /export and answers with the report
as a file download. GET /userscript.js returns a userscript that adds the export button to the page.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().IntVar(&serveMaxConcurrent, "max-concurrent", 0, "Maximum concurrent exports (overrides "+EnvMaxConcurrent+", default 4)")
	serveCmd.Flags().StringVar(&serveDepartments, "departments", "", "JSON or YAML file overriding department names (overrides "+config.EnvDepartments+")")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log every request and export")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	maxConcurrent := serveMaxConcurrent
	if maxConcurrent == 0 {
		if v := os.Getenv(EnvMaxConcurrent); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("%s must be a positive integer, got %q", EnvMaxConcurrent, v)
			}
			maxConcurrent = n
		}
	}

	override := serveDepartments
	if override == "" {
		override = os.Getenv(config.EnvDepartments)
	}
	table, err := departments.LoadWithOverride(override)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:          servePort,
		Table:         table,
		MaxConcurrent: int64(maxConcurrent),
		RateLimit:     ratelimit.LoadConfig(),
		Verbose:       serveVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
