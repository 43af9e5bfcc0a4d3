package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/course-export/internal/config"
	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/fetch"
	"github.com/spf13/cobra"
)

// sourceFlags are the flags shared by commands that read a registration page.
type sourceFlags struct {
	html        string
	url         string
	cookie      string
	departments string
	configFile  string
	browser     bool
	skipInvalid bool
	verbose     bool
	timeout     int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.html, "html", "f", "", "Path to a saved registration page")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "URL of the registration page")
	cmd.Flags().StringVar(&f.cookie, "cookie", "", "Session cookie sent with --url (overrides COURSE_EXPORT_COOKIE)")
	cmd.Flags().BoolVar(&f.browser, "browser", false, "Render --url in a headless browser when the course grid is built client-side")
	cmd.Flags().StringVar(&f.departments, "departments", "", "JSON or YAML file overriding department names")
	cmd.Flags().BoolVar(&f.skipInvalid, "skip-invalid", false, "Skip malformed courses and unknown departments instead of failing")
	cmd.Flags().IntVar(&f.timeout, "timeout", 0, "Fetch timeout in seconds (default 30)")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to a JSON or YAML config file")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")

	cmd.MarkFlagsMutuallyExclusive("html", "url")
}

func (f *sourceFlags) reset() {
	*f = sourceFlags{}
}

// resolve merges flags over the config file over the environment.
func (f *sourceFlags) resolve(out, filename string) (config.Config, error) {
	cfg := config.Config{
		HTML:           f.html,
		URL:            f.url,
		Out:            out,
		Filename:       filename,
		Departments:    f.departments,
		Cookie:         f.cookie,
		UseBrowser:     f.browser,
		SkipInvalid:    f.skipInvalid,
		Verbose:        f.verbose,
		TimeoutSeconds: f.timeout,
	}

	if f.configFile != "" {
		fileCfg, err := config.LoadConfig(f.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.HTML == "" && cfg.URL == "" {
		return config.Config{}, fmt.Errorf("either --html or --url is required")
	}
	return cfg, nil
}

func loadTable(cfg config.Config) (*departments.Table, error) {
	table, err := departments.LoadWithOverride(cfg.Departments)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] Department table: %d entries", table.Len())
	}
	return table, nil
}

func loadPage(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.HTML != "" {
		result, err := fetch.File(cfg.HTML)
		if err != nil {
			return "", err
		}
		if cfg.Verbose {
			log.Printf("[VERBOSE] Read %s: %d bytes", cfg.HTML, len(result.HTML))
		}
		return result.HTML, nil
	}

	opts := fetch.DefaultOptions()
	opts.Cookie = cfg.Cookie
	if timeout := cfg.Timeout(); timeout > 0 {
		opts.Timeout = timeout
	}
	return fetch.Page(ctx, cfg.URL, opts, cfg.UseBrowser, cfg.Verbose)
}
