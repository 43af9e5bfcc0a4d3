package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/observability"
	"github.com/spf13/cobra"
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List the department table",
	RunE:  runDepartments,
}

var (
	departmentsFaculty  string
	departmentsOverride string
	departmentsJSON     bool
)

func init() {
	departmentsCmd.Flags().StringVar(&departmentsFaculty, "faculty", "", "Only list departments of this faculty")
	departmentsCmd.Flags().StringVar(&departmentsOverride, "departments", "", "JSON or YAML file overriding department names")
	departmentsCmd.Flags().BoolVar(&departmentsJSON, "json", false, "Print the table as JSON")

	rootCmd.AddCommand(departmentsCmd)
}

func runDepartments(cmd *cobra.Command, _ []string) error {
	table, err := departments.LoadWithOverride(departmentsOverride)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	if departmentsJSON {
		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal departments: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data)) //nolint:errcheck // writing to stdout
		return nil
	}

	if departmentsFaculty != "" && len(table.ByFaculty(departmentsFaculty)) == 0 {
		return fmt.Errorf("no departments for faculty %q", departmentsFaculty)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintDepartments(table, departmentsFaculty)
	return nil
}
