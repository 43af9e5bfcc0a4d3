package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/course-export/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><body>
<div><div><div><div><div><div>
  <div><a class="accordion-toggle"> מבוא למדעי המחשב (תרגיל) </a></div>
  <div><div><div><div><div>
    <div class="courseGroup course-cell-highlight" name="03668812349">קבוצה 01 (תרגיל)</div>
  </div></div></div></div></div>
</div></div></div></div></div></div>
</body></html>`

const testReport = "מתמטיקה\n6\t6\t3\t0\t\n----------------------------\n" +
	"4\t3\t2\t1\t8\t8\t6\t6\t3\t0\t9\t9\t9\tמבוא למדעי המחשב - (תרגיל)\n\n\n"

// getBinaryPath returns the path to the course_export binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "course_export"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// writePage saves html to a temporary registration page.
func writePage(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registration.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}

// clearEnv keeps the developer's .env from leaking into command tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvCookie, config.EnvDepartments, config.EnvOutDir, EnvMaxConcurrent} {
		t.Setenv(key, "")
	}
}

// prepare wires buffers and a context into cmd the way Execute would.
func prepare(t *testing.T, cmd *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return &stdout, &stderr
}
