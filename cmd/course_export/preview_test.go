package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceNumber swaps the course number of testPage-style fixtures.
func replaceNumber(html, number string) string {
	return strings.Replace(html, `name="03668812349"`, `name="`+number+`"`, 1)
}

func TestRunPreview(t *testing.T) {
	previewSource.reset()
	t.Cleanup(previewSource.reset)
	stdout, _ := prepare(t, previewCmd)

	previewSource.html = writePage(t, testPage)

	require.NoError(t, runPreview(previewCmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "0366 מתמטיקה")
	assert.Contains(t, out, "03668812349")
	assert.Contains(t, out, "(תרגיל)")
}

func TestRunPreview_ListsUnknownDepartments(t *testing.T) {
	previewSource.reset()
	t.Cleanup(previewSource.reset)
	stdout, _ := prepare(t, previewCmd)

	previewSource.html = writePage(t, replaceNumber(testPage, "99998812349"))

	require.NoError(t, runPreview(previewCmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "9999 (unknown)")
	assert.Contains(t, out, `unknown department: "9999"`)
}

func TestRunPreview_NoSelection(t *testing.T) {
	previewSource.reset()
	t.Cleanup(previewSource.reset)
	stdout, _ := prepare(t, previewCmd)

	previewSource.html = writePage(t, strings.ReplaceAll(testPage, "course-cell-highlight", ""))

	require.NoError(t, runPreview(previewCmd, nil))
	assert.Contains(t, stdout.String(), "No selected courses found.")
}
