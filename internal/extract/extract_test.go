package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupHTML renders one course group with the cell nested six levels below the group container.
func groupHTML(title string, cells ...string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="group">`)
	sb.WriteString(fmt.Sprintf(`<div class="panel-heading"><a class="accordion-toggle">%s</a></div>`, title))
	sb.WriteString(`<div class="l5"><div class="l4"><div class="l3"><div class="l2">`)
	for _, cell := range cells {
		sb.WriteString(`<div class="l1">` + cell + `</div>`)
	}
	sb.WriteString(`</div></div></div></div></div>`)
	return sb.String()
}

func selectedCell(number, text string) string {
	return fmt.Sprintf(`<div class="courseGroup course-cell-highlight" name="%s">%s</div>`, number, text)
}

func page(groups ...string) string {
	return "<html><body>" + strings.Join(groups, "") + "</body></html>"
}

func TestFromHTML_SingleCourse(t *testing.T) {
	html := page(groupHTML("מבוא למדעי המחשב (תרגיל)", selectedCell("03668812349", "שני 10-12 (תרגיל)")))

	result, err := FromHTML(html, nil)
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)

	c := result.Courses[0]
	assert.Equal(t, "03668812349", c.Number)
	assert.Equal(t, "מבוא למדעי המחשב (תרגיל)", c.Name)
	assert.Equal(t, "(תרגיל)", c.Type)
	assert.Equal(t, "0366", c.DepartmentCode())
}

func TestFromHTML_IgnoresUnselectedCells(t *testing.T) {
	unselected := `<div class="courseGroup" name="03681111000">(שיעור)</div>`
	highlightOnly := `<div class="course-cell-highlight" name="03681111001">(שיעור)</div>`
	html := page(groupHTML("אלגברה (שיעור)", unselected, highlightOnly, selectedCell("03661111002", "(שיעור)")))

	result, err := FromHTML(html, nil)
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "03661111002", result.Courses[0].Number)
}

func TestFromHTML_DocumentOrder(t *testing.T) {
	html := page(
		groupHTML("קורס א (שיעור)", selectedCell("03661111001", "(שיעור)")),
		groupHTML("קורס ב (שיעור)", selectedCell("03681111001", "(שיעור)")),
		groupHTML("קורס ג (תרגיל)", selectedCell("03662222001", "(תרגיל)")),
	)

	result, err := FromHTML(html, nil)
	require.NoError(t, err)
	require.Len(t, result.Courses, 3)
	assert.Equal(t, "03661111001", result.Courses[0].Number)
	assert.Equal(t, "03681111001", result.Courses[1].Number)
	assert.Equal(t, "03662222001", result.Courses[2].Number)
	assert.Equal(t, "קורס ב (שיעור)", result.Courses[1].Name)
}

func TestFromHTML_NoSelection(t *testing.T) {
	result, err := FromHTML(page(groupHTML("x (y)")), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Courses)
	assert.Empty(t, result.Skipped)
}

func TestFromHTML_MissingParentheses(t *testing.T) {
	html := page(groupHTML("סמינר", selectedCell("03661234001", "סמינר ללא סוג")))

	result, err := FromHTML(html, nil)
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	assert.Empty(t, result.Courses[0].Type)
}

func TestFromHTML_ShortNumber(t *testing.T) {
	html := page(groupHTML("x (y)", selectedCell("0366", "(y)")))

	_, err := FromHTML(html, nil)
	require.Error(t, err)

	var merr *MalformedElementError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 0, merr.Index)
	assert.Equal(t, "0366", merr.Number)
}

func TestFromHTML_MissingNumber(t *testing.T) {
	html := page(groupHTML("x (y)", `<div class="courseGroup course-cell-highlight">(y)</div>`))

	_, err := FromHTML(html, nil)
	var merr *MalformedElementError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Error(), "missing name attribute")
}

func TestFromHTML_OutsideGroupContainer(t *testing.T) {
	html := page(selectedCell("03661234001", "(שיעור)"))

	_, err := FromHTML(html, nil)
	require.Error(t, err)

	var merr *MalformedElementError
	require.ErrorAs(t, err, &merr)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestFromHTML_SkipMalformed(t *testing.T) {
	html := page(
		selectedCell("03661234001", "(שיעור)"),
		groupHTML("אינפי (שיעור)", selectedCell("03661234002", "(שיעור)")),
	)

	result, err := FromHTML(html, &Options{SkipMalformed: true})
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "03661234002", result.Courses[0].Number)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "03661234001", result.Skipped[0].Number)
}

type fixedResolver struct{ title string }

func (r fixedResolver) ResolveGroup(_ *goquery.Selection) (Group, error) {
	return Group{Title: r.title}, nil
}

func TestFromHTML_CustomResolver(t *testing.T) {
	html := page(selectedCell("03661234001", "(שיעור)"))

	result, err := FromHTML(html, &Options{Resolver: fixedResolver{title: "קבוע (שיעור)"}})
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "קבוע (שיעור)", result.Courses[0].Name)
}

func TestAncestorResolver_MissingTitle(t *testing.T) {
	html := `<html><body><div><div></div><div><div><div><div><div>` +
		selectedCell("03661234001", "(x)") + `</div></div></div></div></div></div></body></html>`

	_, err := FromHTML(html, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Contains(t, err.Error(), DefaultTitleSelector)
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple", "שני 10-12 (שיעור)", "(שיעור)"},
		{"first pair only", "(שיעור) (תרגיל)", "(שיעור)"},
		{"no parentheses", "שיעור", ""},
		{"open only", "שיעור (", ""},
		{"close before open", ") x (", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeLabel(tt.text))
		})
	}
}
