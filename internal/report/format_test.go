package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/course-export/internal/departments"
	"github.com/jonathan/course-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *departments.Table {
	return departments.New(map[string]types.Department{
		"0366": {Name: "מתמטיקה", Faculty: "מדעים מדויקים"},
		"0368": {Name: "מדעי המחשב", Faculty: "מדעים מדויקים"},
	})
}

func TestFormat_SingleCourse(t *testing.T) {
	courses := []types.Course{
		{Number: "03668812349", Name: "מבוא למדעי המחשב (תרגיל)", Type: "(תרגיל)"},
	}

	out, err := FormatCourses(courses, testTable(), nil)
	require.NoError(t, err)

	want := "מתמטיקה\n" +
		"6\t6\t3\t0\t\n" +
		"----------------------------\n" +
		"4\t3\t2\t1\t8\t8\t6\t6\t3\t0\t9\t9\t9\tמבוא למדעי המחשב - (תרגיל)\n" +
		"\n\n"
	if diff := cmp.Diff(want, out.Text); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, out.Departments)
	assert.Equal(t, 1, out.Courses)
	assert.Empty(t, out.UnknownCodes)
}

func TestRow_SegmentOrder(t *testing.T) {
	row := Row(types.Course{Number: "036612340099", Name: "אינפי 1 (שיעור)", Type: "(שיעור)"})

	// last-2 of the first ten characters, then the first eight, each reversed
	assert.True(t, strings.HasPrefix(row, "0\t0\t4\t3\t2\t1\t6\t6\t3\t0\t9\t9\t9\t"))
	assert.True(t, strings.HasSuffix(row, "אינפי 1 - (שיעור)\n"))
}

func TestFormat_GroupsSameDepartment(t *testing.T) {
	courses := []types.Course{
		{Number: "03661111001", Name: "אלגברה (שיעור)", Type: "(שיעור)"},
		{Number: "03681111001", Name: "מבני נתונים (שיעור)", Type: "(שיעור)"},
		{Number: "03662222002", Name: "אינפי (תרגיל)", Type: "(תרגיל)"},
	}

	out, err := FormatCourses(courses, testTable(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out.Text, "מתמטיקה\n"))
	assert.Equal(t, 1, strings.Count(out.Text, "מדעי המחשב\n"))
	assert.Equal(t, 2, out.Departments)
	assert.Equal(t, 3, out.Courses)

	// first-seen order of departments, extraction order inside a block
	mathIdx := strings.Index(out.Text, "מתמטיקה")
	csIdx := strings.Index(out.Text, "מדעי המחשב")
	algebraIdx := strings.Index(out.Text, "אלגברה")
	infiIdx := strings.Index(out.Text, "אינפי")
	assert.Less(t, mathIdx, csIdx)
	assert.Less(t, algebraIdx, infiIdx)
	assert.Less(t, infiIdx, csIdx)

	block := out.Text[:csIdx]
	assert.Equal(t, 2, strings.Count(block, "9\t9\t9\t"))
}

func TestFormat_UnknownDepartment(t *testing.T) {
	courses := []types.Course{
		{Number: "99991111001", Name: "לא קיים (שיעור)", Type: "(שיעור)"},
	}

	out, err := FormatCourses(courses, testTable(), nil)
	require.Error(t, err)
	assert.Nil(t, out)

	var uerr *UnknownDepartmentError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "9999", uerr.Code)
	assert.Contains(t, err.Error(), "unknown department")
	assert.NotContains(t, err.Error(), "undefined")
}

func TestFormat_SkipUnknown(t *testing.T) {
	courses := []types.Course{
		{Number: "99991111001", Name: "לא קיים (שיעור)", Type: "(שיעור)"},
		{Number: "03661111001", Name: "אלגברה (שיעור)", Type: "(שיעור)"},
	}

	out, err := FormatCourses(courses, testTable(), &Options{SkipUnknown: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"9999"}, out.UnknownCodes)
	assert.Equal(t, 1, out.Departments)
	assert.NotContains(t, out.Text, "לא קיים")
	assert.True(t, strings.HasPrefix(out.Text, "מתמטיקה\n"))
}

func TestFormat_EmptyType(t *testing.T) {
	out, err := FormatCourses([]types.Course{{Number: "03661111001", Name: "סמינר"}}, testTable(), nil)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "\tסמינר - \n")
}

func TestFormat_NoCourses(t *testing.T) {
	out, err := FormatCourses(nil, testTable(), nil)
	require.NoError(t, err)
	assert.Empty(t, out.Text)
	assert.Zero(t, out.Departments)
}

func TestFormat_EmbeddedTable(t *testing.T) {
	courses := []types.Course{{Number: "03681111001", Name: "מבני נתונים (שיעור)", Type: "(שיעור)"}}

	out, err := FormatCourses(courses, departments.MustDefault(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Text, "מדעי המחשב\n8\t6\t3\t0\t\n"))
}

func TestShortTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"מבוא למדעי המחשב (תרגיל)", "מבוא למדעי המחשב"},
		{"אלגברה לינארית (שיעור) (מקוון)", "אלגברה לינארית"},
		{"סמינר", "סמינר"},
		{"(שיעור)", ""},
		{"א(ב)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortTitle(tt.in))
		})
	}
}

func TestGroupByDepartment(t *testing.T) {
	g := GroupByDepartment([]types.Course{
		{Number: "03661111001"},
		{Number: "03681111001"},
		{Number: "03662222002"},
	})

	require.Equal(t, 2, g.Len())
	assert.Equal(t, 3, g.CourseCount())
	deps := g.Departments()
	assert.Equal(t, "0366", deps[0].Code)
	assert.Equal(t, "0368", deps[1].Code)
	assert.Len(t, deps[0].Courses, 2)
	assert.Equal(t, "03662222002", deps[0].Courses[1].Number)
}
