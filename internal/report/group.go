package report

import "github.com/jonathan/course-export/internal/types"

// Department holds the courses of one department code, in extraction order.
type Department struct {
	Code    string
	Courses []types.Course
}

// Groups is the grouped export mapping: department codes in first-seen order.
type Groups struct {
	order []*Department
	index map[string]*Department
}

// GroupByDepartment groups courses by department code, keeping first-seen order.
func GroupByDepartment(courses []types.Course) *Groups {
	g := &Groups{index: make(map[string]*Department)}
	for _, c := range courses {
		g.Add(c)
	}
	return g
}

// Add appends c to its department, creating the department on first sight.
func (g *Groups) Add(c types.Course) {
	if g.index == nil {
		g.index = make(map[string]*Department)
	}
	code := c.DepartmentCode()
	dep, ok := g.index[code]
	if !ok {
		dep = &Department{Code: code}
		g.index[code] = dep
		g.order = append(g.order, dep)
	}
	dep.Courses = append(dep.Courses, c)
}

// Departments returns the departments in first-seen order.
func (g *Groups) Departments() []*Department {
	return g.order
}

// Len returns the number of departments.
func (g *Groups) Len() int {
	return len(g.order)
}

// CourseCount returns the total number of courses across departments.
func (g *Groups) CourseCount() int {
	n := 0
	for _, dep := range g.order {
		n += len(dep.Courses)
	}
	return n
}
