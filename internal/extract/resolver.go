package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrGroupNotFound is returned when a course element has no enclosing course group.
var ErrGroupNotFound = errors.New("enclosing course group not found")

// Group describes the course group a selected element belongs to.
type Group struct {
	Title string
}

// GroupResolver maps a selected course element to its enclosing group.
type GroupResolver interface {
	ResolveGroup(el *goquery.Selection) (Group, error)
}

const (
	// DefaultGroupDepth is how many ancestors separate a course cell from its group container.
	DefaultGroupDepth = 6
	// DefaultTitleSelector finds the group title inside the container's first child.
	DefaultTitleSelector = ".accordion-toggle"
)

// AncestorResolver finds the group title by climbing a fixed number of ancestors, then searching
// the first child element of that ancestor for the title element.
type AncestorResolver struct {
	Depth         int
	TitleSelector string
}

// DefaultResolver returns the resolver matching the registration page layout.
func DefaultResolver() *AncestorResolver {
	return &AncestorResolver{Depth: DefaultGroupDepth, TitleSelector: DefaultTitleSelector}
}

// ResolveGroup implements GroupResolver.
func (r *AncestorResolver) ResolveGroup(el *goquery.Selection) (Group, error) {
	node := el
	for level := 1; level <= r.Depth; level++ {
		node = node.Parent()
		if node.Length() == 0 {
			return Group{}, fmt.Errorf("%w: no ancestor at level %d", ErrGroupNotFound, level)
		}
	}

	header := node.Children().First()
	if header.Length() == 0 {
		return Group{}, fmt.Errorf("%w: group container has no children", ErrGroupNotFound)
	}

	title := header.Find(r.TitleSelector).First()
	if title.Length() == 0 {
		return Group{}, fmt.Errorf("%w: no %s element in group header", ErrGroupNotFound, r.TitleSelector)
	}

	return Group{Title: strings.TrimSpace(title.Text())}, nil
}
