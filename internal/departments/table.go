package departments

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/course-export/internal/types"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/departments.json
var embeddedTable []byte

//go:embed data/departments.schema.json
var tableSchema []byte

// EmbeddedSource names the built-in table in errors and logs.
const EmbeddedSource = "<embedded>"

// Table maps 4-digit department codes to departments. It is read-only once built.
type Table struct {
	entries map[string]types.Department
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the built-in department table.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(EmbeddedSource, embeddedTable)
	})
	return defaultTable, defaultErr
}

// MustDefault is Default for callers that cannot proceed without the built-in table.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a table from a map. The map is copied.
func New(entries map[string]types.Department) *Table {
	copied := make(map[string]types.Department, len(entries))
	for code, dep := range entries {
		copied[code] = dep
	}
	return &Table{entries: copied}
}

// Parse validates a JSON document against the table schema and builds a Table from it.
func Parse(source string, data []byte) (*Table, error) {
	if err := validate(source, data); err != nil {
		return nil, err
	}

	var entries map[string]types.Department
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &TableError{Source: source, Message: "failed to parse JSON", Cause: err}
	}
	return &Table{entries: entries}, nil
}

// LoadFile reads a JSON or YAML department table, chosen by file extension.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TableError{Source: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var entries map[string]types.Department
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, &TableError{Source: path, Message: "failed to parse YAML", Cause: err}
		}
		// Re-encode so the override goes through the same schema as the embedded table.
		data, err = json.Marshal(entries)
		if err != nil {
			return nil, &TableError{Source: path, Message: "failed to re-encode YAML", Cause: err}
		}
	}

	return Parse(path, data)
}

// LoadWithOverride returns the built-in table with entries from path laid over it.
// An empty path returns the built-in table unchanged.
func LoadWithOverride(path string) (*Table, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	override, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.Merge(override), nil
}

// Merge returns a new table holding t's entries overlaid with other's.
func (t *Table) Merge(other *Table) *Table {
	merged := New(t.entries)
	for code, dep := range other.entries {
		merged.entries[code] = dep
	}
	return merged
}

// Lookup returns the department registered for code.
func (t *Table) Lookup(code string) (types.Department, bool) {
	dep, ok := t.entries[code]
	return dep, ok
}

// Len returns the number of departments in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Codes returns all department codes in ascending order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ByFaculty returns the codes of departments belonging to faculty, in ascending order.
func (t *Table) ByFaculty(faculty string) []string {
	var codes []string
	for _, code := range t.Codes() {
		if t.entries[code].Faculty == faculty {
			codes = append(codes, code)
		}
	}
	return codes
}

// MarshalJSON encodes the table as a code-keyed object.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.entries)
}

func validate(source string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(tableSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &TableError{Source: source, Message: "schema validation failed during load", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Source: source}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}

// String implements fmt.Stringer for debugging output.
func (t *Table) String() string {
	return fmt.Sprintf("departments.Table(%d entries)", len(t.entries))
}
