package schema

import (
	"fmt"
	"strings"
)

type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every field-level failure of one call.
type ValidationErrors struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationErrors) Add(path, message string) {
	e.Issues = append(e.Issues, Issue{Path: path, Message: message})
}

// Merge appends other's issues with their paths nested under prefix.
func (e *ValidationErrors) Merge(prefix string, other *ValidationErrors) {
	if other == nil {
		return
	}
	for _, is := range other.Issues {
		path := is.Path
		if prefix != "" {
			path = prefix + "." + path
		}
		e.Issues = append(e.Issues, Issue{Path: path, Message: is.Message})
	}
}

func (e *ValidationErrors) Empty() bool {
	return e == nil || len(e.Issues) == 0
}

// Err returns nil when there is nothing to report, so callers can return it directly.
func (e *ValidationErrors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func IndexPath(collection string, i int) string {
	return fmt.Sprintf("%s[%d]", collection, i)
}
