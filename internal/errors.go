package internal

import (
	"fmt"
	"strings"
)

type SourceNotFoundError struct {
	Source string
	Path   string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Source, e.Path)
}

type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("holdings CSV missing required columns: [%s], found columns: [%s]",
		strings.Join(e.Missing, ", "),
		strings.Join(e.Found, ", "))
}

// SlugCollisionError signals two distinct counterparty names normalizing to
// the same identifier. The build fails instead of silently merging them.
type SlugCollisionError struct {
	Slug  string
	NameA string
	NameB string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("counterparties %q and %q both normalize to id %q, rename one of them to disambiguate",
		e.NameA, e.NameB, e.Slug)
}
