package config

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the minimum post count a tag needs before it is
// considered established enough to include, absent any override.
const DefaultThreshold = 100

// Default wrap widths for generated literal bodies, applied when a table
// declaration leaves per_line unset.
const (
	DefaultTagsPerLine     = 8
	DefaultCategoryPerLine = 6
)

// Model is the unified, format-agnostic representation of one generation
// plan: the tag export to read, the target file to rewrite, and the shape of
// every managed table.
type Model struct {
	// Source is the path of the tag-frequency CSV export.
	Source string
	// Target is the path of the source file whose managed regions are rewritten.
	Target string
	// Threshold is the minimum post count for a tag to be included.
	Threshold int

	// TagSet describes the full valid-tag set table.
	TagSet *SetTable
	// Aliases describes the alias-to-canonical map table.
	Aliases *MapTable
	// Categories holds the curated subset tables, in the order they are
	// emitted into the target file.
	Categories []*CategoryTable
}

// SetTable describes a generated set literal holding every qualifying tag.
type SetTable struct {
	Name    string // declared identifier, e.g. VALID_BOORU_TAGS
	Header  string // lead-in comment re-emitted above the declaration
	PerLine int    // entries per wrapped body line
}

// MapTable describes the generated alias-to-canonical object literal.
type MapTable struct {
	Name   string
	Header string
}

// CategoryTable describes one curated subset literal. Candidates is the
// hand-maintained wishlist; only candidates present in the extracted tag set
// make it into the generated table.
type CategoryTable struct {
	Name       string
	Header     string
	PerLine    int
	Candidates []string
}

// Overrides carries operator-supplied values that take precedence over the
// plan's own settings. Zero-valued fields leave the plan untouched.
type Overrides struct {
	Source    string
	Target    string
	Threshold *int
}

// Validate checks the structural invariants every loaded plan must satisfy.
func (m *Model) Validate() error {
	if m.Source == "" {
		return errors.New("plan has no source: set the source attribute or the -csv flag")
	}
	if m.Target == "" {
		return errors.New("plan has no target: set the target attribute or the -target flag")
	}
	if m.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", m.Threshold)
	}
	if m.TagSet == nil {
		return errors.New("plan declares no tags block")
	}
	if m.Aliases == nil {
		return errors.New("plan declares no aliases block")
	}

	seen := map[string]struct{}{}
	check := func(name string, perLine int) error {
		if name == "" {
			return errors.New("table name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("table %q is declared more than once", name)
		}
		seen[name] = struct{}{}
		if perLine < 1 {
			return fmt.Errorf("table %q: per_line must be at least 1, got %d", name, perLine)
		}
		return nil
	}

	if err := check(m.TagSet.Name, m.TagSet.PerLine); err != nil {
		return err
	}
	for _, cat := range m.Categories {
		if err := check(cat.Name, cat.PerLine); err != nil {
			return err
		}
	}
	// The alias map wraps one entry per line, so it carries no width.
	return check(m.Aliases.Name, 1)
}
