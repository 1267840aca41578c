// Package render turns curated tag data into JavaScript literal source. It
// owns every piece of JS syntax the generator emits: declaration and
// terminator lines, single-quoted string escaping, indentation, line
// wrapping, and trailing-comma placement.
package render

import (
	"sort"
	"strings"
)

// Terminator lines for the two literal shapes. The patcher matches these
// exactly after trimming, and the renderer emits them verbatim.
const (
	SetTerminator = "]);"
	MapTerminator = "};"
)

// indent is the fixed leading whitespace of every generated body line.
const indent = "    "

// SetDecl returns the opening declaration line of a named Set literal.
func SetDecl(name string) string {
	return "const " + name + " = new Set(["
}

// MapDecl returns the opening declaration line of a named object literal.
func MapDecl(name string) string {
	return "const " + name + " = {"
}

// Escape makes s safe inside a single-quoted JS string literal. Backslashes
// must double before quotes gain their escape, or the added backslash would
// itself be doubled.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// SetBlock renders names as the body lines of a Set literal: sorted, quoted,
// perLine entries to a line, every line comma-terminated except the last.
// The input slice is left untouched.
func SetBlock(names []string, perLine int) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var lines []string
	for start := 0; start < len(sorted); start += perLine {
		end := start + perLine
		if end > len(sorted) {
			end = len(sorted)
		}
		quoted := make([]string, 0, end-start)
		for _, name := range sorted[start:end] {
			quoted = append(quoted, "'"+Escape(name)+"'")
		}
		lines = append(lines, indent+strings.Join(quoted, ", "))
	}
	return terminate(lines)
}

// AliasBlock renders the alias map body, one 'alias': 'canonical' entry per
// line, sorted by alias.
func AliasBlock(aliases map[string]string) []string {
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, alias := range keys {
		lines = append(lines, indent+"'"+Escape(alias)+"': '"+Escape(aliases[alias])+"'")
	}
	return terminate(lines)
}

// terminate appends the separating comma to every line but the last.
func terminate(lines []string) []string {
	for i := range lines {
		if i < len(lines)-1 {
			lines[i] += ","
		}
	}
	return lines
}
