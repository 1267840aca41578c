// Package patch rewrites the generated declaration blocks of a target source
// file in place. Each block is delimited by its opening declaration line and
// a closing terminator; the patcher locates every block with a single-pass
// scanner, splices freshly rendered content between the delimiters, and
// leaves every byte outside the blocks untouched.
package patch

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gc/tagforge/internal/ctxlog"
	"github.com/gc/tagforge/internal/fsutil"
)

// Region describes one managed declaration block: how to locate its current
// extent in the target file and what to write back into it.
type Region struct {
	// Name is the table identifier, used in diagnostics.
	Name string
	// Open is the opening declaration line, located by substring match.
	Open string
	// Terminator is the closing delimiter, matched against whole trimmed lines.
	Terminator string
	// Comment is the lead-in text re-emitted as a line comment above Open.
	Comment string
	// Body holds the freshly rendered literal body lines.
	Body []string
}

// RegionStatus is one region's resolution state after a scan. Line indexes
// are 0-based; a marker the scanner never found is reported as unresolved.
type RegionStatus struct {
	Name      string
	OpenLine  int
	CloseLine int
}

// UnresolvedRegionsError reports that one or more generated blocks could not
// be located in the target file. It lists every expected region with the
// lines that were found, so a renamed or hand-edited marker is easy to spot.
type UnresolvedRegionsError struct {
	Regions []RegionStatus
}

func (e *UnresolvedRegionsError) Error() string {
	parts := make([]string, 0, len(e.Regions))
	for _, r := range e.Regions {
		parts = append(parts, fmt.Sprintf("%s %s-%s", r.Name, fmtLine(r.OpenLine), fmtLine(r.CloseLine)))
	}
	return "could not locate every generated block: " + strings.Join(parts, ", ")
}

// fmtLine renders a 0-based line index for humans.
func fmtLine(i int) string {
	if i == unresolved {
		return "?"
	}
	return strconv.Itoa(i + 1)
}

// Stats summarizes a completed rewrite.
type Stats struct {
	// Regions holds each block's pre-rewrite extent, in plan order.
	Regions []RegionStatus
	// LinesWritten is the line count of the rewritten file.
	LinesWritten int
}

// Apply rewrites the managed blocks of the file at path. The new content is
// staged in a temporary sibling file and renamed into place, so the target
// is never observable half-written. On any scan error the target keeps its
// previous content, byte for byte.
func Apply(ctx context.Context, path string, regions []Region) (*Stats, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading target: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	spans, err := scan(lines, regions)
	if err != nil {
		return nil, err
	}
	located := statuses(regions, spans)
	for _, rs := range located {
		logger.Debug("Generated block located.", "table", rs.Name, "from_line", rs.OpenLine+1, "to_line", rs.CloseLine+1)
	}

	out := splice(lines, regions, spans)
	if err := fsutil.WriteFileAtomic(path, []byte(strings.Join(out, "\n")), 0o644); err != nil {
		return nil, err
	}

	written := len(out)
	if written > 0 && out[written-1] == "" {
		written--
	}
	return &Stats{Regions: located, LinesWritten: written}, nil
}

// Splice computes the rewritten file without touching disk. Lines before the
// first block's lead-in comment and after the last block's terminator
// survive verbatim; everything in between is regenerated, one blank line
// between consecutive blocks.
func Splice(lines []string, regions []Region) ([]string, error) {
	if len(regions) == 0 {
		return append([]string(nil), lines...), nil
	}
	spans, err := scan(lines, regions)
	if err != nil {
		return nil, err
	}
	return splice(lines, regions, spans), nil
}

func splice(lines []string, regions []Region, spans []span) []string {
	// The line directly above the first declaration is the generator's own
	// lead-in comment, so the preserved head stops one line short of it.
	head := spans[0].open - 1
	if head < 0 {
		head = 0
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:head]...)
	for r, region := range regions {
		out = append(out, "// "+region.Comment, region.Open)
		out = append(out, region.Body...)
		out = append(out, region.Terminator)
		if r < len(regions)-1 {
			out = append(out, "")
		}
	}
	return append(out, lines[spans[len(spans)-1].close+1:]...)
}
