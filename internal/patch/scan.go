package patch

import (
	"fmt"
	"strings"
)

// unresolved marks a line index the scanner never found.
const unresolved = -1

// span is one region's located extent, inclusive of the declaration and
// terminator lines.
type span struct {
	open  int
	close int
}

// scan resolves every region's extent in a single pass over lines. It is a
// two-state machine: outside any block it looks for opening declarations,
// inside one it looks only for that block's terminator. Structural defects
// fail the scan with the target untouched: a declaration opening inside
// another block, a block declared twice, blocks out of plan order, or any
// marker never found.
func scan(lines []string, regions []Region) ([]span, error) {
	spans := make([]span, len(regions))
	for i := range spans {
		spans[i] = span{open: unresolved, close: unresolved}
	}

	open := -1 // index into regions of the block awaiting its terminator
	for i, line := range lines {
		if open >= 0 && strings.TrimSpace(line) == regions[open].Terminator {
			spans[open].close = i
			open = -1
			continue
		}
		for r := range regions {
			if !strings.Contains(line, regions[r].Open) {
				continue
			}
			if open >= 0 {
				return nil, fmt.Errorf("line %d: %s declaration opens inside the unterminated %s block",
					i+1, regions[r].Name, regions[open].Name)
			}
			if spans[r].open != unresolved {
				return nil, fmt.Errorf("line %d: %s is declared again, first seen on line %d",
					i+1, regions[r].Name, spans[r].open+1)
			}
			spans[r].open = i
			open = r
			break
		}
	}

	for r := range regions {
		if spans[r].open == unresolved || spans[r].close == unresolved {
			return nil, &UnresolvedRegionsError{Regions: statuses(regions, spans)}
		}
	}
	for r := 1; r < len(regions); r++ {
		if spans[r].open < spans[r-1].close {
			return nil, fmt.Errorf("%s appears before %s; generated blocks must keep their declared order",
				regions[r].Name, regions[r-1].Name)
		}
	}
	return spans, nil
}

func statuses(regions []Region, spans []span) []RegionStatus {
	out := make([]RegionStatus, len(regions))
	for r, region := range regions {
		out[r] = RegionStatus{Name: region.Name, OpenLine: spans[r].open, CloseLine: spans[r].close}
	}
	return out
}
