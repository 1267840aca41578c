// Package extract reads a Danbooru tag-frequency CSV export and keeps the
// rows that qualify as general-content tags.
//
// The export carries no header row. Each row holds the tag name, its numeric
// category, its post count, and optionally a comma-separated alias list. Only
// category-0 rows (general content) whose post count meets the threshold
// survive; rows that are too short or carry unparseable numbers are skipped
// without failing the run, since upstream exports routinely contain stray
// lines.
package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gc/tagforge/internal/ctxlog"
)

// Record is one qualifying row of the tag export.
type Record struct {
	// Name is the canonical tag, exactly as exported.
	Name string
	// Count is the number of posts carrying the tag.
	Count int
	// Aliases holds the deprecated spellings that map to Name. May be empty.
	Aliases []string
}

// generalCategory is the numeric category of general content tags. All other
// categories (artist, copyright, character, meta) are excluded.
const generalCategory = 0

// FromCSV reads the tag export at path and returns one Record per qualifying
// row, preserving export order. A tag exported twice keeps its original
// position but takes the later row's count and aliases.
func FromCSV(ctx context.Context, path string, threshold int) ([]Record, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tag export: %w", err)
	}
	defer f.Close()

	records, rows, err := parse(f, threshold)
	if err != nil {
		return nil, fmt.Errorf("reading tag export %s: %w", path, err)
	}

	logger.Debug("Tag export parsed.", "path", path, "rows", rows, "qualifying", len(records))
	return records, nil
}

func parse(r io.Reader, threshold int) ([]Record, int, error) {
	reader := csv.NewReader(r)
	// Rows vary in width and alias fields may carry loose quoting.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []Record
	index := map[string]int{}
	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rows, err
		}
		rows++

		if len(row) < 3 {
			continue
		}
		category, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}
		if category != generalCategory || count < threshold {
			continue
		}

		rec := Record{Name: row[0], Count: count, Aliases: splitAliases(row)}
		if i, seen := index[rec.Name]; seen {
			records[i] = rec
			continue
		}
		index[rec.Name] = len(records)
		records = append(records, rec)
	}
	return records, rows, nil
}

// splitAliases pulls the optional fourth column apart. Blank entries from
// stray commas are dropped.
func splitAliases(row []string) []string {
	if len(row) < 4 || strings.TrimSpace(row[3]) == "" {
		return nil
	}
	var aliases []string
	for _, alias := range strings.Split(row[3], ",") {
		if alias = strings.TrimSpace(alias); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}
