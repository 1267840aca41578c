// Package curate derives the generated table contents from extracted tag
// records: the full valid-tag set, curated category subsets, and the
// alias-to-canonical map.
package curate

import (
	"slices"
	"sort"

	"github.com/gc/tagforge/internal/extract"
)

// Collision records an alias claimed by more than one canonical tag. Names
// lists the distinct claimants in export order; the mapping returned by
// AliasMap resolves to the last row processed.
type Collision struct {
	Alias string
	Names []string
}

// TagSet collects every extracted tag name into a membership set.
func TagSet(records []extract.Record) map[string]struct{} {
	tags := make(map[string]struct{}, len(records))
	for _, rec := range records {
		tags[rec.Name] = struct{}{}
	}
	return tags
}

// Subset filters candidates down to the names present in tags, deduplicated
// and sorted. The candidate lists are hand-maintained wishlists, so entries
// absent from the extracted data simply drop out.
func Subset(candidates []string, tags map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(candidates))
	var subset []string
	for _, name := range candidates {
		if _, ok := tags[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		subset = append(subset, name)
	}
	sort.Strings(subset)
	return subset
}

// AliasMap builds the alias-to-canonical mapping from every record's alias
// list. When two tags claim the same alias the later record wins, and the
// contested alias is reported as a Collision so the run can surface it.
// Collisions come back in first-claim order.
func AliasMap(records []extract.Record) (map[string]string, []Collision) {
	aliases := make(map[string]string)
	claimants := make(map[string][]string)
	var order []string

	for _, rec := range records {
		for _, alias := range rec.Aliases {
			names := claimants[alias]
			if len(names) == 0 {
				order = append(order, alias)
			}
			if !slices.Contains(names, rec.Name) {
				claimants[alias] = append(names, rec.Name)
			}
			aliases[alias] = rec.Name
		}
	}

	var collisions []Collision
	for _, alias := range order {
		if names := claimants[alias]; len(names) > 1 {
			collisions = append(collisions, Collision{Alias: alias, Names: names})
		}
	}
	return aliases, collisions
}
