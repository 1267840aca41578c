package app

import (
	"context"
	"fmt"

	"github.com/gc/tagforge/internal/ctxlog"
	"github.com/gc/tagforge/internal/curate"
	"github.com/gc/tagforge/internal/extract"
	"github.com/gc/tagforge/internal/patch"
	"github.com/gc/tagforge/internal/render"
)

// Run executes one full regeneration: extract the qualifying tags, derive
// every table's contents, and rewrite the target file's generated blocks in
// place. With DryRun set it stops after reporting table sizes and leaves the
// target alone.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	plan := a.plan
	a.logger.Debug("App.Run method started.")

	a.logger.Info("Parsing tag export...", "path", plan.Source, "threshold", plan.Threshold)
	records, err := extract.FromCSV(ctx, plan.Source, plan.Threshold)
	if err != nil {
		return fmt.Errorf("failed to extract tags: %w", err)
	}
	tags := curate.TagSet(records)
	a.logger.Info("Tags extracted.", "count", len(tags))

	aliases, collisions := curate.AliasMap(records)
	for _, c := range collisions {
		a.logger.Warn("Alias claimed by more than one tag, keeping the last.",
			"alias", c.Alias, "claimed_by", c.Names, "kept", aliases[c.Alias])
	}
	a.logger.Info("Alias map generated.", "count", len(aliases), "collisions", len(collisions))

	subsets := make([][]string, len(plan.Categories))
	for i, cat := range plan.Categories {
		subsets[i] = curate.Subset(cat.Candidates, tags)
		a.logger.Info("Category curated.", "table", cat.Name,
			"entries", len(subsets[i]), "candidates", len(cat.Candidates))
	}

	if a.config.DryRun {
		a.logger.Info("Dry run, target file left untouched.", "target", plan.Target)
		return nil
	}

	stats, err := patch.Apply(ctx, plan.Target, a.regions(tags, aliases, subsets))
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", plan.Target, err)
	}
	a.logger.Info("🏁 Target rewritten.", "target", plan.Target, "lines", stats.LinesWritten)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// regions assembles the patcher's work list from the plan and the derived
// table contents. Emission order is fixed: the full tag set first, then each
// category in plan order, then the alias map.
func (a *App) regions(tags map[string]struct{}, aliases map[string]string, subsets [][]string) []patch.Region {
	plan := a.plan

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}

	regions := make([]patch.Region, 0, len(plan.Categories)+2)
	regions = append(regions, patch.Region{
		Name:       plan.TagSet.Name,
		Open:       render.SetDecl(plan.TagSet.Name),
		Terminator: render.SetTerminator,
		Comment:    plan.TagSet.Header,
		Body:       render.SetBlock(names, plan.TagSet.PerLine),
	})
	for i, cat := range plan.Categories {
		regions = append(regions, patch.Region{
			Name:       cat.Name,
			Open:       render.SetDecl(cat.Name),
			Terminator: render.SetTerminator,
			Comment:    cat.Header,
			Body:       render.SetBlock(subsets[i], cat.PerLine),
		})
	}
	return append(regions, patch.Region{
		Name:       plan.Aliases.Name,
		Open:       render.MapDecl(plan.Aliases.Name),
		Terminator: render.MapTerminator,
		Comment:    plan.Aliases.Header,
		Body:       render.AliasBlock(aliases),
	})
}
