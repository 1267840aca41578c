package hcl_adapter

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/gc/tagforge/internal/config"
	"github.com/gc/tagforge/internal/ctxlog"
	"github.com/gc/tagforge/internal/fsutil"
)

// defaultPlan is the built-in generation plan, carrying the curated category
// candidate lists. It is used whenever no -config path is given.
//
//go:embed defaults.hcl
var defaultPlan []byte

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL generation plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// planFile pairs a parsed file with the name used in diagnostics.
type planFile struct {
	name string
	file *hcl.File
}

// Load orchestrates the two-pass plan decode. The first pass collects the
// scalar settings from every file so the effective threshold is known; the
// second decodes the table blocks with ${threshold} available to header
// expressions. Overrides from the command line win over plan settings.
func (l *Loader) Load(ctx context.Context, path string, ov config.Overrides) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.parseAll(ctx, path)
	if err != nil {
		return nil, err
	}

	merged, err := mergeSettings(files)
	if err != nil {
		return nil, err
	}

	threshold := config.DefaultThreshold
	if merged.Threshold != nil {
		threshold = *merged.Threshold
	}
	if ov.Threshold != nil {
		threshold = *ov.Threshold
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"threshold": cty.NumberIntVal(int64(threshold)),
		},
	}

	roots := make([]*planRoot, 0, len(files))
	for _, pf := range files {
		var root planRoot
		if diags := gohcl.DecodeBody(pf.file.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", pf.name, diags)
		}
		roots = append(roots, &root)
	}

	model, err := translate(roots, merged, threshold, ov)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generation plan loaded.",
		"source", model.Source, "target", model.Target,
		"threshold", model.Threshold, "categories", len(model.Categories))
	return model, nil
}

// parseAll parses every plan file named by path. An empty path parses the
// embedded default plan instead.
func (l *Loader) parseAll(ctx context.Context, path string) ([]planFile, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	if path == "" {
		logger.Debug("No plan path given, using the embedded default plan.")
		file, diags := parser.ParseHCL(defaultPlan, "defaults.hcl")
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse embedded plan: %w", diags)
		}
		return []planFile{{name: "defaults.hcl", file: file}}, nil
	}

	paths, err := l.findPlanFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered plan files.", "path", path, "count", len(paths))

	files := make([]planFile, 0, len(paths))
	for _, p := range paths {
		file, diags := parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", p, diags)
		}
		files = append(files, planFile{name: p, file: file})
	}
	return files, nil
}

// findPlanFiles resolves path to the ordered list of .hcl files it names:
// the file itself, or every .hcl file under a directory in sorted order.
func (l *Loader) findPlanFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing plan path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("error scanning plan directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("plan directory %s contains no .hcl files", path)
	}
	sort.Strings(files)
	return files, nil
}
