package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/gc/tagforge/internal/config"
)

// mergeSettings folds the scalar settings of every plan file into one set.
// Directory plans may define each setting at most once across all files;
// within a single file HCL itself rejects a repeated attribute.
func mergeSettings(files []planFile) (settings, error) {
	var merged settings
	definedIn := map[string]string{}

	claim := func(attr, fileName string) error {
		if prev, taken := definedIn[attr]; taken {
			return fmt.Errorf("%s is set in both %s and %s; directory plans may define each setting once", attr, prev, fileName)
		}
		definedIn[attr] = fileName
		return nil
	}

	for _, pf := range files {
		var s settings
		if diags := gohcl.DecodeBody(pf.file.Body, nil, &s); diags.HasErrors() {
			return merged, fmt.Errorf("failed to decode plan settings in %s: %w", pf.name, diags)
		}
		if s.Source != nil {
			if err := claim("source", pf.name); err != nil {
				return merged, err
			}
			merged.Source = s.Source
		}
		if s.Target != nil {
			if err := claim("target", pf.name); err != nil {
				return merged, err
			}
			merged.Target = s.Target
		}
		if s.Threshold != nil {
			if err := claim("threshold", pf.name); err != nil {
				return merged, err
			}
			merged.Threshold = s.Threshold
		}
	}
	return merged, nil
}

// translate folds the decoded plan files into the format-agnostic model and
// resolves the operator overrides into it. Exactly one tags block and one
// aliases block must survive the merge; category blocks keep file order.
func translate(roots []*planRoot, merged settings, threshold int, ov config.Overrides) (*config.Model, error) {
	model := &config.Model{Threshold: threshold}
	if merged.Source != nil {
		model.Source = *merged.Source
	}
	if merged.Target != nil {
		model.Target = *merged.Target
	}
	if ov.Source != "" {
		model.Source = ov.Source
	}
	if ov.Target != "" {
		model.Target = ov.Target
	}

	var tags []*tagsBlock
	var aliases []*aliasesBlock
	for _, root := range roots {
		tags = append(tags, root.Tags...)
		aliases = append(aliases, root.Aliases...)
		for _, cat := range root.Categories {
			model.Categories = append(model.Categories, &config.CategoryTable{
				Name:       cat.Name,
				Header:     cat.Header,
				PerLine:    perLineOrDefault(cat.PerLine, config.DefaultCategoryPerLine),
				Candidates: cat.Candidates,
			})
		}
	}

	if len(tags) != 1 {
		return nil, fmt.Errorf("a plan must declare exactly one tags block, found %d", len(tags))
	}
	if len(aliases) != 1 {
		return nil, fmt.Errorf("a plan must declare exactly one aliases block, found %d", len(aliases))
	}
	model.TagSet = &config.SetTable{
		Name:    tags[0].Name,
		Header:  tags[0].Header,
		PerLine: perLineOrDefault(tags[0].PerLine, config.DefaultTagsPerLine),
	}
	model.Aliases = &config.MapTable{
		Name:   aliases[0].Name,
		Header: aliases[0].Header,
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation plan: %w", err)
	}
	return model, nil
}

func perLineOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
