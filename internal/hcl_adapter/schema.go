package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// settings captures a plan file's scalar attributes on the first decode
// pass, before the threshold variable exists. The table blocks stay in
// Remain for the second pass. Settings must be literal values; only block
// attributes may reference ${threshold}.
type settings struct {
	Source    *string  `hcl:"source,optional"`
	Target    *string  `hcl:"target,optional"`
	Threshold *int     `hcl:"threshold,optional"`
	Remain    hcl.Body `hcl:",remain"`
}

// planRoot is the full shape of a plan file on the second decode pass.
type planRoot struct {
	Source     *string          `hcl:"source,optional"`
	Target     *string          `hcl:"target,optional"`
	Threshold  *int             `hcl:"threshold,optional"`
	Tags       []*tagsBlock     `hcl:"tags,block"`
	Aliases    []*aliasesBlock  `hcl:"aliases,block"`
	Categories []*categoryBlock `hcl:"category,block"`
}

// tagsBlock declares the full valid-tag set table.
type tagsBlock struct {
	Name    string `hcl:"name,label"`
	Header  string `hcl:"header"`
	PerLine *int   `hcl:"per_line,optional"`
}

// aliasesBlock declares the alias-to-canonical map table.
type aliasesBlock struct {
	Name   string `hcl:"name,label"`
	Header string `hcl:"header"`
}

// categoryBlock declares one curated subset table. Block order in the plan
// is emission order in the target file.
type categoryBlock struct {
	Name       string   `hcl:"name,label"`
	Header     string   `hcl:"header"`
	PerLine    *int     `hcl:"per_line,optional"`
	Candidates []string `hcl:"candidates"`
}
