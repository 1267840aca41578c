package app

import "fmt"

// Config holds all the necessary settings for an App instance to run.
type Config struct {
	PlanPath string // generation plan: an .hcl file or a directory of fragments; empty uses the embedded plan

	Source    string // overrides the plan's CSV export path when set
	Target    string // overrides the plan's target file path when set
	Threshold *int   // overrides the plan's inclusion threshold when set
	DryRun    bool   // report table sizes without touching the target

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Threshold != nil && *cfg.Threshold < 0 {
		return nil, fmt.Errorf("threshold cannot be negative, got %d", *cfg.Threshold)
	}

	return &cfg, nil
}
