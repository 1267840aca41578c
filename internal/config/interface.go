package config

import "context"

// Loader is the interface for a format-specific generation plan loader.
type Loader interface {
	// Load reads a plan from path, which may be a single file or a directory
	// of plan fragments, translates it into the format-agnostic model, and
	// resolves the given overrides into it. An empty path loads the
	// implementation's built-in default plan. The returned model has passed
	// Validate.
	Load(ctx context.Context, path string, ov Overrides) (*Model, error)
}
