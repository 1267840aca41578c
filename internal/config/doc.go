// Package config defines the format-agnostic generation plan model for the
// application, along with the Loader interface for producing it from a
// format-specific source.
//
// The `config.Model` is the single source of truth for the `extract`,
// `curate`, `render`, and `patch` packages. Concrete loader implementations,
// such as for HCL, are provided in separate packages.
package config
