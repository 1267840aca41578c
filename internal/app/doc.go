// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the regeneration lifecycle from tag
// extraction through to the target file rewrite, decoupled from any specific
// entrypoint like a CLI.
package app
