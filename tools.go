//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Migrations are embedded and applied through `secondbrain migrate`; the goose
// CLI is only needed for authoring new files:
// - github.com/pressly/goose/v3/cmd/goose
