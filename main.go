// =============================================================================
// Spectrum Parts List - Main Entry Point
// =============================================================================
//
// This is the main entry point for the parts list CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   parts-list            - Build the three parts list workbooks
//   parts-list process    - Same, with flags (--dry-run, --input, --no-pause)
//   parts-list version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loading, aggregation, report writing and reconciliation
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/spectrum-parts-list/cmd"
)

func main() {
	cmd.Execute()
}
