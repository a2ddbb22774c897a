// Package preflight validates a rove setup before enumeration runs.
//
// The package checks:
//   - The corpus root exists, is a directory, and is readable
//   - Every exclusion pattern compiles
//   - The backend preference list names only recognized tools
//   - Which external tools are installed, and their versions
//   - Which driver selection would pick right now
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New(cfg)
//	results := checker.RunAll(ctx)
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
