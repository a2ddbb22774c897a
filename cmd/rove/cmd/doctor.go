package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	roveerrors "github.com/rovenotes/rove/internal/errors"
	"github.com/rovenotes/rove/internal/preflight"
)

// doctorOptions holds CLI flags for doctor.
type doctorOptions struct {
	format string // "text", "json"
}

// doctorReport is the JSON shape for `rove doctor --format json`.
type doctorReport struct {
	Status   string        `json:"status"`
	Checks   []doctorCheck `json:"checks"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// doctorCheck is a single check result for JSON output.
type doctorCheck struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Required bool   `json:"required"`
	Details  string `json:"details,omitempty"`
}

func newDoctorCmd() *cobra.Command {
	var opts doctorOptions

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment and diagnose setup issues",
		Long: `Run environment diagnostics for the corpus setup.

Checks:
  - Corpus root exists, is a directory, and is readable
  - Every exclusion pattern compiles
  - The backend preference list names known tools
  - Which of find, fd, fdfind, rg are installed (with versions)
  - Which driver enumeration would select right now

A missing external tool is only a warning; the built-in walker keeps
rove working on a bare system.`,
		Example: `  # Run diagnostics
  rove doctor

  # Detailed output
  rove doctor --verbose

  # JSON for scripting
  rove doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts doctorOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.format {
	case "text", "json":
	default:
		return roveerrors.ValidationError(fmt.Sprintf("unknown format %q", opts.format), nil).
			WithSuggestion("Supported formats: text, json")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cleanup := initLogging(cfg)
	defer cleanup()

	checker := preflight.New(cfg,
		preflight.WithVerbose(verbose),
		preflight.WithOutput(cmd.OutOrStdout()))
	results := checker.RunAll(ctx)

	if opts.format == "json" {
		if err := printDoctorJSON(cmd, checker, results); err != nil {
			return err
		}
	} else {
		checker.PrintResults(results)
	}

	if checker.HasCriticalFailures(results) {
		return errors.New("environment check failed")
	}
	return nil
}

func printDoctorJSON(cmd *cobra.Command, checker *preflight.Checker, results []preflight.CheckResult) error {
	report := doctorReport{
		Status: checker.SummaryStatus(results),
		Checks: make([]doctorCheck, len(results)),
	}

	for i, r := range results {
		report.Checks[i] = doctorCheck{
			Name:     r.Name,
			Status:   strings.ToLower(r.Status.String()),
			Message:  r.Message,
			Required: r.Required,
			Details:  r.Details,
		}

		if r.IsCritical() {
			report.Errors = append(report.Errors, r.Name+": "+r.Message)
		} else if r.Status == preflight.StatusWarn {
			report.Warnings = append(report.Warnings, r.Name+": "+r.Message)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
