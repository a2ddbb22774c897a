// Command rove-logs reads the JSON log file the rove CLI writes and
// renders it for humans. It tails the last entries by default and can
// stream new ones with --follow.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rovenotes/rove/internal/logging"
	"github.com/rovenotes/rove/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logsOptions holds CLI flags for rove-logs.
type logsOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	noColor bool
	logFile string
}

func newRootCmd() *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "rove-logs",
		Short: "View the rove log file",
		Long: `Render rove's JSON log file for reading in a terminal.

Without flags the last 50 entries are printed. Entries below --level or
not matching --filter are skipped before the tail is cut, so a filtered
view still fills up to -n lines.`,
		Example: `  # Last 50 entries
  rove-logs

  # Only errors, live
  rove-logs --level error -f

  # Entries mentioning a backend
  rove-logs --filter 'backend=(fd|rg)'`,
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.follow, "follow", "f", false, "Stream entries as they are written")
	flags.IntVarP(&opts.lines, "lines", "n", 50, "How many trailing entries to print")
	flags.StringVar(&opts.level, "level", "", "Skip entries below this level (debug|info|warn|error)")
	flags.StringVar(&opts.filter, "filter", "", "Skip entries not matching this regular expression")
	flags.BoolVar(&opts.noColor, "no-color", false, "Plain output without ANSI styling")
	flags.StringVar(&opts.logFile, "file", "", "Read this file instead of the default rove log")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	path := opts.logFile
	if path == "" {
		path = logging.DefaultLogPath()
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no log file at %s (run a rove command first, or pass --file)", path)
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		p, err := regexp.Compile(opts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter pattern: %w", err)
		}
		pattern = p
	}

	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   opts.level,
		Pattern: pattern,
		NoColor: opts.noColor,
	}, cmd.OutOrStdout())

	info := cmd.ErrOrStderr()
	fmt.Fprintf(info, "Log file: %s\n", path)
	if opts.follow {
		fmt.Fprintln(info, "Following... (Ctrl+C to stop)")
	}
	fmt.Fprintln(info, "---")

	if opts.follow {
		return followLog(cmd, viewer, path)
	}

	entries, err := viewer.Tail(path, opts.lines)
	if err != nil {
		return err
	}
	viewer.Print(entries)
	return nil
}

// followLog streams entries until the process is interrupted or the
// viewer gives up on the file.
func followLog(cmd *cobra.Command, viewer *logging.Viewer, path string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stream := make(chan logging.Entry, 100)
	followErr := make(chan error, 1)
	go func() {
		followErr <- viewer.Follow(ctx, path, stream)
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case entry := <-stream:
			fmt.Fprintln(out, viewer.FormatEntry(entry))
		case err := <-followErr:
			return err
		case <-ctx.Done():
			fmt.Fprintf(cmd.ErrOrStderr(), "\n---\nStopped.\n")
			return nil
		}
	}
}
