package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rovenotes/rove/internal/config"
	roveerrors "github.com/rovenotes/rove/internal/errors"
	"github.com/rovenotes/rove/internal/ui"
	"github.com/rovenotes/rove/pkg/notefiles"
)

// listOptions holds CLI flags for list.
type listOptions struct {
	format  string // "text", "lines", "json"
	print0  bool
	backend string
	count   bool
}

// listOutput is the JSON shape for `rove list --format json`.
type listOutput struct {
	Root  string   `json:"root"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Enumerate every managed file in the corpus",
		Long: `Enumerate the managed note files under the corpus root.

Paths are printed absolute, symlink-resolved, and deduplicated. The
fastest installed backend does the walking; --backend forces one.`,
		Example: `  # List the corpus discovered from the current directory
  rove list

  # Pipe into xargs safely
  rove list --print0 | xargs -0 wc -l

  # Machine-readable listing
  rove list --format json

  # Force the built-in walker
  rove list --backend builtin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, lines, json")
	cmd.Flags().BoolVar(&opts.print0, "print0", false, "Separate paths with NUL bytes for xargs -0")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Force one backend tool (find, fd, fdfind, rg, builtin)")
	cmd.Flags().BoolVar(&opts.count, "count", false, "Print only the number of managed files")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.format {
	case "text", "lines", "json":
	default:
		return roveerrors.ValidationError(fmt.Sprintf("unknown format %q", opts.format), nil).
			WithSuggestion("Supported formats: text, lines, json")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cleanup := initLogging(cfg)
	defer cleanup()

	if opts.backend != "" {
		cfg.Backends = []config.BackendRef{{Tool: opts.backend}}
	}

	files, err := notefiles.List(ctx, cfg, notefiles.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.count:
		_, err := fmt.Fprintln(w, len(files))
		return err
	case opts.print0:
		for _, f := range files {
			if _, err := fmt.Fprintf(w, "%s\x00", f); err != nil {
				return err
			}
		}
		return nil
	case opts.format == "json":
		out := listOutput{Root: cfg.Root, Count: len(files), Files: files}
		if out.Files == nil {
			out.Files = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, f := range files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	if opts.format == "text" && !quiet {
		// The summary goes to stderr so stdout stays pipeable.
		styles := ui.GetStyles(noColor || !ui.UseColor(os.Stderr))
		fmt.Fprintln(os.Stderr, styles.Dim.Render(fmt.Sprintf("%d file(s)", len(files))))
	}
	return nil
}
