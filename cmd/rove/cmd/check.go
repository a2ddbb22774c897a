package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	roveerrors "github.com/rovenotes/rove/internal/errors"
	"github.com/rovenotes/rove/internal/ui"
	"github.com/rovenotes/rove/pkg/notefiles"
)

// checkOptions holds CLI flags for check.
type checkOptions struct {
	format string // "text", "json"
}

// checkVerdict is one path's classification for output.
type checkVerdict struct {
	Path    string `json:"path"`
	Managed bool   `json:"managed"`
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Report whether paths belong to the corpus",
		Long: `Classify each PATH against the corpus: extension variant, location
under the root, and exclusion patterns. The files do not have to exist.

Exit status is 0 when every path is managed, 1 otherwise.`,
		Example: `  rove check ~/notes/inbox.org

  # Exit status only, for scripts
  rove check --quiet ~/notes/inbox.org && echo managed

  # Several paths at once
  rove check --format json drafts/a.org archive/b.org`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts checkOptions) error {
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

	verdicts := make([]checkVerdict, 0, len(args))
	allManaged := true
	for _, path := range args {
		managed, err := notefiles.IsManaged(cfg, path)
		if err != nil {
			return err
		}
		verdicts = append(verdicts, checkVerdict{Path: path, Managed: managed})
		if !managed {
			allManaged = false
		}
	}

	if !quiet {
		if opts.format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(verdicts); err != nil {
				return err
			}
		} else {
			styles := ui.GetStyles(noColor || !ui.UseColor(cmd.OutOrStdout()))
			for _, v := range verdicts {
				label := styles.Success.Render("managed  ")
				if !v.Managed {
					label = styles.Error.Render("unmanaged")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label, v.Path)
			}
		}
	}

	if !allManaged {
		return errUnmanagedPaths
	}
	return nil
}
