package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rovenotes/rove/pkg/version"
)

// versionOptions holds CLI flags for version.
type versionOptions struct {
	json  bool
	short bool
}

func newVersionCmd() *cobra.Command {
	var opts versionOptions

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Long:  `Print the rove version along with the commit, build date, and Go toolchain it was built with.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print build info as JSON")
	cmd.Flags().BoolVar(&opts.short, "short", false, "Print only the version number")

	return cmd
}

func runVersion(cmd *cobra.Command, opts versionOptions) error {
	out := cmd.OutOrStdout()

	switch {
	case opts.short:
		_, err := fmt.Fprintln(out, version.Short())
		return err
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(version.GetInfo())
	default:
		_, err := fmt.Fprintln(out, version.String())
		return err
	}
}
