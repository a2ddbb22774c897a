package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rovenotes/rove/configs"
	"github.com/rovenotes/rove/internal/config"
	roveerrors "github.com/rovenotes/rove/internal/errors"
	"github.com/rovenotes/rove/internal/output"
)

func newConfigCmd() *cobra.Command {
	var (
		initFile bool
		user     bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration or write a starter file",
		Long: `Show the effective configuration after merging every source, or
write a starter configuration file with --init.

Precedence (lowest to highest):
  1. Built-in defaults
  2. User config (~/.config/rove/config.yaml)
  3. Corpus config (.rove.yaml at the corpus root)
  4. Environment variables (ROVE_*)
  5. Command-line flags`,
		Example: `  # Show the merged configuration as YAML
  rove config

  # Start a corpus config in the current directory
  rove config --init

  # Start the machine-wide user config
  rove config --init --user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initFile {
				return runConfigInit(cmd, user, force)
			}
			return runConfigShow(cmd)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write a starter configuration file")
	cmd.Flags().BoolVar(&user, "user", false, "Target the user config instead of .rove.yaml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return roveerrors.Wrap(roveerrors.ErrCodeInternal, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "# Effective configuration: defaults, user config, corpus config, environment, flags.")

	userPath := config.GetUserConfigPath()
	if _, statErr := os.Stat(userPath); statErr == nil {
		fmt.Fprintf(w, "# User config: %s\n", userPath)
	} else {
		fmt.Fprintf(w, "# User config: %s (not present)\n", userPath)
	}

	start := "."
	if rootDir != "" {
		start = rootDir
	}
	if _, corpusFile := config.FindCorpusRoot(start); corpusFile != "" {
		fmt.Fprintf(w, "# Corpus config: %s\n", corpusFile)
	} else {
		fmt.Fprintln(w, "# Corpus config: none found")
	}

	_, err = w.Write(body)
	return err
}

func runConfigInit(cmd *cobra.Command, user, force bool) error {
	out := output.New(cmd.OutOrStdout())

	var path, template string
	if user {
		path = config.GetUserConfigPath()
		template = configs.UserConfigTemplate
	} else {
		start := "."
		if rootDir != "" {
			start = rootDir
		}
		abs, err := filepath.Abs(start)
		if err != nil {
			return roveerrors.FilesystemError(fmt.Sprintf("cannot resolve %s", start), err)
		}
		path = filepath.Join(abs, ".rove.yaml")
		template = configs.CorpusConfigTemplate
	}

	if _, err := os.Stat(path); err == nil {
		if !force {
			out.Warning("Configuration already exists")
			out.Statusf("📁", "Location: %s", path)
			out.Newline()
			out.Status("💡", "Use --force to overwrite")
			return nil
		}
		if user {
			backup, err := config.BackupUserConfig()
			if err != nil {
				return err
			}
			out.Statusf("💾", "Backup: %s", backup)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return roveerrors.FilesystemError(fmt.Sprintf("cannot create %s", filepath.Dir(path)), err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return roveerrors.FilesystemError(fmt.Sprintf("cannot write %s", path), err)
	}

	out.Success("Created configuration")
	out.Statusf("📁", "Location: %s", path)
	out.Newline()
	out.Status("📋", "Next steps:")
	out.Status("", "  1. Edit the file to set extensions and exclusions")
	out.Status("", "  2. Run 'rove doctor' to validate the setup")
	out.Status("", "  3. Run 'rove list' to see the corpus")
	return nil
}
