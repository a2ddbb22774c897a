// Package cmd provides the CLI commands for rove.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rovenotes/rove/internal/config"
	roveerrors "github.com/rovenotes/rove/internal/errors"
	"github.com/rovenotes/rove/internal/logging"
	"github.com/rovenotes/rove/internal/profiling"
	"github.com/rovenotes/rove/pkg/version"
)

// Persistent flags shared by every subcommand.
var (
	cfgFile string
	rootDir string
	verbose bool
	quiet   bool
	noColor bool
)

// Profiling flags and state.
var (
	profileCPU   string
	profileMem   string
	profileTrace string

	profiler     = profiling.NewProfiler()
	cpuCleanup   func()
	traceCleanup func()
)

// errUnmanagedPaths carries a check verdict through the exit code; the
// per-path verdicts were already printed, so Execute stays silent.
var errUnmanagedPaths = errors.New("unmanaged paths present")

// NewRootCmd creates the root command for the rove CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rove",
		Short: "Find and classify the files of a managed note corpus",
		Long: `Rove enumerates the note files of a managed corpus: every file under
the corpus root whose extension matches the configured set (including
.gpg/.age encrypted variants) and that no exclusion pattern rejects.

Enumeration delegates to the fastest installed search tool (find, fd,
fdfind, rg) and falls back to a built-in directory walker when none is
available, always producing the same file set.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("rove version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (skips discovery)")
	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "Corpus root (overrides config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging, echoed to stderr")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfiling
	cmd.PersistentPostRunE = stopProfiling

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfiling begins CPU and trace profiling when the flags ask for it.
func startProfiling(_ *cobra.Command, _ []string) error {
	var err error

	if profileCPU != "" {
		cpuCleanup, err = profiler.StartCPU(profileCPU)
		if err != nil {
			return err
		}
	}

	if profileTrace != "" {
		traceCleanup, err = profiler.StartTrace(profileTrace)
		if err != nil {
			if cpuCleanup != nil {
				cpuCleanup()
			}
			return err
		}
	}

	return nil
}

// stopProfiling flushes active profiles and writes the heap snapshot.
func stopProfiling(_ *cobra.Command, _ []string) error {
	if cpuCleanup != nil {
		cpuCleanup()
		cpuCleanup = nil
	}

	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}

	if profileMem != "" {
		if err := profiler.WriteHeap(profileMem); err != nil {
			return err
		}
	}

	return nil
}

// Execute runs the root command and renders any failure for the terminal.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, errUnmanagedPaths) {
		fmt.Fprint(os.Stderr, roveerrors.FormatForCLI(err))
	}
	return err
}

// loadConfig builds the effective configuration for one invocation: the
// file layers and environment first, then the persistent flags on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case cfgFile != "":
		cfg, err = config.LoadFile(cfgFile)
	case rootDir != "":
		cfg, err = config.Load(rootDir)
	default:
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if rootDir != "" {
		abs, absErr := filepath.Abs(rootDir)
		if absErr != nil {
			return nil, roveerrors.FilesystemError(
				fmt.Sprintf("cannot resolve root %s", rootDir), absErr)
		}
		cfg.Root = abs
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// initLogging wires slog to the configured sink and returns the cleanup
// that flushes and closes the log file.
func initLogging(cfg *config.Config) func() {
	logCfg := logging.Config{
		Level:         cfg.Log.Level,
		FilePath:      cfg.Log.File,
		MaxSizeMB:     cfg.Log.MaxSizeMB,
		MaxFiles:      cfg.Log.MaxFiles,
		WriteToStderr: cfg.Log.Stderr,
	}
	if logCfg.FilePath == "" {
		logCfg.FilePath = logging.DefaultLogPath()
	}
	if verbose {
		logCfg.Level = "debug"
		logCfg.WriteToStderr = true
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		slog.SetDefault(logging.Discard())
		return func() {}
	}
	slog.SetDefault(logger)
	return cleanup
}
