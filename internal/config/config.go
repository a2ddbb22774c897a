// Package config loads and validates rove configuration. Settings layer in
// order of increasing precedence: built-in defaults, the user config file,
// the corpus config file (.rove.yaml found by walking up from the start
// directory), then ROVE_* environment variables. CLI flags are applied on
// top by the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// KnownBackends lists every recognized backend tool identifier, including
// the "builtin" sentinel that forces the pure-Go walker.
var KnownBackends = []string{"find", "fd", "fdfind", "rg", "builtin"}

// Config represents the complete rove configuration.
type Config struct {
	// Root is the corpus root directory. Relative values and ~ are expanded
	// during Load; commands resolve symlinks when they first touch the tree.
	Root string `yaml:"root" json:"root"`

	// Extensions are the accepted content extensions, without leading dots.
	// Encrypted variants (<ext>.gpg, <ext>.age) are always implied.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// Exclude holds zero or more regular expressions tested against paths
	// relative to Root. A scalar YAML value is treated as a one-element list.
	Exclude StringList `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Backends is the ordered backend preference list. Each entry is either
	// a bare tool name or a {tool, path} mapping with an explicit executable.
	Backends []BackendRef `yaml:"backends" json:"backends"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig configures the log file and level.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" json:"level"`
	// File is the log file path. Empty selects ~/.rove/logs/rove.log.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// MaxSizeMB is the rotation threshold in megabytes.
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep.
	MaxFiles int `yaml:"max_files" json:"max_files"`
	// Stderr echoes log entries to stderr in addition to the file.
	Stderr bool `yaml:"stderr,omitempty" json:"stderr,omitempty"`
}

// StringList accepts either a single YAML scalar or a sequence of scalars.
// Both forms collapse to a list; a scalar is a one-element list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = StringList(ss)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or list of strings", value.Line)
	}
}

// BackendRef names one backend preference: a tool identifier, optionally
// paired with an explicit executable path that bypasses PATH lookup.
type BackendRef struct {
	Tool string `yaml:"tool" json:"tool"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler. A bare scalar names the tool;
// a mapping carries tool and path keys.
func (b *BackendRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		b.Tool = s
		b.Path = ""
		return nil
	case yaml.MappingNode:
		type plain BackendRef
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*b = BackendRef(p)
		return nil
	default:
		return fmt.Errorf("line %d: backend entry must be a tool name or {tool, path} mapping", value.Line)
	}
}

// MarshalYAML implements yaml.Marshaler, rendering entries without an
// explicit path as bare scalars.
func (b BackendRef) MarshalYAML() (any, error) {
	if b.Path == "" {
		return b.Tool, nil
	}
	type plain BackendRef
	return plain(b), nil
}

// DefaultBackends returns the default backend preference order. On Windows
// none of the supported tools ship by default, so the list is empty and
// enumeration uses the builtin walker.
func DefaultBackends() []BackendRef {
	if runtime.GOOS == "windows" {
		return nil
	}
	return []BackendRef{
		{Tool: "find"},
		{Tool: "fd"},
		{Tool: "fdfind"},
		{Tool: "rg"},
	}
}

// NewConfig creates a new Config with sensible defaults. Root is left empty
// here; Load falls back to the discovered corpus root or the start directory.
func NewConfig() *Config {
	return &Config{
		Root:       "",
		Extensions: []string{"org"},
		Exclude:    nil,
		Backends:   DefaultBackends(),
		Log: LogConfig{
			Level:     "info",
			File:      "",
			MaxSizeMB: 10,
			MaxFiles:  5,
			Stderr:    false,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/rove/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/rove/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rove", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "rove", "config.yaml")
	}
	return filepath.Join(home, ".config", "rove", "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// loadUserConfig loads the user/global configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()

	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := &Config{}
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the effective configuration starting from startDir.
// Precedence, lowest first: defaults, user config, corpus config
// (.rove.yaml found by walking up from startDir), ROVE_* environment.
func Load(startDir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	corpusDir, configFile := FindCorpusRoot(startDir)
	if configFile != "" {
		fileCfg := &Config{}
		if err := fileCfg.loadYAML(configFile); err != nil {
			return nil, err
		}
		// The config file location marks the corpus root unless the file
		// says otherwise.
		if fileCfg.Root == "" {
			fileCfg.Root = corpusDir
		}
		cfg.mergeWith(fileCfg)
	}

	cfg.applyEnvOverrides()

	if err := cfg.normalize(startDir); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile builds the effective configuration from one explicit config file,
// skipping user and corpus config discovery. Environment overrides still
// apply.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	if cfg.Root == "" {
		cfg.Root = filepath.Dir(path)
	}

	cfg.applyEnvOverrides()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	if err := cfg.normalize(wd); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindCorpusRoot walks up from startDir looking for a .rove.yaml or
// .rove.yml file. It returns the directory holding the file and the file's
// path, or (startDir, "") when no config file exists up the tree.
func FindCorpusRoot(startDir string) (dir string, configFile string) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return startDir, ""
	}

	current := absDir
	for {
		for _, name := range []string{".rove.yaml", ".rove.yml"} {
			candidate := filepath.Join(current, name)
			if fileExists(candidate) {
				return current, candidate
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return absDir, ""
		}
		current = parent
	}
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return roveerrors.New(roveerrors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return roveerrors.New(roveerrors.ErrCodeConfigParse,
			fmt.Sprintf("cannot read config file %s: %v", path, err), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return roveerrors.New(roveerrors.ErrCodeConfigParse,
			fmt.Sprintf("cannot parse config file %s: %v", path, err), err).
			WithDetail("file", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c. List-valued settings
// replace rather than append: a later layer states the full intent.
func (c *Config) mergeWith(other *Config) {
	if other.Root != "" {
		c.Root = other.Root
	}
	if len(other.Extensions) > 0 {
		c.Extensions = other.Extensions
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if len(other.Backends) > 0 {
		c.Backends = other.Backends
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Log.MaxSizeMB != 0 {
		c.Log.MaxSizeMB = other.Log.MaxSizeMB
	}
	if other.Log.MaxFiles != 0 {
		c.Log.MaxFiles = other.Log.MaxFiles
	}
	if other.Log.Stderr {
		c.Log.Stderr = true
	}
}

// applyEnvOverrides applies ROVE_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROVE_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("ROVE_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v, ",")
	}
	// Exclusion patterns may contain commas, so the PATH list separator
	// divides entries here.
	if v := os.Getenv("ROVE_EXCLUDE"); v != "" {
		c.Exclude = StringList(splitList(v, string(os.PathListSeparator)))
	}
	if v := os.Getenv("ROVE_BACKENDS"); v != "" {
		c.Backends = parseBackendsEnv(v)
	}
	if v := os.Getenv("ROVE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// parseBackendsEnv parses a comma-separated backend list. Each entry is a
// tool name, optionally suffixed with =path for an explicit executable:
//
//	ROVE_BACKENDS="fd,rg=/opt/homebrew/bin/rg"
func parseBackendsEnv(v string) []BackendRef {
	entries := splitList(v, ",")
	refs := make([]BackendRef, 0, len(entries))
	for _, entry := range entries {
		tool, path, found := strings.Cut(entry, "=")
		ref := BackendRef{Tool: strings.TrimSpace(tool)}
		if found {
			ref.Path = strings.TrimSpace(path)
		}
		refs = append(refs, ref)
	}
	return refs
}

// splitList splits v on sep, trimming whitespace and dropping empties.
func splitList(v, sep string) []string {
	parts := strings.Split(v, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalize expands ~ in the root and falls back to startDir when no layer
// set a root.
func (c *Config) normalize(startDir string) error {
	if c.Root == "" {
		c.Root = startDir
	}
	expanded, err := expandHome(c.Root)
	if err != nil {
		return roveerrors.ConfigError(fmt.Sprintf("cannot expand root %q: %v", c.Root, err), err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return roveerrors.ConfigError(fmt.Sprintf("cannot resolve root %q: %v", expanded, err), err)
	}
	c.Root = abs
	return nil
}

// expandHome substitutes a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Validate checks the configuration shape. Filesystem state (whether the
// root exists) is deliberately not checked here so diagnostic commands can
// still run against a broken setup; the classifier enforces it on use.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return roveerrors.ConfigError("at least one accepted extension is required", nil)
	}
	for _, ext := range c.Extensions {
		if ext == "" {
			return roveerrors.ConfigError("accepted extensions must be non-empty", nil)
		}
		if strings.HasPrefix(ext, ".") {
			return roveerrors.ConfigError(
				fmt.Sprintf("extension %q must not carry a leading dot", ext), nil).
				WithSuggestion(fmt.Sprintf("Use %q instead of %q", strings.TrimPrefix(ext, "."), ext))
		}
	}

	for _, p := range c.Exclude {
		if _, err := regexp.Compile(p); err != nil {
			return roveerrors.New(roveerrors.ErrCodeBadPattern,
				fmt.Sprintf("invalid exclusion pattern %q: %v", p, err), err).
				WithDetail("pattern", p)
		}
	}

	for _, ref := range c.Backends {
		if !isKnownBackend(ref.Tool) {
			return roveerrors.New(roveerrors.ErrCodeUnknownBackend,
				fmt.Sprintf("no driver for tool %q", ref.Tool), nil).
				WithSuggestion("Supported tools: " + strings.Join(KnownBackends, ", "))
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return roveerrors.ConfigError(
			fmt.Sprintf("log.level must be debug, info, warn, or error, got %q", c.Log.Level), nil)
	}

	return nil
}

// isKnownBackend reports whether tool is a recognized backend identifier.
func isKnownBackend(tool string) bool {
	for _, known := range KnownBackends {
		if tool == known {
			return true
		}
	}
	return false
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return roveerrors.InternalError(fmt.Sprintf("cannot marshal config: %v", err), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return roveerrors.ConfigError(fmt.Sprintf("cannot write config file %s: %v", path, err), err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
