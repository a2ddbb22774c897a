package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	roveerrors "github.com/rovenotes/rove/internal/errors"
)

// isolateUserConfig points the user config lookup at a private empty
// directory so tests never see the developer's real config.
func isolateUserConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

// =============================================================================
// Defaults
// =============================================================================

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Root)
	assert.Equal(t, []string{"org"}, cfg.Extensions)
	assert.Empty(t, cfg.Exclude)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 5, cfg.Log.MaxFiles)
	assert.False(t, cfg.Log.Stderr)
}

func TestDefaultBackends_PlatformAware(t *testing.T) {
	backends := DefaultBackends()

	if runtime.GOOS == "windows" {
		assert.Empty(t, backends)
		return
	}

	require.Len(t, backends, 4)
	tools := make([]string, 0, len(backends))
	for _, b := range backends {
		tools = append(tools, b.Tool)
		assert.Empty(t, b.Path, "default entries carry no explicit path")
	}
	assert.Equal(t, []string{"find", "fd", "fdfind", "rg"}, tools)
}

// =============================================================================
// File loading
// =============================================================================

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	isolateUserConfig(t)

	// Given: a directory with no .rove.yaml anywhere up the tree
	tmpDir := t.TempDir()

	// When: loading configuration
	cfg, err := Load(tmpDir)

	// Then: defaults are returned and the start directory becomes the root
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"org"}, cfg.Extensions)
	assert.Equal(t, tmpDir, cfg.Root)
}

func TestLoad_YamlFile_OverridesDefaults(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	notesDir := filepath.Join(tmpDir, "notes")
	require.NoError(t, os.MkdirAll(notesDir, 0o755))

	configContent := `
root: ` + notesDir + `
extensions:
  - org
  - md
exclude:
  - '\.attach/'
  - '^drafts/'
backends:
  - fd
  - tool: rg
    path: /opt/tools/rg
log:
  level: debug
`
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, notesDir, cfg.Root)
	assert.Equal(t, []string{"org", "md"}, cfg.Extensions)
	assert.Equal(t, StringList{`\.attach/`, `^drafts/`}, cfg.Exclude)
	require.Len(t, cfg.Backends, 2)
	assert.Equal(t, BackendRef{Tool: "fd"}, cfg.Backends[0])
	assert.Equal(t, BackendRef{Tool: "rg", Path: "/opt/tools/rg"}, cfg.Backends[1])
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YmlExtension_IsRecognized(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yml"), []byte("extensions: [org, txt]\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, []string{"org", "txt"}, cfg.Extensions)
}

func TestLoad_YamlPreferredOverYml(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte("extensions: [org]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".rove.yml"), []byte("extensions: [md]\n"), 0o644))

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, []string{"org"}, cfg.Extensions)
}

func TestLoad_ScalarExcludeBecomesList(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte("exclude: '\\.attach/'\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, StringList{`\.attach/`}, cfg.Exclude)
}

func TestLoad_WalksUpToCorpusConfig(t *testing.T) {
	isolateUserConfig(t)

	// Given: a config file two levels above the start directory
	tmpDir := t.TempDir()
	deep := filepath.Join(tmpDir, "daily", "2026")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte("extensions: [org]\n"), 0o644)
	require.NoError(t, err)

	// When: loading from the nested directory
	cfg, err := Load(deep)

	// Then: the config file's directory becomes the corpus root
	require.NoError(t, err)
	assert.Equal(t, tmpDir, cfg.Root)
}

func TestLoad_ConfigFileRootKeyWins(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	elsewhere := filepath.Join(tmpDir, "elsewhere")
	require.NoError(t, os.MkdirAll(elsewhere, 0o755))
	configDir := filepath.Join(tmpDir, "cfg")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	err := os.WriteFile(filepath.Join(configDir, ".rove.yaml"), []byte("root: "+elsewhere+"\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(configDir)

	require.NoError(t, err)
	assert.Equal(t, elsewhere, cfg.Root)
}

func TestLoad_UserConfigApplies(t *testing.T) {
	xdgDir := isolateUserConfig(t)

	userDir := filepath.Join(xdgDir, "rove")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("extensions: [org, md]\nlog:\n  level: warn\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, []string{"org", "md"}, cfg.Extensions)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_CorpusConfigBeatsUserConfig(t *testing.T) {
	xdgDir := isolateUserConfig(t)

	userDir := filepath.Join(xdgDir, "rove")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	userRoot := t.TempDir()
	err := os.WriteFile(filepath.Join(userDir, "config.yaml"),
		[]byte("root: "+userRoot+"\nextensions: [txt]\n"), 0o644)
	require.NoError(t, err)

	// A corpus config without a root key still claims its own directory,
	// overriding the root inherited from the user layer.
	corpusDir := t.TempDir()
	err = os.WriteFile(filepath.Join(corpusDir, ".rove.yaml"), []byte("extensions: [org]\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(corpusDir)

	require.NoError(t, err)
	assert.Equal(t, corpusDir, cfg.Root)
	assert.Equal(t, []string{"org"}, cfg.Extensions)
}

func TestLoad_MalformedYAML_ReturnsParseError(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte("extensions: [unclosed\n"), 0o644)
	require.NoError(t, err)

	_, err = Load(tmpDir)

	require.Error(t, err)
	assert.Equal(t, roveerrors.ErrCodeConfigParse, roveerrors.GetCode(err))
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "custom.yaml")
	err := os.WriteFile(cfgPath, []byte("extensions: [org]\nbackends: [builtin]\n"), 0o644)
	require.NoError(t, err)

	cfg, err := LoadFile(cfgPath)

	require.NoError(t, err)
	assert.Equal(t, []BackendRef{{Tool: "builtin"}}, cfg.Backends)
	// Without a root key, the file's directory serves as the root.
	assert.Equal(t, tmpDir, cfg.Root)
}

func TestLoadFile_Missing_ReturnsNotFound(t *testing.T) {
	isolateUserConfig(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Equal(t, roveerrors.ErrCodeConfigNotFound, roveerrors.GetCode(err))
}

// =============================================================================
// Environment overrides
// =============================================================================

func TestLoad_EnvOverrides(t *testing.T) {
	isolateUserConfig(t)

	envRoot := t.TempDir()
	t.Setenv("ROVE_ROOT", envRoot)
	t.Setenv("ROVE_EXTENSIONS", "org, md")
	t.Setenv("ROVE_EXCLUDE", strings.Join([]string{`\.attach/`, `~$`}, string(os.PathListSeparator)))
	t.Setenv("ROVE_BACKENDS", "fd, rg=/usr/local/bin/rg")
	t.Setenv("ROVE_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, envRoot, cfg.Root)
	assert.Equal(t, []string{"org", "md"}, cfg.Extensions)
	assert.Equal(t, StringList{`\.attach/`, `~$`}, cfg.Exclude)
	assert.Equal(t, []BackendRef{
		{Tool: "fd"},
		{Tool: "rg", Path: "/usr/local/bin/rg"},
	}, cfg.Backends)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	isolateUserConfig(t)

	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte("extensions: [md]\n"), 0o644)
	require.NoError(t, err)
	t.Setenv("ROVE_EXTENSIONS", "org")

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, []string{"org"}, cfg.Extensions)
}

func TestParseBackendsEnv(t *testing.T) {
	refs := parseBackendsEnv("find, fd=/opt/fd ,rg")

	assert.Equal(t, []BackendRef{
		{Tool: "find"},
		{Tool: "fd", Path: "/opt/fd"},
		{Tool: "rg"},
	}, refs)
}

// =============================================================================
// Validation
// =============================================================================

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := NewConfig()
		cfg.Root = "/tmp"
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:     "no extensions",
			mutate:   func(c *Config) { c.Extensions = nil },
			wantCode: roveerrors.ErrCodeConfigInvalid,
		},
		{
			name:     "empty extension",
			mutate:   func(c *Config) { c.Extensions = []string{"org", ""} },
			wantCode: roveerrors.ErrCodeConfigInvalid,
		},
		{
			name:     "leading dot extension",
			mutate:   func(c *Config) { c.Extensions = []string{".org"} },
			wantCode: roveerrors.ErrCodeConfigInvalid,
		},
		{
			name:     "invalid exclusion pattern",
			mutate:   func(c *Config) { c.Exclude = StringList{"("} },
			wantCode: roveerrors.ErrCodeBadPattern,
		},
		{
			name:     "unknown backend tool",
			mutate:   func(c *Config) { c.Backends = []BackendRef{{Tool: "locate"}} },
			wantCode: roveerrors.ErrCodeUnknownBackend,
		},
		{
			name:   "builtin backend is known",
			mutate: func(c *Config) { c.Backends = []BackendRef{{Tool: "builtin"}} },
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Log.Level = "loud" },
			wantCode: roveerrors.ErrCodeConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, roveerrors.GetCode(err))
		})
	}
}

// =============================================================================
// YAML round-trip
// =============================================================================

func TestWriteYAML_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := NewConfig()
	cfg.Root = "/notes"
	cfg.Exclude = StringList{`\.attach/`}
	cfg.Backends = []BackendRef{{Tool: "fd"}, {Tool: "rg", Path: "/opt/rg"}}

	require.NoError(t, cfg.WriteYAML(path))

	loaded := NewConfig()
	require.NoError(t, loaded.loadYAML(path))
	assert.Equal(t, cfg.Root, loaded.Root)
	assert.Equal(t, cfg.Exclude, loaded.Exclude)
	assert.Equal(t, cfg.Backends, loaded.Backends)

	// Entries without an explicit path render as bare scalars.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- fd\n")
	assert.NotContains(t, string(data), "tool: fd")
}

func TestBackendRef_RejectsSequenceNode(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("backends:\n  - [find]\n"), &cfg)
	require.Error(t, err)
}

func TestStringList_RejectsMappingNode(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("exclude:\n  pattern: x\n"), &cfg)
	require.Error(t, err)
}

// =============================================================================
// Corpus root discovery
// =============================================================================

func TestFindCorpusRoot_NoConfig(t *testing.T) {
	tmpDir := t.TempDir()

	dir, file := FindCorpusRoot(tmpDir)

	assert.Equal(t, tmpDir, dir)
	assert.Empty(t, file)
}

func TestFindCorpusRoot_FindsNearestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	inner := filepath.Join(tmpDir, "projects", "notes")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".rove.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inner, ".rove.yml"), []byte(""), 0o644))

	dir, file := FindCorpusRoot(inner)

	assert.Equal(t, inner, dir)
	assert.Equal(t, filepath.Join(inner, ".rove.yml"), file)
}

// =============================================================================
// Home expansion
// =============================================================================

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = expandHome("~/notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), got)

	got, err = expandHome("/absolute/notes")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/notes", got)
}

// =============================================================================
// Backups
// =============================================================================

func TestBackupUserConfig_NoConfig(t *testing.T) {
	isolateUserConfig(t)

	path, err := BackupUserConfig()

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupUserConfig_CreatesCopy(t *testing.T) {
	xdgDir := isolateUserConfig(t)

	userDir := filepath.Join(xdgDir, "rove")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	configPath := filepath.Join(userDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("extensions: [org]\n"), 0o644))

	backupPath, err := BackupUserConfig()

	require.NoError(t, err)
	require.NotEmpty(t, backupPath)
	base := filepath.Base(backupPath)
	assert.True(t, strings.HasPrefix(base, "config.yaml.") && strings.HasSuffix(base, ".bak"),
		"unexpected backup name %q", base)

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "extensions: [org]\n", string(data))
}

func TestPruneBackups_KeepsNewest(t *testing.T) {
	xdgDir := isolateUserConfig(t)

	userDir := filepath.Join(xdgDir, "rove")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	configPath := filepath.Join(userDir, "config.yaml")

	stamps := []string{
		"20260101-000001",
		"20260101-000002",
		"20260101-000003",
		"20260101-000004",
		"20260101-000005",
	}
	for _, stamp := range stamps {
		name := configPath + "." + stamp + BackupSuffix
		require.NoError(t, os.WriteFile(name, []byte(stamp), 0o644))
	}

	pruneBackups(configPath)

	remaining := listBackups(configPath)
	require.Len(t, remaining, MaxBackups)
	// Newest first.
	assert.Contains(t, remaining[0], "20260101-000005")
	assert.Contains(t, remaining[2], "20260101-000003")
}
