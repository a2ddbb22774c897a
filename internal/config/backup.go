package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// MaxBackups is how many config backups pruning leaves behind.
	MaxBackups = 3

	// BackupSuffix marks backup copies of the user config.
	BackupSuffix = ".bak"
)

// BackupUserConfig copies the user config aside before an overwrite.
// The copy is named <config>.<timestamp>.bak so newer backups sort
// after older ones. Returns the backup path, or "" when no user config
// exists yet.
func BackupUserConfig() (string, error) {
	configPath := GetUserConfigPath()
	if !UserConfigExists() {
		return "", nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config for backup: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	backupPath := configPath + "." + stamp + BackupSuffix
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	pruneBackups(configPath)
	return backupPath, nil
}

// listBackups returns the backups of configPath, newest first.
func listBackups(configPath string) []string {
	backups, err := filepath.Glob(configPath + ".*" + BackupSuffix)
	if err != nil {
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups
}

// pruneBackups drops all but the newest MaxBackups copies. Removal
// failures are ignored.
func pruneBackups(configPath string) {
	backups := listBackups(configPath)
	for _, old := range backups[min(MaxBackups, len(backups)):] {
		_ = os.Remove(old)
	}
}
