// Package logging provides opt-in file-based logging with rotation for rove.
// When the --verbose flag is set, log entries are echoed to stderr at debug
// level; otherwise they go to ~/.rove/logs/ only, keeping stdout clean for
// machine-readable command output.
package logging
