// Package configs provides embedded configuration templates for rove.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they ship inside the binary regardless of how rove was installed:
//   - Source builds (go install)
//   - Binary releases
//
// The templates are used by cmd/rove/cmd/config.go: `rove config --init`
// writes .rove.yaml at the corpus root, and --init --user writes the
// machine-wide user config.
//
// Configuration precedence (see internal/config Load()):
//  1. Built-in defaults (internal/config NewConfig())
//  2. User config (~/.config/rove/config.yaml)
//  3. Corpus config (.rove.yaml at the corpus root)
//  4. Environment variables (ROVE_*)
//  5. Command-line flags
//
// To modify templates, edit the .yaml files in this directory and rebuild.
package configs

import _ "embed"

// CorpusConfigTemplate is the starter for corpus-level configuration.
// Created by: `rove config --init` as .rove.yaml.
// The directory holding the file claims the corpus root unless the file
// sets root itself.
//
//go:embed corpus-config.example.yaml
var CorpusConfigTemplate string

// UserConfigTemplate is the starter for user/machine-level configuration.
// Created by: `rove config --init --user` at ~/.config/rove/config.yaml.
// Contains settings that apply to every corpus on this machine.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
