// Package corpus decides which filesystem paths belong to a managed note
// corpus: extension matching with encryption-suffix handling, regex-based
// exclusion rules, and the membership predicate combining both with a
// root-descendant check.
package corpus

import (
	"path/filepath"
	"strings"
)

// encryptionSuffixes are trailing markers appended after the true content
// extension of an encrypted note (notes.org.gpg). They are peeled exactly
// once before extension classification.
var encryptionSuffixes = map[string]bool{
	"gpg": true,
	"age": true,
}

// ExtensionOf returns the content extension of path's base name.
//
// The extension is the final dot-delimited suffix, with no special-casing of
// numeric tails ("backup.2" has extension "2"). If that suffix is an
// encryption marker, it is stripped and the extension re-extracted one level
// down, so "notes.org.gpg" and "notes.org.age" both report "org". The peel
// happens at most once: "secret.gpg.gpg" reports "gpg".
//
// The second return is false when the name carries no extension: no dot,
// a dotfile like ".bashrc", or a trailing dot.
func ExtensionOf(path string) (string, bool) {
	base := filepath.Base(path)
	ext, ok := rawExtension(base)
	if !ok {
		return "", false
	}
	if encryptionSuffixes[ext] {
		return rawExtension(strings.TrimSuffix(base, "."+ext))
	}
	return ext, true
}

// rawExtension extracts the suffix after the last dot of name. A dot at
// position zero marks a dotfile, not an extension.
func rawExtension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}
