// Package notefiles is the library entry point for corpus enumeration and
// membership classification.
//
// It fronts the internal scanner and classifier so that callers get the
// same file set the rove CLI reports, without wiring up the pieces
// themselves.
//
// # Usage
//
// Enumerate every managed file under a configured corpus:
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	files, err := notefiles.List(ctx, cfg)
//
// Classify a single path without touching the filesystem tree:
//
//	ok, err := notefiles.IsManaged(cfg, "/notes/projects/rove.org")
//
// List shells out to the first installed backend tool (or walks the tree
// itself) and returns absolute, canonical, deduplicated paths. IsManaged
// is a pure path computation; the file does not have to exist.
package notefiles
