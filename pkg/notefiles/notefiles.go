package notefiles

import (
	"context"
	"log/slog"

	"github.com/rovenotes/rove/internal/config"
	"github.com/rovenotes/rove/internal/corpus"
	"github.com/rovenotes/rove/internal/scanner"
)

// Option configures a facade call.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes scanner diagnostics to l instead of discarding them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// List enumerates every managed note file under cfg's corpus root.
//
// Paths are absolute, symlink-resolved, and deduplicated; ordering follows
// first discovery and is stable for an unchanged tree. At most one backend
// subprocess is spawned per call.
func List(ctx context.Context, cfg *config.Config, opts ...Option) ([]string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s, err := scanner.New(scanner.Options{
		Config: cfg,
		Logger: o.logger,
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// IsManaged reports whether path belongs to the corpus described by cfg.
//
// The decision is made from the path alone: extension variant, descendant
// check against the resolved root, and the exclusion patterns. The file
// does not have to exist. The only error cases are an unusable root or an
// invalid exclusion pattern.
func IsManaged(cfg *config.Config, path string) (bool, error) {
	cl, err := corpus.NewClassifier(cfg.Root, cfg.Extensions, cfg.Exclude)
	if err != nil {
		return false, err
	}
	return cl.IsManaged(path), nil
}
