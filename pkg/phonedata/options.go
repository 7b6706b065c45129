package phonedata

import "github.com/bft-labs/phonedata/pkg/log"

// Option configures optional behavior of Load and LoadReader.
type Option func(*options)

// options holds the optional configuration for a load.
type options struct {
	logger      log.Logger
	strictIndex bool
	sortCheck   bool
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a logger for load diagnostics.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictIndex rejects a file whose index section ends with a partial
// entry. By default the partial entry is ignored and a warning is logged,
// which matches how existing phone.dat readers behave.
func WithStrictIndex() Option {
	return func(o *options) {
		o.strictIndex = true
	}
}

// WithSortCheck verifies that index prefixes are strictly ascending and
// rejects the file otherwise. The index is never re-sorted.
func WithSortCheck() Option {
	return func(o *options) {
		o.sortCheck = true
	}
}
