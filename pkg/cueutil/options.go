// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of a single CUE document (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// Option configures ParseAndDecode.
	Option func(*parseOptions)

	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		if size > 0 {
			o.maxFileSize = size
		}
	}
}

// WithConcrete controls whether every field must be concrete after
// unification. Config documents turn this off because all of their
// fields are optional.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the name reported in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
