// SPDX-License-Identifier: MPL-2.0

package module

import (
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"vconsole/internal/runtime"
	"vconsole/pkg/cueutil"
)

type (
	// Option configures LoadCode and LoadDir.
	Option func(*loadOptions)

	loadOptions struct {
		builtins    Builtins
		runtime     *runtime.VirtualRuntime
		logger      *log.Logger
		maxFileSize int64
	}
)

func newLoadOptions(opts []Option) loadOptions {
	o := loadOptions{
		builtins:    Builtins{},
		logger:      log.New(io.Discard),
		maxFileSize: cueutil.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runtime == nil {
		o.runtime = runtime.NewVirtualRuntime(o.logger)
	}
	return o
}

// WithBuiltins adds Go command bodies that modules can reference by name.
func WithBuiltins(b Builtins) Option {
	return func(o *loadOptions) {
		maps.Copy(o.builtins, b)
	}
}

// WithRuntime sets the runtime executing script bodies.
func WithRuntime(rt *runtime.VirtualRuntime) Option {
	return func(o *loadOptions) { o.runtime = rt }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxFileSize bounds the size of a module source.
func WithMaxFileSize(size int64) Option {
	return func(o *loadOptions) {
		if size > 0 {
			o.maxFileSize = size
		}
	}
}
