package extraction

import (
	"fjacquet/pdf-expenses/internal/dateutils"
	"fjacquet/pdf-expenses/internal/logging"
)

type parserOptions struct {
	now    dateutils.Clock
	logger logging.Logger
}

// Option configures a parser.
type Option func(*parserOptions)

// WithClock sets the clock used to default missing dates to today.
func WithClock(now dateutils.Clock) Option {
	return func(o *parserOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger that receives per-candidate debug output.
func WithLogger(logger logging.Logger) Option {
	return func(o *parserOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) parserOptions {
	o := parserOptions{now: dateutils.SystemClock, logger: logging.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
