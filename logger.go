package gopaginate

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var _defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "gopaginate").Logger()
	_defaultLogger.Store(&logger)
}

// SetDefaultLogger replaces the logger used when neither Options nor the
// context carry one.
func SetDefaultLogger(logger zerolog.Logger) {
	_defaultLogger.Store(&logger)
}

// DefaultLogger returns the package level logger.
func DefaultLogger() zerolog.Logger {
	return *_defaultLogger.Load()
}

func resolveLogger(ctx context.Context, explicit *zerolog.Logger) zerolog.Logger {
	if explicit != nil {
		return *explicit
	}

	if ctx != nil {
		if fromCtx := zerolog.Ctx(ctx); fromCtx != nil && fromCtx.GetLevel() != zerolog.Disabled {
			return *fromCtx
		}
	}

	return DefaultLogger()
}
