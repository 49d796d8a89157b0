package gopaginate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func Test_resolveLogger(t *testing.T) {
	explicitBuf, explicit := newBufferedLogger()
	ctxBuf, fromCtx := newBufferedLogger()
	defaultBuf, fallback := newBufferedLogger()

	previous := DefaultLogger()
	SetDefaultLogger(fallback)
	t.Cleanup(func() { SetDefaultLogger(previous) })

	ctx := fromCtx.WithContext(context.Background())

	logger := resolveLogger(ctx, &explicit)
	logger.Info().Msg("explicit")
	require.Contains(t, explicitBuf.String(), "explicit")

	logger = resolveLogger(ctx, nil)
	logger.Info().Msg("context")
	require.Contains(t, ctxBuf.String(), "context")

	disabled := zerolog.Nop().WithContext(context.Background())
	logger = resolveLogger(disabled, nil)
	logger.Info().Msg("default")
	require.Contains(t, defaultBuf.String(), "default")

	logger = resolveLogger(context.Background(), nil)
	logger.Info().Msg("background")
	require.Contains(t, defaultBuf.String(), "background")
}
