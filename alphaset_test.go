package alphaset

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/alphaset/lattice"
)

func TestApplyCheckOptions(t *testing.T) {
	o := ApplyCheckOptions()
	assert.Zero(t, o.Ceiling)
	assert.Nil(t, o.Hint)

	hint := lattice.DVector{1, 1, 0}
	o = ApplyCheckOptions(WithCeiling(7), WithHint(hint))
	assert.Equal(t, 7, o.Ceiling)
	assert.Equal(t, hint, o.Hint)
}

func TestLoggerConstructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewTextLogger(slog.LevelDebug))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))

	noop := NoopLogger()
	assert.NotNil(t, noop)
	assert.False(t, noop.Enabled(context.Background(), slog.LevelError), "noop logger must discard everything")
}

func TestLoggerWithHelpers(t *testing.T) {
	l := NoopLogger()
	assert.NotNil(t, l.WithTarget(42))
	assert.NotNil(t, l.WithK(3))
	assert.NotNil(t, l.WithBackend("sat"))
}
