package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/logging"
)

func TestDefaultIsNopUntilSet(t *testing.T) {
	require.NotPanics(t, func() {
		logging.Default().Info("no default configured yet")
	})
}

func TestSetDefaultReplacesLogger(t *testing.T) {
	l, err := logging.NewLogger(logging.Config{Level: "debug", Console: true})
	require.NoError(t, err)

	logging.SetDefault(l)
	t.Cleanup(func() { logging.SetDefault(logging.NewNopLogger()) })

	require.NotPanics(t, func() {
		logging.Default().Info("hello", logging.String("k", "v"), logging.Int("n", 3))
	})
}

func TestNopLoggerWithAndNamedReturnNop(t *testing.T) {
	l := logging.NewNopLogger()
	child := l.With(logging.String("a", "b")).Named("child")
	require.NotPanics(t, func() {
		child.Warn("warning", logging.Err(nil))
	})
}
