package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"WARN", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	l := Nop()
	l.Debug("msg", String("k", "v"))
	l.Info("msg", Int("n", 1))
	l.Warn("msg", Uint64("n", 2))
	l.Error("msg", Err(nil))
	require.NoError(t, l.Sync())

	child := l.With(String("scope", "test"))
	require.NotNil(t, child)
}
