package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSuppressorWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sup := NewSuppressor()
	sup.now = func() time.Time { return now }

	require.False(t, sup.Suppressed(), "fresh suppressor must not suppress")

	sup.SuppressFor(time.Second)
	require.True(t, sup.Suppressed())

	now = now.Add(999 * time.Millisecond)
	require.True(t, sup.Suppressed(), "just inside the window")

	now = now.Add(time.Millisecond)
	require.False(t, sup.Suppressed(), "window boundary is exclusive")

	now = now.Add(time.Hour)
	require.False(t, sup.Suppressed())
}

func TestSuppressorLastWriterWins(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sup := NewSuppressor()
	sup.now = func() time.Time { return now }

	sup.SuppressFor(10 * time.Second)
	sup.SuppressFor(time.Second)

	now = now.Add(2 * time.Second)
	require.False(t, sup.Suppressed(), "shorter later window must overwrite the longer one")
}

func TestSuppressorZeroDuration(t *testing.T) {
	sup := NewSuppressor()
	sup.SuppressFor(0)
	require.False(t, sup.Suppressed())
}
