//go:build !gnuplot

package main

import (
  "io"
  "log/slog"
  "path/filepath"
  "testing"

  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/stretchr/testify/require"
)

func TestRunPreviewNeedsGnuplotBuild(t *testing.T) {
  plots := filepath.Join(t.TempDir(), "plots")
  err := run(slog.New(slog.NewTextHandler(io.Discard, nil)), "", plots, t.TempDir(), true)
  require.ErrorIs(t, err, figure.ErrNoPreview)
  require.NoDirExists(t, plots)
}
