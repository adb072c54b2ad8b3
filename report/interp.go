package report

import (
  "github.com/HamletTheHamster/emulator-paper-plots/emulator"
  "github.com/HamletTheHamster/emulator-paper-plots/interptest"
)

// S8Summaries holds the three interpolation tests of the s8 suite.
type S8Summaries struct {
  // Emulator is the Gaussian process on the Latin hypercube design.
  Emulator *interptest.Summary
  // Quadratic is the Gaussian process on the quadratic design.
  Quadratic *interptest.Summary
  // QuadQuad is the quadratic emulator on the quadratic design.
  QuadQuad *interptest.Summary
}

// TestS8Plots checks the s8 emulators against the s8 test suite.
func (g *Generator) TestS8Plots() (*S8Summaries, error) {
  kf, err := g.wavenumbers()
  if err != nil {
    return nil, err
  }
  testdir := g.cfg.Data(g.cfg.S8Test)

  gpEmu, err := g.testInterpolate(g.cfg.S8Emulator, testdir, "hires_s8", emulator.GP, kf)
  if err != nil {
    return nil, err
  }
  gpQuad, err := g.testInterpolate(g.cfg.S8Quadratic, testdir, "hires_s8_quadratic", emulator.GP, kf)
  if err != nil {
    return nil, err
  }
  quadQuad, err := g.testInterpolate(g.cfg.S8Quadratic, testdir, "hires_s8_quad_quad", emulator.Quadratic, kf)
  if err != nil {
    return nil, err
  }
  return &S8Summaries{Emulator: gpEmu, Quadratic: gpQuad, QuadQuad: quadQuad}, nil
}

// TestKnotPlots checks the knot emulator against its test suite.
func (g *Generator) TestKnotPlots() (*interptest.Summary, error) {
  kf, err := g.wavenumbers()
  if err != nil {
    return nil, err
  }
  return g.testInterpolate(g.cfg.KnotsEmulator, g.cfg.Data(g.cfg.KnotsTest), "hires_knots", emulator.GP, kf)
}

func (g *Generator) testInterpolate(
  emudir, testdir, savedir string,
  class emulator.Class,
  kf []float64,
) (
  *interptest.Summary, error,
) {

  sum, err := interptest.PlotTestInterpolate(
    g.cfg.Data(emudir), testdir, g.cfg.Plot(savedir), kf,
    interptest.Options{Class: class},
  )
  if err != nil {
    return nil, err
  }
  g.record(sum.Files)
  g.log.Info("interpolation test",
    "save", savedir, "class", class.String(),
    "mean_err", sum.MeanFracErr, "std_err", sum.StdFracErr,
  )
  return sum, nil
}
