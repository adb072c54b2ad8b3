package report

import (
  "fmt"
  "strconv"

  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "gonum.org/v1/gonum/floats"
)

// zTol is how far a snapshot redshift may sit from its configured value.
const zTol = 1e-6

// SampleVarPlot compares two reseeded runs against a base run of the same
// cosmology, showing how much the flux power moves with the initial
// conditions alone.
func (g *Generator) SampleVarPlot() error {
  kf, err := g.wavenumbers()
  if err != nil {
    return err
  }
  nk := len(kf)

  zout := g.cfg.Zout
  pk := make([][]float64, len(g.cfg.SampleRuns))
  for i, run := range g.cfg.SampleRuns {
    snaps, err := spectra.LoadSnapshots(g.cfg.Data(run))
    if err != nil {
      return err
    }
    if zs := snaps.Redshifts(); !floats.EqualApprox(zs, zout, zTol) {
      return fmt.Errorf("%s: snapshot redshifts %v, want %v: %w", run, zs, zout, spectra.ErrShapeMismatch)
    }
    if pk[i], err = snaps.Power(kf, spectra.Unnormalized); err != nil {
      return fmt.Errorf("%s: %w", run, err)
    }
    if len(pk[i]) != len(zout)*nk {
      return fmt.Errorf("%s: %d power values, want %d redshifts x %d wavenumbers: %w",
        run, len(pk[i]), len(zout), nk, spectra.ErrShapeMismatch)
    }
  }

  seed1, err := spectra.Ratio(pk[1], pk[0])
  if err != nil {
    return err
  }
  seed2, err := spectra.Ratio(pk[2], pk[0])
  if err != nil {
    return err
  }

  f := figure.New("Sample Variance", "k_F (s/km)", "Sample Variance Ratio")
  for _, i := range g.cfg.RedshiftSlices {
    if i >= len(zout) {
      return fmt.Errorf("redshift slice %d of %d: %w", i, len(zout), spectra.ErrShapeMismatch)
    }
    z := strconv.FormatFloat(zout[i], 'g', -1, 64)

    r1, err := spectra.Block(seed1, i, nk)
    if err != nil {
      return err
    }
    if err := f.Line(kf, r1, "Seed 1 z="+z); err != nil {
      return err
    }
    r2, err := spectra.Block(seed2, i, nk)
    if err != nil {
      return err
    }
    if err := f.Line(kf, r2, "Seed 2 z="+z); err != nil {
      return err
    }
  }

  f.LogX()
  f.XMax(0.05)
  return g.save(f, "sample_var.pdf")
}
