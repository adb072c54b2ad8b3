package report

import (
  "fmt"
  "strconv"

  "github.com/HamletTheHamster/emulator-paper-plots/emulator"
  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
)

// SingleParameterPlot draws, for every emulator parameter, the power of
// each simulation that moves that parameter away from the baseline
// simulation, divided by the baseline power at the lowest redshift kept.
func (g *Generator) SingleParameterPlot() error {
  kf, err := g.wavenumbers()
  if err != nil {
    return err
  }

  emu := emulator.New(g.cfg.Data(g.cfg.SingleParamEmulator))
  if err := emu.Load(); err != nil {
    return err
  }
  ts, err := emu.Training(g.cfg.MaxZ)
  if err != nil {
    return err
  }

  rows, _ := ts.Matrix.Dims()
  if rows == 0 {
    return fmt.Errorf("%s: %w", emu.Dir(), spectra.ErrEmptyResultSet)
  }
  b := g.cfg.BaselineRow
  if b >= rows {
    return fmt.Errorf("baseline row %d of %d: %w", b, rows, spectra.ErrShapeMismatch)
  }

  defpar := ts.Matrix.RawRowView(b)
  deffv, err := ts.Powers[b].Power(kf, spectra.Factor(1))
  if err != nil {
    return err
  }
  zs, err := ts.Powers[b].Redshifts()
  if err != nil {
    return err
  }
  ts.Powers[b].Release()
  zlabel := " (z=" + strconv.FormatFloat(zs[0], 'g', -1, 64) + ")"

  for _, p := range ts.Params {
    f := figure.New("", "k_F (s/km)", "P_F / P_F(baseline)")

    for i := 0; i < rows; i++ {
      tp := ts.Matrix.At(i, p.Index)
      if tp == defpar[p.Index] {
        continue
      }

      pw, err := ts.Powers[i].Power(kf, spectra.Factor(1))
      ts.Powers[i].Release()
      if err != nil {
        return err
      }
      fp, err := spectra.Ratio(pw, deffv)
      if err != nil {
        return err
      }
      first, err := spectra.Block(fp, 0, len(kf))
      if err != nil {
        return err
      }

      label := p.Name + "=" + strconv.FormatFloat(tp, 'g', -1, 64) + zlabel
      if err := f.Line(kf, first, label); err != nil {
        return err
      }
    }

    f.LogX()
    f.XLim(1e-3, 2e-2)
    f.YMin(0.6)
    if err := g.save(f, "single_param_"+p.Name+".pdf"); err != nil {
      return err
    }
  }
  return nil
}
