// Package interptest checks an emulator against a held-out set of
// simulations and plots how well it interpolates.
package interptest

import (
  "fmt"
  "math"
  "path/filepath"
  "strconv"
  "strings"

  "github.com/HamletTheHamster/emulator-paper-plots/emulator"
  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "gonum.org/v1/gonum/floats"
  "gonum.org/v1/gonum/stat"
)

// Options configures a comparison.
type Options struct {
  Class emulator.Class
  // MaxZ restricts both sets to redshifts at or below it. Zero means no
  // restriction.
  MaxZ float64
  // Bins is the number of histogram bins of the error histogram.
  // Defaults to 20.
  Bins int
}

// Summary is the outcome of one comparison.
type Summary struct {
  Name      string
  Class     emulator.Class
  Redshifts []float64
  // MaxFracErr is the largest |predicted/exact - 1| of each test sample.
  MaxFracErr  []float64
  MeanFracErr float64
  StdFracErr  float64
  // Worst is the test sample with the largest MaxFracErr.
  Worst int
  Files []string
}

// PlotTestInterpolate trains a model of opts.Class on the emulator in
// emuDir, predicts every simulation in testDir at the wavenumbers kf and
// writes into saveDir one ratio plot per test simulation, a histogram of
// all fractional errors and a box plot of the errors per redshift.
func PlotTestInterpolate(
  emuDir, testDir, saveDir string,
  kf []float64,
  opts Options,
) (*Summary, error) {
  maxZ := opts.MaxZ
  if maxZ == 0 {
    maxZ = math.Inf(1)
  }
  bins := opts.Bins
  if bins <= 0 {
    bins = 20
  }

  emu := emulator.New(emuDir)
  if err := emu.Load(); err != nil {
    return nil, err
  }
  model, err := emu.Build(opts.Class, kf, maxZ)
  if err != nil {
    return nil, err
  }

  test := emulator.New(testDir)
  if err := test.Load(); err != nil {
    return nil, err
  }
  if err := sameParams(emu.Params(), test.Params()); err != nil {
    return nil, fmt.Errorf("%s vs %s: %w", emuDir, testDir, err)
  }
  ts, err := test.Training(maxZ)
  if err != nil {
    return nil, err
  }
  if len(ts.Powers) == 0 {
    return nil, fmt.Errorf("test set %s: %w", testDir, spectra.ErrEmptyResultSet)
  }

  sum := &Summary{Name: filepath.Base(saveDir), Class: opts.Class, Worst: -1}
  var all []float64
  var byZ [][]float64

  for i, s := range ts.Powers {
    params := ts.Matrix.RawRowView(i)

    zs, err := s.Redshifts()
    if err != nil {
      return nil, err
    }
    exact, err := s.Power(kf, emulator.TrainingTau0)
    s.Release()
    if err != nil {
      return nil, fmt.Errorf("test sample %d: %w", i, err)
    }
    if want := model.Redshifts(); !floats.Equal(want, zs) {
      return nil, fmt.Errorf("test sample %d: redshifts %v, emulator trained at %v: %w", i, zs, want, spectra.ErrShapeMismatch)
    }
    mean, std, err := model.Predict(params)
    if err != nil {
      return nil, fmt.Errorf("test sample %d: %w", i, err)
    }
    if len(mean) != len(exact) || len(exact) != len(zs)*len(kf) {
      return nil, fmt.Errorf("test sample %d: predicted %d values, exact %d, want %d redshifts x %d wavenumbers: %w",
        i, len(mean), len(exact), len(zs), len(kf), spectra.ErrShapeMismatch)
    }
    if sum.Redshifts == nil {
      sum.Redshifts = zs
      byZ = make([][]float64, len(zs))
    } else if !floats.Equal(sum.Redshifts, zs) {
      return nil, fmt.Errorf("test sample %d: redshifts %v, want %v: %w", i, zs, sum.Redshifts, spectra.ErrShapeMismatch)
    }

    ratio, err := spectra.Ratio(mean, exact)
    if err != nil {
      return nil, err
    }
    frac := make([]float64, len(ratio))
    for j, r := range ratio {
      frac[j] = r - 1
    }
    all = append(all, frac...)

    worst := 0.0
    for _, f := range frac {
      worst = math.Max(worst, math.Abs(f))
    }
    sum.MaxFracErr = append(sum.MaxFracErr, worst)
    if sum.Worst < 0 || worst > sum.MaxFracErr[sum.Worst] {
      sum.Worst = i
    }

    f := figure.New(describe(ts.Params, params), "k_F (s/km)", "Predicted/Exact")
    f.LogX()
    for zi, z := range zs {
      r, err := spectra.Block(ratio, zi, len(kf))
      if err != nil {
        return nil, err
      }
      if err := f.Line(kf, r, "z="+strconv.FormatFloat(z, 'f', 1, 64)); err != nil {
        return nil, err
      }
      fz, err := spectra.Block(frac, zi, len(kf))
      if err != nil {
        return nil, err
      }
      byZ[zi] = append(byZ[zi], fz...)

      if floats.Max(std) > 0 {
        lo, hi, err := envelope(mean, std, exact, zi, len(kf))
        if err != nil {
          return nil, err
        }
        if err := f.Envelope(kf, lo, hi); err != nil {
          return nil, err
        }
      }
    }
    path := filepath.Join(saveDir, fmt.Sprintf("test_interp_%d.pdf", i))
    if err := f.Save(path); err != nil {
      return nil, err
    }
    sum.Files = append(sum.Files, path)
  }

  sum.MeanFracErr, sum.StdFracErr = stat.MeanStdDev(all, nil)

  hist := figure.New("Emulator error ("+opts.Class.String()+")", "Predicted/Exact - 1", "Count")
  if err := hist.Hist(all, bins); err != nil {
    return nil, err
  }
  path := filepath.Join(saveDir, "error_hist.pdf")
  if err := hist.Save(path); err != nil {
    return nil, err
  }
  sum.Files = append(sum.Files, path)

  names := make([]string, len(sum.Redshifts))
  for i, z := range sum.Redshifts {
    names[i] = "z=" + strconv.FormatFloat(z, 'f', 1, 64)
  }
  box := figure.New("Emulator error by redshift", "", "Predicted/Exact - 1")
  if err := box.BoxPlots(byZ, names); err != nil {
    return nil, err
  }
  path = filepath.Join(saveDir, "error_box.pdf")
  if err := box.Save(path); err != nil {
    return nil, err
  }
  sum.Files = append(sum.Files, path)

  return sum, nil
}

func sameParams(a, b []emulator.Param) error {
  if len(a) != len(b) {
    return fmt.Errorf("%d parameters vs %d: %w", len(a), len(b), spectra.ErrShapeMismatch)
  }
  for i := range a {
    if a[i] != b[i] {
      return fmt.Errorf("parameter %d is %q vs %q: %w", i, a[i].Name, b[i].Name, spectra.ErrShapeMismatch)
    }
  }
  return nil
}

func envelope(mean, std, exact []float64, zi, nk int) (lo, hi []float64, err error) {
  m, err := spectra.Block(mean, zi, nk)
  if err != nil {
    return nil, nil, err
  }
  s, err := spectra.Block(std, zi, nk)
  if err != nil {
    return nil, nil, err
  }
  e, err := spectra.Block(exact, zi, nk)
  if err != nil {
    return nil, nil, err
  }
  lo = make([]float64, nk)
  hi = make([]float64, nk)
  for j := range lo {
    lo[j] = (m[j] - s[j]) / e[j]
    hi[j] = (m[j] + s[j]) / e[j]
  }
  return lo, hi, nil
}

func describe(names []emulator.Param, values []float64) string {
  parts := make([]string, len(names))
  for i, p := range names {
    parts[i] = p.Name + "=" + strconv.FormatFloat(values[p.Index], 'g', 3, 64)
  }
  return strings.Join(parts, " ")
}
