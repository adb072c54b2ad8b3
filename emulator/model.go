package emulator

import (
  "fmt"

  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "gonum.org/v1/gonum/floats"
  "gonum.org/v1/gonum/mat"
)

// Class selects the interpolation scheme of a Model.
type Class int

const (
  // GP is a Gaussian process over the whole parameter space.
  GP Class = iota
  // Quadratic treats parameters as independent and fits a quadratic
  // response to each around the default simulation.
  Quadratic
)

func (c Class) String() string {
  switch c {
  case GP:
    return "gp"
  case Quadratic:
    return "quadratic"
  }
  return fmt.Sprintf("Class(%d)", int(c))
}

// TrainingTau0 is the normalization emulators are trained at.
var TrainingTau0 = spectra.Factor(1)

// Model predicts the flattened flux power, redshift-major, at a point in
// parameter space. The returned std is zero for models without an error
// estimate.
type Model interface {
  Predict(params []float64) (mean, std []float64, err error)
  // Redshifts lists the redshift blocks of a prediction.
  Redshifts() []float64
}

type trained struct {
  redshifts []float64
}

func (t *trained) Redshifts() []float64 { return append([]float64(nil), t.redshifts...) }

// Build trains a model of the given class on the emulator's own spectra
// evaluated at kf, restricted to redshifts at or below maxZ. Each table is
// released once its power has been read.
func (e *Emulator) Build(class Class, kf []float64, maxZ float64) (Model, error) {
  ts, err := e.Training(maxZ)
  if err != nil {
    return nil, err
  }

  var y *mat.Dense
  var zs []float64
  for i, s := range ts.Powers {
    sz, err := s.Redshifts()
    if err != nil {
      return nil, fmt.Errorf("emulator %s: sample %d: %w", e.dir, i, err)
    }
    if zs == nil {
      zs = sz
    } else if !floats.Equal(zs, sz) {
      s.Release()
      return nil, fmt.Errorf("emulator %s: sample %d has redshifts %v, want %v: %w", e.dir, i, sz, zs, spectra.ErrShapeMismatch)
    }
    p, err := s.Power(kf, TrainingTau0)
    s.Release()
    if err != nil {
      return nil, fmt.Errorf("emulator %s: sample %d: %w", e.dir, i, err)
    }
    if len(p) == 0 {
      return nil, fmt.Errorf("emulator %s: no wavenumbers: %w", e.dir, spectra.ErrEmptyResultSet)
    }
    if y == nil {
      y = mat.NewDense(len(ts.Powers), len(p), nil)
    }
    if _, c := y.Dims(); c != len(p) {
      return nil, fmt.Errorf("emulator %s: sample %d has %d power values, want %d: %w", e.dir, i, len(p), c, spectra.ErrShapeMismatch)
    }
    y.SetRow(i, p)
  }

  switch class {
  case GP:
    gp, err := newGaussianProcess(e.limits, ts.Matrix, y)
    if err != nil {
      return nil, err
    }
    gp.redshifts = zs
    return gp, nil
  case Quadratic:
    q, err := newQuadratic(e.limits, ts.Matrix, y, DefaultRow)
    if err != nil {
      return nil, err
    }
    q.redshifts = zs
    return q, nil
  }
  return nil, fmt.Errorf("emulator: unknown model class %v", class)
}

func checkParams(params []float64, want int) error {
  if len(params) != want {
    return fmt.Errorf("emulator: %d parameters, want %d: %w", len(params), want, spectra.ErrShapeMismatch)
  }
  return nil
}
