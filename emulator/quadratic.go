package emulator

import (
  "fmt"

  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "github.com/maorshutman/lm"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/spatial/r1"
)

// DefaultRow is the simulation a quadratic design varies one parameter at
// a time around.
const DefaultRow = 0

// quadratic models the power as the default power multiplied by an
// independent quadratic response to each parameter,
//
//	P(x) = P0 * prod_p (1 + a_p dx_p + b_p dx_p^2),
//
// with dx_p the offset from the default in units of the prior range.
type quadratic struct {
  trained
  limits   []r1.Interval
  def      []float64
  defPower []float64
  // a[p] and b[p] hold one coefficient per output bin, nil when no
  // simulation varies parameter p.
  a, b [][]float64
}

func newQuadratic(limits []r1.Interval, params, power *mat.Dense, defRow int) (*quadratic, error) {
  n, d := params.Dims()
  if defRow < 0 || defRow >= n {
    return nil, fmt.Errorf("emulator: default row %d of %d: %w", defRow, n, spectra.ErrShapeMismatch)
  }
  _, m := power.Dims()

  q := &quadratic{
    limits:   limits,
    def:      mat.Row(nil, defRow, params),
    defPower: mat.Row(nil, defRow, power),
    a:        make([][]float64, d),
    b:        make([][]float64, d),
  }

  for p := 0; p < d; p++ {
    var dx []float64
    var rows []int
    for i := 0; i < n; i++ {
      if i == defRow || !q.variesOnly(params.RawRowView(i), p) {
        continue
      }
      dx = append(dx, q.offset(p, params.At(i, p)))
      rows = append(rows, i)
    }
    if len(rows) == 0 {
      continue
    }

    q.a[p] = make([]float64, m)
    q.b[p] = make([]float64, m)
    y := make([]float64, len(rows))
    for j := 0; j < m; j++ {
      for k, i := range rows {
        y[k] = power.At(i, j)/q.defPower[j] - 1
      }
      coeffs, err := fitResponse(dx, y)
      if err != nil {
        return nil, fmt.Errorf("emulator: quadratic fit of parameter %d bin %d: %w", p, j, err)
      }
      q.a[p][j] = coeffs[0]
      if len(coeffs) > 1 {
        q.b[p][j] = coeffs[1]
      }
    }
  }
  return q, nil
}

func (q *quadratic) offset(p int, v float64) float64 {
  l := q.limits[p]
  return (v - q.def[p]) / (l.Max - l.Min)
}

func (q *quadratic) variesOnly(row []float64, p int) bool {
  for i, v := range row {
    if (i == p) == (v == q.def[i]) {
      return false
    }
  }
  return true
}

// fitResponse fits y = a dx + b dx^2, or y = a dx with a single point.
func fitResponse(dx, y []float64) ([]float64, error) {
  dim := 2
  if len(dx) < 2 {
    dim = 1
  }

  f := func(dst, guess []float64) {
    for i := range dx {
      r := guess[0] * dx[i]
      if dim == 2 {
        r += guess[1] * dx[i] * dx[i]
      }
      dst[i] = r - y[i]
    }
  }

  jacobian := lm.NumJac{Func: f}

  toBeSolved := lm.LMProblem{
    Dim:        dim,
    Size:       len(dx),
    Func:       f,
    Jac:        jacobian.Jac,
    InitParams: make([]float64, dim),
    Tau:        1e-6,
    Eps1:       1e-8,
    Eps2:       1e-8,
  }

  results, err := lm.LM(toBeSolved, &lm.Settings{Iterations: 100, ObjectiveTol: 1e-16})
  if err != nil {
    return nil, err
  }
  return results.X, nil
}

// Predict returns the power at params. The quadratic model carries no
// error estimate, so std is all zeros.
func (q *quadratic) Predict(params []float64) ([]float64, []float64, error) {
  if err := checkParams(params, len(q.def)); err != nil {
    return nil, nil, err
  }

  mean := append([]float64(nil), q.defPower...)
  for p, a := range q.a {
    if a == nil {
      continue
    }
    dx := q.offset(p, params[p])
    for j := range mean {
      mean[j] *= 1 + a[j]*dx + q.b[p][j]*dx*dx
    }
  }
  return mean, make([]float64, len(mean)), nil
}
