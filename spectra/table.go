package spectra

import (
  "fmt"
  "math"

  "gonum.org/v1/gonum/floats"
  "gonum.org/v1/gonum/interp"
)

// zTol is the tolerance used when comparing redshifts against a cut.
const zTol = 1e-6

// Table holds tabulated flux power per redshift and tau0 normalization.
// Redshifts keep the order in which they first appear in the source rows.
type Table struct {
  redshifts []float64
  series    map[string][]*series
}

type series struct {
  logk  []float64
  power []float64
  pl    *interp.PiecewiseLinear
}

// NewTable groups rows by normalization and redshift and sorts every
// group by wavenumber.
func NewTable(rows []Row) (*Table, error) {
  if len(rows) == 0 {
    return nil, fmt.Errorf("power table: %w", ErrEmptyResultSet)
  }

  t := &Table{series: make(map[string][]*series)}
  zIndex := make(map[float64]int)
  k := make(map[*series][]float64)

  for _, r := range rows {
    if r.K <= 0 {
      return nil, fmt.Errorf("power table: non-positive k %g at z=%g", r.K, r.Z)
    }
    i, ok := zIndex[r.Z]
    if !ok {
      i = len(t.redshifts)
      zIndex[r.Z] = i
      t.redshifts = append(t.redshifts, r.Z)
    }

    key := r.Tau0.key()
    ss := t.series[key]
    for len(ss) <= i {
      ss = append(ss, nil)
    }
    if ss[i] == nil {
      ss[i] = &series{}
    }
    k[ss[i]] = append(k[ss[i]], r.K)
    ss[i].power = append(ss[i].power, r.Power)
    t.series[key] = ss
  }

  for key, ss := range t.series {
    for len(ss) < len(t.redshifts) {
      ss = append(ss, nil)
    }
    for _, s := range ss {
      if s == nil {
        continue
      }
      ks := k[s]
      inds := make([]int, len(ks))
      floats.Argsort(ks, inds)
      power := make([]float64, len(inds))
      s.logk = make([]float64, len(ks))
      for j, ind := range inds {
        power[j] = s.power[ind]
        s.logk[j] = math.Log(ks[j])
      }
      s.power = power
    }
    t.series[key] = ss
  }

  return t, nil
}

// Redshifts returns the tabulated redshifts in table order.
func (t *Table) Redshifts() []float64 {
  return append([]float64(nil), t.redshifts...)
}

// Restrict returns a view of the table holding only redshifts at or below
// maxZ. An infinite maxZ returns the table itself.
func (t *Table) Restrict(maxZ float64) *Table {
  if math.IsInf(maxZ, 1) {
    return t
  }

  r := &Table{series: make(map[string][]*series, len(t.series))}
  var keep []int
  for i, z := range t.redshifts {
    if z <= maxZ+zTol {
      keep = append(keep, i)
      r.redshifts = append(r.redshifts, z)
    }
  }
  for key, ss := range t.series {
    sub := make([]*series, len(keep))
    for j, i := range keep {
      sub[j] = ss[i]
    }
    r.series[key] = sub
  }
  return r
}

// Power evaluates the table at every wavenumber in kf for each redshift and
// returns the blocks concatenated in redshift order, len(Redshifts())*len(kf)
// values in total. Wavenumbers outside the tabulated range take the value at
// the nearest end.
func (t *Table) Power(kf []float64, tau Tau0) ([]float64, error) {
  if len(t.redshifts) == 0 {
    return nil, fmt.Errorf("power table: %w", ErrEmptyResultSet)
  }
  ss, ok := t.series[tau.key()]
  if !ok {
    return nil, fmt.Errorf("%v: %w", tau, ErrMissingNormalization)
  }

  out := make([]float64, 0, len(t.redshifts)*len(kf))
  for i, z := range t.redshifts {
    s := ss[i]
    if s == nil {
      return nil, fmt.Errorf("no power at z=%g for %v: %w", z, tau, ErrShapeMismatch)
    }
    block, err := s.at(kf)
    if err != nil {
      return nil, fmt.Errorf("z=%g: %w", z, err)
    }
    out = append(out, block...)
  }
  return out, nil
}

func (s *series) at(kf []float64) ([]float64, error) {
  n := len(s.logk)
  if n < 2 {
    return nil, fmt.Errorf("%d tabulated wavenumbers, need at least 2: %w", n, ErrShapeMismatch)
  }
  if s.pl == nil {
    var pl interp.PiecewiseLinear
    if err := pl.Fit(s.logk, s.power); err != nil {
      return nil, err
    }
    s.pl = &pl
  }

  out := make([]float64, len(kf))
  for i, k := range kf {
    if k <= 0 {
      return nil, fmt.Errorf("non-positive wavenumber %g", k)
    }
    x := math.Min(math.Max(math.Log(k), s.logk[0]), s.logk[n-1])
    out[i] = s.pl.Predict(x)
  }
  return out, nil
}
