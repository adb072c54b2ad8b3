package spectra

import (
  "fmt"
  "math"
)

// Spectrum is a handle on one simulation's tabulated flux power. The table
// is read from disk on first use and kept until Release is called.
type Spectrum struct {
  path  string
  maxZ  float64
  table *Table
}

// NewSpectrum returns a handle for the power table stored at path.
func NewSpectrum(path string) *Spectrum {
  return &Spectrum{path: path, maxZ: math.Inf(1)}
}

// WithMaxZ returns a new handle on the same file that only reports
// redshifts at or below maxZ.
func (s *Spectrum) WithMaxZ(maxZ float64) *Spectrum {
  return &Spectrum{path: s.path, maxZ: maxZ}
}

// Path is the file the spectrum is read from.
func (s *Spectrum) Path() string { return s.path }

// Loaded reports whether the table is currently held in memory.
func (s *Spectrum) Loaded() bool { return s.table != nil }

// Release drops the cached table. The next call that needs it reads the
// file again.
func (s *Spectrum) Release() { s.table = nil }

func (s *Spectrum) load() (*Table, error) {
  if s.table != nil {
    return s.table, nil
  }
  t, err := ReadTable(s.path)
  if err != nil {
    return nil, err
  }
  t = t.Restrict(s.maxZ)
  if len(t.redshifts) == 0 {
    return nil, fmt.Errorf("%s: no redshifts below z=%g: %w", s.path, s.maxZ, ErrEmptyResultSet)
  }
  s.table = t
  return t, nil
}

// Redshifts lists the redshifts the spectrum reports, in table order.
func (s *Spectrum) Redshifts() ([]float64, error) {
  t, err := s.load()
  if err != nil {
    return nil, err
  }
  return t.Redshifts(), nil
}

// Power evaluates the spectrum at kf with the given normalization, see
// Table.Power for the layout of the result.
func (s *Spectrum) Power(kf []float64, tau Tau0) ([]float64, error) {
  t, err := s.load()
  if err != nil {
    return nil, err
  }
  return t.Power(kf, tau)
}
