package spectra

import (
  "fmt"

  "gonum.org/v1/gonum/floats"
)

// Ratio returns num/den element by element.
func Ratio(num, den []float64) ([]float64, error) {
  if len(num) != len(den) {
    return nil, fmt.Errorf("ratio of %d and %d values: %w", len(num), len(den), ErrShapeMismatch)
  }
  return floats.DivTo(make([]float64, len(num)), num, den), nil
}

// Block returns the i-th run of nk values of a redshift-major power vector.
func Block(v []float64, i, nk int) ([]float64, error) {
  if nk <= 0 || len(v)%nk != 0 {
    return nil, fmt.Errorf("%d values do not split into blocks of %d: %w", len(v), nk, ErrShapeMismatch)
  }
  if i < 0 || (i+1)*nk > len(v) {
    return nil, fmt.Errorf("block %d of %d: %w", i, len(v)/nk, ErrShapeMismatch)
  }
  return v[i*nk : (i+1)*nk], nil
}
