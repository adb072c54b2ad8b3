// Package hypercube draws Latin hypercube samples of a rectangular
// parameter space.
package hypercube

import (
  "errors"
  "fmt"
  "math"
  "math/rand/v2"

  "gonum.org/v1/gonum/floats"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/spatial/r1"
  "gonum.org/v1/gonum/stat/distmv"
  "gonum.org/v1/gonum/stat/samplemv"
)

var (
  ErrInvalidLimits    = errors.New("hypercube: invalid parameter limits")
  ErrInvalidDivisions = errors.New("hypercube: divisions must be positive")
)

// Grid is a parameter domain split into an equal number of strata along
// every dimension.
type Grid struct {
  limits    []r1.Interval
  divisions int
}

// NewGrid returns a grid over limits with the given number of divisions per
// dimension.
func NewGrid(limits []r1.Interval, divisions int) (*Grid, error) {
  if divisions < 1 {
    return nil, fmt.Errorf("%w: %d", ErrInvalidDivisions, divisions)
  }
  if len(limits) == 0 {
    return nil, fmt.Errorf("%w: no dimensions", ErrInvalidLimits)
  }
  for i, l := range limits {
    if !(l.Min < l.Max) || math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0) {
      return nil, fmt.Errorf("%w: dimension %d is [%g, %g]", ErrInvalidLimits, i, l.Min, l.Max)
    }
  }
  return &Grid{limits: append([]r1.Interval(nil), limits...), divisions: divisions}, nil
}

// UnitGrid returns a grid over the unit cube of dim dimensions.
func UnitGrid(dim, divisions int) (*Grid, error) {
  limits := make([]r1.Interval, dim)
  for i := range limits {
    limits[i] = r1.Interval{Min: 0, Max: 1}
  }
  return NewGrid(limits, divisions)
}

func (g *Grid) Dims() int      { return len(g.limits) }
func (g *Grid) Divisions() int { return g.divisions }

// Limits returns the bounds of dimension dim.
func (g *Grid) Limits(dim int) r1.Interval { return g.limits[dim] }

// Cut returns the divisions+1 stratum boundaries of dimension dim.
func (g *Grid) Cut(dim int) []float64 {
  l := g.limits[dim]
  return floats.Span(make([]float64, g.divisions+1), l.Min, l.Max)
}

// Centers returns the midpoint of every stratum of dimension dim.
func (g *Grid) Centers(dim int) []float64 {
  cut := g.Cut(dim)
  c := make([]float64, g.divisions)
  for i := range c {
    c[i] = (cut[i] + cut[i+1]) / 2
  }
  return c
}

// Stratum returns the index of the stratum of dimension dim holding x.
// The upper bound belongs to the last stratum.
func (g *Grid) Stratum(dim int, x float64) int {
  l := g.limits[dim]
  i := int(math.Floor((x - l.Min) / (l.Max - l.Min) * float64(g.divisions)))
  if i == g.divisions && x == l.Max {
    i--
  }
  return i
}

// Sample draws one Latin hypercube: a divisions×dims matrix with exactly one
// row in every stratum of every dimension.
func (g *Grid) Sample(src rand.Source) *mat.Dense {
  batch := mat.NewDense(g.divisions, len(g.limits), nil)
  samplemv.LatinHypercube{
    Q:   distmv.NewUniform(g.limits, src),
    Src: src,
  }.Sample(batch)
  return batch
}

// MaximinSample draws tries hypercubes and returns the one whose closest
// pair of points, measured in units of each dimension's range, is the
// furthest apart.
func (g *Grid) MaximinSample(src rand.Source, tries int) *mat.Dense {
  if tries < 1 {
    tries = 1
  }
  var best *mat.Dense
  bestDist := -1.0
  for i := 0; i < tries; i++ {
    s := g.Sample(src)
    if d := g.minDistance(s); d > bestDist {
      best, bestDist = s, d
    }
  }
  return best
}

func (g *Grid) minDistance(s *mat.Dense) float64 {
  rows, cols := s.Dims()
  norm := make([][]float64, rows)
  for i := range norm {
    norm[i] = make([]float64, cols)
    for j := range norm[i] {
      l := g.limits[j]
      norm[i][j] = (s.At(i, j) - l.Min) / (l.Max - l.Min)
    }
  }
  min := math.Inf(1)
  for i := 0; i < rows; i++ {
    for j := i + 1; j < rows; j++ {
      min = math.Min(min, floats.Distance(norm[i], norm[j], 2))
    }
  }
  return min
}

// IsLatin reports whether samples has one row per stratum in every
// dimension of g and all values inside the limits.
func (g *Grid) IsLatin(samples mat.Matrix) bool {
  rows, cols := samples.Dims()
  if rows != g.divisions || cols != len(g.limits) {
    return false
  }
  for j := 0; j < cols; j++ {
    seen := make([]bool, g.divisions)
    for i := 0; i < rows; i++ {
      x := samples.At(i, j)
      if x < g.limits[j].Min || x > g.limits[j].Max {
        return false
      }
      s := g.Stratum(j, x)
      if s < 0 || s >= g.divisions || seen[s] {
        return false
      }
      seen[s] = true
    }
  }
  return true
}
