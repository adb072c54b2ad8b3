package report

import (
  "math/rand/v2"

  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/hypercube"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/plot/vg"
)

// design is one set of simulation points in a two parameter space.
type design struct {
  name   string
  xs, ys []float64
}

// HypercubePlot draws three ways of placing simulations in a two
// parameter space: a diagonal grid, a quadratic design that varies one
// parameter at a time, and a maximin Latin hypercube.
func (g *Generator) HypercubePlot() error {
  grid, err := hypercube.UnitGrid(2, g.cfg.HypercubeDivisions)
  if err != nil {
    return err
  }
  cut := grid.Cut(0)

  for _, d := range designs(grid, uint64(g.cfg.Seed), g.cfg.HypercubeTries) {
    if err := g.pointsHypercube(d.xs, d.ys, cut, d.name); err != nil {
      return err
    }
  }
  return nil
}

func designs(
  grid *hypercube.Grid,
  seed uint64,
  tries int,
) (
  []design,
) {

  n := grid.Divisions()
  xval := grid.Centers(0)

  mid := xval[(n-1)/2]
  xquad := append(append([]float64(nil), xval...), repeat(mid, n)...)
  yquad := append(repeat(mid, n), xval...)

  samples := grid.MaximinSample(rand.NewPCG(seed, seed), tries)

  return []design{
    {name: "latin_hypercube_bad.pdf", xs: xval, ys: xval},
    {name: "latin_hypercube_quadratic.pdf", xs: xquad, ys: yquad},
    {name: "latin_hypercube_good.pdf", xs: mat.Col(nil, 0, samples), ys: mat.Col(nil, 1, samples)},
  }
}

func (g *Generator) pointsHypercube(
  xs, ys, cut []float64,
  name string,
) (
  error,
) {

  f := figure.New("", "", "")
  if err := f.Scatter(xs, ys, vg.Points(8)); err != nil {
    return err
  }
  if err := f.StrataGrid(cut, cut); err != nil {
    return err
  }
  return g.save(f, name)
}

func repeat(
  v float64,
  n int,
) (
  []float64,
) {

  out := make([]float64, n)
  for i := range out {
    out[i] = v
  }
  return out
}
