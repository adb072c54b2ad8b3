package emulator_test

import (
  "math"
  "math/rand/v2"
  "path/filepath"
  "testing"

  "github.com/HamletTheHamster/emulator-paper-plots/emulator"
  "github.com/HamletTheHamster/emulator-paper-plots/emulator/emutest"
  "github.com/HamletTheHamster/emulator-paper-plots/hypercube"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "github.com/stretchr/testify/require"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/spatial/r1"
)

func TestLoadKeepsParameterOrder(t *testing.T) {
  for _, byIndex := range []bool{false, true} {
    dir := t.TempDir()
    emutest.WriteEmulator(t, dir, emutest.Suite{
      Names:        []string{"ns", "As", "heat_slope", "heat_amp", "hub"},
      Limits:       [][2]float64{{0.8, 1.1}, {1.2e-9, 2.6e-9}, {-0.5, 0.5}, {0.5, 1.5}, {0.65, 0.75}},
      Params:       [][]float64{{0.95, 1.9e-9, 0, 1, 0.7}, {1.0, 1.9e-9, 0, 1, 0.7}},
      Redshifts:    []float64{2.4, 2.2},
      K:            emutest.TableK,
      NamesByIndex: byIndex,
    })

    e := emulator.New(dir)
    require.NoError(t, e.Load())
    require.Equal(t, []emulator.Param{
      {Name: "ns", Index: 0},
      {Name: "As", Index: 1},
      {Name: "heat_slope", Index: 2},
      {Name: "heat_amp", Index: 3},
      {Name: "hub", Index: 4},
    }, e.Params())
    require.Equal(t, 2, e.Len())
    require.Equal(t, 1.0, e.ParamMatrix().At(1, 0))
    require.Equal(t, r1.Interval{Min: 0.65, Max: 0.75}, e.Limits()[4])
  }
}

func TestLoadMissingDirectory(t *testing.T) {
  err := emulator.New(filepath.Join(t.TempDir(), "nope")).Load()
  require.ErrorIs(t, err, spectra.ErrMissingDataDirectory)
}

func TestTrainingRestrictsRedshift(t *testing.T) {
  dir := t.TempDir()
  emutest.WriteEmulator(t, dir, emutest.Suite{
    Names:     []string{"a"},
    Limits:    [][2]float64{{0, 1}},
    Params:    [][]float64{{0.2}, {0.7}},
    Redshifts: []float64{3.0, 2.4, 2.2},
    K:         emutest.TableK,
  })
  e := emulator.New(dir)
  require.NoError(t, e.Load())

  ts, err := e.Training(2.4)
  require.NoError(t, err)
  require.Len(t, ts.Powers, 2)

  z, err := ts.Powers[1].Redshifts()
  require.NoError(t, err)
  require.Equal(t, []float64{2.4, 2.2}, z)

  p, err := ts.Powers[1].Power(emutest.K, emulator.TrainingTau0)
  require.NoError(t, err)
  require.Len(t, p, 2*len(emutest.K))
}

func TestTrainingBeforeLoad(t *testing.T) {
  _, err := emulator.New(t.TempDir()).Training(2.4)
  require.Error(t, err)
}

func TestGaussianProcessInterpolates(t *testing.T) {
  limits := []r1.Interval{{Min: -0.5, Max: 0.5}, {Min: 0.8, Max: 1.2}}
  grid, err := hypercube.NewGrid(limits, 20)
  require.NoError(t, err)
  design := grid.MaximinSample(rand.NewPCG(5, 6), 20)

  rows, _ := design.Dims()
  params := make([][]float64, rows)
  for i := range params {
    params[i] = mat.Row(nil, i, design)
  }

  dir := t.TempDir()
  emutest.WriteEmulator(t, dir, emutest.Suite{
    Names:     []string{"tilt", "amp"},
    Limits:    [][2]float64{{-0.5, 0.5}, {0.8, 1.2}},
    Params:    params,
    Redshifts: []float64{2.4, 2.2},
    K:         emutest.TableK,
  })
  e := emulator.New(dir)
  require.NoError(t, e.Load())

  model, err := e.Build(emulator.GP, emutest.K, 2.4)
  require.NoError(t, err)

  mean, std, err := model.Predict(params[3])
  require.NoError(t, err)
  want, err := e.Spectrum(3).Power(emutest.K, emulator.TrainingTau0)
  require.NoError(t, err)
  for j := range want {
    require.InEpsilon(t, want[j], mean[j], 1e-3)
    require.GreaterOrEqual(t, std[j], 0.0)
  }

  probe := []float64{0.1, 1.05}
  mean, _, err = model.Predict(probe)
  require.NoError(t, err)
  i := 0
  for _, z := range []float64{2.4, 2.2} {
    for _, k := range emutest.K {
      require.InEpsilon(t, emutest.FluxPower(probe, z, k), mean[i], 0.08)
      i++
    }
  }

  _, _, err = model.Predict([]float64{0.1})
  require.ErrorIs(t, err, spectra.ErrShapeMismatch)
}

func TestQuadraticRecoversIndependentResponses(t *testing.T) {
  response := func(p []float64) float64 {
    dx0 := p[0] / 2
    dx1 := p[1] - 1
    return (1 + 0.5*dx0 + 0.2*dx0*dx0) * (1 - 0.3*dx1)
  }
  power := func(p []float64, z, k float64) float64 {
    return emutest.FluxPower(nil, z, k) * response(p)
  }

  dir := t.TempDir()
  emutest.WriteEmulator(t, dir, emutest.Suite{
    Names:  []string{"x", "y"},
    Limits: [][2]float64{{-1, 1}, {0.5, 1.5}},
    Params: [][]float64{
      {0, 1},
      {-1, 1}, {-0.5, 1}, {0.5, 1}, {1, 1},
      {0, 0.5}, {0, 1.5},
    },
    Redshifts: []float64{2.4},
    K:         emutest.TableK,
    Power:     power,
  })
  e := emulator.New(dir)
  require.NoError(t, e.Load())

  model, err := e.Build(emulator.Quadratic, emutest.K, math.Inf(1))
  require.NoError(t, err)

  probe := []float64{0.3, 1.2}
  mean, std, err := model.Predict(probe)
  require.NoError(t, err)
  base, err := e.Spectrum(0).Power(emutest.K, emulator.TrainingTau0)
  require.NoError(t, err)
  for j := range emutest.K {
    require.InEpsilon(t, base[j]*response(probe), mean[j], 1e-6)
    require.Zero(t, std[j])
  }
  require.Equal(t, []float64{2.4}, model.Redshifts())
}

func TestBuildReportsTrainingRedshifts(t *testing.T) {
  dir := t.TempDir()
  emutest.WriteEmulator(t, dir, emutest.Suite{
    Names:     []string{"tilt", "amp"},
    Limits:    [][2]float64{{-0.5, 0.5}, {0.8, 1.2}},
    Params:    [][]float64{{0, 1}, {0.2, 1}, {-0.2, 1}, {0, 1.1}, {0, 0.9}},
    Redshifts: []float64{2.6, 2.4, 2.2},
    K:         emutest.TableK,
  })
  e := emulator.New(dir)
  require.NoError(t, e.Load())

  for _, class := range []emulator.Class{emulator.GP, emulator.Quadratic} {
    model, err := e.Build(class, emutest.K, 2.4)
    require.NoError(t, err, class.String())
    require.Equal(t, []float64{2.4, 2.2}, model.Redshifts(), class.String())
  }
}

func TestBuildRejectsMixedRedshifts(t *testing.T) {
  dir := t.TempDir()
  suite := emutest.Suite{
    Names:     []string{"tilt", "amp"},
    Limits:    [][2]float64{{-0.5, 0.5}, {0.8, 1.2}},
    Params:    [][]float64{{0, 1}, {0.2, 1}},
    Redshifts: []float64{2.4, 2.2},
    K:         emutest.TableK,
  }
  emutest.WriteEmulator(t, dir, suite)
  rows := make([]spectra.Row, 0)
  for _, z := range []float64{2.4, 2.0} {
    for _, k := range emutest.TableK {
      rows = append(rows, spectra.Row{Z: z, Tau0: spectra.Factor(1), K: k, Power: emutest.FluxPower(suite.Params[1], z, k)})
    }
  }
  require.NoError(t, spectra.WriteRows(filepath.Join(dir, emulator.DefaultPowerFile(1)), rows))

  e := emulator.New(dir)
  require.NoError(t, e.Load())
  _, err := e.Build(emulator.GP, emutest.K, math.Inf(1))
  require.ErrorIs(t, err, spectra.ErrShapeMismatch)
}

func TestLoadRejectsEmptyLimits(t *testing.T) {
  for _, lim := range [][2]float64{{0.5, 0.5}, {1.2, 0.8}} {
    dir := t.TempDir()
    emutest.WriteEmulator(t, dir, emutest.Suite{
      Names:     []string{"tilt", "amp"},
      Limits:    [][2]float64{{-0.5, 0.5}, lim},
      Params:    [][]float64{{0, 1}},
      Redshifts: []float64{2.4},
      K:         emutest.TableK,
    })
    require.ErrorIs(t, emulator.New(dir).Load(), spectra.ErrShapeMismatch, "%v", lim)
  }
}

func TestClassString(t *testing.T) {
  require.Equal(t, "gp", emulator.GP.String())
  require.Equal(t, "quadratic", emulator.Quadratic.String())
}
