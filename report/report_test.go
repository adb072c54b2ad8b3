package report

import (
  "bytes"
  "io"
  "log/slog"
  "math/rand/v2"
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/HamletTheHamster/emulator-paper-plots/config"
  "github.com/HamletTheHamster/emulator-paper-plots/emulator/emutest"
  "github.com/HamletTheHamster/emulator-paper-plots/hypercube"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "github.com/stretchr/testify/require"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/spatial/r1"
)

var (
  names    = []string{"tilt", "amp"}
  limits   = [][2]float64{{-0.5, 0.5}, {0.8, 1.2}}
  testZ    = []float64{2.6, 2.4, 2.2}
  quadrows = [][]float64{{0, 1}, {-0.3, 1}, {0.3, 1}, {0, 0.9}, {0, 1.1}}
)

func reseeded(scale float64) emutest.PowerFunc {
  return func(params []float64, z, k float64) float64 {
    return scale * emutest.FluxPower(params, z, k)
  }
}

// fixture lays out a data root holding every input of a run.
func fixture(t *testing.T) config.Config {
  t.Helper()

  root := t.TempDir()
  cfg := config.Default()
  cfg.DataRoot = filepath.Join(root, "data")
  cfg.PlotDir = filepath.Join(root, "plots")
  cfg.SDSSData = "sdss.txt"
  cfg.HypercubeTries = 10
  cfg.SingleParamEmulator = "single"
  cfg.S8Emulator = "s8"
  cfg.S8Quadratic = "s8_quadratic"
  cfg.S8Test = "s8_test"
  cfg.KnotsEmulator = "knots"
  cfg.KnotsTest = "knots_test"
  cfg.SampleRuns = []string{"sample/base", "sample/seed1", "sample/seed2"}

  emutest.WriteSDSS(t, cfg.Data(cfg.SDSSData), emutest.Redshifts, emutest.K)

  emutest.WriteEmulator(t, cfg.Data(cfg.SingleParamEmulator), emutest.Suite{
    Names:     names,
    Limits:    limits,
    Params:    [][]float64{{0, 1}, {0, 1}, {0, 1}, {0.2, 1}, {0, 1}, {0, 1}},
    Redshifts: emutest.Redshifts,
    K:         emutest.TableK,
  })

  grid, err := hypercube.NewGrid([]r1.Interval{{Min: -0.5, Max: 0.5}, {Min: 0.8, Max: 1.2}}, 10)
  require.NoError(t, err)
  design := grid.MaximinSample(rand.NewPCG(3, 3), 10)
  rows, _ := design.Dims()
  lh := make([][]float64, rows)
  for i := range lh {
    lh[i] = mat.Row(nil, i, design)
  }
  test := [][]float64{{0.1, 1.0}, {-0.2, 0.95}}

  for dir, params := range map[string][][]float64{
    cfg.S8Emulator:    lh,
    cfg.S8Quadratic:   quadrows,
    cfg.S8Test:        test,
    cfg.KnotsEmulator: lh,
    cfg.KnotsTest:     test,
  } {
    emutest.WriteEmulator(t, cfg.Data(dir), emutest.Suite{
      Names:     names,
      Limits:    limits,
      Params:    params,
      Redshifts: testZ,
      K:         emutest.TableK,
    })
  }

  for i, run := range cfg.SampleRuns {
    emutest.WriteSnapshots(t, cfg.Data(run), []float64{0, 1}, emutest.Redshifts, emutest.TableK, reseeded(1+0.01*float64(i)))
  }
  return cfg
}

func quiet() *slog.Logger {
  return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func output(
  t *testing.T,
  g *Generator,
  name string,
) (
  Output,
) {

  t.Helper()
  for _, o := range g.Outputs() {
    if filepath.Base(o.Path) == name {
      return o
    }
  }
  t.Fatalf("no output named %s", name)
  return Output{}
}

func TestSingleParameterPlotDrawsDifferingRows(t *testing.T) {
  cfg := fixture(t)
  g := New(cfg, quiet())
  require.NoError(t, g.SingleParameterPlot())

  tilt := output(t, g, "single_param_tilt.pdf")
  require.Equal(t, 1, tilt.Lines)
  require.Equal(t, []string{"tilt=0.2 (z=2.4)"}, tilt.Labels)
  require.FileExists(t, tilt.Path)

  amp := output(t, g, "single_param_amp.pdf")
  require.Zero(t, amp.Lines)
  require.FileExists(t, amp.Path)
}

func TestSingleParameterPlotBaselineOutOfRange(t *testing.T) {
  cfg := fixture(t)
  cfg.BaselineRow = 6
  require.ErrorIs(t, New(cfg, quiet()).SingleParameterPlot(), spectra.ErrShapeMismatch)
}

func TestSampleVarPlotLabelsEachSeed(t *testing.T) {
  cfg := fixture(t)
  g := New(cfg, quiet())
  require.NoError(t, g.SampleVarPlot())

  o := output(t, g, "sample_var.pdf")
  require.Equal(t, 4, o.Lines)
  require.Equal(t, []string{"Seed 1 z=3.2", "Seed 2 z=3.2", "Seed 1 z=2.2", "Seed 2 z=2.2"}, o.Labels)
}

func TestSampleVarPlotRedshiftMismatch(t *testing.T) {
  cfg := fixture(t)
  seed := cfg.Data(cfg.SampleRuns[1])
  require.NoError(t, os.RemoveAll(seed))
  emutest.WriteSnapshots(t, seed, []float64{0, 1}, emutest.Redshifts[1:], emutest.TableK, nil)

  require.ErrorIs(t, New(cfg, quiet()).SampleVarPlot(), spectra.ErrShapeMismatch)
}

func TestSampleVarPlotEveryRunMissingSnapshot(t *testing.T) {
  cfg := fixture(t)
  for _, run := range cfg.SampleRuns {
    dir := cfg.Data(run)
    require.NoError(t, os.RemoveAll(dir))
    emutest.WriteSnapshots(t, dir, []float64{0, 1}, emutest.Redshifts[1:], emutest.TableK, nil)
  }

  g := New(cfg, quiet())
  require.ErrorIs(t, g.SampleVarPlot(), spectra.ErrShapeMismatch)
  require.Empty(t, g.Outputs())
}

func TestSampleVarPlotShiftedRedshifts(t *testing.T) {
  cfg := fixture(t)
  shifted := make([]float64, len(emutest.Redshifts))
  for i, z := range emutest.Redshifts {
    shifted[i] = z - 0.1
  }
  seed := cfg.Data(cfg.SampleRuns[2])
  require.NoError(t, os.RemoveAll(seed))
  emutest.WriteSnapshots(t, seed, []float64{0, 1}, shifted, emutest.TableK, nil)

  require.ErrorIs(t, New(cfg, quiet()).SampleVarPlot(), spectra.ErrShapeMismatch)
}

func TestSampleVarPlotSliceOutOfRange(t *testing.T) {
  cfg := fixture(t)
  cfg.RedshiftSlices = []int{12}
  require.ErrorIs(t, New(cfg, quiet()).SampleVarPlot(), spectra.ErrShapeMismatch)
}

func TestSampleVarPlotMissingRun(t *testing.T) {
  cfg := fixture(t)
  cfg.SampleRuns[2] = "sample/gone"
  require.ErrorIs(t, New(cfg, quiet()).SampleVarPlot(), spectra.ErrMissingDataDirectory)
}

func TestHypercubePlotWritesThreeDesigns(t *testing.T) {
  cfg := fixture(t)
  g := New(cfg, quiet())
  require.NoError(t, g.HypercubePlot())

  outs := g.Outputs()
  require.Len(t, outs, 3)
  for i, name := range []string{"latin_hypercube_bad.pdf", "latin_hypercube_quadratic.pdf", "latin_hypercube_good.pdf"} {
    require.Equal(t, cfg.Plot(name), outs[i].Path)
    require.FileExists(t, outs[i].Path)
  }
}

func TestHypercubeDesigns(t *testing.T) {
  grid, err := hypercube.UnitGrid(2, 8)
  require.NoError(t, err)
  ds := designs(grid, 42, 20)
  require.Len(t, ds, 3)

  centers := []float64{0.0625, 0.1875, 0.3125, 0.4375, 0.5625, 0.6875, 0.8125, 0.9375}
  bad := ds[0]
  require.InDeltaSlice(t, centers, bad.xs, 1e-12)
  require.InDeltaSlice(t, centers, bad.ys, 1e-12)

  quad := ds[1]
  require.Len(t, quad.xs, 16)
  require.Len(t, quad.ys, 16)
  for i := 0; i < 8; i++ {
    require.InDelta(t, centers[i], quad.xs[i], 1e-12)
    require.InDelta(t, 0.4375, quad.ys[i], 1e-12)
    require.InDelta(t, 0.4375, quad.xs[8+i], 1e-12)
    require.InDelta(t, centers[i], quad.ys[8+i], 1e-12)
  }

  good := ds[2]
  pts := mat.NewDense(8, 2, nil)
  pts.SetCol(0, good.xs)
  pts.SetCol(1, good.ys)
  require.True(t, grid.IsLatin(pts))

  again := designs(grid, 42, 20)
  require.Equal(t, good.xs, again[2].xs)
  require.Equal(t, good.ys, again[2].ys)
}

func TestTestS8PlotsRunsThreeComparisons(t *testing.T) {
  cfg := fixture(t)
  g := New(cfg, quiet())
  sums, err := g.TestS8Plots()
  require.NoError(t, err)

  require.Equal(t, "hires_s8", sums.Emulator.Name)
  require.Equal(t, "hires_s8_quadratic", sums.Quadratic.Name)
  require.Equal(t, "hires_s8_quad_quad", sums.QuadQuad.Name)
  require.Equal(t, testZ, sums.Emulator.Redshifts)
  require.FileExists(t, filepath.Join(cfg.Plot("hires_s8_quad_quad"), "error_hist.pdf"))
}

func TestRunIsRepeatable(t *testing.T) {
  cfg := fixture(t)

  first := New(cfg, quiet())
  require.NoError(t, first.Run())
  second := New(cfg, quiet())
  require.NoError(t, second.Run())

  a, b := first.Outputs(), second.Outputs()
  require.Equal(t, len(a), len(b))
  for i := range a {
    require.Equal(t, a[i].Path, b[i].Path)
    require.Equal(t, a[i].Labels, b[i].Labels)
  }
  require.Equal(t, cfg.Plot("sample_var.pdf"), a[0].Path)
  require.FileExists(t, filepath.Join(cfg.Plot("hires_knots"), "test_interp_1.pdf"))
}

func TestWriteLogListsOutputs(t *testing.T) {
  cfg := fixture(t)
  g := New(cfg, quiet())
  require.NoError(t, g.HypercubePlot())
  require.NoError(t, g.WriteLog())

  b, err := os.ReadFile(filepath.Join(cfg.PlotDir, "log.txt"))
  require.NoError(t, err)
  lines := strings.Split(strings.TrimSpace(string(b)), "\n")
  require.Len(t, lines, 3)
  require.True(t, strings.HasPrefix(lines[2], cfg.Plot("latin_hypercube_good.pdf")))
}

func TestRunStopsAtMissingReferenceData(t *testing.T) {
  cfg := fixture(t)
  cfg.SDSSData = "missing.txt"

  var buf bytes.Buffer
  g := New(cfg, slog.New(slog.NewTextHandler(&buf, nil)))
  err := g.Run()
  require.Error(t, err)
  require.Contains(t, err.Error(), "sample variance plot")
  require.Empty(t, g.Outputs())
}
