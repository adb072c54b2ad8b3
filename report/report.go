// Package report makes the figures of the emulator paper. Every figure is
// built on its own figure.Figure and saved exactly once.
package report

import (
  "bufio"
  "fmt"
  "log/slog"
  "os"
  "path/filepath"
  "strconv"

  "github.com/HamletTheHamster/emulator-paper-plots/config"
  "github.com/HamletTheHamster/emulator-paper-plots/figure"
  "github.com/HamletTheHamster/emulator-paper-plots/sdss"
)

// Output records one file written by a report.
type Output struct {
  Path   string
  Lines  int
  Labels []string
}

// Generator runs the report procedures against one configuration.
type Generator struct {
  cfg     config.Config
  log     *slog.Logger
  preview bool
  outputs []Output
}

func New(
  cfg config.Config,
  logger *slog.Logger,
) (
  *Generator,
) {

  if logger == nil {
    logger = slog.Default()
  }
  return &Generator{cfg: cfg, log: logger}
}

// SetPreview makes every saved figure also open in gnuplot.
func (g *Generator) SetPreview(preview bool) { g.preview = preview }

// Outputs lists every file written so far, in order.
func (g *Generator) Outputs() []Output { return append([]Output(nil), g.outputs...) }

// Run makes every figure, stopping at the first failure.
func (g *Generator) Run() error {
  if err := g.SampleVarPlot(); err != nil {
    return fmt.Errorf("sample variance plot: %w", err)
  }
  if err := g.HypercubePlot(); err != nil {
    return fmt.Errorf("hypercube plot: %w", err)
  }
  if err := g.SingleParameterPlot(); err != nil {
    return fmt.Errorf("single parameter plot: %w", err)
  }
  if _, err := g.TestS8Plots(); err != nil {
    return fmt.Errorf("s8 test plots: %w", err)
  }
  if _, err := g.TestKnotPlots(); err != nil {
    return fmt.Errorf("knot test plots: %w", err)
  }
  return nil
}

func (g *Generator) save(
  f *figure.Figure,
  name string,
) (
  error,
) {

  path := g.cfg.Plot(name)
  if err := f.Save(path); err != nil {
    return err
  }

  g.outputs = append(g.outputs, Output{Path: path, Lines: f.Lines(), Labels: f.Legend()})
  g.log.Info("figure written", "path", path, "lines", f.Lines())

  if g.preview {
    if err := f.Preview(); err != nil {
      g.log.Warn("preview failed", "path", path, "err", err)
    }
  }
  return nil
}

func (g *Generator) record(
  paths []string,
) {

  for _, path := range paths {
    g.outputs = append(g.outputs, Output{Path: path})
    g.log.Info("figure written", "path", path)
  }
}

// wavenumbers reads the k bins of the reference data set.
func (g *Generator) wavenumbers() ([]float64, error) {
  d, err := sdss.Load(g.cfg.Data(g.cfg.SDSSData))
  if err != nil {
    return nil, err
  }
  return d.Wavenumbers(), nil
}

// WriteLog writes log.txt into the plot directory, one line per file
// written.
func (g *Generator) WriteLog() error {
  if err := os.MkdirAll(g.cfg.PlotDir, 0755); err != nil {
    return err
  }

  txt, err := os.Create(filepath.Join(g.cfg.PlotDir, "log.txt"))
  if err != nil {
    return err
  }

  w := bufio.NewWriter(txt)
  for _, o := range g.outputs {
    line := o.Path
    if o.Lines > 0 {
      line += "\t" + strconv.Itoa(o.Lines) + " lines"
    }
    if _, err := w.WriteString(line + "\n"); err != nil {
      txt.Close()
      return err
    }
  }
  if err := w.Flush(); err != nil {
    txt.Close()
    return err
  }
  return txt.Close()
}
