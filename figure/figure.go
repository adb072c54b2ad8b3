// Package figure builds one gonum/plot figure per output file. A Figure
// is populated by drawing calls and consumed by a single Save, so nothing
// drawn for one file can leak into the next.
package figure

import (
  "errors"
  "fmt"
  "image/color"
  "math"
  "os"
  "path/filepath"
  "strconv"

  "gonum.org/v1/plot"
  "gonum.org/v1/plot/font"
  "gonum.org/v1/plot/plotter"
  "gonum.org/v1/plot/vg"
  "gonum.org/v1/plot/vg/draw"
)

var (
  ErrLengthMismatch = errors.New("figure: coordinate and value lengths differ")
  ErrSaved          = errors.New("figure: already saved")
  ErrNonPositive    = errors.New("figure: non-positive value on a log axis")
  ErrNoPreview      = errors.New("figure: preview needs a build with -tags gnuplot")
)

// Default page size of a saved figure.
const (
  Width  = 6 * vg.Inch
  Height = 4.5 * vg.Inch
)

type series struct {
  label  string
  style  string
  xs, ys []float64
}

// Figure is the drawing state of one output file.
type Figure struct {
  title, xlabel, ylabel string

  p      *plot.Plot
  series []series
  legend []string
  brush  int
  logX   bool
  saved  bool

  xmin, xmax, ymin, ymax *float64
}

// New returns an empty figure.
func New(
  title, xlabel, ylabel string,
) (
  *Figure,
) {

  p := plot.New()
  p.Title.Text = title
  p.Title.TextStyle.Font.Variant = "Sans"
  p.Title.TextStyle.Font.Size = 14
  p.Title.Padding = font.Length(8)

  p.X.Label.Text = xlabel
  p.X.Label.TextStyle.Font.Variant = "Sans"
  p.X.Label.TextStyle.Font.Size = 12
  p.X.LineStyle.Width = vg.Points(1)
  p.X.Tick.LineStyle.Width = vg.Points(1)
  p.X.Tick.Label.Font.Variant = "Sans"
  p.X.Tick.Label.Font.Size = 10

  p.Y.Label.Text = ylabel
  p.Y.Label.TextStyle.Font.Variant = "Sans"
  p.Y.Label.TextStyle.Font.Size = 12
  p.Y.LineStyle.Width = vg.Points(1)
  p.Y.Tick.LineStyle.Width = vg.Points(1)
  p.Y.Tick.Label.Font.Variant = "Sans"
  p.Y.Tick.Label.Font.Size = 10

  p.Legend.TextStyle.Font.Variant = "Sans"
  p.Legend.TextStyle.Font.Size = 9
  p.Legend.Top = true
  p.Legend.ThumbnailWidth = vg.Points(20)

  return &Figure{title: title, xlabel: xlabel, ylabel: ylabel, p: p}
}

// Lines is the number of data series drawn so far.
func (f *Figure) Lines() int { return len(f.series) }

// Legend returns the legend entries in drawing order.
func (f *Figure) Legend() []string { return append([]string(nil), f.legend...) }

// Saved reports whether Save has consumed the figure.
func (f *Figure) Saved() bool { return f.saved }

func (f *Figure) check(
  xs, ys []float64,
) (
  error,
) {

  if f.saved {
    return ErrSaved
  }
  if len(xs) != len(ys) {
    return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
  }
  return nil
}

func buildData(
  xs, ys []float64,
) (
  plotter.XYs,
) {

  xy := make(plotter.XYs, len(xs))
  for i := range xy {
    xy[i].X = xs[i]
    xy[i].Y = ys[i]
  }
  return xy
}

// Line draws ys against xs in the next palette colour. A non-empty label
// adds a legend entry.
func (f *Figure) Line(
  xs, ys []float64,
  label string,
) (
  error,
) {

  if err := f.check(xs, ys); err != nil {
    return err
  }

  line, err := plotter.NewLine(buildData(xs, ys))
  if err != nil {
    return err
  }
  line.LineStyle.Color = palette(f.brush)
  line.LineStyle.Width = vg.Points(1.5)
  f.brush++

  f.p.Add(line)
  if label != "" {
    f.p.Legend.Add(label, line)
    f.legend = append(f.legend, label)
  }
  f.series = append(f.series, series{label: label, style: "lines", xs: xs, ys: ys})
  return nil
}

// Envelope draws dashed lower and upper bounds in the colour of the last
// line drawn. It adds no legend entry.
func (f *Figure) Envelope(
  xs, lo, hi []float64,
) (
  error,
) {

  if err := f.check(xs, lo); err != nil {
    return err
  }
  if err := f.check(xs, hi); err != nil {
    return err
  }

  b := f.brush - 1
  if b < 0 {
    b = 0
  }
  c := palette(b)
  for _, ys := range [][]float64{lo, hi} {
    line, err := plotter.NewLine(buildData(xs, ys))
    if err != nil {
      return err
    }
    line.LineStyle.Color = c
    line.LineStyle.Width = vg.Points(0.75)
    line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
    f.p.Add(line)
  }
  return nil
}

// Scatter draws circular markers of the given radius.
func (f *Figure) Scatter(
  xs, ys []float64,
  radius vg.Length,
) (
  error,
) {

  if err := f.check(xs, ys); err != nil {
    return err
  }

  scatter, err := plotter.NewScatter(buildData(xs, ys))
  if err != nil {
    return err
  }
  scatter.GlyphStyle.Color = markerBlue
  scatter.GlyphStyle.Radius = radius
  scatter.Shape = draw.CircleGlyph{}

  f.p.Add(scatter)
  f.series = append(f.series, series{style: "points", xs: xs, ys: ys})
  return nil
}

// Hist draws a histogram of values with the given number of bins.
func (f *Figure) Hist(
  values []float64,
  bins int,
) (
  error,
) {

  if f.saved {
    return ErrSaved
  }

  hist, err := plotter.NewHist(plotter.Values(values), bins)
  if err != nil {
    return err
  }
  hist.FillColor = palette(f.brush)
  f.brush++

  f.p.Add(hist)
  f.series = append(f.series, series{style: "histogram", ys: values})
  return nil
}

// BoxPlots draws one box per group, labelled with names along the x axis.
func (f *Figure) BoxPlots(
  groups [][]float64,
  names []string,
) (
  error,
) {

  if f.saved {
    return ErrSaved
  }
  if len(groups) != len(names) {
    return fmt.Errorf("%w: %d groups, %d names", ErrLengthMismatch, len(groups), len(names))
  }

  for i, g := range groups {
    if len(g) == 0 {
      return fmt.Errorf("%w: box %q has no values", ErrLengthMismatch, names[i])
    }
    box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g))
    if err != nil {
      return err
    }
    box.FillColor = palette(i)
    f.p.Add(box)
    f.series = append(f.series, series{label: names[i], style: "boxes", ys: g})
  }
  f.p.NominalX(names...)
  return nil
}

// StrataGrid puts ticks and grid lines at the given stratum boundaries and
// fixes both axes to the outermost boundaries.
func (f *Figure) StrataGrid(
  xcut, ycut []float64,
) (
  error,
) {

  if f.saved {
    return ErrSaved
  }
  if len(xcut) < 2 || len(ycut) < 2 {
    return fmt.Errorf("%w: need at least two cut points per axis", ErrLengthMismatch)
  }

  f.p.X.Tick.Marker = plot.ConstantTicks(ticks(xcut))
  f.p.Y.Tick.Marker = plot.ConstantTicks(ticks(ycut))

  grid := plotter.NewGrid()
  grid.Vertical.Color = color.Gray{Y: 160}
  grid.Horizontal.Color = color.Gray{Y: 160}
  f.p.Add(grid)

  f.XLim(xcut[0], xcut[len(xcut)-1])
  f.YLim(ycut[0], ycut[len(ycut)-1])
  return nil
}

func ticks(
  values []float64,
) (
  []plot.Tick,
) {

  t := make([]plot.Tick, len(values))
  for i, v := range values {
    t[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 4, 64)}
  }
  return t
}

// LogX switches the x axis to a logarithmic scale.
func (f *Figure) LogX() {
  f.logX = true
}

func (f *Figure) XLim(min, max float64) { f.xmin, f.xmax = &min, &max }
func (f *Figure) YLim(min, max float64) { f.ymin, f.ymax = &min, &max }
func (f *Figure) XMax(max float64)      { f.xmax = &max }
func (f *Figure) YMin(min float64)      { f.ymin = &min }

func (f *Figure) applyLimits() error {
  p := f.p
  if f.xmin != nil {
    p.X.Min = *f.xmin
  }
  if f.xmax != nil {
    p.X.Max = *f.xmax
  }
  if f.ymin != nil {
    p.Y.Min = *f.ymin
    if p.Y.Max <= p.Y.Min {
      p.Y.Max = p.Y.Min + 1
    }
  }
  if f.ymax != nil {
    p.Y.Max = *f.ymax
  }

  if f.logX {
    if math.IsInf(p.X.Min, 0) || math.IsInf(p.X.Max, 0) || p.X.Min <= 0 || p.X.Max <= 0 {
      return fmt.Errorf("%w: x range [%g, %g]", ErrNonPositive, p.X.Min, p.X.Max)
    }
    p.X.Scale = plot.LogScale{}
    p.X.Tick.Marker = plot.LogTicks{Prec: -1}
  }
  return nil
}

// Save renders the figure to path, the format following the file
// extension, and consumes the figure.
func (f *Figure) Save(
  path string,
) (
  error,
) {

  if f.saved {
    return ErrSaved
  }
  if err := f.applyLimits(); err != nil {
    return fmt.Errorf("%s: %w", path, err)
  }

  if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
    return err
  }
  if err := f.p.Save(Width, Height, path); err != nil {
    return err
  }

  f.saved = true
  f.p = nil
  return nil
}
