//go:build gnuplot

package figure

import (
  "fmt"

  "github.com/Arafatk/glot"
)

// PreviewEnabled reports whether this build can open gnuplot previews.
const PreviewEnabled = true

// Preview opens the figure's line and point series in a persistent gnuplot
// window. It works before or after Save and needs gnuplot on the PATH.
func (f *Figure) Preview() error {
  dimensions := 2
  persist := true
  debug := false
  gp, err := glot.NewPlot(dimensions, persist, debug)
  if err != nil {
    return fmt.Errorf("preview %q: %w", f.title, err)
  }

  gp.SetTitle(f.title)
  gp.SetXLabel(f.xlabel)
  gp.SetYLabel(f.ylabel)

  for i, s := range f.series {
    if s.style != "lines" && s.style != "points" {
      continue
    }
    name := s.label
    if name == "" {
      name = fmt.Sprintf("series %d", i)
    }
    if err := gp.AddPointGroup(name, s.style, [][]float64{s.xs, s.ys}); err != nil {
      return fmt.Errorf("preview %q: %w", f.title, err)
    }
  }
  return nil
}
