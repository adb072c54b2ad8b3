//go:build !gnuplot

package figure

// PreviewEnabled reports whether this build can open gnuplot previews.
const PreviewEnabled = false

// Preview is unavailable without gnuplot support compiled in.
func (f *Figure) Preview() error {
  return ErrNoPreview
}
