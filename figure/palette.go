package figure

import "image/color"

func palette(
  brush int,
) (
  color.RGBA,
) {

  col := make([]color.RGBA, 12)
  col[0] = color.RGBA{R: 31, G: 211, B: 172, A: 255}
  col[1] = color.RGBA{R: 255, G: 122, B: 180, A: 255}
  col[2] = color.RGBA{R: 122, G: 156, B: 255, A: 255}
  col[3] = color.RGBA{R: 255, G: 193, B: 122, A: 255}
  col[4] = color.RGBA{R: 188, G: 117, B: 255, A: 255}
  col[5] = color.RGBA{R: 27, G: 150, B: 146, A: 255}
  col[6] = color.RGBA{R: 140, G: 46, B: 49, A: 255}
  col[7] = color.RGBA{R: 46, G: 140, B: 60, A: 255}
  col[8] = color.RGBA{R: 1, G: 56, B: 84, A: 255}
  col[9] = color.RGBA{R: 122, G: 41, B: 104, A: 255}
  col[10] = color.RGBA{R: 122, G: 90, B: 41, A: 255}
  col[11] = color.RGBA{R: 255, G: 102, B: 102, A: 255}

  return col[brush % len(col)]
}

// markerBlue is the marker colour of the sampling-scheme figures.
var markerBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
