// Package sdss reads the BOSS DR9 one-dimensional flux power spectrum
// table, which fixes the wavenumbers every figure is evaluated at.
package sdss

import (
  "bufio"
  "fmt"
  "os"
  "strconv"
  "strings"
)

// Data is the observed flux power table.
type Data struct {
  z  []float64
  k  []float64
  pk []float64
}

// Load parses a whitespace separated table whose first three columns are
// redshift, wavenumber (s/km) and flux power. Lines starting with # are
// ignored, as are any columns after the third.
func Load(path string) (*Data, error) {
  f, err := os.Open(path)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  d := &Data{}
  sc := bufio.NewScanner(f)
  line := 0
  for sc.Scan() {
    line++
    text := strings.TrimSpace(sc.Text())
    if text == "" || strings.HasPrefix(text, "#") {
      continue
    }
    fields := strings.Fields(text)
    if len(fields) < 3 {
      return nil, fmt.Errorf("%s:%d: want at least 3 columns, got %d", path, line, len(fields))
    }
    var vals [3]float64
    for i := range vals {
      if vals[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
        return nil, fmt.Errorf("%s:%d: %w", path, line, err)
      }
    }
    d.z = append(d.z, vals[0])
    d.k = append(d.k, vals[1])
    d.pk = append(d.pk, vals[2])
  }
  if err := sc.Err(); err != nil {
    return nil, err
  }
  if len(d.k) == 0 {
    return nil, fmt.Errorf("%s: no data rows", path)
  }
  return d, nil
}

// Redshifts lists the redshift bins in file order.
func (d *Data) Redshifts() []float64 {
  var out []float64
  seen := make(map[float64]bool)
  for _, z := range d.z {
    if !seen[z] {
      seen[z] = true
      out = append(out, z)
    }
  }
  return out
}

// Wavenumbers returns the k bins of the first redshift bin. All redshift
// bins share the same k binning.
func (d *Data) Wavenumbers() []float64 {
  var kf []float64
  for i, z := range d.z {
    if z != d.z[0] {
      break
    }
    kf = append(kf, d.k[i])
  }
  return kf
}

// Power returns the measured power of redshift bin z, aligned with
// Wavenumbers.
func (d *Data) Power(z float64) []float64 {
  var pk []float64
  for i := range d.z {
    if d.z[i] == z {
      pk = append(pk, d.pk[i])
    }
  }
  return pk
}
