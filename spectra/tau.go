package spectra

import "strconv"

// Tau0 selects the optical-depth normalization a power spectrum is
// evaluated at. The zero value disables rescaling.
type Tau0 struct {
  Factor  float64
  Enabled bool
}

// Unnormalized evaluates the power exactly as it was extracted from the
// simulation, without rescaling the mean optical depth.
var Unnormalized = Tau0{}

// Factor returns a normalization that rescales the optical depth by f.
func Factor(f float64) Tau0 {
  return Tau0{Factor: f, Enabled: true}
}

func (t Tau0) key() string {
  if !t.Enabled {
    return ""
  }
  return strconv.FormatFloat(t.Factor, 'g', -1, 64)
}

func (t Tau0) String() string {
  if !t.Enabled {
    return "tau0=none"
  }
  return "tau0=" + t.key()
}

func parseTau0(s string) (Tau0, error) {
  if s == "" || s == "none" {
    return Unnormalized, nil
  }
  f, err := strconv.ParseFloat(s, 64)
  if err != nil {
    return Tau0{}, err
  }
  return Factor(f), nil
}
