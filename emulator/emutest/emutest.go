// Package emutest writes small emulator directories, simulation outputs and
// reference tables for tests.
package emutest

import (
  "encoding/json"
  "fmt"
  "math"
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/HamletTheHamster/emulator-paper-plots/emulator"
  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "github.com/stretchr/testify/require"
)

// PowerFunc returns the flux power of a simulation with the given
// parameters at redshift z and wavenumber k.
type PowerFunc func(params []float64, z, k float64) float64

// Suite describes an emulator directory.
type Suite struct {
  Names     []string
  Limits    [][2]float64
  Params    [][]float64
  Redshifts []float64
  K         []float64
  Power     PowerFunc
  // Tau0 lists the normalizations tabulated for every simulation.
  // Defaults to a single factor of 1.
  Tau0 []spectra.Tau0
  // NamesByIndex writes param_names as a name to column object.
  NamesByIndex bool
}

// Redshifts are the snapshot redshifts of a typical run, highest first.
var Redshifts = []float64{4.2, 4.0, 3.8, 3.6, 3.4, 3.2, 3.0, 2.8, 2.6, 2.4, 2.2, 2.0}

// K is a coarse BOSS-like wavenumber grid in s/km.
var K = []float64{0.00108, 0.00195, 0.00304, 0.00477, 0.00751, 0.0118, 0.0186}

// TableK is the denser grid simulations are tabulated on.
var TableK = []float64{5e-4, 1e-3, 2e-3, 4e-3, 8e-3, 1.6e-2, 3.2e-2, 6.4e-2}

// FluxPower is a smooth toy flux power spectrum. The first two parameters,
// if present, tilt and scale it.
func FluxPower(params []float64, z, k float64) float64 {
  tilt, amp := 0.0, 1.0
  if len(params) > 0 {
    tilt = params[0]
  }
  if len(params) > 1 {
    amp = params[1]
  }
  return amp * (1 + 0.3*(z-2)) * math.Pow(k/0.01, -0.3+0.1*tilt) * math.Exp(-k/0.05)
}

func rows(params []float64, redshifts, k []float64, taus []spectra.Tau0, power PowerFunc) []spectra.Row {
  var out []spectra.Row
  for _, z := range redshifts {
    for _, tau := range taus {
      for _, kk := range k {
        p := power(params, z, kk)
        if tau.Enabled {
          p *= tau.Factor
        }
        out = append(out, spectra.Row{Z: z, Tau0: tau, K: kk, Power: p})
      }
    }
  }
  return out
}

// WriteEmulator writes s into dir.
func WriteEmulator(t testing.TB, dir string, s Suite) {
  t.Helper()

  var names []byte
  var err error
  if s.NamesByIndex {
    byName := make(map[string]int, len(s.Names))
    for i, n := range s.Names {
      byName[n] = i
    }
    names, err = json.Marshal(byName)
  } else {
    names, err = json.Marshal(s.Names)
  }
  require.NoError(t, err)

  require.NoError(t, emulator.Write(dir, emulator.Layout{
    ParamNames:   names,
    ParamLimits:  s.Limits,
    SampleParams: s.Params,
  }))

  taus := s.Tau0
  if taus == nil {
    taus = []spectra.Tau0{spectra.Factor(1)}
  }
  power := s.Power
  if power == nil {
    power = FluxPower
  }
  for i, p := range s.Params {
    path := filepath.Join(dir, emulator.DefaultPowerFile(i))
    require.NoError(t, spectra.WriteRows(path, rows(p, s.Redshifts, s.K, taus, power)))
  }
}

// WriteSnapshots writes the unnormalized power of one simulation run into
// outputDir.
func WriteSnapshots(t testing.TB, outputDir string, params []float64, redshifts, k []float64, power PowerFunc) {
  t.Helper()
  if power == nil {
    power = FluxPower
  }
  path := filepath.Join(outputDir, spectra.SnapshotFile)
  require.NoError(t, spectra.WriteRows(path, rows(params, redshifts, k, []spectra.Tau0{spectra.Unnormalized}, power)))
}

// WriteSDSS writes a reference table with the given bins.
func WriteSDSS(t testing.TB, path string, redshifts, k []float64) {
  t.Helper()
  var b strings.Builder
  b.WriteString("# z k Pk sigma\n")
  for _, z := range redshifts {
    for _, kk := range k {
      fmt.Fprintf(&b, "%g %g %g %g\n", z, kk, FluxPower(nil, z, kk), 0.05)
    }
  }
  require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
  require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}
