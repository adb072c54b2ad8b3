// Package emulator reads emulator directories: the parameter design of a
// suite of simulations together with each simulation's flux power table.
package emulator

import (
  "encoding/json"
  "fmt"
  "os"
  "path/filepath"
  "sort"

  "github.com/HamletTheHamster/emulator-paper-plots/spectra"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/spatial/r1"
)

// ParamsFile holds the parameter design of an emulator directory.
const ParamsFile = "emulator_params.json"

// Param is a named column of the parameter matrix.
type Param struct {
  Name  string
  Index int
}

// Emulator is a handle on an emulator directory. Call Load before using
// any accessor.
type Emulator struct {
  dir     string
  params  []Param
  limits  []r1.Interval
  samples *mat.Dense
  powers  []string
}

// New returns an unloaded handle on dir.
func New(dir string) *Emulator {
  return &Emulator{dir: dir}
}

// Layout is the on-disk description of an emulator directory.
type Layout struct {
  // ParamNames is either a list of names in column order or an object
  // mapping each name to its column.
  ParamNames   json.RawMessage `json:"param_names"`
  ParamLimits  [][2]float64    `json:"param_limits"`
  SampleParams [][]float64     `json:"sample_params"`
  // PowerFiles are relative to the directory. When absent, row i is read
  // from flux_power/<i>.csv.
  PowerFiles []string `json:"power_files,omitempty"`
}

func (e *Emulator) Dir() string { return e.dir }

// Load reads the parameter design. Power tables are read lazily by the
// spectra handed out by Training.
func (e *Emulator) Load() error {
  info, err := os.Stat(e.dir)
  if err != nil || !info.IsDir() {
    return fmt.Errorf("emulator %s: %w", e.dir, spectra.ErrMissingDataDirectory)
  }

  b, err := os.ReadFile(filepath.Join(e.dir, ParamsFile))
  if err != nil {
    return fmt.Errorf("emulator %s: %w", e.dir, err)
  }
  var l Layout
  if err := json.Unmarshal(b, &l); err != nil {
    return fmt.Errorf("emulator %s: %s: %w", e.dir, ParamsFile, err)
  }

  params, err := parseParamNames(l.ParamNames)
  if err != nil {
    return fmt.Errorf("emulator %s: %w", e.dir, err)
  }
  nparams := len(params)
  if nparams == 0 {
    return fmt.Errorf("emulator %s: no parameters: %w", e.dir, spectra.ErrEmptyResultSet)
  }

  if len(l.ParamLimits) != nparams {
    return fmt.Errorf("emulator %s: %d limits for %d parameters: %w", e.dir, len(l.ParamLimits), nparams, spectra.ErrShapeMismatch)
  }
  limits := make([]r1.Interval, nparams)
  for i, lim := range l.ParamLimits {
    if !(lim[0] < lim[1]) {
      return fmt.Errorf("emulator %s: %s limits [%g, %g] are empty: %w", e.dir, params[i].Name, lim[0], lim[1], spectra.ErrShapeMismatch)
    }
    limits[i] = r1.Interval{Min: lim[0], Max: lim[1]}
  }

  if len(l.SampleParams) == 0 {
    return fmt.Errorf("emulator %s: no samples: %w", e.dir, spectra.ErrEmptyResultSet)
  }
  samples := mat.NewDense(len(l.SampleParams), nparams, nil)
  for i, row := range l.SampleParams {
    if len(row) != nparams {
      return fmt.Errorf("emulator %s: sample %d has %d parameters, want %d: %w", e.dir, i, len(row), nparams, spectra.ErrShapeMismatch)
    }
    samples.SetRow(i, row)
  }

  powers := l.PowerFiles
  if powers == nil {
    powers = make([]string, len(l.SampleParams))
    for i := range powers {
      powers[i] = DefaultPowerFile(i)
    }
  }
  if len(powers) != len(l.SampleParams) {
    return fmt.Errorf("emulator %s: %d power files for %d samples: %w", e.dir, len(powers), len(l.SampleParams), spectra.ErrShapeMismatch)
  }

  e.params, e.limits, e.samples, e.powers = params, limits, samples, powers
  return nil
}

// DefaultPowerFile is the power table of row i when the layout lists none.
func DefaultPowerFile(i int) string {
  return filepath.Join("flux_power", fmt.Sprintf("%d.csv", i))
}

func parseParamNames(raw json.RawMessage) ([]Param, error) {
  var names []string
  if err := json.Unmarshal(raw, &names); err == nil {
    params := make([]Param, len(names))
    for i, n := range names {
      params[i] = Param{Name: n, Index: i}
    }
    return params, nil
  }

  var byName map[string]int
  if err := json.Unmarshal(raw, &byName); err != nil {
    return nil, fmt.Errorf("param_names: want a list or an object of column indices: %w", err)
  }
  params := make([]Param, 0, len(byName))
  for n, i := range byName {
    params = append(params, Param{Name: n, Index: i})
  }
  sort.Slice(params, func(i, j int) bool { return params[i].Index < params[j].Index })
  for i, p := range params {
    if p.Index != i {
      return nil, fmt.Errorf("param_names: columns are not 0..%d: %w", len(params)-1, spectra.ErrShapeMismatch)
    }
  }
  return params, nil
}

// Params lists the parameters in column order.
func (e *Emulator) Params() []Param { return append([]Param(nil), e.params...) }

// Limits returns the prior range of every parameter in column order.
func (e *Emulator) Limits() []r1.Interval { return append([]r1.Interval(nil), e.limits...) }

// ParamMatrix returns the design, one row per simulation.
func (e *Emulator) ParamMatrix() *mat.Dense { return mat.DenseCopyOf(e.samples) }

// Len is the number of simulations.
func (e *Emulator) Len() int {
  if e.samples == nil {
    return 0
  }
  r, _ := e.samples.Dims()
  return r
}

// Spectrum returns a fresh handle on the power table of row i.
func (e *Emulator) Spectrum(i int) *spectra.Spectrum {
  return spectra.NewSpectrum(filepath.Join(e.dir, e.powers[i]))
}

// TrainingSet is the design and power of an emulator restricted to a
// maximum redshift.
type TrainingSet struct {
  Params []Param
  Matrix *mat.Dense
  Powers []*spectra.Spectrum
}

// Training returns the training set with every spectrum restricted to
// redshifts at or below maxZ.
func (e *Emulator) Training(maxZ float64) (*TrainingSet, error) {
  if e.samples == nil {
    return nil, fmt.Errorf("emulator %s: not loaded", e.dir)
  }
  n := e.Len()
  if n == 0 {
    return nil, fmt.Errorf("emulator %s: %w", e.dir, spectra.ErrEmptyResultSet)
  }
  ts := &TrainingSet{
    Params: e.Params(),
    Matrix: e.ParamMatrix(),
    Powers: make([]*spectra.Spectrum, n),
  }
  for i := range ts.Powers {
    ts.Powers[i] = e.Spectrum(i).WithMaxZ(maxZ)
  }
  return ts, nil
}

// Write creates an emulator directory holding l. Power tables are written
// separately.
func Write(dir string, l Layout) error {
  if err := os.MkdirAll(dir, 0755); err != nil {
    return err
  }
  b, err := json.MarshalIndent(l, "", "  ")
  if err != nil {
    return err
  }
  return os.WriteFile(filepath.Join(dir, ParamsFile), b, 0644)
}
