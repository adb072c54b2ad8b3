// Package config holds the locations and constants the paper figures are
// made from. Values come from an optional HCL file layered over defaults.
package config

import (
  "errors"
  "fmt"
  "os"
  "path/filepath"

  "github.com/hashicorp/hcl/v2"
  "github.com/hashicorp/hcl/v2/gohcl"
  "github.com/hashicorp/hcl/v2/hclparse"
  "github.com/zclconf/go-cty/cty"
)

var ErrInvalid = errors.New("invalid config")

// Config is the full set of inputs of a run. Relative data paths are
// resolved against DataRoot.
type Config struct {
  PlotDir  string `hcl:"plot_dir,optional"`
  DataRoot string `hcl:"data_root,optional"`
  SDSSData string `hcl:"sdss_data,optional"`

  // Seed fixes the Latin hypercube drawn for the sampling figure.
  Seed               int `hcl:"seed,optional"`
  HypercubeDivisions int `hcl:"hypercube_divisions,optional"`
  HypercubeTries     int `hcl:"hypercube_tries,optional"`

  SingleParamEmulator string  `hcl:"single_param_emulator,optional"`
  BaselineRow         int     `hcl:"baseline_row,optional"`
  MaxZ                float64 `hcl:"max_z,optional"`

  S8Emulator    string `hcl:"s8_emulator,optional"`
  S8Quadratic   string `hcl:"s8_quadratic,optional"`
  S8Test        string `hcl:"s8_test,optional"`
  KnotsEmulator string `hcl:"knots_emulator,optional"`
  KnotsTest     string `hcl:"knots_test,optional"`

  // Zout lists the snapshot redshifts every sample run must hold, in
  // output order. RedshiftSlices index into it.
  Zout           []float64 `hcl:"zout,optional"`
  SampleRuns     []string  `hcl:"sample_runs,optional"`
  RedshiftSlices []int     `hcl:"redshift_slices,optional"`
}

// Default returns the layout the paper was made with.
func Default() Config {
  home, _ := os.UserHomeDir()
  sample := "hires_sample/ns1.1As2.1e-09heat_slope0heat_amp1hub0.7"
  return Config{
    PlotDir:  filepath.Join(home, "papers", "emulator_paper_1", "plots"),
    DataRoot: filepath.Join(home, "data", "Lya_Boss"),
    SDSSData: "pk_1d_DR9_defaultcuts_noises.txt",

    Seed:               42,
    HypercubeDivisions: 8,
    HypercubeTries:     100,

    SingleParamEmulator: "hires_s8_quadratic",
    BaselineRow:         5,
    MaxZ:                2.4,

    S8Emulator:    "hires_s8",
    S8Quadratic:   "hires_s8_quadratic",
    S8Test:        "hires_s8_test",
    KnotsEmulator: "hires_knots",
    KnotsTest:     "hires_knots_test",

    SampleRuns: []string{
      sample + "/output",
      sample + "seed1/output",
      sample + "seed2/output",
    },
    Zout:           []float64{4.2, 4.0, 3.8, 3.6, 3.4, 3.2, 3.0, 2.8, 2.6, 2.4, 2.2, 2.0},
    RedshiftSlices: []int{5, 10},
  }
}

// Load reads path over the defaults. An empty path returns the defaults.
// The file may refer to the user's home directory as ${home}.
func Load(path string) (Config, error) {
  cfg := Default()
  if path == "" {
    return cfg, cfg.Validate()
  }

  parser := hclparse.NewParser()
  file, diags := parser.ParseHCLFile(path)
  if diags.HasErrors() {
    return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, diags)
  }

  home, _ := os.UserHomeDir()
  ctx := &hcl.EvalContext{
    Variables: map[string]cty.Value{
      "home": cty.StringVal(home),
    },
  }
  if diags := gohcl.DecodeBody(file.Body, ctx, &cfg); diags.HasErrors() {
    return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, diags)
  }
  return cfg, cfg.Validate()
}

// Validate checks the constants a run depends on.
func (c Config) Validate() error {
  switch {
  case c.PlotDir == "":
    return fmt.Errorf("%w: plot_dir is empty", ErrInvalid)
  case c.HypercubeDivisions < 1:
    return fmt.Errorf("%w: hypercube_divisions must be positive", ErrInvalid)
  case c.BaselineRow < 0:
    return fmt.Errorf("%w: baseline_row must not be negative", ErrInvalid)
  case c.MaxZ <= 0:
    return fmt.Errorf("%w: max_z must be positive", ErrInvalid)
  case len(c.SampleRuns) != 3:
    return fmt.Errorf("%w: sample_runs needs the base run and two reseeded runs, got %d", ErrInvalid, len(c.SampleRuns))
  case len(c.Zout) == 0:
    return fmt.Errorf("%w: zout is empty", ErrInvalid)
  case len(c.RedshiftSlices) == 0:
    return fmt.Errorf("%w: redshift_slices is empty", ErrInvalid)
  }
  for _, i := range c.RedshiftSlices {
    if i < 0 || i >= len(c.Zout) {
      return fmt.Errorf("%w: redshift slice %d outside zout of length %d", ErrInvalid, i, len(c.Zout))
    }
  }
  return nil
}

// Data resolves a data path against DataRoot.
func (c Config) Data(path string) string {
  if filepath.IsAbs(path) {
    return path
  }
  return filepath.Join(c.DataRoot, path)
}

// Plot resolves an output path against PlotDir.
func (c Config) Plot(name string) string {
  return filepath.Join(c.PlotDir, name)
}
