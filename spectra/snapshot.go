package spectra

import (
  "fmt"
  "os"
  "path/filepath"
)

// SnapshotFile is the power table written into a simulation output
// directory by the flux power extraction step.
const SnapshotFile = "flux_power.csv"

// LoadSnapshots reads the flux power of every output snapshot of one
// simulation. The table's redshifts are the snapshot output redshifts.
func LoadSnapshots(outputDir string) (*Table, error) {
  info, err := os.Stat(outputDir)
  if err != nil || !info.IsDir() {
    return nil, fmt.Errorf("%s: %w", outputDir, ErrMissingDataDirectory)
  }
  return ReadTable(filepath.Join(outputDir, SnapshotFile))
}
