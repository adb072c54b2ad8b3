package spectra

import (
  "bufio"
  "encoding/csv"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "strconv"
)

// Row is one tabulated power value.
type Row struct {
  Z     float64
  Tau0  Tau0
  K     float64
  Power float64
}

var header = []string{"z", "tau0_factor", "k", "power"}

// ReadTable reads a power table CSV file.
func ReadTable(path string) (*Table, error) {
  f, err := os.Open(path)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  records, err := readCSV(f)
  if err != nil {
    return nil, fmt.Errorf("read %s: %w", path, err)
  }

  rows, err := parseRows(records)
  if err != nil {
    return nil, fmt.Errorf("read %s: %w", path, err)
  }

  t, err := NewTable(rows)
  if err != nil {
    return nil, fmt.Errorf("read %s: %w", path, err)
  }
  return t, nil
}

// WriteRows writes rows as a power table CSV file, creating parent
// directories as needed.
func WriteRows(path string, rows []Row) error {
  if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
    return err
  }

  f, err := os.Create(path)
  if err != nil {
    return err
  }

  w := csv.NewWriter(f)
  if err := w.Write(header); err != nil {
    f.Close()
    return err
  }
  for _, r := range rows {
    tau := ""
    if r.Tau0.Enabled {
      tau = r.Tau0.key()
    }
    record := []string{
      strconv.FormatFloat(r.Z, 'g', -1, 64),
      tau,
      strconv.FormatFloat(r.K, 'g', -1, 64),
      strconv.FormatFloat(r.Power, 'g', -1, 64),
    }
    if err := w.Write(record); err != nil {
      f.Close()
      return err
    }
  }
  w.Flush()
  if err := w.Error(); err != nil {
    f.Close()
    return err
  }
  return f.Close()
}

func readCSV(rs io.ReadSeeker) ([][]string, error) {
  // Skip header row
  row1, err := bufio.NewReader(rs).ReadSlice('\n')
  if err != nil {
    return nil, err
  }
  if _, err := rs.Seek(int64(len(row1)), io.SeekStart); err != nil {
    return nil, err
  }

  r := csv.NewReader(rs)
  r.FieldsPerRecord = len(header)
  return r.ReadAll()
}

func parseRows(records [][]string) ([]Row, error) {
  rows := make([]Row, 0, len(records))
  for i, rec := range records {
    var r Row
    var err error
    if r.Z, err = strconv.ParseFloat(rec[0], 64); err != nil {
      return nil, fmt.Errorf("line %d: z: %w", i+2, err)
    }
    if r.Tau0, err = parseTau0(rec[1]); err != nil {
      return nil, fmt.Errorf("line %d: tau0_factor: %w", i+2, err)
    }
    if r.K, err = strconv.ParseFloat(rec[2], 64); err != nil {
      return nil, fmt.Errorf("line %d: k: %w", i+2, err)
    }
    if r.Power, err = strconv.ParseFloat(rec[3], 64); err != nil {
      return nil, fmt.Errorf("line %d: power: %w", i+2, err)
    }
    rows = append(rows, r)
  }
  return rows, nil
}
