package spectra

import "errors"

var (
  // ErrShapeMismatch reports vectors or tables whose lengths do not agree
  // with the wavenumber and redshift counts they are paired with.
  ErrShapeMismatch = errors.New("shape mismatch")

  // ErrMissingDataDirectory reports an input directory that does not exist.
  ErrMissingDataDirectory = errors.New("missing data directory")

  // ErrEmptyResultSet reports a data set with no rows to work on.
  ErrEmptyResultSet = errors.New("empty result set")

  // ErrMissingNormalization reports a power table with no rows for the
  // requested tau0 factor.
  ErrMissingNormalization = errors.New("no power for requested tau0 factor")
)
