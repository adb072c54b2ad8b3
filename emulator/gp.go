package emulator

import (
  "fmt"
  "math"

  "gonum.org/v1/gonum/floats"
  "gonum.org/v1/gonum/mat"
  "gonum.org/v1/gonum/optimize"
  "gonum.org/v1/gonum/spatial/r1"
)

// nugget is the diagonal jitter added to the kernel matrix, relative to
// the kernel amplitude.
const nugget = 1e-8

// gaussianProcess is a squared-exponential Gaussian process shared by
// every output bin. Inputs are mapped to the unit cube and outputs are
// fractional deviations from the mean power of the training set.
type gaussianProcess struct {
  trained
  limits []r1.Interval
  x      *mat.Dense
  mean   []float64

  amp, length float64
  chol        mat.Cholesky
  alpha       *mat.Dense
}

func newGaussianProcess(limits []r1.Interval, params, power *mat.Dense) (*gaussianProcess, error) {
  n, d := params.Dims()
  _, m := power.Dims()

  gp := &gaussianProcess{limits: limits, x: mat.NewDense(n, d, nil), mean: make([]float64, m)}
  for i := 0; i < n; i++ {
    gp.x.SetRow(i, toUnit(limits, params.RawRowView(i)))
  }

  for j := 0; j < m; j++ {
    gp.mean[j] = floats.Sum(mat.Col(nil, j, power)) / float64(n)
    if gp.mean[j] == 0 {
      return nil, fmt.Errorf("emulator: output %d has zero mean power", j)
    }
  }
  y := mat.NewDense(n, m, nil)
  y.Apply(func(i, j int, v float64) float64 {
    return v/gp.mean[j] - 1
  }, power)

  problem := optimize.Problem{
    Func: func(theta []float64) float64 {
      return gp.negLogLikelihood(theta, y)
    },
  }
  theta0 := []float64{math.Log(variance(y) + 1e-12), math.Log(0.5)}
  res, err := optimize.Minimize(problem, theta0, &optimize.Settings{MajorIterations: 400}, &optimize.NelderMead{})
  theta := theta0
  if res != nil && !math.IsInf(gp.negLogLikelihood(res.X, y), 1) {
    theta = res.X
  } else if err != nil {
    return nil, fmt.Errorf("emulator: fitting gp hyperparameters: %w", err)
  }

  if !gp.factorize(theta) {
    return nil, fmt.Errorf("emulator: gp kernel matrix is not positive definite")
  }
  gp.alpha = &mat.Dense{}
  if err := gp.chol.SolveTo(gp.alpha, y); err != nil {
    return nil, fmt.Errorf("emulator: gp solve: %w", err)
  }
  return gp, nil
}

func toUnit(limits []r1.Interval, p []float64) []float64 {
  u := make([]float64, len(p))
  for i, v := range p {
    l := limits[i]
    u[i] = (v - l.Min) / (l.Max - l.Min)
  }
  return u
}

func variance(y *mat.Dense) float64 {
  r, c := y.Dims()
  var ss float64
  for i := 0; i < r; i++ {
    for _, v := range y.RawRowView(i) {
      ss += v * v
    }
  }
  return ss / float64(r*c)
}

func (gp *gaussianProcess) kernel(a, b []float64) float64 {
  d := floats.Distance(a, b, 2)
  return gp.amp * math.Exp(-d*d/(2*gp.length*gp.length))
}

// factorize builds and factorizes the kernel matrix for theta = (log
// amplitude, log length scale).
func (gp *gaussianProcess) factorize(theta []float64) bool {
  gp.amp, gp.length = math.Exp(theta[0]), math.Exp(theta[1])
  n, _ := gp.x.Dims()
  k := mat.NewSymDense(n, nil)
  for i := 0; i < n; i++ {
    for j := i; j < n; j++ {
      v := gp.kernel(gp.x.RawRowView(i), gp.x.RawRowView(j))
      if i == j {
        v += nugget * gp.amp
      }
      k.SetSym(i, j, v)
    }
  }
  return gp.chol.Factorize(k)
}

func (gp *gaussianProcess) negLogLikelihood(theta []float64, y *mat.Dense) float64 {
  // Keep the search inside a range where the kernel stays well conditioned.
  if theta[1] < math.Log(1e-2) || theta[1] > math.Log(1e2) || theta[0] < -50 || theta[0] > 50 {
    return math.Inf(1)
  }
  if !gp.factorize(theta) {
    return math.Inf(1)
  }
  var alpha mat.Dense
  if err := gp.chol.SolveTo(&alpha, y); err != nil {
    return math.Inf(1)
  }
  _, m := y.Dims()
  var fit mat.Dense
  fit.MulElem(y, &alpha)
  return 0.5*mat.Sum(&fit) + 0.5*float64(m)*gp.chol.LogDet()
}

// Predict returns the power and its 1σ uncertainty at params.
func (gp *gaussianProcess) Predict(params []float64) ([]float64, []float64, error) {
  n, d := gp.x.Dims()
  if err := checkParams(params, d); err != nil {
    return nil, nil, err
  }
  u := toUnit(gp.limits, params)

  ks := mat.NewVecDense(n, nil)
  for i := 0; i < n; i++ {
    ks.SetVec(i, gp.kernel(u, gp.x.RawRowView(i)))
  }

  var mu mat.VecDense
  mu.MulVec(gp.alpha.T(), ks)

  var v mat.VecDense
  if err := gp.chol.SolveVecTo(&v, ks); err != nil {
    return nil, nil, fmt.Errorf("emulator: gp predict: %w", err)
  }
  sigma := math.Sqrt(math.Max(gp.amp*(1+nugget)-mat.Dot(ks, &v), 0))

  mean := make([]float64, len(gp.mean))
  std := make([]float64, len(gp.mean))
  for j, pm := range gp.mean {
    mean[j] = (mu.AtVec(j) + 1) * pm
    std[j] = sigma * math.Abs(pm)
  }
  return mean, std, nil
}
