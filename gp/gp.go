// Package gp consumes pre-fitted Gaussian-process regression models
// over a univariate input and produces posterior predictions. Training
// is out of scope and happens elsewhere.
package gp

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

// ConfidenceZ scales the posterior standard deviation into the
// confidence half-width returned by Predict.
const ConfidenceZ = 1.96

var (
	ErrNoModel             = errors.New("no initialized model")
	ErrNoTrainingPoints    = errors.New("model has no training points")
	ErrTrainingLenMismatch = errors.New("training inputs and targets have different lengths")
	ErrInvalidKernel       = errors.New("kernel hyperparameters must be positive")
	ErrNotPositiveDefinite = errors.New("kernel matrix is not positive definite")
)

// Kernel holds the hyperparameters of a squared-exponential kernel.
type Kernel struct {
	Variance    float64 `json:"variance"`
	LengthScale float64 `json:"length_scale"`
}

func (k Kernel) Valid() error {
	if k.Variance <= 0 || k.LengthScale <= 0 {
		return ErrInvalidKernel
	}
	return nil
}

// At evaluates the kernel between two inputs.
func (k Kernel) At(a, b float64) float64 {
	d := a - b
	return k.Variance * math.Exp(-d*d/(2.0*k.LengthScale*k.LengthScale))
}

// Model is the serializeable representation of a fitted
// Gaussian-process regression: kernel hyperparameters, observation
// noise variance, and the training points the fit conditioned on.
type Model struct {
	Kernel Kernel    `json:"kernel"`
	Noise  float64   `json:"noise"`
	X      []float64 `json:"x_train"`
	Y      []float64 `json:"y_train"`
}

// LoadModel reads a JSON model artifact from disk.
func LoadModel(path string) (*Model, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(bytes, &m); err != nil {
		return nil, fmt.Errorf("unable to decode model artifact, %w", err)
	}
	return &m, nil
}

func (m *Model) Valid() error {
	if m == nil {
		return ErrNoModel
	}
	if err := m.Kernel.Valid(); err != nil {
		return err
	}
	if len(m.X) == 0 {
		return ErrNoTrainingPoints
	}
	if len(m.X) != len(m.Y) {
		return fmt.Errorf(
			"%d training inputs but %d targets, %w",
			len(m.X), len(m.Y), ErrTrainingLenMismatch,
		)
	}
	return nil
}

// Predictor computes posterior predictions from a model. The kernel
// matrix factorization is done once at construction so repeated
// Predict calls only pay for the solves.
type Predictor struct {
	model *Model
	chol  *mat.Cholesky
	alpha *mat.VecDense
}

// NewPredictor validates the model and factorizes its kernel matrix.
func NewPredictor(m *Model) (*Predictor, error) {
	if err := m.Valid(); err != nil {
		return nil, err
	}

	n := len(m.X)
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.Kernel.At(m.X[i], m.X[j])
			if i == j {
				v += m.Noise
			}
			k.SetSym(i, j, v)
		}
	}

	chol := new(mat.Cholesky)
	if ok := chol.Factorize(k); !ok {
		return nil, ErrNotPositiveDefinite
	}
	alpha := new(mat.VecDense)
	if err := chol.SolveVecTo(alpha, mat.NewVecDense(n, m.Y)); err != nil {
		return nil, fmt.Errorf("unable to solve for posterior weights, %w", err)
	}

	return &Predictor{
		model: m,
		chol:  chol,
		alpha: alpha,
	}, nil
}

// Predict returns the posterior mean and confidence half-width,
// ConfidenceZ posterior standard deviations, at each query input.
func (p *Predictor) Predict(x []float64) ([]float64, []float64, error) {
	if p == nil || p.model == nil {
		return nil, nil, ErrNoModel
	}

	n := len(p.model.X)
	mean := make([]float64, len(x))
	conf := make([]float64, len(x))

	kvec := mat.NewVecDense(n, nil)
	v := new(mat.VecDense)
	for i, xq := range x {
		for j := 0; j < n; j++ {
			kvec.SetVec(j, p.model.Kernel.At(xq, p.model.X[j]))
		}
		mean[i] = mat.Dot(kvec, p.alpha)

		if err := p.chol.SolveVecTo(v, kvec); err != nil {
			return nil, nil, fmt.Errorf("unable to solve posterior variance at %f, %w", xq, err)
		}
		variance := p.model.Kernel.Variance + p.model.Noise - mat.Dot(kvec, v)
		if variance < 0 {
			// guard against factorization round-off near training points
			variance = 0
		}
		conf[i] = ConfidenceZ * math.Sqrt(variance)
	}
	return mean, conf, nil
}
