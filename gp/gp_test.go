package gp

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() *Model {
	return &Model{
		Kernel: Kernel{Variance: 4.0, LengthScale: 0.5},
		Noise:  1e-6,
		X:      []float64{0.0, 0.5, 1.0, 1.5, 2.0},
		Y:      []float64{30.0, 32.0, 31.0, 29.5, 30.5},
	}
}

func TestModelValid(t *testing.T) {
	testData := map[string]struct {
		model *Model
		err   error
	}{
		"nil model": {
			err: ErrNoModel,
		},
		"bad kernel": {
			model: &Model{Kernel: Kernel{Variance: 0, LengthScale: 1}},
			err:   ErrInvalidKernel,
		},
		"no training points": {
			model: &Model{Kernel: Kernel{Variance: 1, LengthScale: 1}},
			err:   ErrNoTrainingPoints,
		},
		"training length mismatch": {
			model: &Model{
				Kernel: Kernel{Variance: 1, LengthScale: 1},
				X:      []float64{0, 1},
				Y:      []float64{1},
			},
			err: ErrTrainingLenMismatch,
		},
		"valid": {
			model: testModel(),
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.model.Valid()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestNewPredictorInvalidModel(t *testing.T) {
	_, err := NewPredictor(nil)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestPredictRecoversTrainingPoints(t *testing.T) {
	m := testModel()
	p, err := NewPredictor(m)
	require.Nil(t, err)

	mean, conf, err := p.Predict(m.X)
	require.Nil(t, err)
	require.Len(t, mean, len(m.X))
	require.Len(t, conf, len(m.X))

	// with near-zero noise the posterior interpolates the training data
	for i := range m.X {
		assert.InDelta(t, m.Y[i], mean[i], 1e-2)
		assert.Less(t, conf[i], 0.1)
	}
}

func TestPredictFarFromTrainingData(t *testing.T) {
	m := testModel()
	p, err := NewPredictor(m)
	require.Nil(t, err)

	mean, conf, err := p.Predict([]float64{50.0})
	require.Nil(t, err)

	// far from any training point the posterior reverts to the prior
	assert.InDelta(t, 0.0, mean[0], 1e-6)
	assert.InDelta(t, ConfidenceZ*math.Sqrt(m.Kernel.Variance+m.Noise), conf[0], 1e-6)
}

func TestPredictNilPredictor(t *testing.T) {
	var p *Predictor
	_, _, err := p.Predict([]float64{0})
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestLoadModel(t *testing.T) {
	m := testModel()
	bytes, err := json.MarshalIndent(m, "", "  ")
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.Nil(t, os.WriteFile(path, bytes, 0o644))

	loaded, err := LoadModel(path)
	require.Nil(t, err)
	assert.Equal(t, m, loaded)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadModelCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.Nil(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadModel(path)
	require.Error(t, err)
}
