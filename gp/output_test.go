package gp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutput() *Output {
	return &Output{
		XPredict:     []float64{0.0, 0.5, 1.0},
		YPredictMean: []float64{30.0, 31.0, 30.5},
		YPredictConf: []float64{1.0, 1.1, 1.2},

		XLockdown:            []float64{0.8, 0.9},
		YLockdown:            []float64{28.0, 27.5},
		YLockdownPredictMean: []float64{30.5, 30.6},
		YLockdownPredictConf: []float64{1.1, 1.1},
	}
}

func TestOutputValidate(t *testing.T) {
	testData := map[string]struct {
		output func() *Output
		err    error
	}{
		"nil output": {
			output: func() *Output { return nil },
			err:    ErrEmptyOutput,
		},
		"no prediction grid": {
			output: func() *Output { return &Output{} },
			err:    ErrEmptyOutput,
		},
		"prediction grid mismatch": {
			output: func() *Output {
				o := testOutput()
				o.YPredictMean = o.YPredictMean[:2]
				return o
			},
			err: ErrOutputLenMismatch,
		},
		"lockdown window mismatch": {
			output: func() *Output {
				o := testOutput()
				o.YLockdownPredictConf = append(o.YLockdownPredictConf, 1.1)
				return o
			},
			err: ErrOutputLenMismatch,
		},
		"valid": {
			output: testOutput,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.output().Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestOutputRoundTrip(t *testing.T) {
	o := testOutput()
	path := filepath.Join(t.TempDir(), "output.json")
	require.Nil(t, o.WriteFile(path))

	loaded, err := LoadOutput(path)
	require.Nil(t, err)
	assert.Equal(t, o, loaded)
}

func TestLoadOutputMissingFile(t *testing.T) {
	_, err := LoadOutput(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestWriteFileInvalidOutput(t *testing.T) {
	o := &Output{}
	err := o.WriteFile(filepath.Join(t.TempDir(), "output.json"))
	assert.ErrorIs(t, err, ErrEmptyOutput)
}
