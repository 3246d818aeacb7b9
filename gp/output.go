package gp

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

var (
	ErrEmptyOutput       = errors.New("output artifact has no prediction grid")
	ErrOutputLenMismatch = errors.New("output artifact arrays have inconsistent lengths")
)

// Output is a precomputed prediction artifact, carrying the same
// arrays a live model produces so environments without the model can
// still run the analysis. Key names follow the upstream artifact
// schema.
type Output struct {
	XPredict     []float64 `json:"X_PREDICT"`
	YPredictMean []float64 `json:"Y_PREDICT_mean"`
	YPredictConf []float64 `json:"Y_PREDICT_conf"`

	XLockdown            []float64 `json:"X_COVID"`
	YLockdown            []float64 `json:"Y_COVID"`
	YLockdownPredictMean []float64 `json:"Y_COVID_PREDICT_mean"`
	YLockdownPredictConf []float64 `json:"Y_COVID_PREDICT_conf"`
}

// LoadOutput reads and validates a JSON output artifact from disk.
func LoadOutput(path string) (*Output, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o Output
	if err := json.Unmarshal(bytes, &o); err != nil {
		return nil, fmt.Errorf("unable to decode output artifact, %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks that the prediction grid and the lockdown window
// arrays are present and internally consistent.
func (o *Output) Validate() error {
	if o == nil || len(o.XPredict) == 0 {
		return ErrEmptyOutput
	}
	if len(o.YPredictMean) != len(o.XPredict) || len(o.YPredictConf) != len(o.XPredict) {
		return fmt.Errorf("prediction grid, %w", ErrOutputLenMismatch)
	}
	n := len(o.XLockdown)
	if len(o.YLockdown) != n || len(o.YLockdownPredictMean) != n || len(o.YLockdownPredictConf) != n {
		return fmt.Errorf("lockdown window, %w", ErrOutputLenMismatch)
	}
	return nil
}

// WriteFile persists the output as an indented JSON artifact so a
// host with the model available can produce artifacts for hosts
// without it.
func (o *Output) WriteFile(path string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}
