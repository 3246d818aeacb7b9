// Package griddemand analyzes UK electricity grid demand against a
// pre-fitted Gaussian-process regression model to study demand
// deviation during the 2020 lockdown. It loads half-hourly settlement
// records, aggregates them into a daily series, and renders the fit
// and the actual-over-predicted discrepancy as charts.
package griddemand

import (
	"errors"
	"fmt"
	"time"

	"github.com/gridwatch/griddemand/demand"
	"github.com/gridwatch/griddemand/gp"
	"github.com/gridwatch/griddemand/stats"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoPrediction             = errors.New("no prediction loaded, call LoadModel or LoadModelOutput first")
	ErrCutoffOutOfRange         = errors.New("cutoff index out of range")
	ErrNonPositiveForecastLimit = errors.New("forecast limit must be positive")
	ErrTooFewPredictionPoints   = errors.New("need at least two prediction points")
)

const (
	// DefaultCutoffIndex is the daily aggregate row where the UK
	// lockdown starts in the reference dataset.
	DefaultCutoffIndex = 1881

	// DefaultForecastLimit is the prediction horizon in fractional
	// years from the dataset start.
	DefaultForecastLimit = 7.0

	// DefaultPredictionPoints is the size of the evenly spaced
	// prediction grid.
	DefaultPredictionPoints = 1000
)

// Options configures the analysis window and prediction grid.
type Options struct {
	// CutoffIndex is the row index into the daily aggregate
	// separating the pre and post lockdown windows.
	CutoffIndex int

	// ForecastLimit is the prediction horizon in fractional years.
	ForecastLimit float64

	// PredictionPoints is the number of evenly spaced samples on the
	// prediction grid from 0 to ForecastLimit.
	PredictionPoints int
}

// NewDefaultOptions returns a default set of analysis options.
func NewDefaultOptions() *Options {
	return &Options{
		CutoffIndex:      DefaultCutoffIndex,
		ForecastLimit:    DefaultForecastLimit,
		PredictionPoints: DefaultPredictionPoints,
	}
}

// Validate checks the options against the number of aggregated rows.
func (o *Options) Validate(rows int) error {
	if o.CutoffIndex < 0 || o.CutoffIndex >= rows {
		return fmt.Errorf("cutoff index %d with %d rows, %w", o.CutoffIndex, rows, ErrCutoffOutOfRange)
	}
	if o.ForecastLimit <= 0 {
		return fmt.Errorf("forecast limit %f, %w", o.ForecastLimit, ErrNonPositiveForecastLimit)
	}
	if o.PredictionPoints < 2 {
		return fmt.Errorf("prediction points %d, %w", o.PredictionPoints, ErrTooFewPredictionPoints)
	}
	return nil
}

// Analysis wires the daily demand series to model predictions and
// chart builders.
type Analysis struct {
	opt *Options

	records []demand.Record
	daily   *demand.DailySeries
	pred    *Prediction
}

// New loads settlement records from a CSV file and aggregates them.
// If no options are provided a default is used.
func New(path string, opt *Options) (*Analysis, error) {
	records, err := demand.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load demand records, %w", err)
	}
	return NewFromRecords(records, opt)
}

// NewFromRecords aggregates already loaded settlement records.
func NewFromRecords(records []demand.Record, opt *Options) (*Analysis, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	daily, err := demand.NewDailySeries(records)
	if err != nil {
		return nil, fmt.Errorf("unable to aggregate demand records, %w", err)
	}
	if err := opt.Validate(daily.Len()); err != nil {
		return nil, err
	}

	return &Analysis{
		opt:     opt,
		records: records,
		daily:   daily,
	}, nil
}

// Records returns the raw settlement records.
func (a *Analysis) Records() []demand.Record {
	return a.records
}

// Daily returns the aggregated daily demand series.
func (a *Analysis) Daily() *demand.DailySeries {
	return a.daily
}

// Prediction returns the most recent load step result or nil when no
// model or output artifact has been loaded.
func (a *Analysis) Prediction() *Prediction {
	return a.pred
}

// LoadModel reads a fitted Gaussian-process model artifact and runs
// it over the forecast grid and the post-cutoff demand slice.
func (a *Analysis) LoadModel(path string) (*Prediction, error) {
	model, err := gp.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load model artifact, %w", err)
	}
	predictor, err := gp.NewPredictor(model)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize predictor, %w", err)
	}
	return a.PredictWith(predictor)
}

// PredictWith runs an already constructed predictor over the dense
// forecast grid and the post-cutoff demand slice, storing and
// returning the resulting Prediction.
func (a *Analysis) PredictWith(p *gp.Predictor) (*Prediction, error) {
	xPredict := make([]float64, a.opt.PredictionPoints)
	floats.Span(xPredict, 0, a.opt.ForecastLimit)
	mean, conf, err := p.Predict(xPredict)
	if err != nil {
		return nil, fmt.Errorf("unable to predict forecast grid, %w", err)
	}

	x := a.daily.FractionalYears()
	y := a.daily.DemandGW()
	xLockdown := x[a.opt.CutoffIndex:]
	yLockdown := y[a.opt.CutoffIndex:]
	lockdownMean, lockdownConf, err := p.Predict(xLockdown)
	if err != nil {
		return nil, fmt.Errorf("unable to predict lockdown window, %w", err)
	}

	pred := &Prediction{
		XPredict:     xPredict,
		YPredictMean: mean,
		YPredictConf: conf,

		XLockdown:     xLockdown,
		YLockdown:     yLockdown,
		YLockdownMean: lockdownMean,
		YLockdownConf: lockdownConf,
	}
	a.pred = pred
	return pred, nil
}

// LoadModelOutput reads a precomputed output artifact, for hosts
// without the model artifact. The resulting analysis state is
// equivalent to a LoadModel call with the model that produced it.
func (a *Analysis) LoadModelOutput(path string) (*Prediction, error) {
	out, err := gp.LoadOutput(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load output artifact, %w", err)
	}

	pred := &Prediction{
		XPredict:     out.XPredict,
		YPredictMean: out.YPredictMean,
		YPredictConf: out.YPredictConf,

		XLockdown:     out.XLockdown,
		YLockdown:     out.YLockdown,
		YLockdownMean: out.YLockdownPredictMean,
		YLockdownConf: out.YLockdownPredictConf,
	}
	a.pred = pred
	return pred, nil
}

// DiscrepancyRatio returns actual over predicted demand for the
// post-cutoff window. Dimensionless and centered near 1.0 absent
// demand anomalies.
func (a *Analysis) DiscrepancyRatio() ([]float64, error) {
	if a.pred == nil {
		return nil, ErrNoPrediction
	}
	ratio := make([]float64, len(a.pred.YLockdown))
	copy(ratio, a.pred.YLockdown)
	floats.Div(ratio, a.pred.YLockdownMean)
	return ratio, nil
}

// AnomalousDays returns the post-cutoff dates whose discrepancy ratio
// falls outside the Tukey fences, skipping UK bank holidays where a
// demand dip is expected.
func (a *Analysis) AnomalousDays(lowerPerc, upperPerc, tukeyFactor float64) ([]time.Time, error) {
	ratio, err := a.DiscrepancyRatio()
	if err != nil {
		return nil, err
	}

	holidays := a.daily.HolidayMask()
	var days []time.Time
	for _, i := range stats.DetectOutliers(ratio, lowerPerc, upperPerc, tukeyFactor) {
		row := a.opt.CutoffIndex + i
		if row >= a.daily.Len() || holidays[row] {
			continue
		}
		days = append(days, a.daily.Dates[row])
	}
	return days, nil
}
