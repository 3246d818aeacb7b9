package griddemand

import "github.com/gridwatch/griddemand/gp"

// Prediction is the immutable result of a model load step. It holds
// the dense forecast grid and the post-cutoff demand window in GW,
// with the predicted mean and confidence half-width for both. Both
// load variants leave the analysis with the same shape so the chart
// builders work identically.
type Prediction struct {
	XPredict     []float64 `json:"x_predict"`
	YPredictMean []float64 `json:"y_predict_mean"`
	YPredictConf []float64 `json:"y_predict_conf"`

	XLockdown     []float64 `json:"x_lockdown"`
	YLockdown     []float64 `json:"y_lockdown"`
	YLockdownMean []float64 `json:"y_lockdown_mean"`
	YLockdownConf []float64 `json:"y_lockdown_conf"`
}

// Output converts the prediction into the output artifact schema so
// it can be persisted for hosts without the model artifact.
func (p *Prediction) Output() *gp.Output {
	if p == nil {
		return nil
	}
	return &gp.Output{
		XPredict:     p.XPredict,
		YPredictMean: p.YPredictMean,
		YPredictConf: p.YPredictConf,

		XLockdown:            p.XLockdown,
		YLockdown:            p.YLockdown,
		YLockdownPredictMean: p.YLockdownMean,
		YLockdownPredictConf: p.YLockdownConf,
	}
}
