package griddemand

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gridwatch/griddemand/demand"
)

var yearPalette = []string{"darkgreen", "darkkhaki", "darkmagenta", "darksalmon", "darkred", "gold"}

// LineDemandByDay generates an echart line chart with one demand
// series per year over a shared day-of-year axis, collapsing the
// years on top of each other.
func LineDemandByDay(daily *demand.DailySeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Daily Demand by Day of Year",
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day of the Year", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Demand (MW)"}),
	)

	for i, year := range daily.UniqueYears() {
		doy, demandMW := daily.YearSlice(year)
		data := make([]opts.LineData, 0, len(doy))
		for j := range doy {
			data = append(data, opts.LineData{Value: []interface{}{doy[j], demandMW[j]}})
		}
		line.AddSeries(
			strconv.Itoa(year), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: yearPalette[i%len(yearPalette)]}),
		)
	}
	return line
}

// LineDemandOverTime generates an echart line chart of the continuous
// daily demand series over its dates.
func LineDemandOverTime(daily *demand.DailySeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Daily Demand",
			},
		),
		charts.WithYAxisOpts(opts.YAxis{Name: "Demand (MW)"}),
	)

	data := make([]opts.LineData, 0, daily.Len())
	for _, v := range daily.DemandMW {
		data = append(data, opts.LineData{Value: v})
	}

	line.SetXAxis(daily.Dates).
		AddSeries("Demand (MW)", data)
	return line
}

// LineModelFit generates an echart line chart of the model mean and
// confidence band over the forecast grid, overlapped with the actual
// demand points split into pre and post lockdown scatter series. The
// x axis is shifted by the dataset's first year for display.
func LineModelFit(daily *demand.DailySeries, pred *Prediction, cutoff int) *charts.Line {
	startYear := float64(daily.Dates[0].Year())

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Model Fit",
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Net Demand (GW)"}),
	)

	lineDataMean := make([]opts.LineData, 0, len(pred.XPredict))
	lineDataUpper := make([]opts.LineData, 0, len(pred.XPredict))
	lineDataLower := make([]opts.LineData, 0, len(pred.XPredict))
	for i, x := range pred.XPredict {
		lineDataMean = append(lineDataMean, opts.LineData{Value: []interface{}{x + startYear, pred.YPredictMean[i]}})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: []interface{}{x + startYear, pred.YPredictMean[i] + pred.YPredictConf[i]}})
		lineDataLower = append(lineDataLower, opts.LineData{Value: []interface{}{x + startYear, pred.YPredictMean[i] - pred.YPredictConf[i]}})
	}
	line.AddSeries("Mean", lineDataMean).
		AddSeries("Upper", lineDataUpper, charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.3})).
		AddSeries("Lower", lineDataLower, charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.3}))

	x := daily.FractionalYears()
	y := daily.DemandGW()
	if cutoff > len(x) {
		cutoff = len(x)
	}
	scatterBefore := make([]opts.ScatterData, 0, cutoff)
	for i := 0; i < cutoff; i++ {
		scatterBefore = append(scatterBefore, opts.ScatterData{Value: []interface{}{x[i] + startYear, y[i]}, SymbolSize: 4})
	}
	scatterAfter := make([]opts.ScatterData, 0, len(x)-cutoff)
	for i := cutoff; i < len(x); i++ {
		scatterAfter = append(scatterAfter, opts.ScatterData{Value: []interface{}{x[i] + startYear, y[i]}, SymbolSize: 4})
	}

	scatter := charts.NewScatter()
	scatter.AddSeries(
		"Before Lockdown", scatterBefore,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "black", Opacity: 0.5}),
	).AddSeries(
		"After Lockdown", scatterAfter,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "red", Opacity: 0.5}),
	)
	line.Overlap(scatter)

	return line
}

// LineDiscrepancy generates an echart line chart of actual over
// predicted demand for the post-cutoff window with a dashed baseline
// at ratio 1.0. When withConfidence is set the ratio against the
// confidence band edges is included.
func LineDiscrepancy(daily *demand.DailySeries, pred *Prediction, cutoff int, withConfidence bool) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Demand Discrepancy",
			},
		),
		charts.WithYAxisOpts(opts.YAxis{Name: "Net Demand (True) / Net Demand (Expected)"}),
	)

	dates := daily.Dates
	if cutoff < len(dates) {
		dates = dates[cutoff:]
	}
	n := len(pred.YLockdown)
	if len(dates) < n {
		n = len(dates)
	}

	lineDataRatio := make([]opts.LineData, 0, n)
	lineDataBaseline := make([]opts.LineData, 0, n)
	lineDataUpper := make([]opts.LineData, 0, n)
	lineDataLower := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		lineDataRatio = append(lineDataRatio, opts.LineData{Value: pred.YLockdown[i] / pred.YLockdownMean[i]})
		lineDataBaseline = append(lineDataBaseline, opts.LineData{Value: 1.0})
		if withConfidence {
			lineDataUpper = append(lineDataUpper, opts.LineData{Value: pred.YLockdown[i] / (pred.YLockdownMean[i] - pred.YLockdownConf[i])})
			lineDataLower = append(lineDataLower, opts.LineData{Value: pred.YLockdown[i] / (pred.YLockdownMean[i] + pred.YLockdownConf[i])})
		}
	}

	line.SetXAxis(dates[:n]).
		AddSeries("Actual / Expected", lineDataRatio).
		AddSeries(
			"Baseline", lineDataBaseline,
			charts.WithLineStyleOpts(opts.LineStyle{Color: "black", Type: "dashed"}),
		)
	if withConfidence {
		line.AddSeries("Upper Confidence", lineDataUpper, charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.3})).
			AddSeries("Lower Confidence", lineDataLower, charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.3}))
	}
	return line
}

// PlotDemand uses the Apache Echarts library to write an html report
// of the demand charts only, for runs without a model artifact.
func (a *Analysis) PlotDemand(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(
		LineDemandByDay(a.daily),
		LineDemandOverTime(a.daily),
	)
	return page.Render(w)
}

// PlotAnalysis uses the Apache Echarts library to write an html
// report with the demand charts, the model fit, and the discrepancy
// view. Requires a prior LoadModel or LoadModelOutput call.
func (a *Analysis) PlotAnalysis(w io.Writer) error {
	if a.pred == nil {
		return ErrNoPrediction
	}
	page := components.NewPage()
	page.AddCharts(
		LineDemandByDay(a.daily),
		LineDemandOverTime(a.daily),
		LineModelFit(a.daily, a.pred, a.opt.CutoffIndex),
		LineDiscrepancy(a.daily, a.pred, a.opt.CutoffIndex, true),
	)
	return page.Render(w)
}
