// Command griddemand renders an html report of UK grid demand against
// a pre-fitted Gaussian-process regression model.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/gridwatch/griddemand"
	"github.com/pkg/profile"
)

var errNoArtifact = errors.New("provide at most one of -model and -model-output")

type cliOptions struct {
	csvPath     string
	modelPath   string
	outputPath  string
	htmlPath    string
	writeOutput string
	profileDir  string

	cutoff        int
	forecastLimit float64
	points        int
}

func main() {
	var opt cliOptions
	flag.StringVar(&opt.csvPath, "csv", "", "path to the settlement CSV with SETTLEMENT_DATE and ND columns")
	flag.StringVar(&opt.modelPath, "model", "", "path to a fitted model artifact (json)")
	flag.StringVar(&opt.outputPath, "model-output", "", "path to a precomputed prediction artifact (json)")
	flag.StringVar(&opt.htmlPath, "out", "griddemand.html", "destination html report")
	flag.StringVar(&opt.writeOutput, "write-output", "", "write the computed predictions as an output artifact")
	flag.StringVar(&opt.profileDir, "profile", "", "write a cpu profile to this directory")
	flag.IntVar(&opt.cutoff, "cutoff", griddemand.DefaultCutoffIndex, "row index separating the pre and post lockdown windows")
	flag.Float64Var(&opt.forecastLimit, "forecast-limit", griddemand.DefaultForecastLimit, "forecast horizon in years from the dataset start")
	flag.IntVar(&opt.points, "points", griddemand.DefaultPredictionPoints, "number of samples on the prediction grid")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger, opt); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, opt cliOptions) error {
	if opt.csvPath == "" {
		return errors.New("no settlement CSV provided, see -csv")
	}
	if opt.modelPath != "" && opt.outputPath != "" {
		return errNoArtifact
	}
	if opt.profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opt.profileDir)).Stop()
	}

	analysisOpt := &griddemand.Options{
		CutoffIndex:      opt.cutoff,
		ForecastLimit:    opt.forecastLimit,
		PredictionPoints: opt.points,
	}
	analysis, err := griddemand.New(opt.csvPath, analysisOpt)
	if err != nil {
		return err
	}
	logger.Info("aggregated demand records",
		"records", len(analysis.Records()),
		"days", analysis.Daily().Len(),
	)

	switch {
	case opt.modelPath != "":
		if _, err := analysis.LoadModel(opt.modelPath); err != nil {
			return err
		}
	case opt.outputPath != "":
		if _, err := analysis.LoadModelOutput(opt.outputPath); err != nil {
			return err
		}
	default:
		logger.Info("no model artifact provided, rendering demand charts only")
		file, err := os.Create(opt.htmlPath)
		if err != nil {
			return err
		}
		defer file.Close()
		return analysis.PlotDemand(file)
	}

	days, err := analysis.AnomalousDays(0.25, 0.75, 1.5)
	if err != nil {
		return err
	}
	for _, day := range days {
		logger.Info("anomalous demand day", "date", day.Format("2006-01-02"))
	}

	if opt.writeOutput != "" {
		if err := analysis.Prediction().Output().WriteFile(opt.writeOutput); err != nil {
			return err
		}
		logger.Info("wrote output artifact", "path", opt.writeOutput)
	}

	file, err := os.Create(opt.htmlPath)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := analysis.PlotAnalysis(file); err != nil {
		return err
	}
	logger.Info("wrote html report", "path", opt.htmlPath)
	return nil
}
