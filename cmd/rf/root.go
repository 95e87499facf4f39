package main

import (
	"github.com/davecheney/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/cluster"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/dataset"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/forest"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/metrics"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/rfconfig"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/serialize"
)

var runProfile bool

func newRootCmd() *cobra.Command {
	flags := &rfconfig.Flags{}

	cmd := &cobra.Command{
		Use:   "rf",
		Short: "Train and evaluate a parallel random forest classifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRF(flags)
		},
	}

	// unknown flags are ignored rather than rejected, per spec.md §6.
	cmd.FParseErrWhitelist.UnknownFlags = true

	flags = rfconfig.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&runProfile, "cpu_profile", false, "enable CPU profiling")

	return cmd
}

func runRF(f *rfconfig.Flags) error {
	if runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	cfg, err := rfconfig.Validate(f)
	if err != nil {
		return err
	}

	log.Info().
		Str("dataset_path", cfg.DatasetPath).
		Int("num_processes", cfg.NumProcesses).
		Int("thread_count", cfg.ThreadCount).
		Msg("starting run")

	full, err := dataset.ReadCSV(cfg.DatasetPath)
	if err != nil {
		return err
	}

	numClasses := cfg.NumClasses
	if numClasses <= 0 {
		numClasses = full.InferNumClasses()
	}

	if cfg.TrainedForestPath != "" {
		return runInferenceOnly(cfg, full, numClasses)
	}

	return runTrainAndEvaluate(cfg, full, numClasses)
}

func runTrainAndEvaluate(cfg *rfconfig.Config, full *dataset.Dataset, numClasses int) error {
	result, err := cluster.Run(full, cluster.RunConfig{
		NumClasses:      numClasses,
		TrainProportion: cfg.TrainProportion,
		NumProcesses:    cfg.NumProcesses,
		Seed:            cfg.Seed,
		Forest:          cfg.Forest,
	})
	if err != nil {
		return err
	}

	log.Info().Int("num_trees", len(result.Trees)).Msg("training complete")

	if err := serialize.WriteForest(cfg.NewForestPath, cfg.Forest, result.Trees); err != nil {
		return err
	}

	targets := testTargets(result.Test)
	if err := writeOutputs(cfg, targets, result.Predictions, numClasses); err != nil {
		return err
	}

	trainTime, inferenceTime := cluster.MaxTiming(result.ProcessTiming)
	return metrics.AppendTiming(timingPath(cfg), metrics.RunTiming{
		TrainTime:     trainTime.Seconds(),
		InferenceTime: inferenceTime.Seconds(),
		Processes:     cfg.NumProcesses,
		Threads:       cfg.ThreadCount,
		NumTrees:      cfg.Forest.NumTrees,
		TrainSize:     full.NumRows - result.Test.NumRows,
	})
}

func runInferenceOnly(cfg *rfconfig.Config, full *dataset.Dataset, numClasses int) error {
	_, trees, err := serialize.ReadForest(cfg.TrainedForestPath)
	if err != nil {
		return err
	}

	_, test := dataset.StratifiedSplit(full, numClasses, cfg.TrainProportion, cfg.Seed)

	localPreds := forest.PredictLocal(trees, test)
	aggregated := cluster.Aggregate([]cluster.ProcessPredictions{{
		Preds:    localPreds,
		NumTrees: len(trees),
		TestSize: test.NumRows,
	}}, numClasses)

	return writeOutputs(cfg, testTargets(test), aggregated, numClasses)
}

func writeOutputs(cfg *rfconfig.Config, targets, predictions []int, numClasses int) error {
	if err := writePredictionsCSV(cfg.StorePredictions, targets, predictions); err != nil {
		return err
	}
	return writeMetricsReport(cfg.StoreMetrics, targets, predictions, numClasses)
}

func testTargets(test *dataset.Dataset) []int {
	targets := make([]int, test.NumRows)
	for i := range targets {
		targets[i] = test.Label(i)
	}
	return targets
}

func timingPath(cfg *rfconfig.Config) string {
	return cfg.StoreMetrics + ".timing.csv"
}
