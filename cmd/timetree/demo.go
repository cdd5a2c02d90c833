package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/c9s/timetree"
)

func init() {
	DemoCmd.Flags().Int("iterations", 0, "size of the workload loops, overrides the config")
	DemoCmd.Flags().Bool("metrics", false, "print the Prometheus exposition of the report")
	RootCmd.AddCommand(DemoCmd)
}

var DemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "time a sample workload and print the report",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,
	RunE:         demo,
}

// sink keeps the busy loops from being optimized away
var sink int

func busyLoop(n int) {
	for i := 0; i < n; i++ {
		sink += i
	}
}

func inheritName() error {
	busyLoop(config.Iterations)
	return nil
}

func demo(cmd *cobra.Command, args []string) error {
	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return err
	}

	if iterations > 0 {
		config.Iterations = iterations
	}

	metrics, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return err
	}

	profiler := timetree.Default()

	if err := profiler.Do("my loop", func() error {
		busyLoop(config.Iterations)
		return nil
	}); err != nil {
		return err
	}

	if err := profiler.Do("nested parent", func() error {
		busyLoop(config.Iterations / 20)

		if err := profiler.Do("nested child 1", func() error {
			busyLoop(config.Iterations / 20)
			return nil
		}); err != nil {
			return err
		}

		return profiler.Do("nested child 2", func() error {
			busyLoop(config.Iterations / 20)
			return nil
		})
	}); err != nil {
		return err
	}

	log.Debugf("context regions done:\n%s", profiler)

	profiler.Clear()

	inherited := profiler.Wrap(inheritName)
	custom := profiler.Wrap(func() error {
		busyLoop(config.Iterations)

		// wrapped funcs nest like regions
		return inherited()
	}, "custom_name")

	if err := custom(); err != nil {
		return err
	}

	if err := timetree.WriteReport(os.Stdout, profiler.Report(), config.Format, config.Color); err != nil {
		return err
	}

	if metrics || config.Metrics {
		return writeMetrics(profiler)
	}

	return nil
}

func writeMetrics(tracker *timetree.Tracker) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(timetree.NewCollector(tracker, config.MetricsNamespace)); err != nil {
		return err
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}

	return nil
}
