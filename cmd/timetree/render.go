package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/c9s/timetree"
)

func init() {
	RootCmd.AddCommand(RenderCmd)
}

var RenderCmd = &cobra.Command{
	Use:   "render [report file]",
	Short: "render a JSON or YAML report",
	Args:  cobra.ExactArgs(1),

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,
	RunE:         render,
}

func render(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	report, err := timetree.ParseReport(data)
	if err != nil {
		return err
	}

	log.Debugf("loaded report %s, %.6f seconds", args[0], report.Sum)

	return timetree.WriteReport(os.Stdout, report, config.Format, config.Color)
}
