package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/c9s/timetree"
)

var log = logrus.WithField("application", "timetree")

var config *timetree.Config

var RootCmd = &cobra.Command{
	Use:   "timetree",
	Short: "call-tree timer",
	Long:  "timetree measures nested regions of a program and reports each region's share of its parent and of the total time",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: loadConfig,
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "timetree.yaml", "config file")
	RootCmd.PersistentFlags().StringP("format", "f", timetree.FormatText, "report format: text, json, yaml or table")
	RootCmd.PersistentFlags().Bool("color", false, "highlight large shares in the table format")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	configFile := viper.GetString("config")
	if _, err := os.Stat(configFile); err != nil {
		if !os.IsNotExist(err) {
			return err
		}

		log.Debugf("config file %s does not exist, using defaults", configFile)
		config = timetree.DefaultConfig()
	} else {
		c, err := timetree.LoadConfig(configFile)
		if err != nil {
			return err
		}

		config = c
	}

	// flags given on the command line win over the config file
	if cmd.Flags().Changed("format") {
		config.Format = viper.GetString("format")
	}

	if cmd.Flags().Changed("color") {
		config.Color = viper.GetBool("color")
	}

	return config.Validate()
}

func main() {
	viper.SetEnvPrefix("TIMETREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	logrus.SetFormatter(&prefixed.TextFormatter{})

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
