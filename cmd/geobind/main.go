package main

import (
	"fmt"
	"io"
	"os"

	"github.com/airbusgeo/geobind"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var configFile string
var logLevel string
var logFormat string

func init() {
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml environment file")
	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCommand.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCommand.AddCommand(infoCommand, histogramCommand, colortableCommand, gridCommand, featuresCommand)
}

func main() {
	err := rootCommand.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCommand = &cobra.Command{
	Use:           "geobind",
	Short:         "inspect and produce geospatial datasets with gdal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(configFile, logLevel, logFormat)
		if err != nil {
			return err
		}
		if err := env.Apply(); err != nil {
			return err
		}
		geobind.RegisterAll()
		geobind.Logger().Debug("environment applied", "config", configFile, "gdal", geobind.Version().String())
		return nil
	},
}

// loadEnvironment reads the optional config file and lets non empty flags
// override its logging settings
func loadEnvironment(path, level, format string) (*geobind.Environment, error) {
	env := &geobind.Environment{}
	if path != "" {
		var err error
		if env, err = geobind.LoadEnvironment(path); err != nil {
			return nil, err
		}
	}
	if level != "" {
		env.LogLevel = level
	}
	if format != "" {
		env.LogFormat = format
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
