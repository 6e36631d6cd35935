/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string
var optVerbosity string
var optDatadir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "geomap",
	Short: "Map layers with hemisphere-aware wind barbs",
	Long: `Geomap resolves boundary resolutions, splits vector fields by hemisphere,
and records map layers as GeoJSON.

Flags may also be set in a config file (default $HOME/.geomap.yaml)
or in the environment, eg. GEOMAP_RESOLUTION=h.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.geomap.yaml)")
	pFlags.StringVar(&optVerbosity, "verbosity", "info", "Log level: debug, info, warn, error, or a number")
	pFlags.StringVar(&optDatadir, "datadir", params.DefaultDatadirRoot, "Data directory for stored layers")

	// Map flags write to the shared inproc map configuration.
	mc := params.InProcMapConfig
	pFlags.StringVar(&mc.Projection, "projection", mc.Projection, "Map projection: PlateCarree or Mercator")
	pFlags.StringVar(&mc.DataTransform, "transform", mc.DataTransform, "Projection the data coordinates are given in")
	pFlags.StringVar(&mc.Resolution, "resolution", mc.Resolution, "Boundary resolution: l, m, h, or a scale like 50m")
	pFlags.StringVar(&mc.CountiesResolution, "counties-resolution", mc.CountiesResolution, "County border resolution: l, m, h, or a scale like 20m")
	pFlags.BoolVar(&mc.StrictResolution, "strict-resolution", mc.StrictResolution, "Reject unrecognized resolution tokens")
}

// applyConfig fills any flag not given on the command line
// from the environment (GEOMAP_*) or the config file.
func applyConfig(cmd *cobra.Command) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".geomap")
	}
	v.SetEnvPrefix("GEOMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprint(v.Get(f.Name))); err != nil && setErr == nil {
			setErr = fmt.Errorf("%s: %w", f.Name, err)
		}
	})
	return setErr
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	level, err := common.ParseSlogLevel(optVerbosity)
	if err != nil {
		log.Fatalln("Invalid verbosity:", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("Command", "cmd", cmd.CommandPath(), "args", args)
}

func datadir() string {
	dir, err := params.ExpandDatadir(optDatadir)
	if err != nil {
		log.Fatalln(err)
	}
	return dir
}
