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
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/daemon/webd"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/metrics/influxdb"
	"github.com/rotblauer/geomap/params"
	"github.com/spf13/cobra"
)

var webdConfig = params.DefaultWebDaemonConfig()

// webdCmd represents the webd command
var webdCmd = &cobra.Command{
	Use:   "webd",
	Short: "Start the webserver",
	Long: `Serves map layers over HTTP.

  GET  /resolution?res=h&counties=true
  POST /barbs?boundaries=coastline&res=l
  GET  /layers/{id}
  GET  /locate?lon=-110&lat=46&feature=states
  WS   /socket

Reverse geocoding uses a running rgeod, see --rgeod.listen.*.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := common.InterruptContext(context.Background())
		defer cancel()

		webdConfig.DataDir = datadir()
		webdConfig.Map = params.InProcMapConfig
		server, err := webd.NewWebDaemon(webdConfig)
		if err != nil {
			log.Fatalln(err)
		}
		defer server.Close()

		host, _ := os.Hostname()
		go influxdb.Run(ctx, host, params.MetricsExportInterval)

		if err := server.Run(ctx); err != nil {
			log.Fatalln(err)
		}
		metrics.Log(slog.Default())
	},
}

func init() {
	rootCmd.AddCommand(webdCmd)

	flags := webdCmd.Flags()
	flags.StringVar(&webdConfig.Network, "network", webdConfig.Network, "Network to listen on")
	flags.StringVar(&webdConfig.Address, "address", webdConfig.Address, "HTTP address to listen on")
	flags.BoolVar(&webdConfig.UploadS3, "s3", webdConfig.UploadS3, "Upload stored layers to AWS_BUCKETNAME")
	flags.Int32Var(&webdConfig.Layers.CoordinatePrecision, "precision", webdConfig.Layers.CoordinatePrecision, "Decimal places kept in output coordinates")
	flags.IntVar(&webdConfig.Layers.ContourLevels, "contour-levels", webdConfig.Layers.ContourLevels, "Contour levels derived from data when none are given")
}
