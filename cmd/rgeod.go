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
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/daemon/rgeod"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/metrics/influxdb"
	"github.com/rotblauer/geomap/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rgeodCmd represents the rgeod command
var rgeodCmd = &cobra.Command{
	Use:   "rgeod",
	Short: "Run reverse geocode RPC daemon",
	Long: `RGeoD is the reverse-geocoder daemon.

It loads the country, province, and US county boundary datasets,
and then looks places up for webd and friends.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := common.InterruptContext(context.Background())
		defer cancel()

		d, err := rgeod.NewDaemon(params.InProcRgeoDaemonConfig)
		if err != nil {
			log.Fatalln(err)
		}
		host, _ := os.Hostname()
		go influxdb.Run(ctx, host, params.MetricsExportInterval)

		if err := d.Start(ctx); err != nil {
			log.Fatalln(err)
		}
		metrics.Log(slog.Default())
	},
}

var rgeodListenerFlags = pflag.NewFlagSet("rgeod.listen", pflag.ContinueOnError)

func init() {
	rootCmd.AddCommand(rgeodCmd)

	// This flagset is shared with other commands,
	// and writes to the same configuration structures.
	rgeodListenerFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", rgeodCmd.CommandPath())
	}
	rgeodListenerFlags.StringVar(&params.InProcRgeoDaemonConfig.Network,
		"rgeod.listen.network", params.InProcRgeoDaemonConfig.Network,
		`Network to listen on
This flag configures a public inproc configuration structure instance.`)

	rgeodListenerFlags.StringVar(&params.InProcRgeoDaemonConfig.Address,
		"rgeod.listen.address", params.InProcRgeoDaemonConfig.Address,
		`Address to listen on
This flag configures a public inproc configuration structure instance.`)

	rgeodListenerFlags.StringVar(&params.InProcRgeoDaemonConfig.ServiceName,
		"rgeod.serviceName", params.InProcRgeoDaemonConfig.ServiceName,
		`RPC service name
This is used as MyServiceName.MethodName in RPC calls.
This flag configures a public inproc configuration structure instance.`)

	rgeodCmd.Flags().AddFlagSet(rgeodListenerFlags)

	// webd dials rgeod for /locate.
	webdCmd.Flags().AddFlagSet(rgeodListenerFlags)
}
