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
	"fmt"
	"log"

	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/resolution"
	"github.com/spf13/cobra"
)

var optResolveCounties bool

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [token...]",
	Short: "Resolve resolution tokens to dataset scales",
	Long: `Resolve prints the concrete dataset scale for each resolution token.

Tokens containing a digit are scales already and print unchanged.
l and h are low and high; anything else is medium.

  geomap resolve l m h 50m
  geomap resolve --counties h
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		for _, token := range args {
			var scale string
			if params.InProcMapConfig.StrictResolution {
				var err error
				scale, err = resolution.ResolveStrict(token, optResolveCounties)
				if err != nil {
					log.Fatalln(err)
				}
			} else {
				scale = resolution.Resolve(token, optResolveCounties)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", token, scale)
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&optResolveCounties, "counties", false, "Resolve for US county borders")
}
