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
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/layerdb"
	"github.com/rotblauer/geomap/layers"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/s2"
	"github.com/rotblauer/geomap/types"
	"github.com/spf13/cobra"
)

var (
	optBarbsBoundaries []string
	optBarbsRes        string
	optBarbsOut        string
	optBarbsStore      bool
	optBarbsS3         bool
	optBarbsThinLevel  int
)

// barbsCmd represents the barbs command
var barbsCmd = &cobra.Command{
	Use:   "barbs [field.json]",
	Short: "Render a u/v vector field as hemisphere-split wind barbs",
	Long: `Barbs reads a vector field from a file (or stdin) and writes the barbs layer as GeoJSON.

The field is JSON like:

  {"lon": [0, 10], "lat": [-45, 45], "u": [[1, 2], [3, 4]], "v": [[5, 6], [7, 8]]}

Northern hemisphere barbs are drawn as-is, southern barbs are flipped.
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := common.InterruptContext(context.Background())
		defer cancel()

		var in io.Reader = os.Stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			in = f
		}
		body, err := io.ReadAll(in)
		if err != nil {
			log.Fatalln(err)
		}
		vf, err := types.DecodeVectorField(body)
		if err != nil {
			log.Fatalln(err)
		}

		var boundaries []feature.Kind
		for _, name := range optBarbsBoundaries {
			k, err := feature.ParseKind(strings.TrimSpace(name))
			if err != nil {
				log.Fatalln(err)
			}
			boundaries = append(boundaries, k)
		}

		lc := params.DefaultLayerConfig()
		lc.ThinLevel = s2.CellLevel(optBarbsThinLevel)
		req := layers.BarbsRequest{Resolution: optBarbsRes, Boundaries: boundaries}
		rec, err := layers.RenderBarbs(params.InProcMapConfig, lc, vf, req)
		if err != nil {
			log.Fatalln(err)
		}
		fc := rec.Collection()

		b, err := json.Marshal(fc)
		if err != nil {
			log.Fatalln(err)
		}
		switch {
		case optBarbsOut == "" || optBarbsOut == "-":
			if _, err := cmd.OutOrStdout().Write(append(b, '\n')); err != nil {
				log.Fatalln(err)
			}
		case strings.HasSuffix(optBarbsOut, ".gz"):
			if err := layerdb.WriteGZ(optBarbsOut, b, nil); err != nil {
				log.Fatalln(err)
			}
		default:
			if err := os.WriteFile(optBarbsOut, b, 0660); err != nil {
				log.Fatalln(err)
			}
		}

		if optBarbsStore || optBarbsS3 {
			storeBarbs(ctx, body, req, fc)
		}
		metrics.Log(slog.Default())
	},
}

func storeBarbs(ctx context.Context, body []byte, req layers.BarbsRequest, fc *geojson.FeatureCollection) {
	id, err := layerdb.Key(struct {
		Body string
		Req  layers.BarbsRequest
		Map  params.MapConfig
	}{string(body), req, *params.InProcMapConfig})
	if err != nil {
		log.Fatalln(err)
	}
	dir := datadir()
	db, err := layerdb.Open(dir)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	fc.ExtraMembers["id"] = id
	b, err := db.Put(id, fc)
	if err != nil {
		log.Fatalln(err)
	}
	path := layerdb.LayerPath(dir, id)
	if err := layerdb.WriteGZ(path, b, nil); err != nil {
		log.Fatalln(err)
	}
	slog.Info("Stored layer", "id", id, "path", path)

	if optBarbsS3 {
		gz, err := os.ReadFile(path)
		if err != nil {
			log.Fatalln(err)
		}
		if err := layerdb.UploadS3(ctx, params.AWS_BUCKETNAME, layerdb.S3Key(id), gz); err != nil {
			log.Fatalln(err)
		}
	}
}

func init() {
	rootCmd.AddCommand(barbsCmd)

	flags := barbsCmd.Flags()
	flags.StringSliceVar(&optBarbsBoundaries, "boundaries", nil, "Boundaries to draw under the barbs, eg. coastline,states")
	flags.StringVar(&optBarbsRes, "res", "", "Resolution for --boundaries (default --resolution)")
	flags.StringVarP(&optBarbsOut, "out", "o", "", "Output file; .gz is gzipped (default stdout)")
	flags.BoolVar(&optBarbsStore, "store", false, "Store the layer in the datadir")
	flags.BoolVar(&optBarbsS3, "s3", false, "Store the layer and upload it to AWS_BUCKETNAME")
	flags.IntVar(&optBarbsThinLevel, "thin", 0, "Keep one barb per S2 cell at this level (0 disables)")
}
