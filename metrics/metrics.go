package metrics

import (
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
)

// Registry holds all geomap counters.
var Registry = metrics.NewRegistry()

var (
	ResolutionsResolved metrics.Counter
	VectorSplits        metrics.Counter
	MaskedCells         metrics.Counter
	GlyphsRecorded      metrics.Counter
	FeaturesRecorded    metrics.Counter
	LayersStored        metrics.Counter
	LayerBytesStored    metrics.Counter
	LocateRequests      metrics.Counter
	LocateCacheHits     metrics.Counter
)

func init() {
	// Won't work without this global setting,
	// and it must be set before the counters are constructed.
	metrics.Enabled = true

	ResolutionsResolved = register("resolution/resolved")
	VectorSplits = register("hemisphere/splits")
	MaskedCells = register("hemisphere/masked")
	GlyphsRecorded = register("layers/glyphs")
	FeaturesRecorded = register("layers/features")
	LayersStored = register("layerdb/stored")
	LayerBytesStored = register("layerdb/bytes")
	LocateRequests = register("rgeo/locate")
	LocateCacheHits = register("rgeo/locate/hits")
}

func register(name string) metrics.Counter {
	c := metrics.NewCounter()
	if err := Registry.Register(name, c); err != nil {
		panic(err)
	}
	return c
}

// Counts returns a snapshot of all registered counters by name.
func Counts() map[string]int64 {
	out := map[string]int64{}
	Registry.Each(func(name string, i interface{}) {
		if c, ok := i.(metrics.Counter); ok {
			out[name] = c.Snapshot().Count()
		}
	})
	return out
}

// Log writes the current counts at info level.
func Log(logger *slog.Logger) {
	counts := Counts()
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	args := make([]any, 0, 2*len(names))
	for _, n := range names {
		if n == "layerdb/bytes" {
			args = append(args, n, humanize.Bytes(uint64(counts[n])))
			continue
		}
		args = append(args, n, humanize.Comma(counts[n]))
	}
	logger.Info("Metrics", args...)
}
