package params

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	LayersDir        = "layers"
	LayerDBName      = "layers.db"
	LayerGZExtension = ".geojson.gz"
)

var LayerBucket = []byte("layers")

// DefaultDatadirRoot is ~/.geomap, or a dir under os.TempDir if there is no home.
var DefaultDatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(os.TempDir(), "geomap")
	}
	return filepath.Join(home, ".geomap")
}()

// ExpandDatadir expands a leading ~ and cleans the path.
func ExpandDatadir(dir string) (string, error) {
	if dir == "" {
		return DefaultDatadirRoot, nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

var DefaultGZipCompressionLevel = gzip.BestCompression

// AWS_BUCKETNAME is where exported layers are uploaded, if set.
// The rest of the AWS configuration comes from the usual AWS_* environment.
var AWS_BUCKETNAME = os.Getenv("AWS_BUCKETNAME")

var (
	CacheLocateTTL     = 24 * time.Hour
	CacheLastStoredTTL = 10 * time.Minute
	CacheRecentLayers  = 256
	CacheLocatePoints  = 10_000
)
