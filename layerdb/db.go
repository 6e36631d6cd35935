package layerdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/params"
	bbolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("layer not found")

// DB stores rendered layer collections by id.
// Recently used layers are also kept decoded in memory.
type DB struct {
	db     *bbolt.DB
	logger *slog.Logger

	mu     sync.Mutex
	recent *lru.Cache
}

// Open opens (or creates) the layer database under dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(dir, params.LayerDBName), 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(params.LayerBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{
		db:     db,
		logger: slog.With("d", "layerdb"),
		recent: lru.New(params.CacheRecentLayers),
	}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Key returns a stable id for any hashable value, eg. the request a layer was made from.
func Key(v any) (string, error) {
	hash, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}

// Put stores fc under id, replacing any existing layer.
func (d *DB) Put(id string, fc *geojson.FeatureCollection) ([]byte, error) {
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, err
	}
	err = d.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(params.LayerBucket).Put([]byte(id), b)
	})
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.recent.Add(id, fc)
	d.mu.Unlock()

	metrics.LayersStored.Inc(1)
	metrics.LayerBytesStored.Inc(int64(len(b)))
	d.logger.Info("Stored layer", "id", id, "features", len(fc.Features), "size", humanize.Bytes(uint64(len(b))))
	return b, nil
}

// Get returns the layer stored under id, or ErrNotFound.
func (d *DB) Get(id string) (*geojson.FeatureCollection, error) {
	d.mu.Lock()
	if v, ok := d.recent.Get(id); ok {
		d.mu.Unlock()
		return v.(*geojson.FeatureCollection), nil
	}
	d.mu.Unlock()

	var b []byte
	err := d.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(params.LayerBucket).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		b = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.recent.Add(id, fc)
	d.mu.Unlock()
	return fc, nil
}

// IDs returns all stored layer ids in key order.
func (d *DB) IDs() ([]string, error) {
	var ids []string
	err := d.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(params.LayerBucket).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}
