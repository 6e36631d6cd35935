package influxdb

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/params"
)

var ErrNotConfigured = errors.New("influxdb not configured")

// Configured reports whether INFLUXDB_URL and INFLUXDB_BUCKET are set.
func Configured() bool {
	return params.INFLUXDB_URL != "" && params.INFLUXDB_BUCKET != ""
}

// ExportCounts posts a snapshot of the metrics counters to an InfluxDB Write API.
// The last error encountered is returned.
func ExportCounts(host string) error {
	if !Configured() {
		return ErrNotConfigured
	}
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// Errors returns a channel for reading errors which occurs during async writes.
	// Must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	p := influxdb2.NewPointWithMeasurement("geomap").
		SetTime(time.Now()).
		AddTag("host", host)
	for name, count := range metrics.Counts() {
		p.AddField(name, count)
	}
	writeAPI.WritePoint(p)
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}

// Run exports counts every interval until ctx is done.
func Run(ctx context.Context, host string, interval time.Duration) {
	logger := slog.With("d", "influxdb")
	if !Configured() {
		logger.Debug("InfluxDB not configured, not exporting metrics")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ExportCounts(host); err != nil {
				logger.Warn("Failed to export metrics", "error", err)
			}
		}
	}
}
