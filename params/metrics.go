package params

import (
	"os"
	"time"
)

var (
	INFLUXDB_URL    = os.Getenv("INFLUXDB_URL")
	INFLUXDB_TOKEN  = os.Getenv("INFLUXDB_TOKEN")
	INFLUXDB_ORG    = os.Getenv("INFLUXDB_ORG")
	INFLUXDB_BUCKET = os.Getenv("INFLUXDB_BUCKET")
)

// MetricsExportInterval is how often the metrics registry is pushed to InfluxDB.
var MetricsExportInterval = 30 * time.Second
