package params

type RgeoDaemonConfig struct {
	ListenerConfig
	ServiceName string
}

func DefaultRgeoDaemonConfig() *RgeoDaemonConfig {
	return &RgeoDaemonConfig{
		ListenerConfig: ListenerConfig{
			Network: "unix",
			Address: "/tmp/geomap-rgeo.sock",
		},
		ServiceName: "ReverseGeocode",
	}
}

// InProcRgeoDaemonConfig are configuration defaults.
// It's a configuration structure instance shared between these at least:
// - cmd/rgeod.go
// - daemon/rgeod/daemon.go
// - rgeo/rgeo.go
// This enables easy shared cli flag use for the various commands,
// like --rgeod.listen.network and --rgeod.listen.address.
var InProcRgeoDaemonConfig = DefaultRgeoDaemonConfig()
