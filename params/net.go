package params

// ListenerConfig is where a geomap daemon (webd or rgeod) accepts connections.
type ListenerConfig struct {
	// Network is the network to listen on.
	// The network must be "tcp", "tcp4", "tcp6", "unix" or "unixpacket".
	Network string
	// Address is the host:port, or socket path for unix networks.
	Address string
}
