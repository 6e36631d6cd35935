package common

import (
	"errors"
	"log/slog"
	"net/rpc"
)

type RPCArgNone *int

var ErrUnsupportedNetwork = errors.New("unsupported network")

// DialRPC dials a raw RPC server on unix networks and an HTTP RPC server on tcp networks.
func DialRPC(network, address string) (*rpc.Client, error) {
	switch network {
	case "unix", "unixpacket":
		slog.Debug("Dialing RPC", "network", network, "address", address)
		return rpc.Dial(network, address)
	case "tcp", "tcp4", "tcp6":
		slog.Debug("Dialing HTTP RPC", "network", network, "address", address)
		return rpc.DialHTTP(network, address)
	}
	return nil, ErrUnsupportedNetwork
}
