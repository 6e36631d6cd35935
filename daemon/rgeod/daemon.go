package rgeod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/rpc"
	"os"
	"strings"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/rgeo"
)

// RgeoDaemon serves the boundary locator over RPC.
// Loading every dataset takes a while, so it pays to do it once
// in a long-lived process and share it between commands.
type RgeoDaemon struct {
	config *params.RgeoDaemonConfig
	server *rpc.Server
	logger *slog.Logger
	ready  atomic.Bool

	// Init loads the datasets. Tests replace it.
	Init func() error
	// Locator answers requests once Init has run.
	Locator func() (rgeo.ReverseGeocoder, error)
}

func NewDaemon(config *params.RgeoDaemonConfig) (*RgeoDaemon, error) {
	logger := slog.With("d", "rgeo")
	if config == nil {
		logger.Warn("No config provided, using default")
		config = params.InProcRgeoDaemonConfig
	}
	if config.ServiceName == "" {
		return nil, errors.New("no service name configured")
	}
	return &RgeoDaemon{
		config:  config,
		logger:  logger,
		Init:    rgeo.Init,
		Locator: rgeo.R,
	}, nil
}

var ErrAlreadyRunning = errors.New("rgeo daemon already running")

// Start serves until ctx is canceled.
func (d *RgeoDaemon) Start(ctx context.Context) error {
	d.logger.Info("Rgeo daemon starting...",
		"network", d.config.Network, "address", d.config.Address)

	if strings.HasPrefix(d.config.Network, "unix") {
		if _, err := os.Stat(d.config.Address); err == nil {
			d.logger.Info("Found existing socket file, checking response", "address", d.config.Address)
			c, err := common.DialRPC(d.config.Network, d.config.Address)
			if err == nil {
				c.Close()
				d.logger.Warn("Socket file already in use, refusing to compete", "address", d.config.Address)
				return fmt.Errorf("%w: %s", ErrAlreadyRunning, d.config.Address)
			}
			d.logger.Warn("Removing existing socket file (non-responsive)", "address", d.config.Address)
			os.Remove(d.config.Address)
		}
		defer os.Remove(d.config.Address)
	}

	d.server = rpc.NewServer()
	if err := d.server.RegisterName(d.config.ServiceName, &ReverseGeocodeService{d}); err != nil {
		return err
	}
	listener, err := net.Listen(d.config.Network, d.config.Address)
	if err != nil {
		return err
	}
	defer listener.Close()

	// common.DialRPC speaks HTTP-tunneled RPC over tcp and raw RPC over unix sockets.
	switch d.config.Network {
	case "tcp", "tcp4", "tcp6":
		go http.Serve(listener, d.server)
	default:
		go d.server.Accept(listener)
	}

	d.logger.Info("Initializing rgeo datasets (this may take a while)... ")
	if err := d.Init(); err != nil && !errors.Is(err, rgeo.ErrAlreadyInitialized) {
		return fmt.Errorf("initialize rgeo datasets: %w", err)
	}
	d.ready.Store(true)
	d.logger.Info("Rgeo daemon and datasets ready")

	<-ctx.Done()
	d.ready.Store(false)
	d.logger.Info("Rgeo daemon interrupted", "reason", context.Cause(ctx))
	return nil
}

var ErrNotReady = errors.New("rgeo daemon not ready")

type ReverseGeocodeService struct {
	*RgeoDaemon
}

func (r *ReverseGeocodeService) locator() (rgeo.ReverseGeocoder, error) {
	if !r.ready.Load() {
		return nil, ErrNotReady
	}
	return r.Locator()
}

func (r *ReverseGeocodeService) Ping(common.RPCArgNone, common.RPCArgNone) error {
	if !r.ready.Load() {
		r.logger.Error("Ping")
		return ErrNotReady
	}
	r.logger.Debug("Ping")
	return nil
}

func (r *ReverseGeocodeService) GetLocation(req *rgeo.GetLocationRequest, res *rgeo.GetLocationResponse) error {
	if req == nil {
		return errors.New("request is nil")
	}
	defer func() {
		if res.Error != "" {
			r.logger.Warn("ReverseGeocode.GetLocation", "request", *req, "error", res.Error)
		} else {
			r.logger.Debug("ReverseGeocode.GetLocation", "request", *req, "response", res.Location)
		}
	}()
	rg, err := r.locator()
	if err != nil {
		return err
	}
	loc, err := rg.GetLocation(orb.Point{req[0], req[1]})
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	res.Location = loc
	return nil
}

func (r *ReverseGeocodeService) GetGeometry(req *rgeo.GetGeometryRequest, res *rgeo.GetGeometryResponse) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Dataset == "" {
		return errors.New("no dataset provided")
	}
	defer func() {
		if res.Error != "" {
			r.logger.Warn("ReverseGeocode.GetGeometry", "request", *req, "error", res.Error)
		} else {
			r.logger.Debug("ReverseGeocode.GetGeometry", "request", *req, "size", len(res.Geometry))
		}
	}()
	rg, err := r.locator()
	if err != nil {
		return err
	}
	geom, err := rg.GetGeometry(orb.Point(req.Pt), req.Dataset)
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	res.Geometry, err = rgeo.EncodeGeometry(geom)
	if err != nil {
		res.Error = err.Error()
	}
	return nil
}
