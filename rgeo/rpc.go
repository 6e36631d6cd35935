package rgeo

import (
	"errors"
	"net/rpc"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/params"
	srgeo "github.com/sams96/rgeo"
)

// Pt is [X,Y]::[Lng,Lat].
type Pt [2]float64

type GetLocationRequest Pt

type GetLocationResponse struct {
	Location srgeo.Location
	Error    string
}

type GetGeometryRequest struct {
	Pt
	Dataset string
}

// GetGeometryResponse carries the geometry as GeoJSON,
// since gob cannot encode the orb.Geometry interface.
type GetGeometryResponse struct {
	Geometry []byte
	Error    string
}

type RPCReverseGeocoderClient struct {
	config *params.RgeoDaemonConfig
	client *rpc.Client
}

func NewRPCReverseGeocoderClient(config *params.RgeoDaemonConfig) (*RPCReverseGeocoderClient, error) {
	if config == nil {
		config = params.InProcRgeoDaemonConfig
	}
	client, err := common.DialRPC(config.Network, config.Address)
	if err != nil {
		return nil, err
	}
	return &RPCReverseGeocoderClient{config: config, client: client}, nil
}

func (c *RPCReverseGeocoderClient) method(name string) string {
	return c.config.ServiceName + "." + name
}

func (c *RPCReverseGeocoderClient) GetLocation(pt orb.Point) (srgeo.Location, error) {
	res := &GetLocationResponse{}
	err := c.client.Call(c.method("GetLocation"), &GetLocationRequest{pt.Lon(), pt.Lat()}, res)
	if err != nil {
		return srgeo.Location{}, err
	}
	if res.Error != "" {
		return res.Location, errors.New(res.Error)
	}
	return res.Location, nil
}

func (c *RPCReverseGeocoderClient) GetGeometry(pt orb.Point, dataset string) (orb.Geometry, error) {
	res := &GetGeometryResponse{}
	err := c.client.Call(c.method("GetGeometry"), &GetGeometryRequest{Pt(pt), dataset}, res)
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, errors.New(res.Error)
	}
	g, err := geojson.UnmarshalGeometry(res.Geometry)
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}

func (c *RPCReverseGeocoderClient) Close() error {
	return c.client.Close()
}

// EncodeGeometry is the server side of GetGeometryResponse.Geometry.
func EncodeGeometry(g orb.Geometry) ([]byte, error) {
	return geojson.NewGeometry(g).MarshalJSON()
}
