package rgeo

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/rotblauer/geomap/metrics"
	srgeo "github.com/sams96/rgeo"
)

// CachedLocator memoizes GetLocation by point.
type CachedLocator struct {
	ReverseGeocoder
	cache *lru.Cache[orb.Point, srgeo.Location]
}

func NewCachedLocator(rg ReverseGeocoder, size int) (*CachedLocator, error) {
	c, err := lru.New[orb.Point, srgeo.Location](size)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{ReverseGeocoder: rg, cache: c}, nil
}

func (c *CachedLocator) GetLocation(pt orb.Point) (srgeo.Location, error) {
	metrics.LocateRequests.Inc(1)
	if loc, ok := c.cache.Get(pt); ok {
		metrics.LocateCacheHits.Inc(1)
		return loc, nil
	}
	loc, err := c.ReverseGeocoder.GetLocation(pt)
	if err != nil {
		return loc, err
	}
	c.cache.Add(pt, loc)
	return loc, nil
}
