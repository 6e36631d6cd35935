package webd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"github.com/rotblauer/geomap/layerdb"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/rgeo"
)

type WebDaemon struct {
	Config *params.WebDaemonConfig
	logger *slog.Logger

	started        time.Time
	db             *layerdb.DB
	melodyInstance *melody.Melody
	feedStored     event.FeedOf[storedLayer]
	lastStored     *ttlcache.Cache[string, storedLayer]
	locateCache    *ttlcache.Cache[string, []byte]

	// Locator returns the reverse geocoder used by /locate.
	// It defaults to rgeo.R, wrapped in an LRU.
	Locator  func() (rgeo.ReverseGeocoder, error)
	locator  rgeo.ReverseGeocoder
	locateMu sync.Mutex
}

func NewWebDaemon(config *params.WebDaemonConfig) (*WebDaemon, error) {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	if config.Map == nil {
		config.Map = params.DefaultMapConfig()
	}
	if config.Layers == nil {
		config.Layers = params.DefaultLayerConfig()
	}
	datadir, err := params.ExpandDatadir(config.DataDir)
	if err != nil {
		return nil, err
	}
	config.DataDir = datadir
	db, err := layerdb.Open(datadir)
	if err != nil {
		return nil, fmt.Errorf("open layer db: %w", err)
	}
	return &WebDaemon{
		Config:  config,
		logger:  slog.With("d", "web"),
		started: time.Now(),
		db:      db,
		lastStored: ttlcache.New[string, storedLayer](
			ttlcache.WithTTL[string, storedLayer](params.CacheLastStoredTTL)),
		locateCache: ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](params.CacheLocateTTL),
			ttlcache.WithCapacity[string, []byte](uint64(params.CacheLocatePoints))),
		Locator: defaultLocator,
	}, nil
}

func defaultLocator() (rgeo.ReverseGeocoder, error) {
	rg, err := rgeo.R()
	if err != nil {
		return nil, err
	}
	return rgeo.NewCachedLocator(rg, params.CacheLocatePoints)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *WebDaemon) Run(ctx context.Context) error {
	listener, err := net.Listen(s.Config.Network, s.Config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

func (s *WebDaemon) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go s.lastStored.Start()
	go s.locateCache.Start()

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web daemon", "network", s.Config.Network, "address", listener.Addr())
		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		s.stop()
		return err
	case <-ctx.Done():
	}
	s.logger.Info("Web daemon stopping", "reason", context.Cause(ctx))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	s.stop()
	<-errs // http.ErrServerClosed
	return err
}

func (s *WebDaemon) stop() {
	s.lastStored.Stop()
	s.locateCache.Stop()
	if s.melodyInstance != nil {
		_ = s.melodyInstance.Close()
	}
}

// Close closes the layer database.
func (s *WebDaemon) Close() error {
	return s.db.Close()
}

func (s *WebDaemon) NewRouter() *mux.Router {
	s.initMelody()

	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	router.Path("/socket").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = s.melodyInstance.HandleRequest(w, r)
	})

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	apiJSONRoutes.Use(contentTypeMiddlewareFunc("application/json"))

	apiJSONRoutes.Path("/status").HandlerFunc(s.statusReport).Methods(http.MethodGet)
	apiJSONRoutes.Path("/resolution").HandlerFunc(s.handleResolution).Methods(http.MethodGet)
	apiJSONRoutes.Path("/locate").HandlerFunc(s.handleLocate).Methods(http.MethodGet)
	apiJSONRoutes.Path("/layers").HandlerFunc(s.handleListLayers).Methods(http.MethodGet)

	geoJSONRoutes := apiRoutes.NewRoute().Subrouter()
	geoJSONRoutes.Use(contentTypeMiddlewareFunc("application/geo+json"))
	geoJSONRoutes.Path("/layers/{id}").HandlerFunc(s.handleGetLayer).Methods(http.MethodGet)

	authenticatedRoutes := geoJSONRoutes.NewRoute().Subrouter()
	authenticatedRoutes.Use(tokenAuthenticationMiddleware)
	authenticatedRoutes.Path("/barbs").HandlerFunc(s.handleBarbs).Methods(http.MethodPost)

	return router
}
