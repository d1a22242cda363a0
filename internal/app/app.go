package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/tkanos/gonfig"
	"go.uber.org/zap"

	"avaspec-data-service/internal/api"
	"avaspec-data-service/internal/cache"
	"avaspec-data-service/internal/config"
	"avaspec-data-service/internal/datasource"
)

func Run() {
	cfg := ParseCLI()

	logger, err := NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := ParseLocationsFile(cfg.LocationsFile, &cfg); err != nil {
		logger.Fatal("Error reading locations file", zap.String("file", cfg.LocationsFile), zap.Error(err))
	}

	var fileCache *cache.Cache
	if cfg.UseCache {
		fileCache = SetupCache(&cfg, logger)
	}

	source := &datasource.Source{Cfg: &cfg, Cache: fileCache, Logger: logger}
	asdsapi := api.NewAPI(&cfg, source, logger)

	e := SetupServer(asdsapi)

	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	go func() {
		if err := e.Start(address); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	// Wait for an interrupt, then give in-flight requests ten seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

func ParseCLI() config.Config {
	cfg := config.Config{}
	pflag.StringVarP(&cfg.Host, "host", "i", "0.0.0.0", "Host where the server will run")
	pflag.IntVarP(&cfg.Port, "port", "p", 5080, "Port where the server will run")
	pflag.BoolVarP(&cfg.Debug, "debug", "d", false, "Whether or not to enable debug logging")
	pflag.StringVarP(&cfg.LocationsFile, "locations", "c", "./asdsLocations.json", "Location of the data locations file")
	pflag.BoolVarP(&cfg.UseCache, "use-cache", "u", true, "Stage MinIO objects in a local cache. Can be disabled for certain cases like testing.")
	pflag.StringVarP(&cfg.CacheLocation, "cache-location", "C", "./asdscache/", "Where the cache will be stored")
	pflag.IntVarP(&cfg.CachePollingInterval, "cache-polling-interval", "P", 60, "How often to check the cache (in seconds)")
	pflag.Int64VarP(&cfg.CacheMaxBytes, "cache-max-bytes", "m", 100000000, "How large to allow the cache to be")
	pflag.IntVarP(&cfg.MaxPreviewPoints, "max-preview-points", "z", 4096, "Upper bound on thinned preview sizes")
	pflag.Parse()

	return cfg
}

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ParseLocationsFile fills in LocationDetails from the JSON locations
// file.
func ParseLocationsFile(path string, cfg *config.Config) error {
	fileCfg := config.Config{}
	if err := gonfig.GetConf(path, &fileCfg); err != nil {
		return err
	}
	cfg.LocationDetails = fileCfg.LocationDetails
	return nil
}

func SetupServer(a *api.API) *echo.Echo {
	e := echo.New()

	e.Debug = a.Cfg.Debug

	// Setup Middleware
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// File-browsing routes
	e.GET("/asds/fs", a.GetFileLocations)
	e.GET("/asds/fs/:location/*", a.GetFileOrDirectory)
	e.GET("/asds/hdr/:location/*", a.GetFileHeader)

	// Spectrum routes
	e.GET("/asds/spectra/:location/*", a.GetSpectra)
	e.GET("/asds/frame/:frame/:location/*", a.GetFrame)
	e.GET(
		"/asds/heatmap/:outxsize/:outysize/:transform/:colormap/:location/*",
		a.GetFrameHeatmap,
	)

	// Add Prometheus as middleware for metrics gathering
	p := prometheus.NewPrometheus("avaspec_data_service", nil)
	p.Use(e)

	return e
}

// SetupCache creates the cache directories and kicks off the size
// checking goroutine.
func SetupCache(cfg *config.Config, logger *zap.Logger) *cache.Cache {
	fileCache := &cache.Cache{Location: cfg.CacheLocation, Logger: logger}

	miniocache := filepath.Join(cfg.CacheLocation, "miniocache/")
	if err := os.MkdirAll(miniocache, 0755); err != nil {
		logger.Error("Error creating cache directory", zap.String("path", miniocache), zap.Error(err))
		return fileCache
	}
	go fileCache.Check(miniocache, cfg.CachePollingInterval, cfg.CacheMaxBytes)

	return fileCache
}
