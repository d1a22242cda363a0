package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"avaspec-data-service/internal/cache"
	"avaspec-data-service/internal/config"
)

// ErrUnknownLocation is returned when a request names a location that is
// not in the configured location details.
var ErrUnknownLocation = fmt.Errorf("unknown location")

// Source resolves (location, filename) pairs to file contents. The decoder
// works on whole in-memory buffers, so Source loads rather than streams.
type Source struct {
	Cfg    *config.Config
	Cache  *cache.Cache
	Logger *zap.Logger
}

func (s *Source) location(name string) (config.Location, bool) {
	for i := range s.Cfg.LocationDetails {
		if s.Cfg.LocationDetails[i].LocationName == name {
			return s.Cfg.LocationDetails[i], true
		}
	}
	return config.Location{}, false
}

// ReadFile loads the named file from a configured location.
func (s *Source) ReadFile(ctx context.Context, locationName, fileName string) ([]byte, error) {
	loc, ok := s.location(locationName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, locationName)
	}
	switch loc.LocationType {
	case "localFile":
		fullFilepath := filepath.Join(loc.Path, fileName)
		s.Logger.Info(
			"Reading local file",
			zap.String("location_name", locationName),
			zap.String("path", fullFilepath),
		)
		return os.ReadFile(fullFilepath)
	case "minio":
		return s.readMinio(ctx, loc, fileName)
	default:
		s.Logger.Error(
			"Unsupported location type",
			zap.String("location_type", loc.LocationType),
		)
		return nil, fmt.Errorf("unsupported location type %q", loc.LocationType)
	}
}

// ListDir lists a directory within a local location. MinIO locations are
// served per object only.
func (s *Source) ListDir(locationName, dirName string) ([]os.DirEntry, error) {
	loc, ok := s.location(locationName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, locationName)
	}
	if loc.LocationType != "localFile" {
		return nil, fmt.Errorf("listing is only supported for local locations")
	}
	return os.ReadDir(filepath.Join(loc.Path, dirName))
}

func (s *Source) readMinio(ctx context.Context, loc config.Location, fileName string) ([]byte, error) {
	fullFilepath := filepath.Join(loc.Path, fileName)
	cacheFileName := cache.PathToCacheFileName(filepath.Join(loc.MinioBucket, fullFilepath))

	if s.Cache != nil {
		if data, err := s.Cache.GetData(cacheFileName, "miniocache/"); err == nil {
			return data, nil
		}
		s.Logger.Info("MinIO object not in local cache, fetching", zap.String("object", fullFilepath))
	}

	client, err := minio.New(loc.Location, &minio.Options{
		Creds:  credentials.NewStaticV4(loc.MinioAccessKey, loc.MinioSecretKey, ""),
		Secure: loc.MinioUseSSL,
	})
	if err != nil {
		s.Logger.Error("Error establishing connection to MinIO", zap.Error(err))
		return nil, err
	}

	object, err := client.GetObject(ctx, loc.MinioBucket, fullFilepath, minio.GetObjectOptions{})
	if err != nil {
		s.Logger.Error("Error fetching object from MinIO", zap.Error(err))
		return nil, err
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		s.Logger.Error("Error reading object from MinIO", zap.Error(err))
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.PutItem(cacheFileName, "miniocache/", data); err != nil {
			s.Logger.Error("Error staging MinIO object in cache", zap.Error(err))
		}
	}
	return data, nil
}
