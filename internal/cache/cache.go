package cache

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Cache is a flat-file staging area, mainly used to keep MinIO objects on
// local disk between requests.
type Cache struct {
	Location string
	Logger   *zap.Logger
}

// GetItem opens a previously staged file.
func (c *Cache) GetItem(cacheFileName string, subDir string) (*os.File, error) {
	return os.Open(filepath.Join(c.Location, subDir, cacheFileName))
}

// GetData reads a previously staged file into memory.
func (c *Cache) GetData(cacheFileName string, subDir string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.Location, subDir, cacheFileName))
}

// PutItem stages data under cacheFileName, creating the subdirectory as
// needed.
func (c *Cache) PutItem(cacheFileName string, subDir string, data []byte) error {
	fullPath := filepath.Join(c.Location, subDir, cacheFileName)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Check runs forever, sweeping the cache directory every checkInterval
// seconds and purging oldest-first once the total size exceeds maxBytes.
// Run it in its own goroutine.
func (c *Cache) Check(cachePath string, checkInterval int, maxBytes int64) {
	nextRun := time.Now()
	for {
		if nextRun.Before(time.Now()) {
			c.sweep(cachePath, maxBytes)
			nextRun = time.Now().Add(time.Duration(checkInterval) * time.Second)
		}
		time.Sleep(time.Second)
	}
}

func (c *Cache) sweep(cachePath string, maxBytes int64) {
	entries, err := os.ReadDir(cachePath)
	if err != nil {
		c.Logger.Error("Error reading cache directory", zap.String("path", cachePath), zap.Error(err))
		return
	}

	type cacheFile struct {
		name    string
		size    int64
		modTime time.Time
	}
	var files []cacheFile
	var totalBytes int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, cacheFile{entry.Name(), info.Size(), info.ModTime()})
		totalBytes += info.Size()
	}
	if totalBytes <= maxBytes {
		return
	}

	c.Logger.Info(
		"Cache over budget, purging oldest files",
		zap.String("path", cachePath),
		zap.Int64("total_bytes", totalBytes),
		zap.Int64("max_bytes", maxBytes),
	)
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, f := range files {
		if totalBytes <= maxBytes {
			break
		}
		if err := os.Remove(filepath.Join(cachePath, f.name)); err != nil {
			c.Logger.Error("Error removing cache file", zap.String("file", f.name), zap.Error(err))
			continue
		}
		totalBytes -= f.size
	}
}
