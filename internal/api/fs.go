package api

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"avaspec-data-service/internal/avaspec"
)

// GetFileLocations lists the configured data locations.
func (a *API) GetFileLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Cfg.LocationDetails)
}

type dirEntry struct {
	Name   string `json:"name"`
	IsDir  bool   `json:"is_dir"`
	Format string `json:"format,omitempty"`
}

// GetFileOrDirectory serves a directory listing, or the raw file bytes
// when the path names a file.
func (a *API) GetFileOrDirectory(c echo.Context) error {
	filePath := c.Param("*")
	locationName := c.Param("location")

	entries, err := a.Source.ListDir(locationName, filePath)
	if err == nil {
		out := make([]dirEntry, 0, len(entries))
		for _, entry := range entries {
			e := dirEntry{Name: entry.Name(), IsDir: entry.IsDir()}
			if !entry.IsDir() {
				if f := avaspec.FormatFromExtension(entry.Name()); f != avaspec.FormatUnknown {
					e.Format = f.String()
				}
			}
			out = append(out, e)
		}
		return c.JSON(http.StatusOK, out)
	}

	data, err := a.Source.ReadFile(c.Request().Context(), locationName, filePath)
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, mimeForExtension(filePath), data)
}

func mimeForExtension(name string) string {
	if avaspec.FormatFromExtension(name) != avaspec.FormatUnknown {
		return "application/octet-stream"
	}
	if ext := filepath.Ext(name); ext == ".json" {
		return echo.MIMEApplicationJSON
	}
	return "application/octet-stream"
}
