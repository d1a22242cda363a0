package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"avaspec-data-service/internal/avaspec"
	"avaspec-data-service/internal/config"
	"avaspec-data-service/internal/datasource"
)

type API struct {
	Cfg    *config.Config
	Source *datasource.Source
	Logger *zap.Logger
}

func NewAPI(cfg *config.Config, source *datasource.Source, logger *zap.Logger) *API {
	return &API{
		Cfg:    cfg,
		Source: source,
		Logger: logger,
	}
}

// loadFile fetches a file's bytes and decodes it, surfacing an
// extension/tag mismatch as a logged warning since the in-file tag is
// authoritative.
func (a *API) loadFile(c echo.Context) (avaspec.File, error) {
	filePath := c.Param("*")
	locationName := c.Param("location")

	data, err := a.Source.ReadFile(c.Request().Context(), locationName, filePath)
	if err != nil {
		return nil, httpError(err)
	}

	hint := avaspec.FormatFromExtension(filePath)
	file, mismatch, err := avaspec.Decode(data, hint)
	if err != nil {
		return nil, httpError(err)
	}
	if mismatch {
		a.Logger.Warn(
			"File extension disagrees with in-file tag; trusting the tag",
			zap.String("file", filePath),
			zap.Stringer("extension_hint", hint),
			zap.Stringer("tag", file.Format()),
		)
	}
	return file, nil
}

// httpError maps datasource and decode failures onto HTTP statuses so a
// front end can tell "no such file" from "not an AvaSoft file" from "an
// AvaSoft file this service cannot read".
func httpError(err error) error {
	switch {
	case os.IsNotExist(err), errors.Is(err, datasource.ErrUnknownLocation):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, avaspec.ErrUnknownFormat):
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, avaspec.ErrUnsupportedVariant),
		errors.Is(err, avaspec.ErrMalformedHeader),
		errors.Is(err, avaspec.ErrTruncatedData):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
