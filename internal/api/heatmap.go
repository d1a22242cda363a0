package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"avaspec-data-service/internal/avaspec"
	"avaspec-data-service/internal/render"
)

// GetFrameHeatmap renders a store-to-RAM series as RGBA bytes: frames
// along Y, wavelength pixels along X, intensity through the requested
// colormap. Front ends draw the bytes straight into a canvas.
func (a *API) GetFrameHeatmap(c echo.Context) error {
	file, err := a.loadFile(c)
	if err != nil {
		return err
	}
	f, ok := file.(*avaspec.MultiframeFile)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "not a store-to-RAM file")
	}

	outxsize, err := strconv.Atoi(c.Param("outxsize"))
	if err != nil || outxsize <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outxsize")
	}
	outysize, err := strconv.Atoi(c.Param("outysize"))
	if err != nil || outysize <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outysize")
	}
	transform := c.Param("transform")
	colorMap := c.Param("colormap")

	signals := make([][]float64, f.Len())
	for i := range signals {
		signals[i] = f.Signal(i)
	}
	rgba, err := render.Heatmap(signals, outxsize, outysize, transform, colorMap)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Blob(http.StatusOK, "application/octet-stream", rgba)
}
