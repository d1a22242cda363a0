package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"avaspec-data-service/internal/avaspec"
	"avaspec-data-service/internal/numerical"
)

type channelHeader struct {
	SerialNumber    string    `json:"serial_number"`
	FriendlyName    string    `json:"friendly_name,omitempty"`
	Index           int       `json:"index"`
	Mode            string    `json:"mode"`
	Pixels          int       `json:"pixels"`
	IntegrationTime float64   `json:"integration_time_ms"`
	Averages        int       `json:"averages"`
	Timestamp       time.Time `json:"timestamp,omitempty"`
	Coefficients    []float64 `json:"coefficients"`
	HasDark         bool      `json:"has_dark"`
	HasReference    bool      `json:"has_reference"`
}

type fileHeader struct {
	Format   string          `json:"format"`
	Version  string          `json:"version"`
	Channels []channelHeader `json:"channels,omitempty"`
	Frames   int             `json:"frames,omitempty"`
}

func makeChannelHeader(id avaspec.Identity, m avaspec.Measurement, cal avaspec.Calibration, pixels int, hasDark, hasRef bool) channelHeader {
	return channelHeader{
		SerialNumber:    id.SerialNumber,
		FriendlyName:    id.FriendlyName,
		Index:           id.Index,
		Mode:            m.Mode.String(),
		Pixels:          pixels,
		IntegrationTime: m.IntegrationTime,
		Averages:        m.Averages,
		Timestamp:       m.Timestamp,
		Coefficients:    cal.Coefficients,
		HasDark:         hasDark,
		HasReference:    hasRef,
	}
}

// GetFileHeader returns decoded metadata without any payload arrays.
func (a *API) GetFileHeader(c echo.Context) error {
	file, err := a.loadFile(c)
	if err != nil {
		return err
	}
	switch f := file.(type) {
	case *avaspec.MultichannelFile:
		hdr := fileHeader{Format: f.Format().String(), Version: f.Version}
		for _, ch := range f.Channels() {
			hdr.Channels = append(hdr.Channels, makeChannelHeader(
				ch.Identity, ch.Measurement, ch.Calibration, ch.Pixels(),
				ch.Dark != nil, ch.Reference != nil))
		}
		return c.JSON(http.StatusOK, hdr)
	case *avaspec.MultiframeFile:
		hdr := fileHeader{
			Format:  f.Format().String(),
			Version: f.Version,
			Frames:  f.Len(),
			Channels: []channelHeader{makeChannelHeader(
				f.Identity, f.Measurement, f.Calibration, f.Pixels(),
				f.Dark != nil, f.Reference != nil)},
		}
		return c.JSON(http.StatusOK, hdr)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "unhandled container type")
	}
}

type channelSpectrum struct {
	channelHeader
	Wavelength []float64 `json:"wavelength"`
	Scope      []float64 `json:"scope"`
	Dark       []float64 `json:"dark,omitempty"`
	Reference  []float64 `json:"reference,omitempty"`
	Signal     []float64 `json:"signal"`
}

type multiframeSummary struct {
	channelHeader
	Wavelength []float64 `json:"wavelength"`
	Delays     []float64 `json:"delays_ms"`
	Frames     int       `json:"frames"`
}

// GetSpectra returns the decoded arrays. For multichannel files that is
// every channel's wavelength/scope/signal; for store-to-RAM files the
// shared axis and delay sequence (individual frames come from GetFrame).
// An outxsize query parameter thins the arrays for preview plotting.
func (a *API) GetSpectra(c echo.Context) error {
	file, err := a.loadFile(c)
	if err != nil {
		return err
	}

	outxsize, transform, err := a.previewParams(c)
	if err != nil {
		return err
	}

	switch f := file.(type) {
	case *avaspec.MultichannelFile:
		out := make([]channelSpectrum, 0, f.Len())
		for _, ch := range f.Channels() {
			out = append(out, channelSpectrum{
				channelHeader: makeChannelHeader(
					ch.Identity, ch.Measurement, ch.Calibration, ch.Pixels(),
					ch.Dark != nil, ch.Reference != nil),
				Wavelength: thin(ch.Wavelength, outxsize, "first"),
				Scope:      thin(ch.Scope, outxsize, transform),
				Dark:       thin(ch.Dark, outxsize, transform),
				Reference:  thin(ch.Reference, outxsize, transform),
				Signal:     thin(ch.Signal(), outxsize, transform),
			})
		}
		return c.JSON(http.StatusOK, out)
	case *avaspec.MultiframeFile:
		return c.JSON(http.StatusOK, multiframeSummary{
			channelHeader: makeChannelHeader(
				f.Identity, f.Measurement, f.Calibration, f.Pixels(),
				f.Dark != nil, f.Reference != nil),
			Wavelength: thin(f.Wavelength, outxsize, "first"),
			Delays:     f.Delays(),
			Frames:     f.Len(),
		})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "unhandled container type")
	}
}

type frameResponse struct {
	Frame      int       `json:"frame"`
	DelayMs    float64   `json:"delay_ms"`
	Wavelength []float64 `json:"wavelength"`
	Signal     []float64 `json:"signal"`
}

// GetFrame returns one frame of a store-to-RAM file, dark-corrected when
// the file carries a dark array.
func (a *API) GetFrame(c echo.Context) error {
	file, err := a.loadFile(c)
	if err != nil {
		return err
	}
	f, ok := file.(*avaspec.MultiframeFile)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "not a store-to-RAM file")
	}

	frame, err := strconv.Atoi(c.Param("frame"))
	if err != nil || frame < 0 || frame >= f.Len() {
		return echo.NewHTTPError(http.StatusBadRequest, "frame index out of range")
	}

	outxsize, transform, err := a.previewParams(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, frameResponse{
		Frame:      frame,
		DelayMs:    f.Delay(frame),
		Wavelength: thin(f.Wavelength, outxsize, "first"),
		Signal:     thin(f.Signal(frame), outxsize, transform),
	})
}

// previewParams reads the optional outxsize/transform query parameters.
// outxsize of zero means full resolution.
func (a *API) previewParams(c echo.Context) (int, string, error) {
	transform := c.QueryParam("transform")
	if transform == "" {
		transform = "mean"
	}
	raw := c.QueryParam("outxsize")
	if raw == "" {
		return 0, transform, nil
	}
	outxsize, err := strconv.Atoi(raw)
	if err != nil || outxsize <= 0 {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "invalid outxsize")
	}
	if max := a.Cfg.MaxPreviewPoints; max > 0 && outxsize > max {
		outxsize = max
	}
	return outxsize, transform, nil
}

func thin(data []float64, outxsize int, transform string) []float64 {
	if data == nil || outxsize == 0 || len(data) <= outxsize {
		return data
	}
	out := make([]float64, outxsize)
	numerical.DownSampleLineInX(data, outxsize, transform, out, 0)
	return out
}
