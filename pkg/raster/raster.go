// Package raster implements the output Cartesian grid, its projection
// interface, and gain/offset packing used by the composite generation
// engine.
package raster

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrZeroGain is returned by AddParameter when gain is zero; gain is never
// allowed to be zero since it is used as a packing divisor.
var ErrZeroGain = errors.New("raster: gain must not be zero")

// Area describes an output grid's geometry and the projection from pixel
// (x, y) to geodetic (lon, lat) radians. Production areas are supplied by
// the host application's projection library; SimpleArea below is an
// equirectangular implementation adequate for tests and the CLI demo.
type Area interface {
	XSize() int
	YSize() int
	XYToLonLat(x, y int) orb.Point
}

// SimpleArea is an equirectangular Area: each pixel maps linearly onto
// longitude/latitude between a lower-left corner and a pixel scale.
type SimpleArea struct {
	XSizePx, YSizePx int
	XScale, YScale   float64 // radians per pixel
	LLX, LLY         float64 // lower-left corner, radians
}

func (a *SimpleArea) XSize() int { return a.XSizePx }
func (a *SimpleArea) YSize() int { return a.YSizePx }

// XYToLonLat returns the pixel center's (lon, lat) in radians. Row 0 is the
// topmost row, matching the raster's row-major storage order.
func (a *SimpleArea) XYToLonLat(x, y int) orb.Point {
	lon := a.LLX + (float64(x)+0.5)*a.XScale
	lat := a.LLY + (float64(a.YSizePx-1-y)+0.5)*a.YScale
	return orb.Point{lon, lat}
}

// Band is a single parameter's output data, raw (packed) values plus the
// gain/offset used to unpack them. Nodata and undetect cells use the
// package-level NodataRaw and UndetectRaw codes.
type Band struct {
	Name         string
	Gain, Offset float64
	Data         []float64 // raw, row-major, len == xsize*ysize
}

// Raster is the output Cartesian grid produced by a single composite
// generation call. It is a plain struct; callers own it once returned.
type Raster struct {
	XSizePx, YSizePx int

	bands   map[string]*Band
	order   []string                    // insertion order, for deterministic iteration
	quality map[string]map[string]*Band // parameter name -> quality name -> band
}

// NewRaster returns an empty Raster sized xsize by ysize.
func NewRaster(xsize, ysize int) *Raster {
	return &Raster{
		XSizePx: xsize,
		YSizePx: ysize,
		bands:   make(map[string]*Band),
		quality: make(map[string]map[string]*Band),
	}
}

// AddParameter registers an output band. gain must not be zero.
func (r *Raster) AddParameter(name string, gain, offset float64) error {
	if gain == 0 {
		return fmt.Errorf("raster: parameter %q: %w", name, ErrZeroGain)
	}
	b := &Band{
		Name:   name,
		Gain:   gain,
		Offset: offset,
		Data:   make([]float64, r.XSizePx*r.YSizePx),
	}
	for i := range b.Data {
		b.Data[i] = float64(NodataRaw)
	}
	r.bands[name] = b
	r.order = append(r.order, name)
	return nil
}

// Parameter returns the named band, or nil if it was never added.
func (r *Raster) Parameter(name string) *Band { return r.bands[name] }

// Parameters returns the registered parameter names in the order they were
// added.
func (r *Raster) Parameters() []string { return r.order }

func (r *Raster) index(x, y int) int { return y*r.XSizePx + x }

// SetValue writes a raw (already packed) value at (x, y) in the named band.
func (r *Raster) SetValue(name string, x, y int, raw float64) {
	b, ok := r.bands[name]
	if !ok {
		return
	}
	if x < 0 || x >= r.XSizePx || y < 0 || y >= r.YSizePx {
		return
	}
	b.Data[r.index(x, y)] = raw
}

// SetNodata marks (x, y) as nodata in the named band.
func (r *Raster) SetNodata(name string, x, y int) {
	r.SetValue(name, x, y, float64(NodataRaw))
}

// AttachQuality registers a quality band's raw data alongside a value
// parameter, keyed by the quality field's how/task identifier.
func (r *Raster) AttachQuality(parameter, qualityName string, gain, offset float64) *Band {
	b := &Band{
		Name:   qualityName,
		Gain:   gain,
		Offset: offset,
		Data:   make([]float64, r.XSizePx*r.YSizePx),
	}
	if r.quality[parameter] == nil {
		r.quality[parameter] = make(map[string]*Band)
	}
	r.quality[parameter][qualityName] = b
	return b
}

// QualityBand returns the named quality band for a parameter, or nil.
func (r *Raster) QualityBand(parameter, qualityName string) *Band {
	m, ok := r.quality[parameter]
	if !ok {
		return nil
	}
	return m[qualityName]
}

// SetQualityValue writes a raw quality value at (x, y).
func (r *Raster) SetQualityValue(parameter, qualityName string, x, y int, raw float64) {
	b := r.QualityBand(parameter, qualityName)
	if b == nil {
		return
	}
	if x < 0 || x >= r.XSizePx || y < 0 || y >= r.YSizePx {
		return
	}
	b.Data[r.index(x, y)] = raw
}

// NodataRaw and UndetectRaw are the reserved raw codes used by Raster bands
// when no source contributed a value, or when a source detected nothing,
// respectively. They fall outside any realistic gain/offset packed range
// because callers always check for them before unpacking. MinValidRaw is
// the lowest raw code a packed physical value may legitimately clamp to; it
// sits directly above UndetectRaw so a clamped low value is never mistaken
// for the reserved undetect code.
const (
	NodataRaw   = -1
	UndetectRaw = 0
	MinValidRaw = UndetectRaw + 1
)
