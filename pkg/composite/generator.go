// Package composite implements the per-pixel radar composite generation
// engine: polar-source selection and sampling (generator.go, sample.go),
// already-gridded Cartesian source combining (cartesian.go), and quality-flag
// propagation (quality.go).
package composite

import (
	"fmt"
	"math"

	"radarcompose/pkg/geo"
	"radarcompose/pkg/radar"
	"radarcompose/pkg/raster"
)

// Product selects the vertical sampling rule applied at each pixel.
type Product int

const (
	PPI Product = iota
	CAPPI
	PCAPPI
	PMAX
)

// SelectionMethod selects how a source is chosen among several covering a
// pixel.
type SelectionMethod int

const (
	Nearest SelectionMethod = iota
	Height
)

type state int

const (
	configuring state = iota
	generating
	emitted
)

// Algorithm is an optional per-pixel post-processing hook invoked after the
// default product sampling produces a physical value, mirroring the
// upstream generator's pluggable algorithm slot. The default generator has
// no Algorithm and runs the sampled value through unmodified.
type Algorithm interface {
	Process(pixel PixelContext, value float64) float64
}

// PixelContext carries the per-pixel state visible to an Algorithm: pixel
// coordinates, the chosen source index and the sampled ray/bin. Ray and Bin
// are -1 when the value came from a VerticalProfile fallback rather than a
// sampled scan bin.
type PixelContext struct {
	X, Y        int
	SourceIndex int
	Ray, Bin    int
}

type parameterSpec struct {
	quantity     string
	gain, offset float64
}

// CompositeGenerator builds a Cartesian composite from one or more polar
// volumes. It moves through Configuring -> Generating -> Emitted exactly
// once per Nearest call; add/set methods are only legal in Configuring.
type CompositeGenerator struct {
	st state

	product         Product
	selectionMethod SelectionMethod
	height          float64 // meters, CAPPI/PCAPPI/PMAX
	elevationAngle  float64 // radians, PPI
	rangeThreshold  float64 // meters, PMAX vertical-max threshold

	outputGain, outputOffset float64
	parameters               []parameterSpec

	sources []radar.VolumeAccessor
	time    string
	date    string

	// profile is an optional VerticalProfile consulted by CAPPI sampling
	// when no scan in the selected volume brackets the requested height;
	// see SetVerticalProfile.
	profile radar.VerticalProfile

	Algorithm Algorithm
}

// NewCompositeGenerator returns a generator in the Configuring state with
// PCAPPI/NEAREST defaults.
func NewCompositeGenerator() *CompositeGenerator {
	return &CompositeGenerator{
		product:         PCAPPI,
		selectionMethod: Nearest,
		outputGain:      1,
	}
}

func (g *CompositeGenerator) mustBeConfiguring() error {
	if g.st != configuring {
		return fmt.Errorf("composite: generator is no longer configurable: %w", radar.ErrInvalidConfig)
	}
	return nil
}

// Add registers a polar volume as a composite source.
func (g *CompositeGenerator) Add(source radar.VolumeAccessor) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.sources = append(g.sources, source)
	return nil
}

// AddParameter registers the output band and the gain/offset used to pack
// its physical values. A generator samples one quantity per source scan
// (ScanAccessor.Raw has no quantity argument), so it may be called at most
// once; generate a second quantity with its own generator sharing the same
// sources.
func (g *CompositeGenerator) AddParameter(quantity string, gain, offset float64) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	if len(g.parameters) > 0 {
		return fmt.Errorf("composite: a generator samples a single quantity, already have %q: %w", g.parameters[0].quantity, radar.ErrInvalidConfig)
	}
	if gain == 0 {
		return fmt.Errorf("composite: parameter %q: %w", quantity, raster.ErrZeroGain)
	}
	g.parameters = append(g.parameters, parameterSpec{quantity, gain, offset})
	return nil
}

func (g *CompositeGenerator) SetProduct(p Product) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.product = p
	return nil
}

func (g *CompositeGenerator) SetSelectionMethod(m SelectionMethod) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.selectionMethod = m
	return nil
}

func (g *CompositeGenerator) SetHeight(meters float64) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.height = meters
	return nil
}

func (g *CompositeGenerator) SetElevationAngle(radians float64) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.elevationAngle = radians
	return nil
}

func (g *CompositeGenerator) SetRange(meters float64) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.rangeThreshold = meters
	return nil
}

// SetVerticalProfile attaches an optional VerticalProfile consulted by CAPPI
// sampling when no scan of the selected volume yields a sample at the
// requested height for a pixel: the generator falls back to the profile's
// field matching the output parameter's quantity name, taking the value at
// the nearest recorded level (no interpolation between levels). The pixel is
// still nodata when that level lies farther from the height than half the
// profile's mean level spacing.
func (g *CompositeGenerator) SetVerticalProfile(p radar.VerticalProfile) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.profile = p
	return nil
}

func (g *CompositeGenerator) SetTime(value string) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.time = value
	return nil
}

func (g *CompositeGenerator) SetDate(value string) error {
	if err := g.mustBeConfiguring(); err != nil {
		return err
	}
	g.date = value
	return nil
}

func (g *CompositeGenerator) validate() error {
	if len(g.sources) == 0 {
		return fmt.Errorf("composite: no sources added: %w", radar.ErrInvalidConfig)
	}
	if len(g.parameters) == 0 {
		return fmt.Errorf("composite: no parameters added: %w", radar.ErrInvalidConfig)
	}
	if (g.product == CAPPI || g.product == PCAPPI || g.product == PMAX) && g.height == 0 {
		return fmt.Errorf("composite: %v requires a nonzero height: %w", g.product, radar.ErrInvalidConfig)
	}
	return nil
}

// Nearest runs the generator over area, producing a Cartesian raster with
// one band per configured parameter plus one quality band per requested
// how/task name per parameter. It may be called only once; a second call
// returns ErrInvalidConfig.
func (g *CompositeGenerator) Nearest(area raster.Area, qualityTasks []string, workers int) (*raster.Raster, error) {
	if g.st == emitted {
		return nil, fmt.Errorf("composite: generator already emitted a result: %w", radar.ErrInvalidConfig)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.st = generating

	out := raster.NewRaster(area.XSize(), area.YSize())
	for _, p := range g.parameters {
		if err := out.AddParameter(p.quantity, p.gain, p.offset); err != nil {
			return nil, err
		}
		for _, task := range qualityTasks {
			out.AttachQuality(p.quantity, task, 1.0/255.0, 0)
		}
	}

	idx := newSourceIndex(g.sources)
	plan := &samplePlan{gen: g, area: area, out: out, idx: idx, qualityTasks: qualityTasks}
	runBanded(area.YSize(), workers, plan.row)

	g.st = emitted
	return out, nil
}

// samplePlan carries the read-only state a row worker needs; its row method
// touches only its own output rows, so concurrent calls across disjoint row
// ranges never write-alias.
type samplePlan struct {
	gen          *CompositeGenerator
	area         raster.Area
	out          *raster.Raster
	idx          *sourceIndex
	qualityTasks []string
}

func (p *samplePlan) row(y int) {
	g := p.gen
	for x := 0; x < p.area.XSize(); x++ {
		pt := p.area.XYToLonLat(x, y)
		lon, lat := pt[0], pt[1] // XYToLonLat already returns radians

		srcIdx, ok := g.selectSource(p.idx, lat, lon)
		if !ok {
			p.markNodata(x, y)
			continue
		}
		g.samplePixel(p, x, y, srcIdx, lat, lon)
	}
}

func (p *samplePlan) markNodata(x, y int) {
	for _, param := range p.gen.parameters {
		p.out.SetNodata(param.quantity, x, y)
	}
}

// selectSource picks the contributing source for (lat, lon) per the
// generator's SelectionMethod. Ties (equal distance, or equal sampled
// height) resolve to the source added first.
func (g *CompositeGenerator) selectSource(idx *sourceIndex, lat, lon float64) (int, bool) {
	candidates := idx.Candidates(lat, lon, len(g.sources))
	if len(candidates) == 0 {
		return 0, false
	}

	switch g.selectionMethod {
	case Height:
		bestIdx := -1
		bestHeight := math.Inf(1)
		for _, i := range candidates {
			h, ok := g.sampledHeight(g.sources[i], lat, lon)
			if !ok {
				continue
			}
			if h < bestHeight || (h == bestHeight && i < bestIdx) {
				bestHeight = h
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			return 0, false
		}
		return bestIdx, true
	default: // Nearest
		bestIdx := -1
		bestDist := math.Inf(1)
		for _, i := range candidates {
			siteLat, siteLon, _ := g.sources[i].Site()
			d := geo.Distance(geo.Point{Lat: siteLat * 180 / math.Pi, Lon: siteLon * 180 / math.Pi}, geo.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi})
			if d < bestDist || (d == bestDist && i < bestIdx) {
				bestDist = d
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			return 0, false
		}
		return bestIdx, true
	}
}

// sampledHeight returns the lowest sampled-beam altitude above the pixel
// ground for a source, used by the HEIGHT selection method.
func (g *CompositeGenerator) sampledHeight(source radar.VolumeAccessor, lat, lon float64) (float64, bool) {
	if source.ScanCount() == 0 {
		return 0, false
	}
	siteLat, siteLon, _ := source.Site()
	groundDist := geo.Distance(geo.Point{Lat: siteLat * 180 / math.Pi, Lon: siteLon * 180 / math.Pi}, geo.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi})
	beta := groundDist / radar.EarthRadius43

	lowest := source.Scan(0)
	for i := 1; i < source.ScanCount(); i++ {
		if s := source.Scan(i); s.ElevationRad() < lowest.ElevationRad() {
			lowest = s
		}
	}
	return radar.HeightFromEtaBeta(lowest.ElevationRad(), beta), true
}
