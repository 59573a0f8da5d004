package composite

import (
	"fmt"
	"math"

	"radarcompose/pkg/geo"
	"radarcompose/pkg/radar"
	"radarcompose/pkg/raster"
)

// CartesianSource is an already-gridded input to CartesianComposite: a
// raster band sharing the output grid, plus the site of the radar that
// produced it (used to break ties between overlapping sources).
type CartesianSource struct {
	SiteLatRad, SiteLonRad float64
	Band                   *raster.Band
}

// CartesianComposite combines one or more already-gridded Cartesian sources
// that share a single output grid. Unlike CompositeGenerator it performs no
// polar reprojection and propagates no quality fields.
type CartesianComposite struct {
	st state

	quantity     string
	gain, offset float64
	sources      []CartesianSource
}

// NewCartesianComposite returns a composite in the Configuring state for
// the named output quantity.
func NewCartesianComposite(quantity string, gain, offset float64) *CartesianComposite {
	return &CartesianComposite{quantity: quantity, gain: gain, offset: offset}
}

// Add registers an already-gridded source. Its Band must share the output
// grid dimensions established by the first call to Nearest.
func (c *CartesianComposite) Add(source CartesianSource) error {
	if c.st != configuring {
		return fmt.Errorf("cartesiancomposite: no longer configurable: %w", errInvalidConfig)
	}
	c.sources = append(c.sources, source)
	return nil
}

var errInvalidConfig = radar.ErrInvalidConfig

// Nearest produces an output raster the same size as the first source's
// band. At each pixel with a valid value in at least one source, it copies
// the value (repacked to this composite's gain/offset) from the
// geographically closest contributing source; if only one source is valid
// at that pixel, that source is used regardless of distance.
func (c *CartesianComposite) Nearest(area raster.Area) (*raster.Raster, error) {
	if len(c.sources) == 0 {
		return nil, fmt.Errorf("cartesiancomposite: no sources added: %w", errInvalidConfig)
	}
	xsize, ysize := area.XSize(), area.YSize()
	for _, s := range c.sources {
		if s.Band == nil || len(s.Band.Data) != xsize*ysize {
			return nil, fmt.Errorf("cartesiancomposite: source grid mismatch: %w", errInvalidConfig)
		}
	}

	out := raster.NewRaster(xsize, ysize)
	if err := out.AddParameter(c.quantity, c.gain, c.offset); err != nil {
		return nil, err
	}

	runBanded(ysize, 1, func(y int) {
		for x := 0; x < xsize; x++ {
			pt := area.XYToLonLat(x, y)
			lon, lat := pt[0], pt[1] // XYToLonLat already returns radians
			i := y*xsize + x

			bestSrc := -1
			bestDist := math.Inf(1)
			validCount := 0
			for si, s := range c.sources {
				raw := s.Band.Data[i]
				if raw == float64(raster.NodataRaw) {
					continue
				}
				validCount++
				d := geo.Distance(
					geo.Point{Lat: s.SiteLatRad * 180 / math.Pi, Lon: s.SiteLonRad * 180 / math.Pi},
					geo.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi},
				)
				if validCount == 1 || d < bestDist {
					bestDist = d
					bestSrc = si
				}
			}
			if bestSrc < 0 {
				out.SetNodata(c.quantity, x, y)
				continue
			}
			src := c.sources[bestSrc]
			outRaw := raster.Repack(src.Band.Data[i], src.Band.Gain, src.Band.Offset, c.gain, c.offset, raster.MinValidRaw, math.MaxInt16)
			out.SetValue(c.quantity, x, y, outRaw)
		}
	})

	c.st = emitted
	return out, nil
}
