package composite

import (
	"math"

	"radarcompose/pkg/geo"
	"radarcompose/pkg/radar"
	"radarcompose/pkg/raster"
)

// samplePixel computes the value and quality bands for output pixel (x, y),
// having already chosen srcIdx as the contributing source, and writes them
// into plan.out. Any numeric failure (NaN, out-of-range index, missing ray)
// is absorbed locally as nodata; it never surfaces as an error.
func (g *CompositeGenerator) samplePixel(plan *samplePlan, x, y, srcIdx int, lat, lon float64) {
	source := g.sources[srcIdx]
	siteLat, siteLon, _ := source.Site()

	azimuth := geo.Bearing(
		geo.Point{Lat: siteLat * 180 / math.Pi, Lon: siteLon * 180 / math.Pi},
		geo.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi},
	) * math.Pi / 180.0
	groundDist := geo.Distance(
		geo.Point{Lat: siteLat * 180 / math.Pi, Lon: siteLon * 180 / math.Pi},
		geo.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi},
	)
	beta := groundDist / radar.EarthRadius43

	scan, ray, bin, ok := g.selectRayBin(source, azimuth, beta)
	if !ok {
		if g.product == CAPPI {
			if phys, vpOK := g.profileValue(g.parameters[0].quantity, g.height); vpOK {
				g.writeProfileValue(plan, x, y, srcIdx, phys)
				return
			}
		}
		plan.markNodata(x, y)
		return
	}

	raw := scan.Raw(ray, bin)
	if math.IsNaN(raw) || raw == scan.NodataRaw() || raw == scan.UndetectRaw() {
		plan.markNodata(x, y)
		return
	}
	phys := raw*scan.Gain() + scan.Offset()
	if g.Algorithm != nil {
		phys = g.Algorithm.Process(PixelContext{X: x, Y: y, SourceIndex: srcIdx, Ray: ray, Bin: bin}, phys)
	}

	for _, param := range g.parameters {
		b := plan.out.Parameter(param.quantity)
		outRaw := raster.Pack(phys, b.Gain, b.Offset, raster.MinValidRaw, math.MaxInt16)
		plan.out.SetValue(param.quantity, x, y, outRaw)

		propagateQuality(plan.out, param.quantity, plan.qualityTasks, scan, ray, bin, x, y)
	}
}

// profileValue looks up quantity at height h in the generator's optional
// VerticalProfile, matching h to the nearest recorded level. It reports
// ok=false when no profile is set, the quantity isn't present, or the
// nearest level lies farther from h than half the profile's level spacing
// (too coarse to stand in for the missed scan).
func (g *CompositeGenerator) profileValue(quantity string, h float64) (float64, bool) {
	if g.profile == nil {
		return 0, false
	}
	heights := g.profile.Heights()
	values, ok := g.profile.Field(quantity)
	if !ok || len(heights) == 0 || len(values) != len(heights) {
		return 0, false
	}

	best := -1
	bestDiff := math.Inf(1)
	for i, lvl := range heights {
		diff := math.Abs(lvl - h)
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}

	tolerance := math.Inf(1)
	if len(heights) > 1 {
		tolerance = math.Abs(heights[len(heights)-1]-heights[0]) / float64(len(heights)-1) / 2
	}
	if bestDiff > tolerance {
		return 0, false
	}
	return values[best], true
}

// writeProfileValue packs and writes a VerticalProfile-derived value for a
// pixel with no contributing scan; since no scan was sampled, no quality
// field can be propagated for it.
func (g *CompositeGenerator) writeProfileValue(plan *samplePlan, x, y, srcIdx int, phys float64) {
	if g.Algorithm != nil {
		phys = g.Algorithm.Process(PixelContext{X: x, Y: y, SourceIndex: srcIdx, Ray: -1, Bin: -1}, phys)
	}
	param := g.parameters[0]
	b := plan.out.Parameter(param.quantity)
	outRaw := raster.Pack(phys, b.Gain, b.Offset, raster.MinValidRaw, math.MaxInt16)
	plan.out.SetValue(param.quantity, x, y, outRaw)
}

// selectRayBin implements the product-specific vertical sampling rule of
// CompositeGenerator.Product: it picks the contributing scan and the
// (ray, bin) within it for the given azimuth/ground-angle pair.
func (g *CompositeGenerator) selectRayBin(source radar.VolumeAccessor, azimuth, beta float64) (radar.ScanAccessor, int, int, bool) {
	switch g.product {
	case PPI:
		scan := nearestElevationScan(source, g.elevationAngle)
		if scan == nil {
			return nil, 0, 0, false
		}
		slant := radar.BeamFromEtaBeta(scan.ElevationRad(), beta)
		ray, bin, ok := rayBinAt(scan, azimuth, slant)
		return scan, ray, bin, ok

	case CAPPI:
		scan := g.bracketElevation(source, beta, g.height)
		if scan == nil {
			return nil, 0, 0, false
		}
		slant := radar.BeamFromEtaBeta(scan.ElevationRad(), beta)
		ray, bin, ok := rayBinAt(scan, azimuth, slant)
		return scan, ray, bin, ok

	case PCAPPI:
		scan := g.bracketElevation(source, beta, g.height)
		if scan == nil {
			scan = lowestElevationScan(source)
		}
		if scan == nil {
			return nil, 0, 0, false
		}
		slant := radar.BeamFromEtaBeta(scan.ElevationRad(), beta)
		ray, bin, ok := rayBinAt(scan, azimuth, slant)
		return scan, ray, bin, ok

	case PMAX:
		groundDist := beta * radar.EarthRadius43
		if groundDist > g.rangeThreshold {
			return g.verticalMaxColumn(source, azimuth, beta)
		}
		scan := g.bracketElevation(source, beta, g.height)
		if scan == nil {
			scan = lowestElevationScan(source)
		}
		if scan == nil {
			return nil, 0, 0, false
		}
		slant := radar.BeamFromEtaBeta(scan.ElevationRad(), beta)
		ray, bin, ok := rayBinAt(scan, azimuth, slant)
		return scan, ray, bin, ok
	}
	return nil, 0, 0, false
}

// rayBinAt converts (azimuth, slant range) into (ray, bin) indices within
// scan, floor-dividing range by the range step and azimuth by the ray
// angular width. An out-of-range bin index is reported as not-ok.
func rayBinAt(scan radar.ScanAccessor, azimuth, slantRange float64) (ray, bin int, ok bool) {
	if slantRange < scan.RangeStartM() {
		return 0, 0, false
	}
	bin = int(math.Floor((slantRange - scan.RangeStartM()) / scan.RangeStepM()))
	if bin < 0 || bin >= scan.NBins() {
		return 0, 0, false
	}
	nRays := scan.NRays()
	if nRays == 0 {
		return 0, 0, false
	}
	normAz := math.Mod(azimuth, 2*math.Pi)
	if normAz < 0 {
		normAz += 2 * math.Pi
	}
	ray = int(math.Floor(normAz * float64(nRays) / (2 * math.Pi)))
	ray = ((ray % nRays) + nRays) % nRays
	return ray, bin, true
}

func lowestElevationScan(source radar.VolumeAccessor) radar.ScanAccessor {
	if source.ScanCount() == 0 {
		return nil
	}
	lowest := source.Scan(0)
	for i := 1; i < source.ScanCount(); i++ {
		if s := source.Scan(i); s.ElevationRad() < lowest.ElevationRad() {
			lowest = s
		}
	}
	return lowest
}

func nearestElevationScan(source radar.VolumeAccessor, target float64) radar.ScanAccessor {
	var best radar.ScanAccessor
	bestDiff := math.Inf(1)
	for i := 0; i < source.ScanCount(); i++ {
		s := source.Scan(i)
		diff := math.Abs(s.ElevationRad() - target)
		if diff < bestDiff {
			bestDiff = diff
			best = s
		}
	}
	return best
}

// bracketElevation finds the elevation whose sampled height at ground angle
// beta is closest to h, preferring the pair of scans that bracket the
// elevation which would exactly land at (beta, h). If no bracketing pair
// exists, it falls back to the nearest scan only when that scan's height at
// beta is within half of the volume's vertical extent of h; otherwise it
// reports no match (nodata), leaving the PCAPPI/PMAX fallback-to-lowest
// decision to the caller.
func (g *CompositeGenerator) bracketElevation(source radar.VolumeAccessor, beta, h float64) radar.ScanAccessor {
	n := source.ScanCount()
	if n == 0 {
		return nil
	}

	geom := &radar.Geometry{ElevationAngles: make([]float64, n)}
	scans := make([]radar.ScanAccessor, n)
	for i := 0; i < n; i++ {
		scans[i] = source.Scan(i)
		geom.ElevationAngles[i] = scans[i].ElevationRad()
	}

	etaTarget := radar.EtaFromBetaH(beta, h)
	lowerIdx, _, upperIdx, _ := geom.FindClosestElevations(etaTarget)

	if lowerIdx >= 0 && upperIdx >= 0 {
		lowerHeight := radar.HeightFromEtaBeta(scans[lowerIdx].ElevationRad(), beta)
		upperHeight := radar.HeightFromEtaBeta(scans[upperIdx].ElevationRad(), beta)
		if math.Abs(lowerHeight-h) <= math.Abs(upperHeight-h) {
			return scans[lowerIdx]
		}
		return scans[upperIdx]
	}

	// no bracketing pair: fall back to the single closest scan if its
	// height at beta is within half the volume's vertical extent of h.
	nearestIdx := lowerIdx
	if nearestIdx < 0 {
		nearestIdx = upperIdx
	}
	if nearestIdx < 0 {
		return nil
	}
	extent := verticalExtent(geom.ElevationAngles, beta)
	height := radar.HeightFromEtaBeta(scans[nearestIdx].ElevationRad(), beta)
	if math.Abs(height-h) <= extent/2.0 {
		return scans[nearestIdx]
	}
	return nil
}

// verticalExtent approximates a volume's vertical extent at ground angle
// beta as the height difference between its lowest and highest elevations.
func verticalExtent(elevations []float64, beta float64) float64 {
	if len(elevations) == 0 {
		return 0
	}
	min, max := elevations[0], elevations[0]
	for _, e := range elevations {
		if e < min {
			min = e
		}
		if e > max {
			max = e
		}
	}
	return radar.HeightFromEtaBeta(max, beta) - radar.HeightFromEtaBeta(min, beta)
}

// verticalMaxColumn samples every scan in source at (azimuth, beta) and
// returns the one yielding the greatest physical value, used by PMAX beyond
// the range threshold.
func (g *CompositeGenerator) verticalMaxColumn(source radar.VolumeAccessor, azimuth, beta float64) (radar.ScanAccessor, int, int, bool) {
	var bestScan radar.ScanAccessor
	var bestRay, bestBin int
	bestPhys := math.Inf(-1)
	found := false

	for i := 0; i < source.ScanCount(); i++ {
		scan := source.Scan(i)
		slant := radar.BeamFromEtaBeta(scan.ElevationRad(), beta)
		ray, bin, ok := rayBinAt(scan, azimuth, slant)
		if !ok {
			continue
		}
		raw := scan.Raw(ray, bin)
		if math.IsNaN(raw) || raw == scan.NodataRaw() || raw == scan.UndetectRaw() {
			continue
		}
		phys := raw*scan.Gain() + scan.Offset()
		if phys > bestPhys {
			bestPhys = phys
			bestScan = scan
			bestRay, bestBin = ray, bin
			found = true
		}
	}
	return bestScan, bestRay, bestBin, found
}
