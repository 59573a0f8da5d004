package radar

import "math"

// SiteCoordinates converts (azimuth, range) bin positions relative to a
// radar site into geodetic (lat, lon), precomputing the site's
// Earth-centered position and local East/North unit vectors so that each
// bin lookup is a handful of multiplications.
type SiteCoordinates struct {
	latRad, lonRad float64

	p0 [3]float64 // site position, Earth-centered
	eE [3]float64 // East unit vector at site
	eN [3]float64 // North unit vector at site
}

// NewSiteCoordinates builds a SiteCoordinates for a site at latRad/lonRad
// (radians).
func NewSiteCoordinates(latRad, lonRad float64) *SiteCoordinates {
	sinTheta, cosTheta := math.Sin(latRad), math.Cos(latRad)
	sinPhi, cosPhi := math.Sin(lonRad), math.Cos(lonRad)

	sc := &SiteCoordinates{latRad: latRad, lonRad: lonRad}
	sc.p0 = [3]float64{
		EarthRadius * cosPhi * cosTheta,
		EarthRadius * sinPhi * cosTheta,
		EarthRadius * sinTheta,
	}
	sc.eE = [3]float64{-sinPhi, cosPhi, 0}
	sc.eN = [3]float64{-cosPhi * sinTheta, -sinPhi * sinTheta, cosTheta}
	return sc
}

// BinPosition returns the (lat, lon) in radians of the bin at the given
// azimuth (radians, clockwise from north) and range (meters).
//
// The range/(2R) term uses the mean spherical Earth radius, not the 4/3
// effective radius used throughout package radar's beam-propagation
// formulas; this is preserved from the upstream implementation rather than
// reconciled (see DESIGN.md).
func (sc *SiteCoordinates) BinPosition(azimuth, rangeM float64) (latRad, lonRad float64) {
	x1 := math.Cos(rangeM / (EarthRadius * 2.0))
	x2 := rangeM * math.Sin(azimuth)
	x3 := rangeM * math.Cos(azimuth)

	p1 := sc.p0[0]*x1 + sc.eE[0]*x2 + sc.eN[0]*x3
	p2 := sc.p0[1]*x1 + sc.eE[1]*x2 + sc.eN[1]*x3
	p3 := sc.p0[2]*x1 + sc.eE[2]*x2 + sc.eN[2]*x3

	lonRad = math.Atan2(p2, p1)
	latRad = math.Asin(p3 / EarthRadius)
	return latRad, lonRad
}

// BoundingBox returns an approximate (latMin, lonMin, latMax, lonMax) box in
// radians enclosing the site's coverage circle of the given range, sampled
// at 18 azimuths spaced 20 degrees apart. It does not handle a site whose
// coverage circle crosses the antimeridian; see DESIGN.md.
func (sc *SiteCoordinates) BoundingBox(rangeM float64) (latMin, lonMin, latMax, lonMax float64) {
	latMin, lonMin = math.Inf(1), math.Inf(1)
	latMax, lonMax = math.Inf(-1), math.Inf(-1)

	for i := 0; i < 360; i += 20 {
		azm := float64(i) * math.Pi / 180.0
		lat, lon := sc.BinPosition(azm, rangeM)
		latMin = math.Min(lat, latMin)
		latMax = math.Max(lat, latMax)
		lonMin = math.Min(lon, lonMin)
		lonMax = math.Max(lon, lonMax)
	}
	return latMin, lonMin, latMax, lonMax
}
