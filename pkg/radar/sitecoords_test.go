package radar

import (
	"math"
	"testing"
)

func TestSiteCoordinatesZeroRangeIsSite(t *testing.T) {
	latDeg, lonDeg := 59.35, 18.06
	sc := NewSiteCoordinates(latDeg*math.Pi/180, lonDeg*math.Pi/180)

	lat, lon := sc.BinPosition(0, 0)
	if math.Abs(lat-latDeg*math.Pi/180) > 1e-6 {
		t.Errorf("lat at zero range = %v, want %v", lat, latDeg*math.Pi/180)
	}
	if math.Abs(lon-lonDeg*math.Pi/180) > 1e-6 {
		t.Errorf("lon at zero range = %v, want %v", lon, lonDeg*math.Pi/180)
	}
}

func TestSiteCoordinatesSymmetricAzimuths(t *testing.T) {
	sc := NewSiteCoordinates(50*math.Pi/180, 10*math.Pi/180)

	latN, lonN := sc.BinPosition(0, 50000)
	latS, lonS := sc.BinPosition(math.Pi, 50000)

	if latN <= latS {
		t.Errorf("north bin lat %v should exceed south bin lat %v", latN, latS)
	}
	if math.Abs(lonN-lonS) > 1e-6 {
		t.Errorf("north/south bins at same range should share longitude: %v vs %v", lonN, lonS)
	}
}

func TestBoundingBoxContainsSite(t *testing.T) {
	siteLat, siteLon := 45*math.Pi/180, -93*math.Pi/180
	sc := NewSiteCoordinates(siteLat, siteLon)

	latMin, lonMin, latMax, lonMax := sc.BoundingBox(100000)
	if !(latMin <= siteLat && siteLat <= latMax) {
		t.Errorf("site latitude %v not within bounding box [%v, %v]", siteLat, latMin, latMax)
	}
	if !(lonMin <= siteLon && siteLon <= lonMax) {
		t.Errorf("site longitude %v not within bounding box [%v, %v]", siteLon, lonMin, lonMax)
	}
}
