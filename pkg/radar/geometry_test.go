package radar

import (
	"math"
	"testing"
)

func TestHeightBeamRoundTrip(t *testing.T) {
	for _, eta := range []float64{0, 10 * math.Pi / 180, 60 * math.Pi / 180} {
		for b := 1000.0; b <= 250000.0; b += 20000.0 {
			h := HeightFromEtaBeam(eta, b)
			got := BeamFromEtaH(eta, h)
			if math.Abs(got-b) > 1.0 {
				t.Errorf("eta=%v b=%v: round-trip got %v, want within 1m", eta, b, got)
			}
		}
	}
}

func TestGroundFromEtaBFlatEarth(t *testing.T) {
	for b := 1000.0; b <= 10000.0; b += 1000.0 {
		g := GroundFromEtaB(0, b)
		if math.Abs(g-b) > 1.0 {
			t.Errorf("b=%v: ground=%v, want within 1m of b", b, g)
		}
	}
}

func TestHeightFromEtaBeamMonotonic(t *testing.T) {
	eta := 5 * math.Pi / 180
	prev := HeightFromEtaBeam(eta, 1000)
	for b := 2000.0; b <= 250000.0; b += 5000.0 {
		h := HeightFromEtaBeam(eta, b)
		if h <= prev {
			t.Fatalf("height not strictly increasing at b=%v: prev=%v h=%v", b, prev, h)
		}
		prev = h
	}
}

func TestBeamFromBetaHMonotonic(t *testing.T) {
	h := 2000.0
	prev := BeamFromBetaH(0.001, h)
	for beta := 0.01; beta < math.Pi/2; beta += 0.05 {
		b := BeamFromBetaH(beta, h)
		if b <= prev {
			t.Fatalf("beam not strictly increasing at beta=%v: prev=%v b=%v", beta, prev, b)
		}
		prev = b
	}
}

func TestHeightFromEtaGroundMatchesGroundAngleHalved(t *testing.T) {
	eta := 2 * math.Pi / 180
	g := 50000.0
	want := HeightFromEtaBeta(eta, g/(EarthRadius43*2.0))
	got := HeightFromEtaGround(eta, g)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("HeightFromEtaGround = %v, want %v", got, want)
	}
}

func TestFindClosestElevations(t *testing.T) {
	g := &Geometry{ElevationAngles: []float64{0.5, 1.0, 1.5, 2.4, 4.0}}
	// convert to radians for a realistic call; the function is agnostic to
	// units as long as they're consistent
	for i := range g.ElevationAngles {
		g.ElevationAngles[i] *= math.Pi / 180
	}

	lowerIdx, lowerAngle, upperIdx, upperAngle := g.FindClosestElevations(1.2 * math.Pi / 180)
	if lowerIdx != 1 || upperIdx != 2 {
		t.Errorf("got lowerIdx=%d upperIdx=%d, want 1,2", lowerIdx, upperIdx)
	}
	if lowerAngle > upperAngle {
		t.Errorf("lowerAngle %v should be <= upperAngle %v", lowerAngle, upperAngle)
	}

	lowerIdx, _, upperIdx, _ = g.FindClosestElevations(-1 * math.Pi / 180)
	if lowerIdx != -1 {
		t.Errorf("target below all elevations: want lowerIdx -1, got %d", lowerIdx)
	}
	if upperIdx != 0 {
		t.Errorf("target below all elevations: want upperIdx 0, got %d", upperIdx)
	}

	lowerIdx, _, upperIdx, _ = g.FindClosestElevations(10 * math.Pi / 180)
	if upperIdx != -1 {
		t.Errorf("target above all elevations: want upperIdx -1, got %d", upperIdx)
	}
	if lowerIdx != 4 {
		t.Errorf("target above all elevations: want lowerIdx 4, got %d", lowerIdx)
	}
}

func TestNormalizedBeamPower(t *testing.T) {
	g := NewGeometry()
	if p := g.NormalizedBeamPower(0); math.Abs(p-1.0) > 1e-9 {
		t.Errorf("on-axis power = %v, want 1.0", p)
	}
	if p := g.NormalizedBeamPower(g.BeamWidth); p >= 1.0 || p <= 0 {
		t.Errorf("off-axis power = %v, want in (0,1)", p)
	}
}
