package composite

import (
	"math"
	"testing"

	"radarcompose/pkg/radar"
)

func TestSourceIndexFindsNearbySource(t *testing.T) {
	sources := []radar.VolumeAccessor{
		flatVolume(59.35, 18.06, 0.5, 0),
		flatVolume(-33.9, 151.2, 0.5, 0),
	}
	idx := newSourceIndex(sources)

	candidates := idx.Candidates(59.3*math.Pi/180, 18.0*math.Pi/180, len(sources))
	found := false
	for _, c := range candidates {
		if c == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected source 0 among candidates near its site, got %v", candidates)
	}
}

func TestSourceIndexFallsBackWhenEmpty(t *testing.T) {
	idx := newSourceIndex(nil)
	candidates := idx.Candidates(0, 0, 0)
	if len(candidates) != 0 {
		t.Errorf("expected no candidates for an empty index, got %v", candidates)
	}
}
