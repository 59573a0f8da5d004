package composite

import (
	"math"

	"github.com/uber/h3-go/v4"

	"radarcompose/pkg/radar"
)

// sourceIndexResolution is the H3 cell resolution used to bucket source
// sites. Resolution 4 gives cells on the order of tens of kilometers across,
// coarse enough that a typical regional radar network falls into a handful
// of neighboring cells.
const sourceIndexResolution = 4

// sourceIndexExactThreshold is the network size at or below which
// Candidates skips the H3 lookup and returns every source directly: the ring
// lookup below is an optimization for large networks, and for small ones
// skipping it removes any risk of a ring lookup missing a true-nearest
// source that happens to sit just outside the searched ring.
const sourceIndexExactThreshold = 24

// sourceIndex buckets source volumes by the H3 cell containing their site,
// letting NEAREST selection in large networks start from the pixel's own
// cell and its ring-2 neighborhood instead of scanning every source for
// every pixel. Built
// once per Nearest call; read-only afterward.
type sourceIndex struct {
	cells map[h3.Cell][]int // cell -> source indices
}

func newSourceIndex(sources []radar.VolumeAccessor) *sourceIndex {
	idx := &sourceIndex{cells: make(map[h3.Cell][]int)}
	for i, src := range sources {
		lat, lon, _ := src.Site()
		cell, err := h3.LatLngToCell(h3.NewLatLng(toDeg(lat), toDeg(lon)), sourceIndexResolution)
		if err != nil {
			continue
		}
		idx.cells[cell] = append(idx.cells[cell], i)
	}
	return idx
}

// Candidates returns the source indices in the pixel's own H3 cell and its
// ring-2 neighborhood. For networks at or below sourceIndexExactThreshold it
// skips the index and returns every source, guaranteeing NEAREST selection
// is exact regardless of site spacing. For larger networks, if the
// neighborhood holds no sources (a sparse network, or one coarser than the
// index resolution) it falls back to every registered source.
func (idx *sourceIndex) Candidates(latRad, lonRad float64, total int) []int {
	if total <= sourceIndexExactThreshold {
		return idx.all(total)
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(toDeg(latRad), toDeg(lonRad)), sourceIndexResolution)
	if err != nil {
		return idx.all(total)
	}

	disk, err := h3.GridDisk(cell, 2)
	if err != nil {
		return idx.all(total)
	}

	var out []int
	seen := make(map[int]bool)
	for _, c := range disk {
		for _, i := range idx.cells[c] {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	if len(out) == 0 {
		return idx.all(total)
	}
	return out
}

func (idx *sourceIndex) all(total int) []int {
	out := make([]int, total)
	for i := range out {
		out[i] = i
	}
	return out
}

func toDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
