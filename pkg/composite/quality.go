package composite

import (
	"math"

	"radarcompose/pkg/radar"
	"radarcompose/pkg/raster"
)

// propagateQuality samples the requested how/task quality fields for the
// (ray, bin) already chosen for the value band, and writes them into the
// output raster's matching quality bands. A source scan's quality fields
// are indexed by how/task once, at scan construction (see
// radar.Scan.Quality), not rebuilt per pixel; this function only performs
// the O(1) lookup per requested task.
func propagateQuality(out *raster.Raster, quantity string, tasks []string, scan radar.ScanAccessor, ray, bin, x, y int) {
	for _, task := range tasks {
		qb := out.QualityBand(quantity, task)
		if qb == nil {
			continue
		}
		qf, ok := scan.QualityField(task)
		if !ok {
			out.SetQualityValue(quantity, task, x, y, raster.NodataRaw)
			continue
		}
		raw := qf.Raw(ray, bin)
		if math.IsNaN(raw) {
			out.SetQualityValue(quantity, task, x, y, raster.NodataRaw)
			continue
		}
		phys := raw*qf.Gain() + qf.Offset()
		packed := raster.Pack(phys, qb.Gain, qb.Offset, raster.MinValidRaw, math.MaxInt16)
		out.SetQualityValue(quantity, task, x, y, packed)
	}
}
