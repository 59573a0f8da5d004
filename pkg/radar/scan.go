package radar

import (
	"math"

	"github.com/google/uuid"
)

// QualityField is a read-only quality band attached to a Scan, indexed by
// its how/task attribute (e.g. "se.smhi.detector.beamblockage").
type QualityField interface {
	Raw(ray, bin int) float64
	Gain() float64
	Offset() float64
}

// ScanAccessor is the trait-shaped contract the composite engine consumes
// for a single elevation sweep. Implementations are free to back it with a
// dense in-memory array, a memory-mapped file, or a lazy HDF5 reader.
type ScanAccessor interface {
	ElevationRad() float64
	RangeStepM() float64
	RangeStartM() float64
	NBins() int
	NRays() int
	Raw(ray, bin int) float64
	Gain() float64
	Offset() float64
	NodataRaw() float64
	UndetectRaw() float64
	QualityField(howTask string) (QualityField, bool)
}

// VolumeAccessor is the trait-shaped contract for a polar volume: a radar
// site plus its ordered scans.
type VolumeAccessor interface {
	Site() (latRad, lonRad, altM float64)
	ScanCount() int
	Scan(i int) ScanAccessor
}

// Field is a concrete, in-memory QualityField implementation.
type Field struct {
	Data      [][]float64 // [ray][bin], raw values
	FieldGain float64
	FieldOff  float64
}

func (f *Field) Raw(ray, bin int) float64 {
	if ray < 0 || ray >= len(f.Data) {
		return math.NaN()
	}
	row := f.Data[ray]
	if bin < 0 || bin >= len(row) {
		return math.NaN()
	}
	return row[bin]
}

func (f *Field) Gain() float64   { return f.FieldGain }
func (f *Field) Offset() float64 { return f.FieldOff }

// Scan is a concrete, in-memory ScanAccessor implementation representing
// one elevation sweep of a polar volume.
type Scan struct {
	ID uuid.UUID

	Elevation  float64 // radians
	RangeStep  float64 // meters
	RangeStart float64 // meters
	Data       [][]float64
	ScanGain   float64
	ScanOffset float64
	Nodata     float64
	Undetect   float64

	// Quality holds quality fields keyed by their how/task attribute.
	Quality map[string]QualityField
}

// NewScan returns a Scan with a fresh identity and an initialized quality
// map.
func NewScan() *Scan {
	return &Scan{ID: uuid.New(), Quality: make(map[string]QualityField)}
}

func (s *Scan) ElevationRad() float64 { return s.Elevation }
func (s *Scan) RangeStepM() float64   { return s.RangeStep }
func (s *Scan) RangeStartM() float64  { return s.RangeStart }
func (s *Scan) NRays() int            { return len(s.Data) }

func (s *Scan) NBins() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

func (s *Scan) Raw(ray, bin int) float64 {
	if ray < 0 || ray >= len(s.Data) {
		return math.NaN()
	}
	row := s.Data[ray]
	if bin < 0 || bin >= len(row) {
		return math.NaN()
	}
	return row[bin]
}

func (s *Scan) Gain() float64        { return s.ScanGain }
func (s *Scan) Offset() float64      { return s.ScanOffset }
func (s *Scan) NodataRaw() float64   { return s.Nodata }
func (s *Scan) UndetectRaw() float64 { return s.Undetect }

func (s *Scan) QualityField(howTask string) (QualityField, bool) {
	f, ok := s.Quality[howTask]
	return f, ok
}

// PolarVolume is a concrete, in-memory VolumeAccessor implementation: a
// radar site plus its scans, ordered ascending by elevation angle.
type PolarVolume struct {
	ID uuid.UUID

	LatRad, LonRad, AltM float64
	Scans                []*Scan

	// Metadata, consumed by callers that need it but not by the geometry
	// or selection logic itself.
	Time, Date, Source, NOD string
}

// NewPolarVolume returns a PolarVolume with a fresh identity.
func NewPolarVolume() *PolarVolume {
	return &PolarVolume{ID: uuid.New()}
}

func (v *PolarVolume) Site() (latRad, lonRad, altM float64) {
	return v.LatRad, v.LonRad, v.AltM
}

func (v *PolarVolume) ScanCount() int { return len(v.Scans) }

func (v *PolarVolume) Scan(i int) ScanAccessor {
	if i < 0 || i >= len(v.Scans) {
		return nil
	}
	return v.Scans[i]
}

// ElevationAngles returns the sorted elevation angles (radians) of the
// volume's scans, for use with Geometry.FindClosestElevations.
func (v *PolarVolume) ElevationAngles() []float64 {
	angles := make([]float64, len(v.Scans))
	for i, s := range v.Scans {
		angles[i] = s.Elevation
	}
	return angles
}
