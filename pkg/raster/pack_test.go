package raster

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	gain, offset := 0.5, -20.0
	for _, phys := range []float64{-20, 0, 15.25, 40, 63.5} {
		raw := Pack(phys, gain, offset, -100, 100)
		got := Unpack(raw, gain, offset)
		if diff := got - phys; diff > gain/2+1e-9 || diff < -(gain/2+1e-9) {
			t.Errorf("phys=%v packed/unpacked to %v, outside gain/2 tolerance", phys, got)
		}
	}
}

func TestPackClamps(t *testing.T) {
	if got := Pack(1000, 1, 0, 0, 255); got != 255 {
		t.Errorf("Pack clamp high = %v, want 255", got)
	}
	if got := Pack(-1000, 1, 0, 0, 255); got != 0 {
		t.Errorf("Pack clamp low = %v, want 0", got)
	}
}

func TestRepack(t *testing.T) {
	// same physical value, different gain/offset
	srcGain, srcOffset := 0.5, -20.0
	dstGain, dstOffset := 1.0, -10.0

	srcRaw := Pack(30.0, srcGain, srcOffset, -200, 200)
	dstRaw := Repack(srcRaw, srcGain, srcOffset, dstGain, dstOffset, -200, 200)

	srcPhys := Unpack(srcRaw, srcGain, srcOffset)
	dstPhys := Unpack(dstRaw, dstGain, dstOffset)

	if diff := srcPhys - dstPhys; diff > 1.0 || diff < -1.0 {
		t.Errorf("repacked physical value %v diverged from source %v", dstPhys, srcPhys)
	}
}
