package odim

import (
	"math"
	"testing"
)

func TestGasattnRoundTrip(t *testing.T) {
	file := 0.00015 // dB/m
	internal := GasattnToInternal(2.4, file)
	back := GasattnFromInternal(2.4, internal)
	if math.Abs(back-file) > 1e-12 {
		t.Errorf("round trip = %v, want %v", back, file)
	}
}

func TestGasattnNoConversionBelowVersion(t *testing.T) {
	file := 0.00015
	if got := GasattnToInternal(2.2, file); got != file {
		t.Errorf("version below 2.4 should pass through unchanged, got %v", got)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	fileMeters := 250000.0
	internal := RangeToInternal(2.4, fileMeters)
	if internal != 250.0 {
		t.Errorf("range to internal = %v, want 250 km", internal)
	}
	back := RangeFromInternal(2.4, internal)
	if back != fileMeters {
		t.Errorf("range from internal = %v, want %v", back, fileMeters)
	}
}

func TestPowerRoundTrip(t *testing.T) {
	fileDBm := 87.0
	internal := PowerToInternal(2.4, fileDBm)
	back := PowerFromInternal(2.4, internal)
	if math.Abs(back-fileDBm) > 1e-9 {
		t.Errorf("power round trip = %v, want %v", back, fileDBm)
	}
}

func TestPowerFromInternalNonPositivePassesThrough(t *testing.T) {
	if got := PowerFromInternal(2.4, -5); got != -5 {
		t.Errorf("non-positive power should pass through unchanged, got %v", got)
	}
}

func TestTXPowerArray(t *testing.T) {
	in := []float64{80, 85, 90}
	internal := TXPowerArrayToInternal(2.4, in)
	back := TXPowerArrayFromInternal(2.4, internal)
	for i := range in {
		if math.Abs(back[i]-in[i]) > 1e-9 {
			t.Errorf("index %d: round trip = %v, want %v", i, back[i], in[i])
		}
	}
}
