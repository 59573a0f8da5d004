// Package odim implements the boundary unit conversions and
// source-identifier parsing used when an ODIM-HDF5 file is the origin or
// destination of a polar volume or scan, without performing any file I/O
// itself.
package odim

import "math"

// Version24 is the ODIM file-format version at which the attribute units
// below changed. Versions below this perform no conversion.
const Version24 = 2.4

// GasattnToInternal converts how/gasattn from its ODIM file representation
// (dB/m) to the internal representation (dB/km) used by this package's
// callers.
func GasattnToInternal(fileVersion, fileValue float64) float64 {
	if fileVersion < Version24 {
		return fileValue
	}
	return fileValue * 1000.0
}

// GasattnFromInternal converts how/gasattn from internal (dB/km) to the
// ODIM file representation (dB/m).
func GasattnFromInternal(fileVersion, internalValue float64) float64 {
	if fileVersion < Version24 {
		return internalValue
	}
	return internalValue / 1000.0
}

// RangeToInternal converts how/minrange, how/maxrange,
// how/melting_layer_top_A and how/melting_layer_bottom_A from the ODIM file
// representation (meters) to the internal representation (kilometers).
func RangeToInternal(fileVersion, fileValue float64) float64 {
	if fileVersion < Version24 {
		return fileValue
	}
	return fileValue / 1000.0
}

// RangeFromInternal converts the same attributes from internal kilometers
// to the ODIM file representation in meters.
func RangeFromInternal(fileVersion, internalValue float64) float64 {
	if fileVersion < Version24 {
		return internalValue
	}
	return internalValue * 1000.0
}

// PowerToInternal converts how/nomTXpower, how/peakpwr and how/avgpwr from
// the ODIM file representation (dBm) to the internal representation (kW).
func PowerToInternal(fileVersion, fileValue float64) float64 {
	if fileVersion < Version24 {
		return fileValue
	}
	return math.Pow(10.0, (fileValue-30.0)/10.0) / 1000.0
}

// PowerFromInternal converts the same attributes from internal kW to the
// ODIM file representation in dBm. Values <= 0 kW pass through unchanged,
// matching the upstream implementation (a non-positive power has no dBm
// equivalent).
func PowerFromInternal(fileVersion, internalValue float64) float64 {
	if fileVersion < Version24 {
		return internalValue
	}
	if internalValue > 0 {
		return 10*math.Log10(1000.0*internalValue) + 30
	}
	return internalValue
}

// TXPowerArrayToInternal converts the how/TXpower array from dBm to kW,
// element-wise, in place semantics expressed functionally: it returns a new
// slice.
func TXPowerArrayToInternal(fileVersion float64, values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = PowerToInternal(fileVersion, v)
	}
	return out
}

// TXPowerArrayFromInternal converts the how/TXpower array from kW to dBm,
// element-wise.
func TXPowerArrayFromInternal(fileVersion float64, values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = PowerFromInternal(fileVersion, v)
	}
	return out
}
