package bitio

import "math"

// MaxUnsigned returns the largest unsigned value representable in w bits.
func MaxUnsigned(w uint) uint64 {
	if w >= 64 {
		return math.MaxUint64
	}
	return 1<<w - 1
}

// SignedRange returns the two's complement bounds for w bits (1..64).
func SignedRange(w uint) (lo, hi int64) {
	if w == 0 {
		return 0, 0
	}
	if w >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi = 1<<(w-1) - 1
	return -hi - 1, hi
}

// FitsSigned reports whether v is representable in w-bit two's complement.
func FitsSigned(v int64, w uint) bool {
	lo, hi := SignedRange(w)
	return v >= lo && v <= hi
}

// TruncSigned returns the w-bit two's complement pattern of v.
func TruncSigned(v int64, w uint) uint64 {
	return uint64(v) & MaxUnsigned(w)
}

// SignExtend interprets the low w bits of raw as a two's complement value.
func SignExtend(raw uint64, w uint) int64 {
	if w == 0 {
		return 0
	}
	if w >= 64 {
		return int64(raw)
	}
	shift := 64 - w
	return int64(raw<<shift) >> shift
}

// ByteWidth returns ceil(bits/8).
func ByteWidth(bits uint64) uint64 {
	return (bits + 7) / 8
}
