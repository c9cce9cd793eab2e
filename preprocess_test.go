package aec

import "testing"

// TestPreprocessUnsignedBranches exercises each of preprocessUnsigned's
// four branches (up-small, up-overflow, down-small, down-overflow) against
// values worked out by hand from spec.md §4.3's mapping.
func TestPreprocessUnsignedBranches(t *testing.T) {
	xmax := uint64(255)
	raw := []uint32{10, 12, 8, 0, 255, 128, 1, 254}
	want := []uint32{10, 4, 7, 15, 255, 127, 253, 254}

	pp := make([]uint32, len(raw))
	preprocessUnsigned(raw, pp, xmax)

	for i := range want {
		if pp[i] != want[i] {
			t.Errorf("pp[%d] = %d, want %d", i, pp[i], want[i])
		}
	}
}

func TestPreprocessUnsignedRangeBound(t *testing.T) {
	// Every mapped value must itself fit within [0, xmax], since it
	// becomes the input to Rice coding downstream.
	xmax := uint64(255)
	raw := []uint32{0, 255, 0, 255, 128, 1, 254, 2}
	pp := make([]uint32, len(raw))
	preprocessUnsigned(raw, pp, xmax)
	for i, v := range pp {
		if uint64(v) > xmax {
			t.Errorf("pp[%d] = %d exceeds xmax %d", i, v, xmax)
		}
	}
}

func TestPreprocessSignedRangeBound(t *testing.T) {
	const bps = 8
	xmin, xmax := int64(-128), int64(127)
	raw := make([]uint32, 8)
	for i := range raw {
		// two's-complement encodings of values between -100 and 122
		raw[i] = uint32(uint8(i*37 - 100))
	}
	pp := make([]uint32, len(raw))
	preprocessSigned(raw, pp, bps, xmin, xmax)
	for i, v := range pp {
		if uint64(v) > uint64(xmax-xmin) {
			t.Errorf("pp[%d] = %d exceeds xmax-xmin %d", i, v, xmax-xmin)
		}
	}
}

func TestPreprocessFirstSampleIdentity(t *testing.T) {
	raw := []uint32{42, 1, 2, 3}
	pp := make([]uint32, len(raw))
	preprocessUnsigned(raw, pp, 255)
	if pp[0] != raw[0] {
		t.Fatalf("pp[0] = %d, want %d", pp[0], raw[0])
	}
}
