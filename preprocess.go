package aec

import "github.com/scidata-tools/aec/internal/bits"

// preprocessUnsigned computes prediction residuals for one RSI of unsigned
// samples (spec.md §4.3 "Preprocessor", unsigned branch). raw holds
// rsi*block_size raw samples; pp receives the residuals. raw and pp may
// be the same slice only when preprocessing is disabled, in which case
// this function is never called.
func preprocessUnsigned(raw, pp []uint32, xmax uint64) {
	n := len(raw) - 1
	pp[0] = raw[0]
	for i := 0; i < n; i++ {
		xi, xi1 := raw[i], raw[i+1]
		if xi1 >= xi {
			d := uint64(xi1 - xi)
			if d <= uint64(xi) {
				pp[i+1] = uint32(2 * d)
			} else {
				pp[i+1] = xi1
			}
		} else {
			d := uint64(xi - xi1)
			if d <= xmax-uint64(xi) {
				pp[i+1] = uint32(2*d - 1)
			} else {
				pp[i+1] = uint32(xmax - uint64(xi1))
			}
		}
	}
}

// preprocessSigned computes prediction residuals for one RSI of signed
// samples (spec.md §4.3 "Preprocessor", signed branch). Each raw sample
// is sign-extended from its bps-bit two's-complement representation via
// bits.IntN before the same up/down mapping is applied over the signed
// [xmin, xmax] range, using 64-bit arithmetic to avoid overflow.
func preprocessSigned(raw, pp []uint32, bps int, xmin, xmax int64) {
	n := len(raw) - 1
	pp[0] = raw[0]
	prev := bits.IntN(uint64(raw[0]), uint(bps))
	for i := 0; i < n; i++ {
		cur := bits.IntN(uint64(raw[i+1]), uint(bps))
		if cur < prev {
			d := prev - cur
			if d <= xmax-prev {
				pp[i+1] = uint32(2*d - 1)
			} else {
				pp[i+1] = uint32(xmax - cur)
			}
		} else {
			d := cur - prev
			if d <= prev-xmin {
				pp[i+1] = uint32(2 * d)
			} else {
				pp[i+1] = uint32(cur - xmin)
			}
		}
		prev = cur
	}
}
