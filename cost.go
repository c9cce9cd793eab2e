package aec

import "math"

// blockFS sums (s >> k) over block[ref:], the per-sample fundamental
// sequence length a Splitting option of parameter k would spend before
// its terminating one-bits (spec.md §4.5.1 "fs_sum").
func blockFS(block []uint32, ref, k int) uint64 {
	var fs uint64
	for _, s := range block[ref:] {
		fs += uint64(s >> uint(k))
	}
	return fs
}

// assessSplittingOption finds the Rice splitting parameter minimizing
// coded length and returns that length, updating kPrev in place to seed
// the next block's search (spec.md §4.5.1 "k-search heuristic"). It
// exploits convexity of the cost function in k to explore both
// directions from the previous block's k with at most one reversal.
func assessSplittingOption(block []uint32, ref int, kPrev *int, kmax int) uint64 {
	thisBS := uint64(len(block) - ref)
	lenMin := uint64(math.MaxUint64)
	k := *kPrev
	kMin := k
	noTurn := k == 0
	up := true

	for {
		fsLen := blockFS(block, ref, k)
		length := fsLen + thisBS*uint64(k+1)

		if length < lenMin {
			if lenMin < math.MaxUint64 {
				noTurn = true
			}
			lenMin = length
			kMin = k

			if up {
				if fsLen < thisBS || k >= kmax {
					if noTurn {
						break
					}
					k = *kPrev - 1
					up = false
					noTurn = true
				} else {
					k++
				}
			} else {
				if fsLen >= thisBS || k == 0 {
					break
				}
				k--
			}
		} else {
			if noTurn {
				break
			}
			k = *kPrev - 1
			up = false
			noTurn = true
		}
	}

	*kPrev = kMin
	return lenMin
}

// assessSEOption computes the coded length of a block under the Second
// Extension option (spec.md §4.5.2): adjacent samples pair up, each pair
// contributing a fundamental sequence coding d(d+1)/2+b (that many zero
// bits plus a terminating one bit), plus one leading flag bit for the
// block. A pair whose sum exceeds uncompLen makes SE worse
// than the Uncompressed option by construction, so the whole block is
// reported as maximally expensive rather than overflowing the sum.
func assessSEOption(block []uint32, uncompLen uint32) uint32 {
	length := uint32(1)
	for i := 0; i < len(block); i += 2 {
		d := uint64(block[i]) + uint64(block[i+1])
		if d > uint64(uncompLen) {
			return math.MaxUint32
		}
		length += uint32(d*(d+1)/2) + block[i+1] + 1
	}
	return length
}
