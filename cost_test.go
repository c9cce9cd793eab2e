package aec

import (
	"math"
	"testing"
)

func TestBlockFS(t *testing.T) {
	block := []uint32{8, 4, 2, 1, 0}
	// k=1: 8>>1=4, 4>>1=2, 2>>1=1, 1>>1=0, 0>>1=0 => sum 7
	if got := blockFS(block, 0, 1); got != 7 {
		t.Errorf("blockFS(k=1) = %d, want 7", got)
	}
	// ref skips the leading reference sample.
	if got := blockFS(block, 1, 1); got != 3 {
		t.Errorf("blockFS(ref=1, k=1) = %d, want 3", got)
	}
	if got := blockFS(block, 0, 0); got != 15 {
		t.Errorf("blockFS(k=0) = %d, want 15", got)
	}
}

// bruteForceSplitLen computes the exact minimum Rice-splitting length by
// trying every k in [0, kmax], the reference this package's convex-search
// heuristic must agree with (spec.md §8 "k-search always finds the true
// minimum").
func bruteForceSplitLen(block []uint32, ref, kmax int) (uint64, int) {
	thisBS := uint64(len(block) - ref)
	best := uint64(math.MaxUint64)
	bestK := 0
	for k := 0; k <= kmax; k++ {
		length := blockFS(block, ref, k) + thisBS*uint64(k+1)
		if length < best {
			best = length
			bestK = k
		}
	}
	return best, bestK
}

func TestAssessSplittingOptionOptimality(t *testing.T) {
	const kmax = 29
	blocks := [][]uint32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{255, 254, 253, 1, 0, 128, 64, 32},
		{65535, 1, 2, 3, 70000, 5, 6, 7},
		{1000000, 999999, 1000001, 1000002, 999998, 1000003, 999997, 1000004},
		{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
	}
	for _, block := range blocks {
		for _, seed := range []int{0, 1, 5, 10, 20} {
			wantLen, _ := bruteForceSplitLen(block, 0, kmax)
			kPrev := seed
			gotLen := assessSplittingOption(block, 0, &kPrev, kmax)
			if gotLen != wantLen {
				t.Errorf("block=%v seed=%d: assessSplittingOption = %d, want %d", block, seed, gotLen, wantLen)
			}
		}
	}
}

func TestAssessSplittingOptionSkipsRef(t *testing.T) {
	block := []uint32{999999, 1, 1, 1, 1, 1, 1, 1}
	kPrev := 0
	got := assessSplittingOption(block, 1, &kPrev, 29)
	want, _ := bruteForceSplitLen(block, 1, 29)
	if got != want {
		t.Errorf("assessSplittingOption with ref=1 = %d, want %d", got, want)
	}
}

func TestAssessSEOption(t *testing.T) {
	// Two pairs: (1,2) and (3,4). Length = 1 (flag bit)
	// + sum(d*(d+1)/2 + second + 1 terminator bit) per pair.
	block := []uint32{1, 2, 3, 4}
	d0 := uint32(1 + 2)
	d1 := uint32(3 + 4)
	want := uint32(1) + (d0*(d0+1)/2 + 2 + 1) + (d1*(d1+1)/2 + 4 + 1)
	if got := assessSEOption(block, math.MaxUint32); got != want {
		t.Errorf("assessSEOption = %d, want %d", got, want)
	}
}

func TestAssessSEOptionOverflow(t *testing.T) {
	block := []uint32{1 << 20, 1 << 20}
	if got := assessSEOption(block, 100); got != math.MaxUint32 {
		t.Errorf("assessSEOption over uncompLen = %d, want MaxUint32", got)
	}
}
