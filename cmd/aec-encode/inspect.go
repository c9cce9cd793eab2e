package main

import (
	"fmt"
	"io"
	"os"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scidata-tools/aec/internal/bits"
)

// newInspectCmd builds the diagnostic bitstream dumper of SPEC_FULL §4.11.
// It has no decoder: it walks identifier/body boundaries the caller tells
// it to expect, printing each coded unit's option and fundamental-sequence
// lengths so a human can sanity-check an encoder run by eye.
func newInspectCmd() *cobra.Command {
	var (
		blockSize  int
		idLen      int
		bps        int
		rsi        int
		preprocess bool
	)
	cmd := &cobra.Command{
		Use:   "inspect AEC_FILE",
		Short: "dump the raw bit layout of a compressed stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectFile(args[0], blockSize, idLen, bps, rsi, preprocess)
		},
	}
	cmd.Flags().IntVar(&blockSize, "block-size", 16, "samples per block, must match the encoding run")
	cmd.Flags().IntVar(&idLen, "id-len", 4, "identifier field width in bits, must match the encoding run")
	cmd.Flags().IntVar(&bps, "bits-per-sample", 16, "sample width in bits, for reference-sample fields")
	cmd.Flags().IntVar(&rsi, "rsi", 128, "blocks per reference sample interval, must match the encoding run")
	cmd.Flags().BoolVar(&preprocess, "preprocess", true, "whether the run was encoded with preprocessing (carries reference samples)")
	return cmd
}

// inspectFile walks the coded units of the stream at path, each an
// identifier followed by a body (spec.md §4.6): Zero and Second Extension
// share an all-zero id_len-bit prefix and are told apart by one more bit
// (spec.md §4.6/§6), Splitting is identified by id-1 = k, and Uncompressed
// by the all-ones identifier. blockPos tracks position within the current
// RSI so reference-sample placement (first block of every RSI, when
// preprocess is set) and the rare ROS run length can be reconstructed.
func inspectFile(path string, blockSize, idLen, bps, rsi int, preprocess bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	br := bitio.NewReader(f)
	zr := bits.NewReader(br)

	allOnes := uint64(1)<<uint(idLen) - 1
	blockPos := 0
	for block := 0; ; block++ {
		id, err := br.ReadBits(uint8(idLen))
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.WithStack(err)
		}
		ref := preprocess && blockPos == 0

		switch {
		case id == allOnes:
			fmt.Printf("block %4d: uncompressed (%d raw samples follow)\n", block, blockSize)
			for i := 0; i < blockSize; i++ {
				if _, err := br.ReadBits(uint8(bps)); err != nil {
					return errors.WithStack(err)
				}
			}
			blockPos = (blockPos + 1) % rsi

		case id == 0:
			extra, err := br.ReadBool()
			if err != nil {
				return errors.WithStack(err)
			}
			if extra {
				fmt.Printf("block %4d: second extension\n", block)
				if ref {
					if _, err := br.ReadBits(uint8(bps)); err != nil {
						return errors.WithStack(err)
					}
				}
				for i := 0; i < blockSize/2; i++ {
					n, err := zr.ReadFS()
					if err != nil {
						return errors.WithStack(err)
					}
					fmt.Printf("  pair %d: fs=%d\n", i, n)
				}
				blockPos = (blockPos + 1) % rsi
				continue
			}

			if ref {
				if _, err := br.ReadBits(uint8(bps)); err != nil {
					return errors.WithStack(err)
				}
			}
			fsVal, err := zr.ReadFS()
			if err != nil {
				return errors.WithStack(err)
			}
			n := zeroRunLength(fsVal, blockPos, rsi)
			fmt.Printf("block %4d: zero (%d blocks)\n", block, n)
			blockPos = (blockPos + n) % rsi

		default:
			k := int(id) - 1
			fmt.Printf("block %4d: splitting k=%d\n", block, k)
			body := blockSize
			if ref {
				if _, err := br.ReadBits(uint8(bps)); err != nil {
					return errors.WithStack(err)
				}
				body--
			}
			for i := 0; i < body; i++ {
				if _, err := zr.ReadFS(); err != nil {
					return errors.WithStack(err)
				}
			}
			if k > 0 {
				for i := 0; i < body; i++ {
					if _, err := br.ReadBits(uint8(k)); err != nil {
						return errors.WithStack(err)
					}
				}
			}
			blockPos = (blockPos + 1) % rsi
		}
	}
}

// zeroRunLength recovers the number of logical blocks a Zero-option coded
// unit represents from its fundamental-sequence terminator (spec.md §4.6,
// GLOSSARY "ROS"): values below 4 are zero_blocks-1, 4 is the ROS
// sentinel (the run extends to the next 64-block or RSI boundary), and
// values above 4 are zero_blocks itself.
func zeroRunLength(fsVal uint64, blockPos, rsi int) int {
	switch {
	case fsVal < 4:
		return int(fsVal) + 1
	case fsVal > 4:
		return int(fsVal)
	default:
		toSegment := 64 - blockPos%64
		toRSIEnd := rsi - blockPos
		if toSegment < toRSIEnd {
			return toSegment
		}
		return toRSIEnd
	}
}
