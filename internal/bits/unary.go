// Package bits provides small bit-level codec helpers shared by the
// encoder and its test suite: a fundamental-sequence (unary) reader and
// writer built on top of icza/bitio, and two's-complement sign extension.
package bits

import (
	"github.com/icza/bitio"
)

// A Reader decodes fundamental-sequence (unary) codes from an underlying
// bit source. It exists so tests can verify the encoder's hand-rolled bit
// emitter against an independent, third-party bit reader.
type Reader struct {
	*bitio.Reader
}

// NewReader returns a Reader decoding from r.
func NewReader(r *bitio.Reader) *Reader {
	return &Reader{Reader: r}
}

// ReadFS decodes and returns a fundamental sequence (CCSDS 121.0-B-2 unary
// code): the value is the number of leading zero bits before a one.
//
// Examples of FS-coded binary on the left and decoded decimal on the right:
//
//	1       => 0
//	01      => 1
//	001     => 2
//	0001    => 3
//	00001   => 4
//	000001  => 5
//	0000001 => 6
func (br *Reader) ReadFS() (x uint64, err error) {
	for {
		bit, err := br.ReadBool()
		if err != nil {
			return 0, err
		}
		if bit {
			return x, nil
		}
		x++
	}
}

// WriteFS encodes x as a fundamental sequence (n zero bits followed by a
// one) onto bw. Used by tests to build the expected bit stream for a given
// set of emitfs calls.
func WriteFS(bw *bitio.Writer, x uint64) error {
	for ; x >= 8; x -= 8 {
		if err := bw.WriteByte(0x0); err != nil {
			return err
		}
	}
	return bw.WriteBits(1, byte(x+1))
}
