package aec

import "math"

// ros is the zero-run-length sentinel ("Remainder-of-Segment") used in
// place of a literal count when a zero-block run is terminated by a
// 64-block boundary or RSI end rather than by a nonzero block, and the
// run exceeds 4 blocks (spec.md §4.4, GLOSSARY "ROS").
const ros = -1

// mode names a state in the driver's finite-state machine (spec.md
// §4.7). Only modeGetBlock, modeGetRSI and modeFlushBlockResumable are
// ever stored across a suspend/resume boundary; the others are reached
// and left within a single call to Encode.
type mode int

const (
	modeGetBlock mode = iota
	modeGetRSI
	modeFlushBlockResumable
)

// Status reports the outcome of a call to Stream.Encode.
type Status int

const (
	// StatusOK means the call returned because input or output ran out;
	// call Encode again with more of either to make progress.
	StatusOK Status = iota
	// StatusStreamEnd means a requested flush completed: every byte of
	// input has been consumed and the trailing partial byte has been
	// written to NextOut.
	StatusStreamEnd
)

// Stream is a single adaptive-entropy-encoder actor (spec.md §3, §6).
// It is not safe for concurrent use by multiple goroutines.
type Stream struct {
	// NextIn and NextOut are the caller-owned input and output cursors.
	// The caller reslices them between calls to reflect what Encode
	// consumed or produced; len(NextIn) and len(NextOut) stand in for
	// spec.md's avail_in/avail_out.
	NextIn, NextOut []byte
	// TotalIn and TotalOut are cumulative byte counts maintained by the
	// encoder across every call.
	TotalIn, TotalOut int64

	cfg Config
	der derived

	raw     []uint32 // nil unless FlagPreprocess is set; see rawView
	pp      []uint32
	block   []uint32
	blockOff int

	blocksAvail int
	ref         bool
	k           int
	uncompLen   uint32

	zeroBlocks    int
	zeroRef       bool
	zeroRefSample uint32
	blockNonzero  bool

	bw        bitWriter
	cdsBuf    [cdsLen]byte
	directOut bool

	mode mode
	i    int

	flush   bool
	flushed bool
}

// NewStream validates cfg and constructs a Stream ready to encode
// (spec.md §6 "encode_init").
func NewStream(cfg Config) (*Stream, error) {
	der, err := cfg.validate()
	if err != nil {
		return nil, wrap(err)
	}

	rsiSamples := cfg.RSI * cfg.BlockSize
	s := &Stream{cfg: cfg, der: der}
	s.pp = make([]uint32, rsiSamples)
	if cfg.Flags.Has(FlagPreprocess) {
		s.raw = make([]uint32, rsiSamples)
	} else {
		s.uncompLen = uint32(cfg.BlockSize * cfg.BitsPerSample)
	}
	s.block = s.pp[0:cfg.BlockSize]

	s.bw.buf = s.cdsBuf[:]
	s.bw.free = 8
	s.mode = modeGetBlock

	return s, nil
}

// rawView returns the buffer ingestion should fill: a dedicated raw
// buffer when preprocessing will run over it, or pp directly otherwise
// (spec.md §9 "Aliasing of raw and pp").
func (s *Stream) rawView() []uint32 {
	if s.cfg.Flags.Has(FlagPreprocess) {
		return s.raw
	}
	return s.pp
}

func (s *Stream) refIdx() int {
	if s.ref {
		return 1
	}
	return 0
}

// Encode drives the state machine until input or output is exhausted,
// or (with flush set) until the stream is fully flushed (spec.md §6
// "encode", §4.7 "Driver loop").
func (s *Stream) Encode(flush bool) (Status, error) {
	inStart, outStart := len(s.NextIn), len(s.NextOut)
	s.flush = flush

loop:
	for {
		switch s.mode {
		case modeGetBlock:
			s.getBlock()
		case modeGetRSI:
			if !s.getRSIResumable() {
				break loop
			}
		case modeFlushBlockResumable:
			if !s.flushBlockResumable() {
				break loop
			}
		}
	}

	if s.directOut {
		n := s.bw.pos
		s.NextOut = s.NextOut[n:]
		s.cdsBuf[0] = s.bw.buf[s.bw.pos]
		s.bw.reset(s.cdsBuf[:])
		s.directOut = false
	}

	s.TotalIn += int64(inStart - len(s.NextIn))
	s.TotalOut += int64(outStart - len(s.NextOut))

	if s.flushed {
		return StatusStreamEnd, nil
	}
	return StatusOK, nil
}

// EncodeEnd reports whether a requested flush actually completed
// (spec.md §6 "encode_end", §7 "StreamError").
func (s *Stream) EncodeEnd() error {
	if s.flush && !s.flushed {
		return wrap(ErrStream)
	}
	return nil
}

// BufferEncode is the one-shot convenience wrapper of spec.md §6
// ("buffer_encode" = init + encode(FLUSH) + end), adapted to Go's
// growable output slices instead of a single caller-sized buffer.
func BufferEncode(cfg Config, in []byte) ([]byte, error) {
	s, err := NewStream(cfg)
	if err != nil {
		return nil, err
	}
	s.NextIn = in

	var out []byte
	scratch := make([]byte, 4096)
	for {
		s.NextOut = scratch
		status, err := s.Encode(true)
		if err != nil {
			return nil, err
		}
		out = append(out, scratch[:len(scratch)-len(s.NextOut)]...)
		if status == StatusStreamEnd {
			break
		}
	}

	if err := s.EncodeEnd(); err != nil {
		return nil, err
	}
	return out, nil
}

// initOutput chooses between writing straight into the caller's output
// buffer and an internal scratch buffer, carrying the pending partial
// byte across the switch (spec.md §4.7 "init_output policy").
func (s *Stream) initOutput() {
	if len(s.NextOut) > cdsLen {
		if !s.directOut {
			s.directOut = true
			s.NextOut[0] = s.bw.buf[s.bw.pos]
			s.bw.reset(s.NextOut)
		}
		return
	}
	s.cdsBuf[0] = s.bw.buf[s.bw.pos]
	s.bw.reset(s.cdsBuf[:])
	s.directOut = false
}

// getBlock supplies the next block of preprocessed data, pulling a new
// RSI when the current one is exhausted (spec.md §4.7 "get_block").
func (s *Stream) getBlock() {
	s.initOutput()

	if s.blockNonzero {
		s.blockNonzero = false
		s.selectCodeOption()
		return
	}

	if s.blocksAvail == 0 {
		s.blocksAvail = s.cfg.RSI - 1
		s.blockOff = 0
		s.block = s.pp[0:s.cfg.BlockSize]

		if len(s.NextIn) >= s.der.rsiLen {
			s.fillRSIFast()
			if s.cfg.Flags.Has(FlagPreprocess) {
				s.preprocess()
			}
			s.checkZeroBlock()
			return
		}
		s.i = 0
		s.mode = modeGetRSI
		return
	}

	if s.ref {
		s.ref = false
		s.uncompLen = uint32(s.cfg.BlockSize * s.cfg.BitsPerSample)
	}
	s.blockOff += s.cfg.BlockSize
	s.block = s.pp[s.blockOff : s.blockOff+s.cfg.BlockSize]
	s.blocksAvail--
	s.checkZeroBlock()
}

// fillRSIFast pulls a whole RSI of samples in one pass, used when the
// input buffer already holds rsi_len bytes (spec.md §4.2 "fast path").
func (s *Stream) fillRSIFast() {
	raw := s.rawView()
	bps := s.der.bytesPerSample
	buf := s.NextIn
	for i := range raw {
		raw[i] = s.der.accessor.Sample(buf[:bps])
		buf = buf[bps:]
	}
	s.NextIn = buf
}

// getRSIResumable is the slow ingestion path, pulling one sample at a
// time and suspending when input runs short (spec.md §4.2
// "m_get_rsi_resumable"). On a flush with a short tail, it replicates
// the last sample to pad the RSI and derives blocks_avail from the real
// sample count.
func (s *Stream) getRSIResumable() bool {
	raw := s.rawView()
	bps := s.der.bytesPerSample
	rsiSamples := s.cfg.RSI * s.cfg.BlockSize

	for {
		if len(s.NextIn) >= bps {
			raw[s.i] = s.der.accessor.Sample(s.NextIn[:bps])
			s.NextIn = s.NextIn[bps:]
		} else if s.flush {
			if s.i > 0 {
				blocksAvail := s.i/s.cfg.BlockSize - 1
				if s.i%s.cfg.BlockSize != 0 {
					blocksAvail++
				}
				s.blocksAvail = blocksAvail
				for s.i < rsiSamples {
					raw[s.i] = raw[s.i-1]
					s.i++
				}
				break
			}
			return s.finishFlush()
		} else {
			return false
		}

		s.i++
		if s.i >= rsiSamples {
			break
		}
	}

	if s.cfg.Flags.Has(FlagPreprocess) {
		s.preprocess()
	}
	s.checkZeroBlock()
	return true
}

// finishFlush pads the final partial byte with zeros and writes it out
// once output space is available, marking the stream flushed (spec.md
// §4.7 "Final flush"). It is idempotent: re-entry after a suspension
// with no output space re-emits zero bits into an already-zero field.
func (s *Stream) finishFlush() bool {
	s.bw.emit(0, s.bw.free)
	if len(s.NextOut) == 0 {
		return false
	}
	if !s.directOut {
		s.NextOut[0] = s.bw.buf[s.bw.pos]
	}
	s.NextOut = s.NextOut[1:]
	s.flushed = true
	return false
}

// preprocess computes prediction residuals for the RSI just ingested
// and establishes the first block's reference-sample bookkeeping
// (spec.md §4.3).
func (s *Stream) preprocess() {
	if s.cfg.Flags.Has(FlagSigned) {
		preprocessSigned(s.raw, s.pp, s.cfg.BitsPerSample, s.der.xmin, int64(s.der.xmax))
	} else {
		preprocessUnsigned(s.raw, s.pp, s.der.xmax)
	}
	s.ref = true
	s.uncompLen = uint32((s.cfg.BlockSize - 1) * s.cfg.BitsPerSample)
}

// checkZeroBlock scans the current block and either defers to a pending
// zero run, starts option selection, or extends the run (spec.md §4.4).
func (s *Stream) checkZeroBlock() {
	ref := s.refIdx()
	nonzero := false
	for _, v := range s.block[ref:] {
		if v != 0 {
			nonzero = true
			break
		}
	}

	if nonzero {
		if s.zeroBlocks != 0 {
			s.blockNonzero = true
			s.encodeZero()
			return
		}
		s.selectCodeOption()
		return
	}

	s.zeroBlocks++
	if s.zeroBlocks == 1 {
		s.zeroRef = s.ref
		s.zeroRefSample = s.block[0]
	}
	if s.blocksAvail == 0 || (s.cfg.RSI-s.blocksAvail)%64 == 0 {
		if s.zeroBlocks > 4 {
			s.zeroBlocks = ros
		}
		s.encodeZero()
		return
	}
	s.mode = modeGetBlock
}

// selectCodeOption picks the cheapest applicable option and hands off
// to its encoder (spec.md §4.5.3).
func (s *Stream) selectCodeOption() {
	ref := s.refIdx()

	splitLen := uint64(math.MaxUint32)
	if s.der.idLen > 1 {
		splitLen = assessSplittingOption(s.block, ref, &s.k, int(s.der.kmax))
	}
	seLen := assessSEOption(s.block, s.uncompLen)

	if splitLen < uint64(s.uncompLen) {
		if splitLen < uint64(seLen) {
			s.cfg.logger().Printf("option: splitting k=%d (%d bits)", s.k, splitLen)
			s.encodeSplitting()
		} else {
			s.cfg.logger().Printf("option: second extension (%d bits)", seLen)
			s.encodeSE()
		}
		return
	}
	if uint64(s.uncompLen) <= uint64(seLen) {
		s.cfg.logger().Printf("option: uncompressed (%d bits)", s.uncompLen)
		s.encodeUncomp()
	} else {
		s.cfg.logger().Printf("option: second extension (%d bits)", seLen)
		s.encodeSE()
	}
}

// flushBlock hands the just-encoded block's bytes to the output, either
// immediately (direct mode) or via the resumable copy path (buffered
// mode), and pads to a byte boundary at RSI end when requested (spec.md
// §4.7 "flush_block").
func (s *Stream) flushBlock() {
	if s.blocksAvail == 0 && s.cfg.Flags.Has(FlagPadRSI) && !s.blockNonzero {
		s.bw.emit(0, s.bw.free%8)
	}

	if s.directOut {
		n := s.bw.pos
		s.NextOut = s.NextOut[n:]
		s.bw.buf = s.bw.buf[n:]
		s.bw.pos = 0
		s.mode = modeGetBlock
		return
	}

	s.i = 0
	s.mode = modeFlushBlockResumable
}

// flushBlockResumable copies buffered CDS bytes into NextOut, one
// resumable step at a time (spec.md §4.7 "flush_block_resumable").
func (s *Stream) flushBlockResumable() bool {
	pending := s.bw.pos - s.i
	n := pending
	if n > len(s.NextOut) {
		n = len(s.NextOut)
	}
	copy(s.NextOut, s.cdsBuf[s.i:s.i+n])
	s.NextOut = s.NextOut[n:]
	s.i += n

	if len(s.NextOut) == 0 {
		return false
	}
	s.mode = modeGetBlock
	return true
}
