package aec

// Option encoders (spec.md §4.6): each writes an identifier then a body
// for the current block, then hands off to flushBlock. Split/SE also
// emit a raw reference sample first when the block carries one.

func (s *Stream) encodeSplitting() {
	k := s.k
	s.bw.emit(uint32(k+1), s.der.idLen)

	ref := s.refIdx()
	if s.ref {
		s.bw.emit(s.block[0], s.cfg.BitsPerSample)
	}

	s.bw.emitBlockFS(s.block, k, ref)
	if k != 0 {
		s.bw.emitBlock(s.block, k, ref)
	}

	s.flushBlock()
}

func (s *Stream) encodeUncomp() {
	s.bw.emit((uint32(1)<<uint(s.der.idLen))-1, s.der.idLen)
	s.bw.emitBlock(s.block, s.cfg.BitsPerSample, 0)
	s.flushBlock()
}

func (s *Stream) encodeSE() {
	s.bw.emit(1, s.der.idLen+1)
	if s.ref {
		s.bw.emit(s.block[0], s.cfg.BitsPerSample)
	}

	for i := 0; i < len(s.block); i += 2 {
		d := s.block[i] + s.block[i+1]
		s.bw.emitfs(int(d*(d+1)/2 + s.block[i+1]))
	}

	s.flushBlock()
}

func (s *Stream) encodeZero() {
	s.bw.emit(0, s.der.idLen+1)
	if s.zeroRef {
		s.bw.emit(s.zeroRefSample, s.cfg.BitsPerSample)
	}

	switch {
	case s.zeroBlocks == ros:
		s.bw.emitfs(4)
	case s.zeroBlocks >= 5:
		s.bw.emitfs(s.zeroBlocks)
	default:
		s.bw.emitfs(s.zeroBlocks - 1)
	}

	s.zeroBlocks = 0
	s.flushBlock()
}
