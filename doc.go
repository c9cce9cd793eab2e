/*
Links:
	https://public.ccsds.org/Pubs/121x0b3.pdf
	https://public.ccsds.org/Pubs/120x0g3.pdf
	https://github.com/MathisRosenhauer/libaec
*/

// Package aec implements the CCSDS 121.0-B-2 Adaptive Entropy Encoder, a
// predictive, Rice/Golomb-based lossless compressor for fixed-width
// integer sample streams (telemetry, imagery, and similar instrument
// data; see CCSDS 120.0-G-3 for the surrounding image-compression
// context).
//
// A Stream is configured once via NewStream and then driven by repeated
// calls to Encode, in the resumable push/pull style of a streaming
// codec: each call consumes as much of NextIn and produces as much of
// NextOut as it can before returning, and may be resumed with more of
// either on the next call. BufferEncode wraps this into a single-shot
// convenience function for callers holding the whole input in memory.
package aec
