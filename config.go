package aec

import "log"

// Flags control optional encoder behavior (spec.md §3 "Flags").
type Flags uint8

// Flag bits. Byte order defaults to LSB when FlagMSB is unset.
const (
	// FlagSigned interprets raw samples as signed two's complement values
	// instead of unsigned.
	FlagSigned Flags = 1 << iota
	// FlagPreprocess enables the prediction + mapping preprocessor (C3).
	// Without it, residuals are the raw samples themselves.
	FlagPreprocess
	// FlagMSB selects most-significant-byte-first sample accessors.
	// Unset selects least-significant-byte-first.
	FlagMSB
	// Flag3Byte packs 24-bit-or-less samples into 3 bytes instead of 4
	// when bits_per_sample is in (16, 24].
	Flag3Byte
	// FlagRestricted selects the small-alphabet identifier-length
	// reduction for bits_per_sample <= 4.
	FlagRestricted
	// FlagPadRSI pads the output to a byte boundary at the end of every
	// Reference Sample Interval, instead of only at end of stream.
	FlagPadRSI
)

// Has reports whether f contains every bit set in mask.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Config holds the immutable, validated parameters of an encoder stream
// (spec.md §3 "Stream configuration"). Construct via NewStream, which
// validates and derives internal parameters once, matching the source
// corpus's convention of eager, fail-fast construction.
type Config struct {
	// BitsPerSample is the sample width, in [1, 32].
	BitsPerSample int
	// BlockSize is the number of samples per block; one of 8, 16, 32, 64.
	BlockSize int
	// RSI is the number of blocks per Reference Sample Interval, in
	// [1, 4096].
	RSI int
	// Flags selects signedness, byte order, preprocessing and padding.
	Flags Flags
	// Logger receives informational, non-fatal notices (the code option
	// and bit length chosen for each block). Defaults to a discard
	// logger when nil, in the spirit of mewkiz/flac's use of the standard
	// log package for skip/ignore notices.
	Logger *log.Logger
}

// derived holds the parameters spec.md §3 computes from Config once at
// init time ("Derived parameters").
type derived struct {
	idLen          int
	kmax           uint32
	xmin           int64
	xmax           uint64
	rsiLen         int
	bytesPerSample int
	accessor       SampleAccessor
}

// validate checks cfg against the constraints of spec.md §7
// ("ConfigurationError") and computes its derived parameters.
func (cfg Config) validate() (derived, error) {
	var d derived

	if cfg.BitsPerSample <= 0 || cfg.BitsPerSample > 32 {
		return d, configError("bits_per_sample must be in [1, 32], got %d", cfg.BitsPerSample)
	}
	switch cfg.BlockSize {
	case 8, 16, 32, 64:
	default:
		return d, configError("block_size must be one of 8, 16, 32, 64, got %d", cfg.BlockSize)
	}
	if cfg.RSI <= 0 || cfg.RSI > 4096 {
		return d, configError("rsi must be in [1, 4096], got %d", cfg.RSI)
	}

	bps := cfg.BitsPerSample
	switch {
	case bps > 16:
		d.idLen = 5
		if bps <= 24 && cfg.Flags.Has(Flag3Byte) {
			d.bytesPerSample = 3
			if cfg.Flags.Has(FlagMSB) {
				d.accessor = accessor24msb{}
			} else {
				d.accessor = accessor24lsb{}
			}
		} else {
			d.bytesPerSample = 4
			if cfg.Flags.Has(FlagMSB) {
				d.accessor = accessor32msb{}
			} else {
				d.accessor = accessor32lsb{}
			}
		}
	case bps > 8:
		d.idLen = 4
		d.bytesPerSample = 2
		if cfg.Flags.Has(FlagMSB) {
			d.accessor = accessor16msb{}
		} else {
			d.accessor = accessor16lsb{}
		}
	default:
		if cfg.Flags.Has(FlagRestricted) {
			switch {
			case bps <= 2:
				d.idLen = 1
			case bps <= 4:
				d.idLen = 2
			default:
				return d, configError("RESTRICTED requires bits_per_sample <= 4, got %d", bps)
			}
		} else {
			d.idLen = 3
		}
		d.bytesPerSample = 1
		d.accessor = accessor8{}
	}

	d.rsiLen = cfg.RSI * cfg.BlockSize * d.bytesPerSample
	d.kmax = uint32(1<<uint(d.idLen)) - 3

	if cfg.Flags.Has(FlagSigned) {
		d.xmin = -(int64(1) << uint(bps-1))
		d.xmax = (uint64(1) << uint(bps-1)) - 1
	} else {
		d.xmin = 0
		d.xmax = (uint64(1) << uint(bps)) - 1
	}

	return d, nil
}

func (cfg Config) logger() *log.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return discardLogger
}

var discardLogger = log.New(discardWriter{}, "", 0)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
