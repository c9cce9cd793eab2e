package aec

import (
	"errors"
	"fmt"

	"github.com/mewkiz/pkg/errutil"
)

// Sentinel errors identifying the three error kinds spec.md §7 requires the
// encoder to distinguish. Use errors.Is to classify an error returned from
// this package.
var (
	// ErrConfig reports an invalid bits_per_sample, block_size, rsi, or
	// incompatible flag combination.
	ErrConfig = errors.New("aec: invalid configuration")
	// ErrMemory reports an allocation failure at init. Go's allocator does
	// not fail the way the C original's malloc could, and no code path in
	// this package returns it; it exists so callers can match all three
	// error kinds.
	ErrMemory = errors.New("aec: allocation failed")
	// ErrStream reports that FLUSH was requested but the encoder did not
	// reach its flushed terminal state before EncodeEnd was called.
	ErrStream = errors.New("aec: flush requested but stream was not flushed")
)

// configError wraps ErrConfig with a formatted explanation.
func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// wrap adds call-site context to an error already produced within this
// package, in the style of mewkiz/pkg/errutil used throughout the source
// corpus this encoder was grown from.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errutil.Err(err)
}
