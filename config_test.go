package aec

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok 16-bit", Config{BitsPerSample: 16, BlockSize: 16, RSI: 128}, false},
		{"ok 8-bit", Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}, false},
		{"bad bits_per_sample zero", Config{BitsPerSample: 0, BlockSize: 8, RSI: 1}, true},
		{"bad bits_per_sample too wide", Config{BitsPerSample: 33, BlockSize: 8, RSI: 1}, true},
		{"bad block_size", Config{BitsPerSample: 16, BlockSize: 12, RSI: 1}, true},
		{"bad rsi zero", Config{BitsPerSample: 16, BlockSize: 8, RSI: 0}, true},
		{"bad rsi too large", Config{BitsPerSample: 16, BlockSize: 8, RSI: 4097}, true},
		{"restricted requires narrow width", Config{BitsPerSample: 8, BlockSize: 8, RSI: 1, Flags: FlagRestricted}, true},
		{"restricted ok", Config{BitsPerSample: 4, BlockSize: 8, RSI: 1, Flags: FlagRestricted}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestConfigDerivedIDLen(t *testing.T) {
	tests := []struct {
		bps        int
		flags      Flags
		wantIDLen  int
		wantKmax   uint32
	}{
		{bps: 4, wantIDLen: 3, wantKmax: 5},
		{bps: 8, wantIDLen: 3, wantKmax: 5},
		{bps: 12, wantIDLen: 4, wantKmax: 13},
		{bps: 16, wantIDLen: 4, wantKmax: 13},
		{bps: 20, wantIDLen: 5, wantKmax: 29},
		{bps: 32, wantIDLen: 5, wantKmax: 29},
		// idLen == 1 never reaches the splitting option (see
		// selectCodeOption), so kmax's unsigned wraparound here is
		// harmless and matches the reference encoder's own arithmetic.
		{bps: 2, flags: FlagRestricted, wantIDLen: 1, wantKmax: 1<<32 - 1},
		{bps: 4, flags: FlagRestricted, wantIDLen: 2, wantKmax: 1},
	}
	for _, tc := range tests {
		cfg := Config{BitsPerSample: tc.bps, BlockSize: 8, RSI: 1, Flags: tc.flags}
		d, err := cfg.validate()
		if err != nil {
			t.Fatalf("bps=%d: unexpected error: %v", tc.bps, err)
		}
		if d.idLen != tc.wantIDLen {
			t.Errorf("bps=%d: idLen = %d, want %d", tc.bps, d.idLen, tc.wantIDLen)
		}
		if d.kmax != tc.wantKmax {
			t.Errorf("bps=%d: kmax = %d, want %d", tc.bps, d.kmax, tc.wantKmax)
		}
	}
}

func TestConfigDerivedRange(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 1, Flags: FlagSigned}
	d, err := cfg.validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.xmin != -128 || d.xmax != 127 {
		t.Fatalf("signed 8-bit range = [%d, %d], want [-128, 127]", d.xmin, d.xmax)
	}

	cfg = Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}
	d, err = cfg.validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.xmin != 0 || d.xmax != 255 {
		t.Fatalf("unsigned 8-bit range = [%d, %d], want [0, 255]", d.xmin, d.xmax)
	}
}
