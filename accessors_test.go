package aec

import "testing"

func TestAccessors(t *testing.T) {
	tests := []struct {
		name string
		acc  SampleAccessor
		buf  []byte
		want uint32
	}{
		{"8", accessor8{}, []byte{0xab}, 0xab},
		{"16msb", accessor16msb{}, []byte{0x12, 0x34}, 0x1234},
		{"16lsb", accessor16lsb{}, []byte{0x34, 0x12}, 0x1234},
		{"24msb", accessor24msb{}, []byte{0x12, 0x34, 0x56}, 0x123456},
		{"24lsb", accessor24lsb{}, []byte{0x56, 0x34, 0x12}, 0x123456},
		{"32msb", accessor32msb{}, []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678},
		{"32lsb", accessor32lsb{}, []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.acc.Sample(tc.buf); got != tc.want {
				t.Errorf("Sample(% X) = %#x, want %#x", tc.buf, got, tc.want)
			}
			if got := tc.acc.BytesPerSample(); got != len(tc.buf) {
				t.Errorf("BytesPerSample() = %d, want %d", got, len(tc.buf))
			}
		})
	}
}
