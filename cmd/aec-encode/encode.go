package main

import (
	"os"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scidata-tools/aec"
)

func newEncodeCmd() *cobra.Command {
	var (
		force   bool
		rsi     int
		blkSize int
		padRSI  bool
	)
	cmd := &cobra.Command{
		Use:   "encode WAV_FILE...",
		Short: "compress WAV files to the .aec format, one stream per channel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, wavPath := range args {
				if err := encodeWav(wavPath, force, rsi, blkSize, padRSI); err != nil {
					return errors.Wrapf(err, "encoding %q", wavPath)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force overwrite of existing .aec files")
	cmd.Flags().IntVar(&rsi, "rsi", 128, "blocks per reference sample interval")
	cmd.Flags().IntVar(&blkSize, "block-size", 16, "samples per block (8, 16, 32 or 64)")
	cmd.Flags().BoolVar(&padRSI, "pad-rsi", false, "pad output to a byte boundary at every RSI")
	return cmd
}

// encodeWav compresses each channel of wavPath into its own .aec file
// (spec.md §6 "one Stream per sensor channel"; SPEC_FULL §4.11).
func encodeWav(wavPath string, force bool, rsi, blockSize int, padRSI bool) error {
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}
	bps := int(dec.BitDepth)
	nchannels := int(dec.NumChans)

	samples, err := decodeChannels(dec, nchannels)
	if err != nil {
		return err
	}

	base := pathutil.TrimExt(wavPath)
	for ch, chanSamples := range samples {
		cfg := wavConfig(bps, rsi, blockSize, padRSI)
		raw := packSamples(chanSamples, bps)

		out, err := aec.BufferEncode(cfg, raw)
		if err != nil {
			return errors.WithStack(err)
		}

		aecPath := base + channelSuffix(ch, nchannels) + ".aec"
		if !force && osutil.Exists(aecPath) {
			return errors.Errorf(".aec file %q already present; use -f to force overwrite", aecPath)
		}
		if err := os.WriteFile(aecPath, out, 0o644); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func channelSuffix(ch, nchannels int) string {
	if nchannels == 1 {
		return ""
	}
	return ".ch" + strconv.Itoa(ch)
}

// wavConfig derives an aec.Config from a WAV file's bit depth, matching
// WAV's own on-disk sample representation: unsigned at 8 bits, signed
// two's complement and little-endian otherwise, 3-byte packing at 24
// bits (SPEC_FULL §4.9).
func wavConfig(bps, rsi, blockSize int, padRSI bool) aec.Config {
	var flags aec.Flags
	flags |= aec.FlagPreprocess
	if bps != 8 {
		flags |= aec.FlagSigned
	}
	if bps > 16 && bps <= 24 {
		flags |= aec.Flag3Byte
	}
	if padRSI {
		flags |= aec.FlagPadRSI
	}
	return aec.Config{
		BitsPerSample: bps,
		BlockSize:     blockSize,
		RSI:           rsi,
		Flags:         flags,
	}
}

// decodeChannels reads every PCM frame of dec and deinterleaves it into
// one []int per channel.
func decodeChannels(dec *wav.Decoder, nchannels int) ([][]int, error) {
	const samplesPerRead = 4096
	channels := make([][]int, nchannels)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  int(dec.SampleRate),
		},
		Data:           make([]int, samplesPerRead),
		SourceBitDepth: int(dec.BitDepth),
	}
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if n == 0 {
			break
		}
		for i, sample := range buf.Data[:n] {
			ch := i % nchannels
			channels[ch] = append(channels[ch], sample)
		}
	}
	return channels, nil
}

// packSamples encodes each integer sample into its little-endian raw byte
// representation at the given bit depth, matching the byte order the
// chosen aec.SampleAccessor expects.
func packSamples(samples []int, bps int) []byte {
	width := bytesPerSample(bps)
	raw := make([]byte, len(samples)*width)
	for i, v := range samples {
		u := uint32(int32(v))
		off := i * width
		for b := 0; b < width; b++ {
			raw[off+b] = byte(u >> uint(8*b))
		}
	}
	return raw
}

func bytesPerSample(bps int) int {
	switch {
	case bps <= 8:
		return 1
	case bps <= 16:
		return 2
	case bps <= 24:
		return 3
	default:
		return 4
	}
}
