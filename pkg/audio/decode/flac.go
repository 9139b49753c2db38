// ABOUTME: FLAC file decoder
// ABOUTME: Decodes FLAC frames to a sample buffer via mewkiz/flac
package decode

import (
	"fmt"
	"io"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLAC decodes a FLAC stream, interleaving the per-channel subframes and
// scaling samples to the 24-bit range.
func FLAC(r io.Reader) (*audio.SampleBuffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)

	samples := make([]int32, 0, int(info.NSamples)*channels)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame parse error: %w", err)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, scaleTo24Bit(frame.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	return audio.NewSampleBuffer(audio.Format{
		SampleRate: int(info.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
	}, samples)
}

// scaleTo24Bit shifts a FLAC sample of the stated bit depth into the shared
// 24-bit range.
func scaleTo24Bit(sample int32, bitDepth int) int32 {
	switch {
	case bitDepth == 24:
		return sample
	case bitDepth < 24:
		return sample << (24 - bitDepth)
	default:
		return sample >> (bitDepth - 24)
	}
}
