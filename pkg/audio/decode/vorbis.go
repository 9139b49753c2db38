// ABOUTME: Ogg Vorbis file decoder
// ABOUTME: Decodes Vorbis audio to a sample buffer via jfreymuth/oggvorbis
package decode

import (
	"fmt"
	"io"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes an Ogg Vorbis stream. The decoder yields interleaved
// float32 samples in [-1, 1].
func Vorbis(r io.Reader) (*audio.SampleBuffer, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis decode error: %w", err)
	}

	samples := make([]int32, len(data))
	for i, f := range data {
		samples[i] = audio.SampleFromFloat32(f)
	}

	return audio.NewSampleBuffer(audio.Format{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   16,
	}, samples)
}
