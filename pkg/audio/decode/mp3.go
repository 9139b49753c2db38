// ABOUTME: MP3 file decoder
// ABOUTME: Decodes MP3 audio to a sample buffer via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3 decodes an MP3 stream. go-mp3 always emits 16-bit little-endian
// stereo at the file's native sample rate.
func MP3(r io.Reader) (*audio.SampleBuffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	n := len(raw) / 2
	samples := make([]int32, n)
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = audio.SampleFromInt16(s)
	}

	return audio.NewSampleBuffer(audio.Format{
		SampleRate: dec.SampleRate(),
		Channels:   2, // go-mp3 output is always stereo
		BitDepth:   16,
	}, samples)
}
