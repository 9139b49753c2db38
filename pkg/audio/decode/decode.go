// ABOUTME: File decoding entry point
// ABOUTME: Dispatches to the codec decoder by file extension
package decode

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

// FromFile decodes an audio file into a sample buffer. The codec is chosen
// by file extension; supported: .wav, .mp3, .flac, .ogg, .oga.
func FromFile(path string) (*audio.SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var buf *audio.SampleBuffer

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		buf, err = WAV(f)
	case ".mp3":
		buf, err = MP3(f)
	case ".flac":
		buf, err = FLAC(f)
	case ".ogg", ".oga":
		buf, err = Vorbis(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .flac, .ogg)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	log.Printf("Loaded %s: %d Hz, %d channels, %d frames (%.2fs)",
		filepath.Base(path), buf.Format().SampleRate, buf.Format().Channels,
		buf.Frames(), buf.Duration().Seconds())

	return buf, nil
}
