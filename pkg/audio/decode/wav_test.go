// ABOUTME: Tests for WAV decoding
// ABOUTME: Builds RIFF streams in memory and checks decoded samples
package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

// buildWAV assembles a minimal RIFF/WAVE stream around the given data chunk.
func buildWAV(audioFormat, channels, bits uint16, rate uint32, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, audioFormat)
	binary.Write(&buf, binary.LittleEndian, channels)
	binary.Write(&buf, binary.LittleEndian, rate)
	binary.Write(&buf, binary.LittleEndian, rate*uint32(channels)*uint32(bits)/8)
	binary.Write(&buf, binary.LittleEndian, channels*bits/8)
	binary.Write(&buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

func TestWAVDecode16BitPCM(t *testing.T) {
	var data bytes.Buffer
	for _, s := range []int16{0, 100, -100, 32767} {
		binary.Write(&data, binary.LittleEndian, s)
	}

	buf, err := WAV(bytes.NewReader(buildWAV(wavFormatPCM, 2, 16, 44100, data.Bytes())))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.Format().SampleRate != 44100 {
		t.Errorf("expected 44100 Hz, got %d", buf.Format().SampleRate)
	}
	if buf.Format().Channels != 2 {
		t.Errorf("expected 2 channels, got %d", buf.Format().Channels)
	}
	if buf.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Frames())
	}
	if got := buf.Sample(0, 1); got != audio.SampleFromInt16(100) {
		t.Errorf("expected %d, got %d", audio.SampleFromInt16(100), got)
	}
	if got := buf.Sample(1, 1); got != audio.SampleFromInt16(32767) {
		t.Errorf("expected %d, got %d", audio.SampleFromInt16(32767), got)
	}
}

func TestWAVDecode24BitPCM(t *testing.T) {
	// Two mono frames: 0x123456 and -256
	data := []byte{0x56, 0x34, 0x12, 0x00, 0xFF, 0xFF}

	buf, err := WAV(bytes.NewReader(buildWAV(wavFormatPCM, 1, 24, 48000, data)))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Frames())
	}
	if got := buf.Sample(0, 0); got != 0x123456 {
		t.Errorf("expected %d, got %d", 0x123456, got)
	}
	if got := buf.Sample(1, 0); got != -256 {
		t.Errorf("expected -256, got %d", got)
	}
}

func TestWAVDecodeFloat32(t *testing.T) {
	var data bytes.Buffer
	binary.Write(&data, binary.LittleEndian, math.Float32bits(0.5))
	binary.Write(&data, binary.LittleEndian, math.Float32bits(-1.0))

	buf, err := WAV(bytes.NewReader(buildWAV(wavFormatIEEEFloat, 1, 32, 44100, data.Bytes())))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got := buf.Sample(0, 0); got != audio.Max24Bit/2 {
		t.Errorf("expected %d, got %d", audio.Max24Bit/2, got)
	}
	if got := buf.Sample(1, 0); got != audio.Min24Bit+1 {
		t.Errorf("expected %d, got %d", audio.Min24Bit+1, got)
	}
}

func TestWAVSkipsUnknownChunks(t *testing.T) {
	var data bytes.Buffer
	binary.Write(&data, binary.LittleEndian, int16(7))
	raw := buildWAV(wavFormatPCM, 1, 16, 22050, data.Bytes())

	// Splice a LIST chunk between the fmt and data chunks.
	var spliced bytes.Buffer
	spliced.Write(raw[:36])
	spliced.WriteString("LIST")
	binary.Write(&spliced, binary.LittleEndian, uint32(4))
	spliced.WriteString("INFO")
	spliced.Write(raw[36:])

	buf, err := WAV(bytes.NewReader(spliced.Bytes()))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := buf.Sample(0, 0); got != audio.SampleFromInt16(7) {
		t.Errorf("expected %d, got %d", audio.SampleFromInt16(7), got)
	}
}

func TestWAVRejectsUnsupportedEncoding(t *testing.T) {
	raw := buildWAV(wavFormatPCM, 1, 8, 8000, []byte{1, 2, 3, 4})
	if _, err := WAV(bytes.NewReader(raw)); err == nil {
		t.Error("expected error for 8-bit PCM")
	}
}

func TestWAVRejectsGarbage(t *testing.T) {
	if _, err := WAV(bytes.NewReader([]byte("not a wave file at all"))); err == nil {
		t.Error("expected error for non-RIFF input")
	}
}
