// ABOUTME: Tests for the decode entry point
// ABOUTME: Tests extension dispatch and file errors
package decode

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestFromFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.aiff")
	if err := os.WriteFile(path, []byte("FORM"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := FromFile(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromFileWAV(t *testing.T) {
	var data bytes.Buffer
	for _, s := range []int16{1, 2, 3, 4} {
		binary.Write(&data, binary.LittleEndian, s)
	}
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, buildWAV(wavFormatPCM, 2, 16, 44100, data.Bytes()), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	buf, err := FromFile(path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if buf.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", buf.Frames())
	}
}
