// ABOUTME: WAV file decoder
// ABOUTME: Parses RIFF chunks and PCM/float sample data
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

type wavFormat struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
}

// WAV decodes a RIFF/WAVE stream. 16-bit PCM, 24-bit PCM and 32-bit IEEE
// float data are supported.
func WAV(r io.Reader) (*audio.SampleBuffer, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var format *wavFormat
	var data []byte

	// Walk chunks until both fmt and data have been seen. Unknown chunks
	// (LIST, fact, ...) are skipped; chunk bodies are padded to even sizes.
	for data == nil {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("missing data chunk")
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		chunkID := string(header[0:4])
		chunkSize := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", len(body))
			}
			format = &wavFormat{
				audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				numChannels:   binary.LittleEndian.Uint16(body[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				byteRate:      binary.LittleEndian.Uint32(body[8:12]),
				blockAlign:    binary.LittleEndian.Uint16(body[12:14]),
				bitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
			if format.audioFormat == wavFormatExtensible && len(body) >= 26 {
				// Extensible format: the real codec lives in the sub-format GUID.
				format.audioFormat = binary.LittleEndian.Uint16(body[24:26])
			}
		case "data":
			if format == nil {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}
			data = make([]byte, chunkSize)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}
		default:
			skip := int64(chunkSize)
			if skip%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("failed to skip %s chunk: %w", chunkID, err)
			}
		}
	}

	samples, bitDepth, err := wavSamples(format, data)
	if err != nil {
		return nil, err
	}

	return audio.NewSampleBuffer(audio.Format{
		SampleRate: int(format.sampleRate),
		Channels:   int(format.numChannels),
		BitDepth:   bitDepth,
	}, samples)
}

func wavSamples(f *wavFormat, data []byte) ([]int32, int, error) {
	switch {
	case f.audioFormat == wavFormatPCM && f.bitsPerSample == 16:
		n := len(data) / 2
		samples := make([]int32, n)
		for i := 0; i < n; i++ {
			s := int16(binary.LittleEndian.Uint16(data[i*2:]))
			samples[i] = audio.SampleFromInt16(s)
		}
		return samples, 16, nil

	case f.audioFormat == wavFormatPCM && f.bitsPerSample == 24:
		n := len(data) / 3
		samples := make([]int32, n)
		for i := 0; i < n; i++ {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFrom24Bit(b)
		}
		return samples, 24, nil

	case f.audioFormat == wavFormatIEEEFloat && f.bitsPerSample == 32:
		n := len(data) / 4
		samples := make([]int32, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(data[i*4:])
			samples[i] = audio.SampleFromFloat32(math.Float32frombits(bits))
		}
		return samples, 24, nil

	default:
		return nil, 0, fmt.Errorf("unsupported WAV encoding: format=%d bits=%d (supported: 16/24-bit PCM, 32-bit float)",
			f.audioFormat, f.bitsPerSample)
	}
}
