// ABOUTME: Package documentation for audio decoding
// ABOUTME: Explains supported formats and decoding approach
// Package decode loads audio files into immutable sample buffers.
//
// Supported formats:
//   - WAV: 16-bit PCM, 24-bit PCM, 32-bit IEEE float
//   - MP3: via hajimehoshi/go-mp3 (decodes to 16-bit stereo)
//   - FLAC: via mewkiz/flac (16-bit and 24-bit)
//   - Ogg Vorbis: via jfreymuth/oggvorbis
//
// Decoding materializes the whole file up front; the playback engine works
// on a fixed buffer, never a stream. All decoders normalize samples to the
// 24-bit int32 range and interleave channels.
//
// Example:
//
//	buf, err := decode.FromFile("song.mp3")
//	if err != nil {
//	    log.Fatalf("decode failed: %v", err)
//	}
package decode
