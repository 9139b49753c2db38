// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, SampleBuffer, TimeRange and sample conversions
// Package audio provides the fundamental audio types shared by the looper.
//
// This package defines the core value types used throughout audio9:
//   - Format: Describes decoded audio (sample rate, channels, bit depth)
//   - SampleBuffer: Immutable interleaved PCM for one loaded track
//   - TimeRange: Half-open frame interval selected by the user
//
// It also provides utilities for converting decoded samples into the shared
// representation: 16-bit PCM, packed 24-bit PCM and float32 sources.
//
// Samples are stored as int32 values normalized to the 24-bit range so 16-bit
// and 24-bit sources share one representation.
//
// Example:
//
//	format := audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
//	buf, err := audio.NewSampleBuffer(format, samples)
package audio
