// ABOUTME: Package documentation for audio output
// ABOUTME: Explains the output device abstraction
// Package output abstracts the audio playback device.
//
// The Output interface takes interleaved int32 samples in the 24-bit range
// and writes them to the device with blocking semantics: a Write call does
// not return until the device has accepted the block. The playback engine
// relies on that backpressure to keep cancellation latency bounded to
// roughly one block.
//
// The oto backend is the only real device implementation; tests substitute
// in-memory fakes behind the same interface.
package output
