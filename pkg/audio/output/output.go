// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

// Output represents an audio output device. Write blocks until the device
// has accepted the samples, which bounds how far playback can run ahead of
// a cancellation request.
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs interleaved int32 samples (blocks until written)
	Write(samples []int32) error

	// SetVolume sets software volume (0-100)
	SetVolume(volume int)

	// SetMuted sets mute state
	SetMuted(muted bool)

	// Close releases output resources
	Close() error
}
