// ABOUTME: Playback state machine states
// ABOUTME: Idle/Playing/Stopping transitions owned by the Controller
package playback

// State is the playback session state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateStopping
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}
