// ABOUTME: Typed input commands
// ABOUTME: Messages posted by the UI and consumed by the router
package input

// Command is a typed user gesture or menu action. The UI posts commands;
// the router's goroutine is the only consumer, so SelectionModel and
// PlaybackController commands never race with each other.
type Command interface {
	isCommand()
}

// BeginDrag starts a selection drag. Width is the display width in pixels
// at the moment of the event.
type BeginDrag struct {
	X     int
	Width int
}

// UpdateDrag moves the provisional selection endpoint.
type UpdateDrag struct {
	X     int
	Width int
}

// EndDrag commits the selection.
type EndDrag struct {
	X     int
	Width int
}

// PlayFull plays the whole track once.
type PlayFull struct{}

// PlayLoop plays the committed selection Repeats times.
type PlayLoop struct {
	Repeats int
}

// Preview plays a few seconds starting at the clicked position, once.
type Preview struct {
	X     int
	Width int
}

// Cancel stops playback. Valid in any state.
type Cancel struct{}

func (BeginDrag) isCommand()  {}
func (Preview) isCommand()    {}
func (UpdateDrag) isCommand() {}
func (EndDrag) isCommand()    {}
func (PlayFull) isCommand()   {}
func (PlayLoop) isCommand()   {}
func (Cancel) isCommand()     {}
