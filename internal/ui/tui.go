// ABOUTME: TUI initialization and control channels
// ABOUTME: Wraps the bubbletea program for the waveform looper
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NetScalerTrainer/audio9/internal/input"
)

// VolumeChange carries a volume adjustment from the TUI.
type VolumeChange struct {
	Volume int
	Muted  bool
}

// Controls holds the channels the TUI writes user intent to. The app side
// forwards Commands to the session router and applies Volume to the device.
type Controls struct {
	Commands chan input.Command
	Volume   chan VolumeChange
	Quit     chan struct{}
}

// NewControls creates the control channel bundle.
func NewControls() *Controls {
	return &Controls{
		Commands: make(chan input.Command, 64),
		Volume:   make(chan VolumeChange, 10),
		Quit:     make(chan struct{}, 1),
	}
}

// Run starts the TUI program with mouse tracking enabled; drags over the
// waveform drive the selection.
func Run(m Model) (*tea.Program, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	return p, nil
}
