// ABOUTME: Bubbletea model for the waveform looper TUI
// ABOUTME: Renders waveform, selection and status; posts input commands
package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NetScalerTrainer/audio9/internal/input"
	"github.com/NetScalerTrainer/audio9/internal/playback"
	"github.com/NetScalerTrainer/audio9/internal/waveform"
	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

// waveformRow is the screen row the waveform strip renders on; mouse events
// on this row start a selection drag.
const waveformRow = 3

var waveformLevels = []rune(" ▁▂▃▄▅▆▇█")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	waveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236")).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Reverse(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// StatusMsg updates the TUI from the session snapshot loop.
type StatusMsg struct {
	State     playback.State
	Position  int64
	Remaining int
	Selection audio.TimeRange
	Pending   audio.TimeRange
	Dragging  bool
	Err       string
}

// Model is the TUI state.
type Model struct {
	track    string
	buf      *audio.SampleBuffer
	controls *Controls

	width  int
	height int
	peaks  []waveform.Peak

	state     playback.State
	position  int64
	remaining int
	sel       audio.TimeRange
	pending   audio.TimeRange
	liveDrag  bool

	dragging  bool
	dragMoved bool

	volume int
	muted  bool

	prompting bool
	promptBuf string

	errText string
}

// NewModel creates the TUI model for one loaded track.
func NewModel(track string, buf *audio.SampleBuffer, controls *Controls) Model {
	return Model{
		track:    track,
		buf:      buf,
		controls: controls,
		volume:   100,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			m.peaks = waveform.Summarize(m.buf, m.width)
		}
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		select {
		case m.controls.Quit <- struct{}{}:
		default:
		}
		return m, tea.Quit
	case "p":
		m.errText = ""
		m.post(input.PlayFull{})
	case "l":
		m.prompting = true
		m.promptBuf = ""
		m.errText = ""
	case "esc":
		m.post(input.Cancel{})
	case "up":
		m.volume = clampVolume(m.volume + 5)
		m.sendVolume()
	case "down":
		m.volume = clampVolume(m.volume - 5)
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

// handlePromptKey collects the repeat count. Anything that is not a
// positive integer is rejected here, before it can reach the controller.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.promptBuf = ""
	case "enter":
		m.prompting = false
		n, err := strconv.Atoi(m.promptBuf)
		if err != nil || n < 1 {
			m.errText = fmt.Sprintf("repeat count must be a positive integer, got %q", m.promptBuf)
			m.promptBuf = ""
			return m, nil
		}
		m.promptBuf = ""
		m.errText = ""
		m.post(input.PlayLoop{Repeats: n})
	case "backspace":
		if len(m.promptBuf) > 0 {
			m.promptBuf = m.promptBuf[:len(m.promptBuf)-1]
		}
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.promptBuf += s
		}
	}

	return m, nil
}

// handleMouse turns waveform drags into selection commands. A press and
// release with no motion previews a few seconds from the click point.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y == waveformRow && !m.prompting {
			m.dragging = true
			m.dragMoved = false
			m.post(input.BeginDrag{X: msg.X, Width: m.width})
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.dragMoved = true
			m.post(input.UpdateDrag{X: msg.X, Width: m.width})
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.post(input.EndDrag{X: msg.X, Width: m.width})
			if !m.dragMoved {
				m.post(input.Preview{X: msg.X, Width: m.width})
			}
		}
	}

	return m, nil
}

func (m Model) post(cmd input.Command) {
	m.controls.Commands <- cmd
}

func (m Model) sendVolume() {
	select {
	case m.controls.Volume <- VolumeChange{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates the model from a session snapshot.
func (m *Model) applyStatus(msg StatusMsg) {
	m.state = msg.State
	m.position = msg.Position
	m.remaining = msg.Remaining
	m.sel = msg.Selection
	m.pending = msg.Pending
	m.liveDrag = msg.Dragging
	if msg.Err != "" {
		m.errText = msg.Err
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderWaveform())
	b.WriteString(m.renderSelection())
	b.WriteString(m.renderStatus())
	if m.errText != "" {
		b.WriteString(errStyle.Render(m.errText) + "\n")
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	f := m.buf.Format()
	return titleStyle.Render(m.track) + "\n" +
		infoStyle.Render(fmt.Sprintf("%d Hz · %s · %s total",
			f.SampleRate, channelName(f.Channels), fmtFrames(m.buf.Frames(), f.SampleRate))) +
		"\n\n"
}

// renderWaveform draws one amplitude cell per column, highlighting the
// active selection and the playback cursor.
func (m Model) renderWaveform() string {
	frames := m.buf.Frames()
	overlay := m.sel
	if m.liveDrag {
		overlay = m.pending
	}
	startCol, endCol := -1, -1
	if !overlay.IsEmpty() {
		startCol = frameColumn(overlay.Start, frames, m.width)
		endCol = frameColumn(overlay.End-1, frames, m.width)
	}
	cursorCol := -1
	if m.state != playback.StateIdle {
		cursorCol = frameColumn(m.position, frames, m.width)
	}

	var b strings.Builder
	for col := 0; col < m.width && col < len(m.peaks); col++ {
		level := int(m.peaks[col].Norm() * float64(len(waveformLevels)-1))
		if level >= len(waveformLevels) {
			level = len(waveformLevels) - 1
		}
		cell := string(waveformLevels[level])

		switch {
		case col == cursorCol:
			b.WriteString(cursorStyle.Render(cell))
		case startCol >= 0 && col >= startCol && col <= endCol:
			b.WriteString(selectedStyle.Render(cell))
		default:
			b.WriteString(waveStyle.Render(cell))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSelection() string {
	rate := m.buf.Format().SampleRate
	if m.sel.IsEmpty() {
		return infoStyle.Render("No selection — drag on the waveform to select a segment") + "\n"
	}
	return infoStyle.Render(fmt.Sprintf("Selection: %s – %s (%s)",
		fmtFrames(m.sel.Start, rate), fmtFrames(m.sel.End, rate),
		fmtFrames(m.sel.Frames(), rate))) + "\n"
}

func (m Model) renderStatus() string {
	rate := m.buf.Format().SampleRate

	muteIcon := ""
	if m.muted {
		muteIcon = " muted"
	}

	s := fmt.Sprintf("%s · pos %s · vol %d%%%s",
		m.state, fmtFrames(m.position, rate), m.volume, muteIcon)
	if m.state == playback.StatePlaying && m.remaining > 1 {
		s += fmt.Sprintf(" · %d repeats left", m.remaining)
	}
	if m.prompting {
		s += " · repeat count: " + m.promptBuf + "▌"
	}
	return infoStyle.Render(s) + "\n"
}

func (m Model) renderHelp() string {
	return helpStyle.Render("drag:select  click:preview  p:play  l:loop  esc:stop  ↑/↓:volume  m:mute  q:quit") + "\n"
}

// frameColumn maps a frame offset to a display column.
func frameColumn(frame, frames int64, width int) int {
	if frames == 0 || width == 0 {
		return 0
	}
	col := int(frame * int64(width) / frames)
	if col >= width {
		col = width - 1
	}
	if col < 0 {
		col = 0
	}
	return col
}

// fmtFrames formats a frame offset as m:ss.mmm.
func fmtFrames(frames int64, rate int) string {
	ms := frames * 1000 / int64(rate)
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
