// ABOUTME: Entry point for the waveform segment looper
// ABOUTME: Parses CLI flags, wires the session and runs the TUI or stdin menu
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NetScalerTrainer/audio9/internal/app"
	"github.com/NetScalerTrainer/audio9/internal/playback"
	"github.com/NetScalerTrainer/audio9/internal/ui"
	"github.com/NetScalerTrainer/audio9/internal/version"
	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

var (
	filePath = flag.String("file", "", "Audio file to load (wav, mp3, flac, ogg)")
	blockMs  = flag.Int("block-ms", playback.DefaultBlockMs, "Playback block size in milliseconds")
	volume   = flag.Int("volume", 100, "Initial volume (0-100)")
	logFile  = flag.String("log-file", "audio9.log", "Log file path")
	noTUI    = flag.Bool("no-tui", false, "Disable TUI, use a stdin menu instead")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file, the terminal belongs to the UI
		log.SetOutput(f)
	} else {
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: audio9 -file <audio file> [-block-ms N] [-volume N] [-no-tui]")
		os.Exit(2)
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	var tuiProg *tea.Program
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	var session *app.Session
	session, err = app.New(app.Config{
		FilePath: *filePath,
		BlockMs:  *blockMs,
		Volume:   *volume,
		OnError: func(err error) {
			log.Printf("Playback error: %v", err)
			if session != nil {
				updateTUI(statusMsg(session.Status(), err.Error()))
			}
		},
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session.Start(ctx)

	done := make(chan struct{})
	var controls *ui.Controls

	if useTUI {
		controls = ui.NewControls()
		model := ui.NewModel(filepath.Base(*filePath), session.Buffer(), controls)
		tuiProg, err = ui.Run(model)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI exited with error: %v", err)
			}
		}()
		go forwardCommands(session, controls, done)
		go forwardVolume(session, controls, done)
		go statusUpdateLoop(session, updateTUI, done)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if useTUI {
		select {
		case <-controls.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		runMenu(session, sigChan)
	}

	close(done)
	if tuiProg != nil {
		tuiProg.Quit()
	}
	session.Stop()

	log.Printf("Stopped")
}

// forwardCommands hands TUI commands to the session router.
func forwardCommands(session *app.Session, controls *ui.Controls, done chan struct{}) {
	for {
		select {
		case cmd := <-controls.Commands:
			session.Post(cmd)
		case <-done:
			return
		}
	}
}

// forwardVolume applies volume changes from the TUI to the audio device.
func forwardVolume(session *app.Session, controls *ui.Controls, done chan struct{}) {
	for {
		select {
		case vol := <-controls.Volume:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			session.Output().SetVolume(vol.Volume)
			session.Output().SetMuted(vol.Muted)
		case <-done:
			return
		}
	}
}

// statusUpdateLoop periodically pushes a session snapshot into the TUI. The
// interval is short so drag feedback and the playback cursor track smoothly.
func statusUpdateLoop(session *app.Session, updateTUI func(ui.StatusMsg), done chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			updateTUI(statusMsg(session.Status(), ""))
		case <-done:
			return
		}
	}
}

func statusMsg(st app.Status, errText string) ui.StatusMsg {
	return ui.StatusMsg{
		State:     st.State,
		Position:  st.Position,
		Remaining: st.Remaining,
		Selection: st.Selection,
		Pending:   st.Pending,
		Dragging:  st.Dragging,
		Err:       errText,
	}
}

// runMenu is the headless command loop: play the whole track, loop a segment
// given as start/end seconds, or exit. Ctrl+C stops an active playback.
func runMenu(session *app.Session, sigChan chan os.Signal) {
	scanner := bufio.NewScanner(os.Stdin)
	rate := session.Buffer().Format().SampleRate

	for {
		fmt.Println("\nOptions:")
		fmt.Println("1. Play full song")
		fmt.Println("2. Loop a segment")
		fmt.Println("3. Exit")

		choice, ok := readLine(scanner, "Select an option (1-3): ")
		if !ok {
			return
		}
		// A Ctrl+C at the prompt sits buffered in sigChan; exit on it here
		// rather than letting it cancel the next playback the user starts.
		if interrupted(sigChan) {
			fmt.Println("\nProgram interrupted.")
			return
		}

		switch choice {
		case "1":
			if err := session.Controller().PlayFull(); err != nil {
				fmt.Printf("Cannot play: %v\n", err)
				continue
			}
			fmt.Println("Playing full song (Ctrl+C to stop)...")
			waitForIdle(session, sigChan)
		case "2":
			start, ok := readSeconds(scanner, "Enter start time of segment (seconds): ")
			if !ok {
				continue
			}
			end, ok := readSeconds(scanner, "Enter end time of segment (seconds): ")
			if !ok {
				continue
			}
			repeatsText, ok := readLine(scanner, "Enter number of repetitions (e.g., 5): ")
			if !ok {
				continue
			}
			repeats, err := strconv.Atoi(repeatsText)
			if err != nil || repeats < 1 {
				fmt.Printf("Invalid input: repeat count must be a positive integer, got %q\n", repeatsText)
				continue
			}

			r := audio.NewTimeRange(int64(start*float64(rate)), int64(end*float64(rate)))
			if err := session.Controller().PlayLoop(r, repeats); err != nil {
				fmt.Printf("Cannot loop: %v\n", err)
				continue
			}
			fmt.Printf("Looping %.2fs to %.2fs, %d repetitions (Ctrl+C to stop)...\n", start, end, repeats)
			waitForIdle(session, sigChan)
		case "3":
			fmt.Println("Exiting program.")
			return
		default:
			fmt.Println("Invalid choice. Please select 1, 2, or 3.")
		}
	}
}

// waitForIdle blocks until playback finishes. A signal cancels playback and
// returns to the menu once the playback goroutine has settled.
func waitForIdle(session *app.Session, sigChan chan os.Signal) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("Stopping playback...")
			session.Controller().CancelAndWait()
			return
		case <-ticker.C:
			if session.Status().State == playback.StateIdle {
				return
			}
		}
	}
}

// interrupted consumes a pending signal without blocking. Signals delivered
// while the menu is reading stdin would otherwise stay queued and fire inside
// the next waitForIdle.
func interrupted(sigChan chan os.Signal) bool {
	select {
	case <-sigChan:
		return true
	default:
		return false
	}
}

func readLine(scanner *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func readSeconds(scanner *bufio.Scanner, prompt string) (float64, bool) {
	text, ok := readLine(scanner, prompt)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		fmt.Printf("Invalid input: expected a non-negative number of seconds, got %q\n", text)
		return 0, false
	}
	return v, true
}
