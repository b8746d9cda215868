// Package shell provides the terminal surface for the navigation
// engine: a thin tcell wrapper and a renderer that draws a region's
// stack and current view.
package shell

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal wraps a tcell screen for the application shell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	inited bool
}

// NewTerminal creates a terminal backed by the real tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewSimulationTerminal creates a terminal backed by tcell's
// simulation screen, for tests and headless runs.
func NewSimulationTerminal() (*Terminal, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	return &Terminal{screen: screen}, nil
}

// Init initializes the underlying screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inited {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.inited = true
	return nil
}

// Fini releases the screen and restores the terminal. A no-op if the
// screen was never initialized.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inited {
		return
	}
	t.inited = false
	t.screen.Fini()
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PollEvent blocks until the next input or resize event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostQuit interrupts a pending PollEvent so the event loop can exit.
func (t *Terminal) PostQuit() {
	t.screen.PostEventWait(tcell.NewEventInterrupt(nil))
}

// Clear erases the screen buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes pending writes to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync forces a full repaint, used after resize events.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// DrawText writes a string starting at (x, y), clipped to the screen.
func (t *Terminal) DrawText(x, y int, style tcell.Style, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range text {
		if x >= width {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// Screen exposes the underlying tcell screen. Tests use this to read
// simulation screen contents.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}
