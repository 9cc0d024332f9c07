// Package capture implements the hotkey-triggered selection capture pipeline:
// simulate a copy keystroke, wait for the OS to settle, read the clipboard,
// and hand the text to the UI.
package capture

import (
	"log/slog"
	"strings"
	"time"
)

// EventTranslateSelection carries the captured clipboard text to the UI.
const EventTranslateSelection = "translate-selection"

// DefaultSettleDelay is the fixed wait between triggering the copy action and
// reading the clipboard. There is no way to observe when the copy lands, so
// the delay is a heuristic, not a guarantee.
const DefaultSettleDelay = 100 * time.Millisecond

// KeySender issues the platform's "copy current selection" keystroke.
type KeySender interface {
	SendCopy() error
}

// Clipboard reads the system clipboard as text.
type Clipboard interface {
	ReadText() (string, error)
}

// Presenter makes the main window visible and focused.
type Presenter interface {
	ShowWindow()
}

// Sink receives the capture notification.
type Sink interface {
	Emit(name string, payload any)
}

// Trigger orchestrates one capture per hotkey press. Fire never blocks the
// caller; the whole sequence runs on its own goroutine, so neither the
// hotkey-delivery goroutine nor the UI loop waits out the settle delay.
//
// The pipeline cannot tell freshly-copied text from stale clipboard content
// left by an earlier action; a press with nothing selected may therefore
// re-deliver the previous clipboard text.
type Trigger struct {
	keys      KeySender
	clipboard Clipboard
	presenter Presenter
	sink      Sink
	settle    time.Duration
	log       *slog.Logger
}

// New creates a Trigger. A zero settle falls back to DefaultSettleDelay and a
// nil logger to slog.Default.
func New(keys KeySender, clipboard Clipboard, presenter Presenter, sink Sink, settle time.Duration, log *slog.Logger) *Trigger {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	if log == nil {
		log = slog.Default()
	}

	return &Trigger{
		keys:      keys,
		clipboard: clipboard,
		presenter: presenter,
		sink:      sink,
		settle:    settle,
		log:       log,
	}
}

// Fire starts one capture and returns immediately.
func (t *Trigger) Fire() {
	go t.run()
}

func (t *Trigger) run() {
	if err := t.keys.SendCopy(); err != nil {
		// The clipboard may still hold usable text, so keep going.
		t.log.Debug("copy keystroke failed", "error", err)
	}

	time.Sleep(t.settle)

	text, err := t.clipboard.ReadText()
	if err != nil {
		// A press with no readable clipboard is expected, not exceptional.
		t.log.Debug("clipboard read failed", "error", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		t.log.Debug("clipboard empty, ignoring capture")
		return
	}

	t.presenter.ShowWindow()
	t.sink.Emit(EventTranslateSelection, text)
}
