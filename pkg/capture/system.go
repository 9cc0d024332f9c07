package capture

import (
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// SystemKeys sends synthetic keystrokes through the OS input facility.
type SystemKeys struct{}

// SendCopy simulates the platform copy chord: Cmd+C on macOS, Ctrl+C
// elsewhere.
func (SystemKeys) SendCopy() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}

	kb.SetKeys(keybd_event.VK_C)
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}

	return kb.Launching()
}

// SystemClipboard reads and writes the OS clipboard.
type SystemClipboard struct{}

// ReadText returns the clipboard's text content.
func (SystemClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// WriteText replaces the clipboard's text content.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
