package bridge

import (
	"github.com/atotto/clipboard"
	"github.com/newthinker/pulse/internal/core"
)

// Copy places the ticket text on the system clipboard. Callers fall
// back to printing the text for manual selection when the clipboard is
// unavailable (headless hosts, missing xclip).
func Copy(t Ticket) error {
	if clipboard.Unsupported {
		return core.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(t.Text); err != nil {
		return core.WrapError(core.ErrClipboardUnavailable, err)
	}
	return nil
}
