package backup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// Function variables for testing (can be mocked)
var (
	clipboardWriteAll    = clipboard.WriteAll
	clipboardReadAll     = clipboard.ReadAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// ClipboardGateway copies backups to and from the system clipboard
type ClipboardGateway struct{}

var _ output.BackupGateway = ClipboardGateway{}

// NewClipboardGateway creates a clipboard gateway
func NewClipboardGateway() ClipboardGateway {
	return ClipboardGateway{}
}

// Name identifies the medium
func (ClipboardGateway) Name() string {
	return "clipboard"
}

// Export copies data to the clipboard
func (ClipboardGateway) Export(ctx context.Context, data []byte) (string, error) {
	if clipboardUnsupported() {
		return "", errors.New("clipboard is not available on this system")
	}
	if err := clipboardWriteAll(string(data)); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return "clipboard", nil
}

// Import pastes the clipboard content. The clipboard holds one backup, so
// ref is ignored.
func (ClipboardGateway) Import(ctx context.Context, ref string) ([]byte, error) {
	if clipboardUnsupported() {
		return nil, errors.New("clipboard is not available on this system")
	}
	text, err := clipboardReadAll()
	if err != nil {
		return nil, fmt.Errorf("paste from clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: clipboard is empty", ErrNoBackup)
	}
	return []byte(text), nil
}
