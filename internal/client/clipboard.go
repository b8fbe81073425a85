package client

import (
	"fmt"

	"github.com/atotto/clipboard"
)

type systemClipboard struct{}

// NewSystemClipboard returns a Clipboard backed by the desktop clipboard.
func NewSystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
