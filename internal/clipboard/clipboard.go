// Package clipboard mirrors copied segment text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrEmptyText = errors.New("nothing to copy")

// System writes to the OS clipboard. It satisfies timeline.ClipboardSink.
type System struct{}

func (System) WriteText(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	return clipboard.WriteAll(text)
}
