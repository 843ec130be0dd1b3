// Package clipboard copies generated passwords to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard supports best-effort copy-to-clipboard.
// Implementations must not fail the command if clipboard is unavailable.
type Clipboard interface {
	Copy(text string) (copied bool, err error)
}

type system struct {
	unsupported func() bool
	write       func(string) error
}

// System returns the OS clipboard. Copy reports copied=false with a nil error
// when no clipboard utility (xclip, xsel, wl-copy, pbcopy, clip.exe) is present.
func System() Clipboard {
	return system{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

func (s system) Copy(text string) (bool, error) {
	if s.unsupported() {
		return false, nil
	}
	if err := s.write(text); err != nil {
		return false, fmt.Errorf("writing clipboard: %w", err)
	}
	return true, nil
}

// Memory is an in-process Clipboard that keeps the last copied text.
type Memory struct {
	Text   string
	Copies int
	Err    error
}

func (m *Memory) Copy(text string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.Text = text
	m.Copies++
	return true, nil
}
