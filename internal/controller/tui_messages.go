package controller

import (
	"time"

	"github.com/mouse-blink/targetpath/internal/selection"
)

// Message types.
type tickMsg time.Time

// List item types.
type entryItem struct {
	entry selection.Entry
}

func (e entryItem) FilterValue() string {
	return e.entry.Label
}
