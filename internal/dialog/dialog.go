// Package dialog shows blocking message boxes for failures.
package dialog

import (
	"log"

	"github.com/ncruces/zenity"
)

// Title is the caption of every dialog.
const Title = "MiniMute"

// show is swapped in tests.
var show = func(kind Kind, title, msg string) error {
	icon := zenity.ErrorIcon
	if kind == KindWarning {
		icon = zenity.WarningIcon
	}
	return zenity.Error(msg, zenity.Title(title), icon)
}

// Kind selects the dialog icon.
type Kind int

const (
	KindError Kind = iota
	KindWarning
)

// Reporter logs a failure and shows it in a modal dialog. Calls block
// until the user dismisses the box.
type Reporter struct {
	title string
}

// New creates a Reporter whose dialogs carry title.
func New(title string) *Reporter {
	return &Reporter{title: title}
}

// Error shows an error dialog.
func (r *Reporter) Error(msg string) {
	r.report(KindError, msg)
}

// Warning shows a warning dialog.
func (r *Reporter) Warning(msg string) {
	r.report(KindWarning, msg)
}

func (r *Reporter) report(kind Kind, msg string) {
	if kind == KindWarning {
		log.Printf("[dialog] warning: %s", msg)
	} else {
		log.Printf("[dialog] error: %s", msg)
	}

	if err := show(kind, r.title, msg); err != nil {
		log.Printf("[dialog] failed to show dialog: %v", err)
	}
}
