package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/minimute-app/minimute/internal/audio"
)

// consoleReporter prints failures to stderr for the one-shot commands.
type consoleReporter struct{}

func (consoleReporter) Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleError.Render("Error:"), msg)
}

func (consoleReporter) Warning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleWarning.Render("Warning:"), msg)
}

// withMics opens the audio backend on a locked OS thread, enumerates the
// microphones and runs fn against them.
func withMics(fn func(*audio.Mics) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	backend := audio.NewBackend()
	if err := backend.Open(); err != nil {
		return fmt.Errorf("%s: %w", audio.Message(err), err)
	}
	defer backend.Close()

	mics := audio.NewMics(backend, consoleReporter{}, audio.Options{})
	defer mics.Close()

	// Rescan failures were already printed by the reporter.
	if err := mics.Rescan(); err != nil {
		return nil
	}
	return fn(mics)
}
