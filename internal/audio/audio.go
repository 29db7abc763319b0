// Package audio enumerates active capture endpoints and flips their mute
// flags as one group.
package audio

import (
	"errors"
)

// Failure classes of the platform audio service. Backends wrap the
// underlying platform error with one of these.
var (
	ErrUnsupported = errors.New("audio endpoints are not supported on this platform")
	ErrInit        = errors.New("failed to initialize audio subsystem")
	ErrEnumerator  = errors.New("failed to create device enumerator")
	ErrEnumerate   = errors.New("failed to enumerate audio endpoints")
	ErrCount       = errors.New("failed to get audio endpoint count")
	ErrNoDevices   = errors.New("no audio devices")
	ErrDevice      = errors.New("failed to retrieve audio device")
	ErrActivate    = errors.New("failed to retrieve volume interface")
)

// Endpoint is an activated volume control of one capture endpoint.
type Endpoint interface {
	ID() string
	Name() string
	Mute() (bool, error)
	SetMute(muted bool) error

	// Watch subscribes fn to volume and mute changes of the endpoint.
	// fn may be called from a foreign thread.
	Watch(fn func()) error

	// Close unsubscribes a watched endpoint and releases it.
	Close() error
}

// Backend is the platform audio service.
type Backend interface {
	// Open prepares the calling OS thread for audio calls. Every other
	// method must be called from the same thread.
	Open() error
	Close()

	// Endpoints activates every active capture endpoint. It is
	// all-or-nothing: on error no endpoint is returned and none is left
	// activated.
	Endpoints() ([]Endpoint, error)

	// WatchDevices subscribes fn to device arrival, removal and state
	// changes for the lifetime of the backend. fn may be called from a
	// foreign thread.
	WatchDevices(fn func()) error
}

// Reporter shows failures to the user.
type Reporter interface {
	Error(msg string)
	Warning(msg string)
}

// ToggleResult is the outcome of Mics.Toggle.
type ToggleResult int

const (
	Indeterminate ToggleResult = iota
	NowMuted
	NowUnmuted
)

func (r ToggleResult) String() string {
	switch r {
	case NowMuted:
		return "muted"
	case NowUnmuted:
		return "unmuted"
	default:
		return "indeterminate"
	}
}

// DeviceState is a snapshot of one endpoint for display.
type DeviceState struct {
	ID    string
	Name  string
	Muted bool
	Err   error
}

// User-facing messages.
const (
	msgCreateEnumerator = "Failed to create MM device enumerator"
	msgEnumerate        = "Failed to enumerate audio endpoints"
	msgCount            = "Failed to get audio endpoint count"
	msgNoDevices        = "No audio devices"
	msgDevice           = "Failed to retrieve audio device"
	msgActivate         = "Failed to retrieve volume interface"
	msgInit             = "Failed to initialize"
	msgUnsupported      = "Microphone control is only available on Windows"
	msgGetMute          = "Failed to get muted state"
	msgSetMute          = "Failed to mute/unmute at least one microphone"

	msgWatchEndpoint = "Failed to register for change notifications. Mute/unmute may continue to work, but mute state in traybar may not be accurate."
	msgWatchDevices  = "Warning: failed to register for device notifications, new devices may not be detected automatically."
)

var errorMessages = []struct {
	err error
	msg string
}{
	{ErrUnsupported, msgUnsupported},
	{ErrInit, msgInit},
	{ErrEnumerator, msgCreateEnumerator},
	{ErrEnumerate, msgEnumerate},
	{ErrCount, msgCount},
	{ErrNoDevices, msgNoDevices},
	{ErrDevice, msgDevice},
	{ErrActivate, msgActivate},
}

// Message returns the dialog text for an error returned by this package
// or a Backend.
func Message(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return msgEnumerate
}
