package audio

import (
	"log"
)

// Options configures Mics.
type Options struct {
	// Watch subscribes to device topology and per-endpoint mute changes.
	Watch bool

	// OnDevicesChanged and OnMuteChanged receive the notifications when
	// Watch is set. They are called from foreign threads and must not
	// call back into Mics.
	OnDevicesChanged func()
	OnMuteChanged    func()
}

// Mics owns the list of activated capture endpoints. It is not safe for
// concurrent use; all calls must come from the thread that opened the
// backend.
type Mics struct {
	backend  Backend
	reporter Reporter
	opts     Options

	devices         []Endpoint
	watchingDevices bool
}

// NewMics creates an empty device list over backend.
func NewMics(backend Backend, reporter Reporter, opts Options) *Mics {
	if opts.OnDevicesChanged == nil {
		opts.OnDevicesChanged = func() {}
	}
	if opts.OnMuteChanged == nil {
		opts.OnMuteChanged = func() {}
	}
	return &Mics{
		backend:  backend,
		reporter: reporter,
		opts:     opts,
	}
}

// Count returns the number of endpoints held since the last Rescan.
func (m *Mics) Count() int {
	return len(m.devices)
}

// Rescan releases the held endpoints and enumerates the active capture
// endpoints again. On failure the list is left empty and the failure has
// already been reported.
func (m *Mics) Rescan() error {
	m.clear()

	if m.opts.Watch && !m.watchingDevices {
		if err := m.backend.WatchDevices(m.opts.OnDevicesChanged); err != nil {
			log.Printf("[audio] device notifications: %v", err)
			m.reporter.Warning(msgWatchDevices)
		} else {
			m.watchingDevices = true
		}
	}

	devices, err := m.backend.Endpoints()
	if err == nil && len(devices) == 0 {
		err = ErrNoDevices
	}
	if err != nil {
		log.Printf("[audio] enumeration failed: %v", err)
		m.reporter.Error(Message(err))
		return err
	}

	if m.opts.Watch {
		watchFailed := false
		for _, d := range devices {
			if err := d.Watch(m.opts.OnMuteChanged); err != nil {
				log.Printf("[audio] change notifications for %q: %v", d.Name(), err)
				watchFailed = true
			}
		}
		if watchFailed {
			m.reporter.Warning(msgWatchEndpoint)
		}
	}

	m.devices = devices
	log.Printf("[audio] %d microphone(s) active", len(devices))
	return nil
}

// Toggle re-enumerates, inverts the mute flag of the first endpoint and
// applies that one value to every endpoint. Endpoints that were already
// set are not rolled back when a later one fails.
func (m *Mics) Toggle() ToggleResult {
	if err := m.Rescan(); err != nil {
		return Indeterminate
	}

	mute := true
	if muted, err := m.devices[0].Mute(); err != nil {
		log.Printf("[audio] reading mute of %q: %v", m.devices[0].Name(), err)
		m.reporter.Error(msgGetMute)
	} else {
		mute = !muted
	}

	failed := false
	for _, d := range m.devices {
		if err := d.SetMute(mute); err != nil {
			log.Printf("[audio] setting mute of %q to %v: %v", d.Name(), mute, err)
			failed = true
		}
	}
	if failed {
		m.reporter.Error(msgSetMute)
		return Indeterminate
	}

	log.Printf("[audio] set mute to %v on %d microphone(s)", mute, len(m.devices))
	if mute {
		return NowMuted
	}
	return NowUnmuted
}

// AllMuted reports whether every held endpoint is muted. With rescan set
// the list is rebuilt first. An empty list and any read failure count as
// not muted.
func (m *Mics) AllMuted(rescan bool) bool {
	if rescan {
		if err := m.Rescan(); err != nil {
			return false
		}
	}
	if len(m.devices) == 0 {
		return false
	}

	for _, d := range m.devices {
		muted, err := d.Mute()
		if err != nil || !muted {
			return false
		}
	}
	return true
}

// Devices returns a snapshot of the held endpoints.
func (m *Mics) Devices() []DeviceState {
	states := make([]DeviceState, 0, len(m.devices))
	for _, d := range m.devices {
		muted, err := d.Mute()
		states = append(states, DeviceState{
			ID:    d.ID(),
			Name:  d.Name(),
			Muted: muted,
			Err:   err,
		})
	}
	return states
}

// Close releases every held endpoint.
func (m *Mics) Close() {
	m.clear()
}

func (m *Mics) clear() {
	for _, d := range m.devices {
		if err := d.Close(); err != nil {
			log.Printf("[audio] releasing %q: %v", d.Name(), err)
		}
	}
	m.devices = nil
}
