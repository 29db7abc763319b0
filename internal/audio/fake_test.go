package audio

import (
	"errors"
	"fmt"
)

var errFake = errors.New("fake platform failure")

type fakeEndpoint struct {
	id       string
	muted    bool
	getErr   error
	setErr   error
	watchErr error

	watched  bool
	closed   bool
	setCalls int
}

func (e *fakeEndpoint) ID() string   { return e.id }
func (e *fakeEndpoint) Name() string { return "Mic " + e.id }

func (e *fakeEndpoint) Mute() (bool, error) {
	if e.getErr != nil {
		return false, e.getErr
	}
	return e.muted, nil
}

func (e *fakeEndpoint) SetMute(muted bool) error {
	e.setCalls++
	if e.setErr != nil {
		return e.setErr
	}
	e.muted = muted
	return nil
}

func (e *fakeEndpoint) Watch(func()) error {
	if e.watchErr != nil {
		return e.watchErr
	}
	e.watched = true
	return nil
}

func (e *fakeEndpoint) Close() error {
	e.watched = false
	e.closed = true
	return nil
}

// fakeBackend hands out the same hardware state on every enumeration,
// wrapped in fresh handles, like Core Audio does.
type fakeBackend struct {
	hardware   []*fakeEndpoint
	enumErr    error
	watchErr   error
	watchCalls int

	handed [][]*fakeEndpoint
}

func newFakeBackend(muted ...bool) *fakeBackend {
	b := &fakeBackend{}
	for i, m := range muted {
		b.hardware = append(b.hardware, &fakeEndpoint{id: fmt.Sprint(i), muted: m})
	}
	return b
}

func (b *fakeBackend) Open() error { return nil }
func (b *fakeBackend) Close()      {}

func (b *fakeBackend) Endpoints() ([]Endpoint, error) {
	if b.enumErr != nil {
		return nil, b.enumErr
	}
	var batch []*fakeEndpoint
	var eps []Endpoint
	for _, h := range b.hardware {
		batch = append(batch, h)
		eps = append(eps, h)
		h.closed = false
	}
	b.handed = append(b.handed, batch)
	return eps, nil
}

func (b *fakeBackend) WatchDevices(func()) error {
	b.watchCalls++
	return b.watchErr
}

func (b *fakeBackend) states() []bool {
	out := make([]bool, len(b.hardware))
	for i, h := range b.hardware {
		out[i] = h.muted
	}
	return out
}

type recordingReporter struct {
	errors   []string
	warnings []string
}

func (r *recordingReporter) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingReporter) Warning(msg string) { r.warnings = append(r.warnings, msg) }
