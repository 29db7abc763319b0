package app

import (
	"errors"
	"sync"

	"github.com/minimute-app/minimute/internal/audio"
)

type fakeMic struct {
	muted  bool
	setErr error

	mu     sync.Mutex
	onMute func()
}

// flip changes the flag behind the loop's back, the way another program
// would, and fires the control-change callback.
func (m *fakeMic) flip(muted bool) {
	m.mu.Lock()
	m.muted = muted
	fn := m.onMute
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type fakeEndpoint struct {
	mic *fakeMic
}

func (e fakeEndpoint) ID() string   { return "" }
func (e fakeEndpoint) Name() string { return "fake" }

func (e fakeEndpoint) Mute() (bool, error) {
	e.mic.mu.Lock()
	defer e.mic.mu.Unlock()
	return e.mic.muted, nil
}

func (e fakeEndpoint) SetMute(muted bool) error {
	e.mic.mu.Lock()
	defer e.mic.mu.Unlock()
	if e.mic.setErr != nil {
		return e.mic.setErr
	}
	e.mic.muted = muted
	return nil
}

func (e fakeEndpoint) Watch(fn func()) error {
	e.mic.mu.Lock()
	e.mic.onMute = fn
	e.mic.mu.Unlock()
	return nil
}

func (e fakeEndpoint) Close() error { return nil }

type fakeBackend struct {
	openErr error
	mics    []*fakeMic

	mu         sync.Mutex
	closed     bool
	onDevices  func()
	enumerated chan struct{}
}

func newFakeBackend(muted ...bool) *fakeBackend {
	b := &fakeBackend{enumerated: make(chan struct{}, 16)}
	for _, m := range muted {
		b.mics = append(b.mics, &fakeMic{muted: m})
	}
	return b
}

func (b *fakeBackend) Open() error { return b.openErr }

func (b *fakeBackend) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *fakeBackend) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *fakeBackend) Endpoints() ([]audio.Endpoint, error) {
	defer func() { b.enumerated <- struct{}{} }()
	var eps []audio.Endpoint
	for _, m := range b.mics {
		eps = append(eps, fakeEndpoint{mic: m})
	}
	return eps, nil
}

func (b *fakeBackend) WatchDevices(fn func()) error {
	b.mu.Lock()
	b.onDevices = fn
	b.mu.Unlock()
	return nil
}

func (b *fakeBackend) devicesChanged() {
	b.mu.Lock()
	fn := b.onDevices
	b.mu.Unlock()
	fn()
}

type fakeReporter struct {
	errors chan string
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{errors: make(chan string, 16)}
}

func (r *fakeReporter) Error(msg string)   { r.errors <- msg }
func (r *fakeReporter) Warning(msg string) {}

type fakeView struct {
	updates chan bool
}

func newFakeView() *fakeView {
	return &fakeView{updates: make(chan bool, 16)}
}

func (v *fakeView) Update(muted bool) { v.updates <- muted }

type fakeHotkey struct {
	key     uint16
	pressed chan struct{}

	mu     sync.Mutex
	closed bool
}

func (h *fakeHotkey) Key() uint16              { return h.key }
func (h *fakeHotkey) Pressed() <-chan struct{} { return h.pressed }

func (h *fakeHotkey) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *fakeHotkey) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

var errTaken = errors.New("key taken")

// fakeKeyboard hands out hotkeys and refuses keys listed in taken.
type fakeKeyboard struct {
	mu     sync.Mutex
	taken  map[uint16]bool
	issued []*fakeHotkey
}

func (k *fakeKeyboard) register(key uint16) (Hotkey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.taken[key] {
		return nil, errTaken
	}
	hk := &fakeHotkey{key: key, pressed: make(chan struct{}, 1)}
	k.issued = append(k.issued, hk)
	return hk, nil
}

func (k *fakeKeyboard) last() *fakeHotkey {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.issued) == 0 {
		return nil
	}
	return k.issued[len(k.issued)-1]
}
