// Package hotkey registers the single global hotkey that toggles the
// microphones.
package hotkey

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.design/x/hotkey"
)

// ErrAlreadyRegistered is returned when the key is held by another
// process, usually a second MiniMute instance.
var ErrAlreadyRegistered = errors.New("hotkey already registered")

// Listener delivers presses of a registered hotkey.
type Listener struct {
	key        uint16
	unregister func() error
	pressed    chan struct{}
	done       chan struct{}
	once       sync.Once
}

// Register grabs key (a virtual-key code) system-wide without modifiers.
func Register(key uint16) (*Listener, error) {
	hk := hotkey.New(nil, hotkey.Key(key))
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("%w: key 0x%02X: %v", ErrAlreadyRegistered, key, err)
	}

	l := newListener(key, hk.Keydown(), hk.Unregister)
	log.Printf("[hotkey] registered key 0x%02X", key)
	return l, nil
}

func newListener(key uint16, keydown <-chan hotkey.Event, unregister func() error) *Listener {
	l := &Listener{
		key:        key,
		unregister: unregister,
		pressed:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	go l.forward(keydown)
	return l
}

// Key returns the registered virtual-key code.
func (l *Listener) Key() uint16 {
	return l.key
}

// Pressed is signalled on every key press. Presses arriving while one is
// still pending are coalesced.
func (l *Listener) Pressed() <-chan struct{} {
	return l.pressed
}

// Close unregisters the hotkey.
func (l *Listener) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		err = l.unregister()
		log.Printf("[hotkey] unregistered key 0x%02X", l.key)
	})
	return err
}

func (l *Listener) forward(keydown <-chan hotkey.Event) {
	for {
		select {
		case <-l.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			select {
			case l.pressed <- struct{}{}:
			default:
			}
		}
	}
}
