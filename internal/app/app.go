// Package app runs the MiniMute event loop: hotkey presses toggle the
// microphones and the tray icon mirrors the result.
package app

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/minimute-app/minimute/internal/audio"
	"github.com/minimute-app/minimute/internal/config"
	"github.com/minimute-app/minimute/internal/models"
)

const (
	msgHotkey = "Failed to register hot key. Another instance already running?"
	msgBadKey = "Invalid hotkey in settings"
	msgReload = "Failed to reload settings"
	msgRebind = "Failed to register the new hot key, keeping the previous one"
)

// View shows the aggregate mute state.
type View interface {
	Update(muted bool)
}

// Hotkey is a registered global hotkey.
type Hotkey interface {
	Key() uint16
	Pressed() <-chan struct{}
	Close() error
}

// Config wires the loop to its platform services.
type Config struct {
	Settings *models.Settings
	Backend  audio.Backend
	Reporter audio.Reporter
	View     View

	RegisterHotkey func(key uint16) (Hotkey, error)

	// LoadSettings and SettingsChanged enable live reloads; both may be nil.
	LoadSettings    func() (*models.Settings, error)
	SettingsChanged <-chan struct{}

	// OnHotkeyChanged is told the display name of each bound key.
	OnHotkeyChanged func(name string)
}

// App owns the device list and the hotkey for the process lifetime.
type App struct {
	cfg      Config
	settings *models.Settings
	mics     *audio.Mics
	hk       Hotkey

	toggleCh  chan struct{}
	devicesCh chan struct{}
	muteCh    chan struct{}
}

// New creates an App. Nothing is acquired until Run.
func New(cfg Config) *App {
	if cfg.Settings == nil {
		cfg.Settings = models.NewSettings()
	}
	if cfg.OnHotkeyChanged == nil {
		cfg.OnHotkeyChanged = func(string) {}
	}
	return &App{
		cfg:       cfg,
		settings:  cfg.Settings,
		toggleCh:  make(chan struct{}, 1),
		devicesCh: make(chan struct{}, 1),
		muteCh:    make(chan struct{}, 1),
	}
}

// RequestToggle asks the loop to toggle as if the hotkey was pressed.
// It is safe to call from any goroutine.
func (a *App) RequestToggle() {
	post(a.toggleCh)
}

// post is a non-blocking, coalescing send.
func post(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run acquires the audio backend and the hotkey, then processes events one
// at a time until ctx is cancelled. Startup failures are reported to the
// user and returned.
func (a *App) Run(ctx context.Context) error {
	// Core Audio objects live in the apartment of the thread that made them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := a.cfg.Backend.Open(); err != nil {
		a.cfg.Reporter.Error(audio.Message(err))
		return fmt.Errorf("failed to open audio backend: %w", err)
	}
	defer a.cfg.Backend.Close()

	key, err := config.ParseKey(a.settings.Hotkey)
	if err != nil {
		a.cfg.Reporter.Error(fmt.Sprintf("%s: %v", msgBadKey, err))
		return err
	}

	hk, err := a.cfg.RegisterHotkey(key)
	if err != nil {
		a.cfg.Reporter.Error(msgHotkey)
		return fmt.Errorf("failed to register hotkey: %w", err)
	}
	a.hk = hk
	defer func() {
		if err := a.hk.Close(); err != nil {
			log.Printf("[app] failed to unregister hotkey: %v", err)
		}
	}()
	a.cfg.OnHotkeyChanged(config.KeyName(key))

	a.mics = audio.NewMics(a.cfg.Backend, a.cfg.Reporter, audio.Options{
		Watch:            a.settings.WatchDevices,
		OnDevicesChanged: func() { post(a.devicesCh) },
		OnMuteChanged:    func() { post(a.muteCh) },
	})
	defer a.mics.Close()

	a.cfg.View.Update(a.mics.AllMuted(true))
	log.Printf("[app] ready, hotkey %s", config.KeyName(key))

	for {
		select {
		case <-ctx.Done():
			log.Println("[app] shutting down")
			return nil

		case <-a.hk.Pressed():
			log.Println("[app] hotkey pressed")
			a.toggle()

		case <-a.toggleCh:
			log.Println("[app] toggle requested from tray")
			a.toggle()

		case <-a.devicesCh:
			log.Println("[app] device topology changed, rescanning")
			_ = a.mics.Rescan()

		case <-a.muteCh:
			a.cfg.View.Update(a.mics.AllMuted(false))

		case <-a.cfg.SettingsChanged:
			a.reload()
		}
	}
}

func (a *App) toggle() {
	switch r := a.mics.Toggle(); r {
	case audio.NowMuted:
		a.cfg.View.Update(true)
	case audio.NowUnmuted:
		a.cfg.View.Update(false)
	default:
		// Enumeration failed: nothing is known, leave the icon alone.
		if a.mics.Count() == 0 {
			return
		}
		a.cfg.View.Update(a.mics.AllMuted(false))
	}
}

func (a *App) reload() {
	if a.cfg.LoadSettings == nil {
		return
	}

	s, err := a.cfg.LoadSettings()
	if err != nil {
		log.Printf("[app] %s: %v", msgReload, err)
		a.cfg.Reporter.Error(fmt.Sprintf("%s: %v", msgReload, err))
		return
	}

	key, err := config.ParseKey(s.Hotkey)
	if err != nil {
		a.cfg.Reporter.Error(fmt.Sprintf("%s: %v", msgBadKey, err))
		return
	}

	if key != a.hk.Key() {
		if err := a.rebind(key); err != nil {
			log.Printf("[app] %s: %v", msgRebind, err)
			a.cfg.Reporter.Error(msgRebind)
			s.Hotkey = a.settings.Hotkey
		}
	}

	if s.WatchDevices != a.settings.WatchDevices {
		log.Printf("[app] watch_devices change takes effect after restart")
		s.WatchDevices = a.settings.WatchDevices
	}

	a.settings = s
	log.Printf("[app] settings reloaded")
}

// rebind registers key before releasing the old binding, so a failure
// leaves the old hotkey working.
func (a *App) rebind(key uint16) error {
	hk, err := a.cfg.RegisterHotkey(key)
	if err != nil {
		return err
	}
	if err := a.hk.Close(); err != nil {
		log.Printf("[app] failed to unregister previous hotkey: %v", err)
	}
	a.hk = hk
	a.cfg.OnHotkeyChanged(config.KeyName(key))
	log.Printf("[app] hotkey rebound to %s", config.KeyName(key))
	return nil
}
