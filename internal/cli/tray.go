package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/minimute-app/minimute/internal/app"
	"github.com/minimute-app/minimute/internal/audio"
	"github.com/minimute-app/minimute/internal/config"
	"github.com/minimute-app/minimute/internal/dialog"
	"github.com/minimute-app/minimute/internal/hotkey"
	"github.com/minimute-app/minimute/internal/models"
	"github.com/minimute-app/minimute/internal/tray"
	"github.com/minimute-app/minimute/internal/watcher"
)

const logPrefix = "[minimute] "

// loadSettings opens the log file with default rotation before reading
// settings.yaml, so a load failure lands in the log too. The file is
// reopened when the settings ask for different rotation.
func loadSettings(reporter audio.Reporter) (*models.Settings, io.Closer) {
	defaults := models.NewSettings()

	logCloser, err := config.SetupLogging(logPrefix, defaults.Log)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		reporter.Error(fmt.Sprintf("Failed to load settings, using defaults: %v", err))
		return defaults, logCloser
	}

	if logCloser != nil && settings.Log != defaults.Log {
		_ = logCloser.Close()
		logCloser, err = config.SetupLogging(logPrefix, settings.Log)
		if err != nil {
			log.Printf("Failed to reopen log file: %v", err)
		}
	}
	return settings, logCloser
}

// runTray runs MiniMute with its tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS; Windows does not
// care but the same layout is kept.
func runTray() {
	reporter := dialog.New(dialog.Title)

	settings, logCloser := loadSettings(reporter)
	if logCloser != nil {
		defer logCloser.Close()
	}

	var settingsChanged <-chan struct{}
	if w := watchSettings(); w != nil {
		defer w.Stop()
		settingsChanged = w.Changed()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var a *app.App
	runDone := make(chan struct{})

	onStart := func(presenter *tray.Presenter) {
		a = app.New(app.Config{
			Settings:        settings,
			Backend:         audio.NewBackend(),
			Reporter:        reporter,
			View:            presenter,
			RegisterHotkey:  registerHotkey,
			LoadSettings:    config.LoadSettings,
			SettingsChanged: settingsChanged,
			OnHotkeyChanged: tray.SetHotkeyName,
		})

		go func() {
			if err := a.Run(ctx); err != nil {
				log.Printf("Exiting: %v", err)
			}
			close(runDone)
			tray.Quit()
		}()

		// Quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				log.Printf("Received signal %v, shutting down...", sig)
				cancel()
			case <-runDone:
			}
		}()
	}

	onExit := func() {
		cancel()
		if a != nil {
			<-runDone
		}
		log.Println("MiniMute stopped")
	}

	// onStart runs before the menu can be clicked, so a is set by then.
	handler := &lazyHandler{
		getApp: func() *app.App { return a },
		quit:   cancel,
	}

	log.Printf("Starting MiniMute (PID %d)", os.Getpid())
	tray.Run(handler, onStart, onExit)
}

// lazyHandler forwards tray menu actions to the App created in onStart.
type lazyHandler struct {
	getApp func() *app.App
	quit   func()
}

func (l *lazyHandler) ToggleRequested() {
	if a := l.getApp(); a != nil {
		a.RequestToggle()
	}
}

func (l *lazyHandler) QuitRequested() {
	l.quit()
}

func registerHotkey(key uint16) (app.Hotkey, error) {
	l, err := hotkey.Register(key)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func watchSettings() *watcher.Watcher {
	if err := config.EnsureGlobalDir(); err != nil {
		log.Printf("Warning: failed to create settings directory: %v", err)
		return nil
	}

	path, err := config.GlobalSettingsFile()
	if err != nil {
		log.Printf("Warning: failed to resolve settings file: %v", err)
		return nil
	}

	w, err := watcher.New(path)
	if err != nil {
		log.Printf("Warning: failed to watch settings: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Printf("Warning: failed to watch settings: %v", err)
		w.Stop()
		return nil
	}
	return w
}
