package tray

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/getlantern/systray"
)

//go:embed app.ico
var appIcon []byte

var (
	handler    Handler
	onStart    func(*Presenter)
	onExit     func()
	presenter  *Presenter
	hotkeyItem *systray.MenuItem
	toggleItem *systray.MenuItem
	quitItem   *systray.MenuItem
)

// systrayIcon drives the process-wide systray icon.
type systrayIcon struct{}

func (systrayIcon) SetIcon(iconBytes []byte)  { systray.SetIcon(iconBytes) }
func (systrayIcon) SetTooltip(tooltip string) { systray.SetTooltip(tooltip) }

// Run shows the tray icon. This blocks the calling goroutine (must be main)
// until Quit is called. onStartFn is called with the icon presenter once
// the icon exists; onExitFn is called after the icon was removed.
func Run(h Handler, onStartFn func(*Presenter), onExitFn func()) {
	handler = h
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit removes the icon and makes Run return.
func Quit() {
	systray.Quit()
}

// SetHotkeyName updates the menu line naming the bound key.
func SetHotkeyName(name string) {
	if hotkeyItem != nil {
		hotkeyItem.SetTitle(formatHotkey(name))
	}
}

func onReady() {
	presenter = NewPresenter(systrayIcon{})
	presenter.Init()

	header := systray.AddMenuItem("MiniMute", "")
	header.SetIcon(appIcon)
	header.Disable()

	hotkeyItem = systray.AddMenuItem(formatHotkey(""), "")
	hotkeyItem.Disable()

	systray.AddSeparator()

	toggleItem = systray.AddMenuItem("Toggle microphones", "Mute or unmute every microphone")
	quitItem = systray.AddMenuItem("Quit", "Exit MiniMute")

	if onStart != nil {
		onStart(presenter)
	}

	go handleClicks()
}

func onQuit() {
	log.Println("[tray] icon removed")
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-toggleItem.ClickedCh:
			if handler != nil {
				handler.ToggleRequested()
			}

		case <-quitItem.ClickedCh:
			log.Println("[tray] quit clicked")
			if handler != nil {
				handler.QuitRequested()
			}
			return
		}
	}
}

func formatHotkey(name string) string {
	if name == "" {
		return "Hotkey: none"
	}
	return fmt.Sprintf("Hotkey: %s", name)
}
