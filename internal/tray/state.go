// Package tray implements the notification-area icon and its menu.
package tray

import (
	_ "embed"
)

//go:embed muted.ico
var mutedIcon []byte

//go:embed unmuted.ico
var unmutedIcon []byte

// Tooltips shown next to the icon. No other tooltip is ever shown.
const (
	TooltipMuted   = "Muted"
	TooltipUnmuted = "Unmuted"
)

// Handler receives the menu actions.
type Handler interface {
	ToggleRequested()
	QuitRequested()
}

// Tooltip returns the tooltip for a mute state.
func Tooltip(muted bool) string {
	if muted {
		return TooltipMuted
	}
	return TooltipUnmuted
}

// IconData returns the icon resource for a mute state.
func IconData(muted bool) []byte {
	if muted {
		return mutedIcon
	}
	return unmutedIcon
}
