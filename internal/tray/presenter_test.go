package tray

import (
	"bytes"
	"testing"
)

type recordingIcon struct {
	icons    [][]byte
	tooltips []string
}

func (r *recordingIcon) SetIcon(iconBytes []byte)  { r.icons = append(r.icons, iconBytes) }
func (r *recordingIcon) SetTooltip(tooltip string) { r.tooltips = append(r.tooltips, tooltip) }

func TestPresenterTooltipFollowsState(t *testing.T) {
	icon := &recordingIcon{}
	p := NewPresenter(icon)

	p.Init()
	if p.Muted() {
		t.Error("Muted() after Init = true, want false")
	}

	steps := []struct {
		muted       bool
		wantTooltip string
		wantIcon    []byte
	}{
		{true, "Muted", mutedIcon},
		{false, "Unmuted", unmutedIcon},
		{true, "Muted", mutedIcon},
		{true, "Muted", mutedIcon},
	}

	for i, s := range steps {
		p.Update(s.muted)
		last := len(icon.tooltips) - 1
		if got := icon.tooltips[last]; got != s.wantTooltip {
			t.Errorf("step %d: tooltip = %q, want %q", i, got, s.wantTooltip)
		}
		if !bytes.Equal(icon.icons[last], s.wantIcon) {
			t.Errorf("step %d: wrong icon resource", i)
		}
		if p.Muted() != s.muted {
			t.Errorf("step %d: Muted() = %v, want %v", i, p.Muted(), s.muted)
		}
	}

	for _, tip := range icon.tooltips {
		if tip != TooltipMuted && tip != TooltipUnmuted {
			t.Errorf("unexpected tooltip %q", tip)
		}
	}
	if icon.tooltips[0] != TooltipUnmuted {
		t.Errorf("initial tooltip = %q, want %q", icon.tooltips[0], TooltipUnmuted)
	}
}

func TestIconResourcesAreDistinct(t *testing.T) {
	if len(mutedIcon) == 0 || len(unmutedIcon) == 0 || len(appIcon) == 0 {
		t.Fatal("embedded icon is empty")
	}
	if bytes.Equal(mutedIcon, unmutedIcon) {
		t.Error("muted and unmuted icons are identical")
	}
	// ICO header: reserved 0, type 1.
	for name, data := range map[string][]byte{"muted": mutedIcon, "unmuted": unmutedIcon} {
		if !bytes.HasPrefix(data, []byte{0, 0, 1, 0}) {
			t.Errorf("%s icon is not an ICO file", name)
		}
	}
}

func TestFormatHotkey(t *testing.T) {
	if got := formatHotkey("Pause"); got != "Hotkey: Pause" {
		t.Errorf("formatHotkey(Pause) = %q", got)
	}
	if got := formatHotkey(""); got != "Hotkey: none" {
		t.Errorf("formatHotkey(\"\") = %q", got)
	}
}
