package tray

import (
	"sync"
)

// Icon is the shell notification icon.
type Icon interface {
	SetIcon(iconBytes []byte)
	SetTooltip(tooltip string)
}

// Presenter mirrors a mute state on an Icon.
type Presenter struct {
	icon Icon

	mu    sync.Mutex
	muted bool
}

// NewPresenter creates a presenter for icon. Call Init before Update.
func NewPresenter(icon Icon) *Presenter {
	return &Presenter{icon: icon}
}

// Init shows the initial, unmuted state.
func (p *Presenter) Init() {
	p.Update(false)
}

// Update switches icon and tooltip to muted.
func (p *Presenter) Update(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	p.icon.SetIcon(IconData(muted))
	p.icon.SetTooltip(Tooltip(muted))
}

// Muted returns the state last shown.
func (p *Presenter) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
