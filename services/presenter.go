package services

import (
	"strconv"
	"sync"
	"time"
)

// Toast display windows. Notifications linger a second longer than
// booking-action feedback.
const (
	NotificationToastDuration = 4 * time.Second
	BookingToastDuration      = 3 * time.Second

	toastExitDuration = 300 * time.Millisecond
)

// Broadcaster pushes presenter events to connected UI clients. The
// websocket hub implements it; a nil Broadcaster is allowed in tests.
type Broadcaster interface {
	Publish(event interface{})
}

type BadgeEvent struct {
	Type    string `json:"type"` // "badge"
	Count   int    `json:"count"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

type ToastEvent struct {
	Type    string `json:"type"`  // "toast"
	Phase   string `json:"phase"` // "show", "dismiss", "hide"
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

type toastPhase int

const (
	toastIdle toastPhase = iota
	toastShowing
	toastDismissing
)

// Presenter projects store state into the badge and the single transient
// toast. Toasts do not queue: showing a new one while another is visible
// replaces its content and restarts the dismiss timer.
type Presenter struct {
	bc Broadcaster

	mu      sync.Mutex
	phase   toastPhase
	title   string
	message string
	dismiss *time.Timer
	exit    *time.Timer
}

func NewPresenter(bc Broadcaster) *Presenter {
	return &Presenter{bc: bc}
}

// BadgeLabel renders an unread count the way the badge displays it.
func BadgeLabel(count int) string {
	switch {
	case count > 9:
		return "9+"
	case count > 0:
		return strconv.Itoa(count)
	default:
		return "0"
	}
}

func (p *Presenter) RefreshBadge(count int) {
	p.publish(BadgeEvent{
		Type:    "badge",
		Count:   count,
		Label:   BadgeLabel(count),
		Visible: count > 0,
	})
}

// ShowToast displays a toast for the given duration, replacing whatever is
// currently visible.
func (p *Presenter) ShowToast(title, message string, duration time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.dismiss != nil {
		p.dismiss.Stop()
	}
	if p.exit != nil {
		p.exit.Stop()
	}
	p.phase = toastShowing
	p.title = title
	p.message = message
	p.dismiss = time.AfterFunc(duration, p.beginDismiss)
	p.mu.Unlock()

	p.publish(ToastEvent{Type: "toast", Phase: "show", Title: title, Message: message})
}

func (p *Presenter) beginDismiss() {
	p.mu.Lock()
	if p.phase != toastShowing {
		p.mu.Unlock()
		return
	}
	p.phase = toastDismissing
	p.exit = time.AfterFunc(toastExitDuration, p.finishDismiss)
	p.mu.Unlock()

	p.publish(ToastEvent{Type: "toast", Phase: "dismiss"})
}

func (p *Presenter) finishDismiss() {
	p.mu.Lock()
	if p.phase != toastDismissing {
		p.mu.Unlock()
		return
	}
	p.phase = toastIdle
	p.title = ""
	p.message = ""
	p.mu.Unlock()

	p.publish(ToastEvent{Type: "toast", Phase: "hide"})
}

// ToastVisible reports whether a toast is currently on screen, and its
// content when so.
func (p *Presenter) ToastVisible() (title, message string, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phase == toastIdle {
		return "", "", false
	}
	return p.title, p.message, true
}

func (p *Presenter) publish(event interface{}) {
	if p == nil || p.bc == nil {
		return
	}
	p.bc.Publish(event)
}
