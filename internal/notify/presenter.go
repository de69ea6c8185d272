// Package notify shows one transient, auto-dismissing notification at a time.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Severity selects the icon and border color.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// ParseSeverity maps unknown values to Info.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Success, Error:
		return Severity(s)
	default:
		return Info
	}
}

// Icon returns the glyph shown next to the message.
func (s Severity) Icon() string {
	switch s {
	case Success:
		return "✅"
	case Error:
		return "❌"
	default:
		return "ℹ️"
	}
}

// Border returns the CSS variable used for the toast border.
func (s Severity) Border() string {
	switch s {
	case Success:
		return "var(--profit-green)"
	case Error:
		return "var(--warning-red)"
	default:
		return "var(--quantum-cyan)"
	}
}

// Notification is the visible toast.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Icon      string    `json:"icon"`
	Border    string    `json:"border"`
	ShownAt   time.Time `json:"shownAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Presenter holds at most one notification. A new one replaces the old and
// restarts the dismiss timer.
type Presenter struct {
	ttl    time.Duration
	policy *bluemonday.Policy
	now    func() time.Time

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
}

// NewPresenter returns a Presenter dismissing after ttl (DefaultTTL when ttl <= 0).
func NewPresenter(ttl time.Duration) *Presenter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Presenter{
		ttl:    ttl,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// Notify replaces the visible notification. Markup in message is stripped.
func (p *Presenter) Notify(message string, severity Severity) Notification {
	severity = ParseSeverity(string(severity))
	now := p.now()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   p.policy.Sanitize(message),
		Severity:  severity,
		Icon:      severity.Icon(),
		Border:    severity.Border(),
		ShownAt:   now,
		ExpiresAt: now.Add(p.ttl),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.current = &n
	id := n.ID
	p.timer = time.AfterFunc(p.ttl, func() { p.expire(id) })
	return n
}

func (p *Presenter) expire(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// a replaced notification's timer may still fire
	if p.current != nil && p.current.ID == id {
		p.current = nil
		p.timer = nil
	}
}

// Current returns the visible notification.
func (p *Presenter) Current() (Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Notification{}, false
	}
	return *p.current, true
}

// Dismiss closes the visible notification early. It reports whether one was visible.
func (p *Presenter) Dismiss() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	visible := p.current != nil
	p.current = nil
	return visible
}
