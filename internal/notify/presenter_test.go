package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, Success, ParseSeverity("success"))
	assert.Equal(t, Error, ParseSeverity("error"))
	assert.Equal(t, Info, ParseSeverity("info"))
	assert.Equal(t, Info, ParseSeverity("warning"))
	assert.Equal(t, Info, ParseSeverity(""))
}

func TestNotify_Decorations(t *testing.T) {
	p := NewPresenter(time.Minute)
	defer p.Dismiss()

	tests := []struct {
		sev    Severity
		icon   string
		border string
	}{
		{Success, "✅", "var(--profit-green)"},
		{Error, "❌", "var(--warning-red)"},
		{Info, "ℹ️", "var(--quantum-cyan)"},
		{Severity("bogus"), "ℹ️", "var(--quantum-cyan)"},
	}
	for _, tt := range tests {
		n := p.Notify("hello", tt.sev)
		assert.Equal(t, tt.icon, n.Icon)
		assert.Equal(t, tt.border, n.Border)
		assert.Equal(t, time.Minute, n.ExpiresAt.Sub(n.ShownAt))
	}
}

func TestNotify_ReplacesExisting(t *testing.T) {
	p := NewPresenter(time.Minute)
	defer p.Dismiss()

	first := p.Notify("first", Info)
	second := p.Notify("second", Error)
	require.NotEqual(t, first.ID, second.ID)

	cur, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, second, cur)
}

func TestNotify_AutoDismiss(t *testing.T) {
	p := NewPresenter(20 * time.Millisecond)
	p.Notify("bye", Success)

	require.Eventually(t, func() bool {
		_, ok := p.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotify_ReplacementRestartsTimer(t *testing.T) {
	p := NewPresenter(200 * time.Millisecond)
	p.Notify("first", Info)
	time.Sleep(120 * time.Millisecond)
	second := p.Notify("second", Info)

	// the first timer would have fired by now
	time.Sleep(120 * time.Millisecond)
	cur, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)

	require.Eventually(t, func() bool {
		_, ok := p.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotify_SanitizesMarkup(t *testing.T) {
	p := NewPresenter(time.Minute)
	defer p.Dismiss()

	n := p.Notify(`<img src=x onerror="alert(1)">Welcome <b>back</b>`, Success)
	assert.Equal(t, "Welcome back", n.Message)
}

func TestDismiss(t *testing.T) {
	p := NewPresenter(time.Minute)
	assert.False(t, p.Dismiss())

	p.Notify("x", Info)
	assert.True(t, p.Dismiss())
	_, ok := p.Current()
	assert.False(t, ok)
	assert.False(t, p.Dismiss())
}

func TestNewPresenter_DefaultTTL(t *testing.T) {
	p := NewPresenter(0)
	defer p.Dismiss()
	n := p.Notify("x", Info)
	assert.Equal(t, DefaultTTL, n.ExpiresAt.Sub(n.ShownAt))
}
