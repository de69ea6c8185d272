package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func fixedRand(v float64) func() float64 { return func() float64 { return v } }

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		rnd     float64
		value   float64
		display string
		trend   string
	}{
		{name: "max up", start: 5, rnd: 1, value: 7, display: "+7.0%", trend: Up},
		{name: "no move", start: 5, rnd: 0.5, value: 5, display: "+5.0%", trend: Up},
		{name: "down", start: 5, rnd: 0.25, value: 4, display: "4.0%", trend: Down},
		{name: "clamped at floor", start: 1, rnd: 0, value: Floor, display: "0.1%", trend: Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimulator([]Instrument{{Symbol: "X", Value: tt.start}}, WithRand(fixedRand(tt.rnd)))
			s.Step()
			q := s.Snapshot()[0]
			assert.InDelta(t, tt.value, q.Value, 1e-9)
			assert.Equal(t, tt.display, q.Display)
			assert.Equal(t, tt.trend, q.Trend)
		})
	}
}

func TestStep_NeverBelowFloor(t *testing.T) {
	s := NewSimulator(DefaultInstruments)
	for i := 0; i < 500; i++ {
		s.Step()
		for _, q := range s.Snapshot() {
			require.GreaterOrEqual(t, q.Value, Floor, q.Symbol)
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewSimulator(DefaultInstruments)
	snap := s.Snapshot()
	snap[0].Value = -1
	assert.NotEqual(t, -1.0, s.Snapshot()[0].Value)
	assert.Len(t, snap, len(DefaultInstruments))
	assert.Equal(t, "+12.4%", s.Snapshot()[0].Display)
}

func TestRun_TicksAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewSimulator([]Instrument{{Symbol: "X", Value: 5}},
		WithTick(5*time.Millisecond),
		WithRand(fixedRand(1)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return s.Snapshot()[0].Value >= 9
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
