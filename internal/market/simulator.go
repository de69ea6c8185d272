// Package market produces fake instrument quotes for the landing page ticker.
package market

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultTick is the interval between price moves.
	DefaultTick = 3 * time.Second
	// Floor is the lowest value a quote can reach.
	Floor = 0.1
	// maxStep bounds a single move to ±maxStep/2.
	maxStep = 4.0
)

// Trend values.
const (
	Up   = "up"
	Down = "down"
)

// Instrument is a ticker row and its starting value in percent.
type Instrument struct {
	Symbol string
	Name   string
	Value  float64
}

// DefaultInstruments mirrors the instrument cards on the landing page.
var DefaultInstruments = []Instrument{
	{Symbol: "BTC/USD", Name: "Bitcoin", Value: 12.4},
	{Symbol: "ETH/USD", Name: "Ethereum", Value: 8.7},
	{Symbol: "EUR/USD", Name: "Euro", Value: 1.2},
	{Symbol: "XAU/USD", Name: "Gold", Value: 3.5},
	{Symbol: "SPX", Name: "S&P 500", Value: 2.1},
}

// Quote is the latest state of one instrument.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Change    float64   `json:"change"`
	Display   string    `json:"display"`
	Trend     string    `json:"trend"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Simulator moves every instrument by a random step on each tick.
type Simulator struct {
	tick time.Duration
	rnd  func() float64
	now  func() time.Time

	mu     sync.RWMutex
	quotes []Quote
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithTick sets the tick interval.
func WithTick(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithRand replaces the [0,1) random source.
func WithRand(f func() float64) Option { return func(s *Simulator) { s.rnd = f } }

// NewSimulator seeds quotes from instruments.
func NewSimulator(instruments []Instrument, opts ...Option) *Simulator {
	s := &Simulator{tick: DefaultTick, rnd: rand.Float64, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	now := s.now()
	s.quotes = make([]Quote, 0, len(instruments))
	for _, in := range instruments {
		s.quotes = append(s.quotes, Quote{
			Symbol:    in.Symbol,
			Name:      in.Name,
			Value:     in.Value,
			Display:   format(in.Value, 0),
			Trend:     Up,
			UpdatedAt: now,
		})
	}
	return s
}

// Step applies one random move to every quote.
func (s *Simulator) Step() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		q := &s.quotes[i]
		change := (s.rnd() - 0.5) * maxStep
		q.Value = round1(math.Max(Floor, q.Value+change))
		q.Change = change
		q.Display = format(q.Value, change)
		q.Trend = Up
		if change < 0 {
			q.Trend = Down
		}
		q.UpdatedAt = now
	}
}

// Run steps on every tick until ctx is done.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Snapshot copies the current quotes.
func (s *Simulator) Snapshot() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// the sign follows the last move, not the value
func format(value, change float64) string {
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, value)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
