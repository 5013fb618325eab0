package views

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultRevealInterval is the pause between two loading messages.
const DefaultRevealInterval = 1500 * time.Millisecond

// LoadingMessages are revealed one per interval, in this order.
var LoadingMessages = []string{
	"Analyzing your trip requirements...",
	"Searching real flights with Amadeus API...",
	"Finding available hotels...",
	"Generating personalized itinerary...",
	"Optimizing day plans...",
	"Finalizing your perfect trip...",
}

var ErrSequencerStarted = errors.New("loading sequencer already started")

// MessagesAt returns what a sequencer started elapsed ago would display.
func MessagesAt(elapsed, interval time.Duration) []string {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	if elapsed < 0 {
		elapsed = 0
	}
	n := int(elapsed / interval)
	if n > len(LoadingMessages) {
		n = len(LoadingMessages)
	}
	return append([]string(nil), LoadingMessages[:n]...)
}

// Sequencer reveals LoadingMessages one step at a time. The count only grows;
// once every message is shown further steps are no-ops. A Sequencer runs once.
type Sequencer struct {
	interval time.Duration

	mu       sync.Mutex
	revealed int
	started  bool
	stopped  bool

	updates chan string
}

func NewSequencer(interval time.Duration) *Sequencer {
	return ResumeSequencer(interval, 0)
}

// ResumeSequencer returns a sequencer that already shows the first revealed
// messages. Only the messages after them are published on Updates.
func ResumeSequencer(interval time.Duration, revealed int) *Sequencer {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	revealed = max(0, min(revealed, len(LoadingMessages)))
	return &Sequencer{
		interval: interval,
		revealed: revealed,
		// every message is published at most once, so sends never block
		updates: make(chan string, len(LoadingMessages)),
	}
}

// Displayed returns a copy of the messages revealed so far.
func (s *Sequencer) Displayed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), LoadingMessages[:s.revealed]...)
}

// Done reports whether every message has been revealed.
func (s *Sequencer) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed == len(LoadingMessages)
}

// Updates yields each message as it is revealed and is closed when the run ends.
func (s *Sequencer) Updates() <-chan string {
	return s.updates
}

// Step reveals the next message. It reports false once all are shown.
func (s *Sequencer) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revealed >= len(LoadingMessages) {
		return false
	}
	msg := LoadingMessages[s.revealed]
	s.revealed++
	if !s.stopped {
		s.updates <- msg
	}
	return true
}

// Run applies one step per tick until ctx is cancelled or ticks is closed.
func (s *Sequencer) Run(ctx context.Context, ticks <-chan time.Time) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrSequencerStarted
	}
	s.started = true
	s.mu.Unlock()

	defer s.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Step()
		}
	}
}

// Start runs the sequencer on its own ticker in a new goroutine. The ticker is
// stopped when ctx is cancelled.
func (s *Sequencer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		_ = s.Run(ctx, ticker.C)
	}()
}

func (s *Sequencer) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	close(s.updates)
}
