package conversation

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultSentDelay  = time.Second
	DefaultReplyDelay = 3 * time.Second
)

// SimulatorConfig holds the two delivery delays.
type SimulatorConfig struct {
	SentDelay  time.Duration
	ReplyDelay time.Duration
}

// Sink receives the simulated delivery steps of one outgoing message.
type Sink interface {
	MarkSent(messageID string)
	Reply(text string)
}

// Simulator fakes the network: an outgoing message is marked sent after
// SentDelay, and ReplyDelay later the counterparty answers once.
type Simulator struct {
	cfg     SimulatorConfig
	clock   clockwork.Clock
	replies func() string
}

// NewSimulator returns a simulator drawing reply texts from replies.
func NewSimulator(cfg SimulatorConfig, clock clockwork.Clock, replies func() string) *Simulator {
	if cfg.SentDelay <= 0 {
		cfg.SentDelay = DefaultSentDelay
	}
	if cfg.ReplyDelay <= 0 {
		cfg.ReplyDelay = DefaultReplyDelay
	}
	return &Simulator{cfg: cfg, clock: clock, replies: replies}
}

// Simulate schedules delivery of messageID into sink. Nothing reaches sink
// once ctx is done.
func (s *Simulator) Simulate(ctx context.Context, sink Sink, messageID string) {
	s.after(ctx, s.cfg.SentDelay, func() {
		sink.MarkSent(messageID)
		s.after(ctx, s.cfg.ReplyDelay, func() {
			sink.Reply(s.replies())
		})
	})
}

// after runs fn once d has elapsed unless ctx ends first.
func (s *Simulator) after(ctx context.Context, d time.Duration, fn func()) {
	if ctx.Err() != nil {
		return
	}

	ready := make(chan struct{})
	var stop func() bool
	timer := s.clock.AfterFunc(d, func() {
		<-ready
		stop()
		if ctx.Err() != nil {
			return
		}
		fn()
	})
	stop = context.AfterFunc(ctx, func() { timer.Stop() })
	close(ready)
}
