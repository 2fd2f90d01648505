// Package production provides integrations around a running machine:
// transition publishing, the session journal and graph visualization.
package production

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/coffeemachine"
)

// Metadata identifies where a published transition came from.
type Metadata struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	SessionID uuid.UUID `json:"sessionID" yaml:"sessionID"`
}

// PublishedEvent bundles a record with its metadata.
type PublishedEvent struct {
	Seq       int                  `json:"seq" yaml:"seq"`
	Metadata  Metadata             `json:"metadata" yaml:"metadata"`
	Record    coffeemachine.Record `json:"record" yaml:"record"`
	Timestamp time.Time            `json:"timestamp" yaml:"timestamp"`
}

// stamper numbers and timestamps records for one publisher. Safe for
// concurrent use; sequence numbers are unique but goroutines may deliver
// them out of order.
type stamper struct {
	meta Metadata
	seq  atomic.Int64
	now  func() time.Time
}

func newStamper(meta Metadata) *stamper {
	return &stamper{meta: meta, now: time.Now}
}

func (s *stamper) stamp(rec coffeemachine.Record) PublishedEvent {
	return PublishedEvent{Seq: int(s.seq.Add(1)), Metadata: s.meta, Record: rec, Timestamp: s.now()}
}

// ChannelPublisher forwards records to a Go channel.
// Non-blocking publish with drop on backpressure. Observe may be called from
// several goroutines, but not concurrently with Close.
type ChannelPublisher struct {
	*stamper
	ch      chan<- PublishedEvent
	dropped atomic.Int64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedEvent, meta Metadata) *ChannelPublisher {
	return &ChannelPublisher{stamper: newStamper(meta), ch: ch}
}

func (p *ChannelPublisher) Observe(rec coffeemachine.Record) {
	select {
	case p.ch <- p.stamp(rec):
	default:
		p.dropped.Add(1)
	}
}

// Dropped reports how many records were discarded on a full channel.
func (p *ChannelPublisher) Dropped() int {
	return int(p.dropped.Load())
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// LogPublisher writes every record to a zap logger: sales and refusals at
// info, everything else at debug.
type LogPublisher struct {
	*stamper
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher tagging entries with meta.
func NewLogPublisher(logger *zap.Logger, meta Metadata) *LogPublisher {
	return &LogPublisher{
		stamper: newStamper(meta),
		logger:  logger.With(zap.String("machine", meta.MachineID), zap.Stringer("session", meta.SessionID)),
	}
}

func (p *LogPublisher) Observe(rec coffeemachine.Record) {
	ev := p.stamp(rec)
	fields := []zap.Field{
		zap.Int("seq", ev.Seq),
		zap.String("input", rec.Input),
		zap.Stringer("from", rec.Output.From),
		zap.Stringer("to", rec.Output.To),
	}

	switch {
	case rec.Sale != nil:
		p.logger.Info("coffee served", append(fields, zap.String("recipe", rec.Sale.Name), zap.Int("money", rec.Inventory.Money))...)
	case rec.Output.Err != nil:
		p.logger.Info("line refused", append(fields, zap.Error(rec.Output.Err))...)
	default:
		p.logger.Debug("line processed", fields...)
	}
}
