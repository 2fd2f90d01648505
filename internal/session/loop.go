// Package session connects a coffee machine to a line source and a reply
// sink. The loop only moves text; every decision about a line is made by the
// machine.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/coffeemachine"
)

// ErrInputClosed is returned by Run when the source ends before "exit".
var ErrInputClosed = errors.New("input closed before exit")

// Machine is the part of a coffee machine the loop drives.
type Machine interface {
	Prompt() string
	Process(input string) coffeemachine.Output
	IsTerminated() bool
}

// Loop runs one interactive session.
type Loop struct {
	id      uuid.UUID
	machine Machine
	source  Source
	sink    Sink
	logger  *zap.Logger
	lines   int
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the session logger. The session ID is added to it.
func WithLogger(l *zap.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithID overrides the random session ID.
func WithID(id uuid.UUID) Option {
	return func(lp *Loop) {
		lp.id = id
	}
}

// NewLoop creates a session for machine reading from source and replying
// to sink.
func NewLoop(machine Machine, source Source, sink Sink, opts ...Option) *Loop {
	lp := &Loop{
		id:      uuid.New(),
		machine: machine,
		source:  source,
		sink:    sink,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(lp)
	}
	lp.logger = lp.logger.With(zap.Stringer("session", lp.id))
	return lp
}

// ID identifies the session in logs and published transitions.
func (lp *Loop) ID() uuid.UUID {
	return lp.id
}

// Lines reports how many input lines were processed.
func (lp *Loop) Lines() int {
	return lp.lines
}

// Run writes the initial prompt and processes lines until the machine is
// terminated. It returns nil after "exit", ErrInputClosed if the source
// runs dry first, or the context, source or sink error.
func (lp *Loop) Run(ctx context.Context) error {
	lp.logger.Info("session started")

	if !lp.machine.IsTerminated() {
		if err := lp.sink.WriteMessage(lp.machine.Prompt()); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
	}

	for !lp.machine.IsTerminated() {
		line, err := lp.source.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				lp.logger.Warn("input closed before exit", zap.Int("lines", lp.lines))
				return ErrInputClosed
			}
			return fmt.Errorf("read line: %w", err)
		}
		lp.lines++

		out := lp.machine.Process(line)
		if out.Err != nil {
			lp.logger.Debug("line rejected", zap.Int("line", lp.lines), zap.Error(out.Err))
		}
		if out.Message == "" {
			continue
		}
		if err := lp.sink.WriteMessage(out.Message); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}

	lp.logger.Info("session finished", zap.Int("lines", lp.lines))
	return nil
}
