// Package coffeemachine simulates a coffee machine as a finite-state machine
// driven by one text line at a time.
//
// A Machine owns its Inventory and current state. Process interprets a line
// relative to the current state, mutates the inventory when the line calls
// for it, and returns the reply text together with any input error. The
// machine never reads or writes a console itself; see internal/session for
// the loop that connects it to a line source and sink.
package coffeemachine

import (
	"strings"

	"go.uber.org/zap"
)

// Output is the machine's reply to one input line.
type Output struct {
	// Message is the text to show, including the prompt of the state that
	// was entered. It has no trailing newline and may be empty.
	Message string
	// Err is nil for accepted input, otherwise one of the package sentinels
	// (possibly wrapped).
	Err  error
	From StateID
	To   StateID
}

// Machine is the coffee machine. It is not safe for concurrent use; wrap it
// in a SyncMachine when several goroutines drive one machine.
type Machine struct {
	current   state
	inventory Inventory
	observers []Observer
	logger    *zap.Logger
}

// New returns a machine in the Ready state stocked with DefaultInventory
// unless WithInventory says otherwise.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{
		current:   readyState{},
		inventory: DefaultInventory(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.inventory.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Process interprets one input line. Surrounding whitespace is ignored.
func (m *Machine) Process(input string) Output {
	input = strings.TrimSpace(input)
	from := m.current

	st := from.handle(&m.inventory, input)
	m.current = st.next

	parts := make([]string, 0, 2)
	if st.body != "" {
		parts = append(parts, st.body)
	}
	if p := st.next.prompt(); p != "" {
		parts = append(parts, p)
	}
	out := Output{
		Message: strings.Join(parts, "\n"),
		Err:     st.err,
		From:    from.id(),
		To:      st.next.id(),
	}

	m.log(input, out, st)
	m.notify(Record{Input: input, Output: out, Inventory: m.inventory, Sale: st.sale, Taken: st.taken})
	return out
}

// IsTerminated reports whether "exit" has been processed.
func (m *Machine) IsTerminated() bool {
	return m.current.id() == Terminated
}

// State returns the current state.
func (m *Machine) State() StateID {
	return m.current.id()
}

// Inventory returns a copy of the current stock.
func (m *Machine) Inventory() Inventory {
	return m.inventory
}

// Prompt returns the prompt for the current state without leading blank
// lines, as shown at the start of a session.
func (m *Machine) Prompt() string {
	return strings.TrimLeft(m.current.prompt(), "\n")
}

func (m *Machine) log(input string, out Output, st step) {
	if st.sale != nil {
		m.logger.Info("sale committed",
			zap.String("recipe", st.sale.Name),
			zap.Int("price", st.sale.Price),
			zap.Int("money", m.inventory.Money))
	}
	if out.Err != nil {
		m.logger.Debug("input rejected",
			zap.String("input", input),
			zap.Stringer("state", out.From),
			zap.Error(out.Err))
		return
	}
	if out.From != out.To {
		m.logger.Debug("transition",
			zap.Stringer("from", out.From),
			zap.Stringer("to", out.To),
			zap.String("input", input))
	}
}

func (m *Machine) notify(rec Record) {
	for _, o := range m.observers {
		o.Observe(rec)
	}
}
