package coffeemachine

import "go.uber.org/zap"

// Option configures a Machine via the functional options pattern.
type Option func(*Machine)

// WithInventory replaces the default starting stock. New rejects negative
// quantities.
func WithInventory(inv Inventory) Option {
	return func(m *Machine) {
		m.inventory = inv
	}
}

// WithObserver registers an observer notified after every processed line.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithLogger configures the logger for sale and transition events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}
