package coffeemachine

// Record describes one processed line after its effects were applied.
type Record struct {
	Input     string    `json:"input" yaml:"input"`
	Output    Output    `json:"-" yaml:"-"`
	Inventory Inventory `json:"inventory" yaml:"inventory"`
	// Sale is set when the line completed a sale.
	Sale *Recipe `json:"sale,omitempty" yaml:"sale,omitempty"`
	// Taken is the money handed out by "take".
	Taken int `json:"taken,omitempty" yaml:"taken,omitempty"`
}

// Observer is notified synchronously after every Process call. Observers
// must not call back into the machine.
type Observer interface {
	Observe(rec Record)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(rec Record)

func (f ObserverFunc) Observe(rec Record) { f(rec) }
