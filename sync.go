package coffeemachine

import "sync"

// SyncMachine guards a Machine with a mutex so several goroutines can drive
// one machine. Each Process call is atomic; Do runs a whole command sequence
// (for example "buy", "2") without interleaving.
type SyncMachine struct {
	mu sync.Mutex
	m  *Machine
}

// NewSync creates a guarded machine. See New for the options.
func NewSync(opts ...Option) (*SyncMachine, error) {
	m, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &SyncMachine{m: m}, nil
}

// Process interprets one line under the lock.
func (s *SyncMachine) Process(input string) Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Process(input)
}

// Do processes inputs in order under a single lock acquisition.
func (s *SyncMachine) Do(inputs ...string) []Output {
	s.mu.Lock()
	defer s.mu.Unlock()

	outs := make([]Output, 0, len(inputs))
	for _, in := range inputs {
		outs = append(outs, s.m.Process(in))
	}
	return outs
}

func (s *SyncMachine) IsTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.IsTerminated()
}

func (s *SyncMachine) State() StateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.State()
}

// Inventory returns a consistent snapshot of the stock.
func (s *SyncMachine) Inventory() Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Inventory()
}

func (s *SyncMachine) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Prompt()
}
