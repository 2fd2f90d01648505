// Package testutil lets the same scenario run against every machine flavour.
package testutil

import (
	"testing"

	"github.com/comalice/coffeemachine"
)

// Driver is the surface shared by Machine and SyncMachine.
type Driver interface {
	Process(input string) coffeemachine.Output
	IsTerminated() bool
	State() coffeemachine.StateID
	Inventory() coffeemachine.Inventory
	Prompt() string
}

var (
	_ Driver = (*coffeemachine.Machine)(nil)
	_ Driver = (*coffeemachine.SyncMachine)(nil)
)

// Drivers returns a fresh plain and a fresh mutex-guarded machine, keyed by
// name for use as subtest names.
func Drivers(t testing.TB, opts ...coffeemachine.Option) map[string]Driver {
	t.Helper()

	m, err := coffeemachine.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := coffeemachine.NewSync(opts...)
	if err != nil {
		t.Fatalf("NewSync: %v", err)
	}
	return map[string]Driver{
		"machine": m,
		"sync":    s,
	}
}

// Feed processes inputs in order and returns every output.
func Feed(d Driver, inputs ...string) []coffeemachine.Output {
	outs := make([]coffeemachine.Output, 0, len(inputs))
	for _, in := range inputs {
		outs = append(outs, d.Process(in))
	}
	return outs
}

// Last processes inputs in order and returns the final output.
func Last(d Driver, inputs ...string) coffeemachine.Output {
	outs := Feed(d, inputs...)
	if len(outs) == 0 {
		return coffeemachine.Output{From: d.State(), To: d.State()}
	}
	return outs[len(outs)-1]
}

// InputFor returns a concrete line that exercises edge e of the chart.
func InputFor(e coffeemachine.Edge) string {
	switch e.Input {
	case coffeemachine.AmountInput:
		return "10"
	case coffeemachine.OtherInput:
		return "espresso please"
	default:
		return e.Input
	}
}

// PathTo returns inputs that drive a fresh machine from Ready into id.
func PathTo(id coffeemachine.StateID) []string {
	switch id {
	case coffeemachine.SelectingRecipe:
		return []string{"buy"}
	case coffeemachine.AwaitingWater:
		return []string{"fill"}
	case coffeemachine.AwaitingMilk:
		return []string{"fill", "0"}
	case coffeemachine.AwaitingBeans:
		return []string{"fill", "0", "0"}
	case coffeemachine.AwaitingCups:
		return []string{"fill", "0", "0", "0"}
	case coffeemachine.Terminated:
		return []string{"exit"}
	default:
		return nil
	}
}
