// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"math/rand"

	"github.com/comalice/coffeemachine"
)

// Stocked returns an inventory large enough that no benchmark runs short.
func Stocked() coffeemachine.Inventory {
	const plenty = 1 << 30
	return coffeemachine.Inventory{Water: plenty, Milk: plenty, Beans: plenty, Cups: plenty}
}

// GenSessionScript creates n customer interactions ending with "exit".
// Each interaction is a sale, a refill, a report or a take, picked with a
// fixed seed so runs are comparable.
func GenSessionScript(n int) []string {
	r := rand.New(rand.NewSource(42))
	script := make([]string, 0, n*3+1)
	for i := 0; i < n; i++ {
		switch r.Intn(4) {
		case 0, 1:
			script = append(script, "buy", coffeemachine.Selectors()[r.Intn(3)])
		case 2:
			script = append(script, "fill", "100", "100", "100", "10")
		default:
			script = append(script, "remaining", "take")
		}
	}
	return append(script, "exit")
}
