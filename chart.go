package coffeemachine

// Edge is one documented transition of the machine. Input is a literal
// command, or one of the placeholders "<amount>" and "<other>".
type Edge struct {
	From  StateID `json:"from" yaml:"from"`
	Input string  `json:"input" yaml:"input"`
	To    StateID `json:"to" yaml:"to"`
}

const (
	AmountInput = "<amount>"
	OtherInput  = "<other>"
)

// Chart returns the machine's transition graph in a stable order.
func Chart() []Edge {
	edges := []Edge{
		{Ready, "buy", SelectingRecipe},
		{Ready, "fill", AwaitingWater},
		{Ready, "take", Ready},
		{Ready, "remaining", Ready},
		{Ready, "exit", Terminated},
		{Ready, OtherInput, Ready},
	}
	for _, sel := range Selectors() {
		edges = append(edges, Edge{SelectingRecipe, sel, Ready})
	}
	edges = append(edges,
		Edge{SelectingRecipe, "back", Ready},
		Edge{SelectingRecipe, OtherInput, SelectingRecipe},
	)
	for _, r := range resourceOrder {
		from := awaitingState{resource: r}
		next := AwaitingWater + StateID(r) + 1
		if r == Cups {
			next = Ready
		}
		edges = append(edges,
			Edge{from.id(), AmountInput, next},
			Edge{from.id(), OtherInput, from.id()},
		)
	}
	return append(edges, Edge{Terminated, OtherInput, Terminated})
}
