package coffeemachine

import (
	"fmt"
	"strings"
)

type StateID int

const (
	Ready StateID = iota
	SelectingRecipe
	AwaitingWater
	AwaitingMilk
	AwaitingBeans
	AwaitingCups
	Terminated
)

var stateNames = [...]string{
	Ready:           "Ready",
	SelectingRecipe: "SelectingRecipe",
	AwaitingWater:   "AwaitingWater",
	AwaitingMilk:    "AwaitingMilk",
	AwaitingBeans:   "AwaitingBeans",
	AwaitingCups:    "AwaitingCups",
	Terminated:      "Terminated",
}

func (id StateID) String() string {
	if id < 0 || int(id) >= len(stateNames) {
		return fmt.Sprintf("StateID(%d)", int(id))
	}
	return stateNames[id]
}

// MarshalText lets StateID appear by name in JSON and YAML documents.
func (id StateID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// StateIDs returns every state in declaration order.
func StateIDs() []StateID {
	return []StateID{Ready, SelectingRecipe, AwaitingWater, AwaitingMilk, AwaitingBeans, AwaitingCups, Terminated}
}

// state is the closed set of machine states. Each variant supplies its own
// handler, so adding a variant without one fails to compile.
type state interface {
	id() StateID
	// prompt is printed on entering the state, "" for none.
	prompt() string
	handle(inv *Inventory, input string) step
}

// step is the outcome of one handled input line.
type step struct {
	next  state
	body  string
	err   error
	sale  *Recipe
	taken int
}

const (
	readyPrompt  = "Write action (buy, fill, take, remaining, exit):"
	buyPrompt    = "What do you want to buy? 1 - espresso, 2 - latte, 3 - cappuccino, back - to main menu:"
	servedReport = "I have enough resources, making you a coffee!"
)

type readyState struct{}

func (readyState) id() StateID { return Ready }

func (readyState) prompt() string { return "\n" + readyPrompt }

func (s readyState) handle(inv *Inventory, input string) step {
	switch input {
	case "buy":
		return step{next: selectingState{}}
	case "fill":
		return step{next: awaitingState{resource: Water}}
	case "take":
		taken := inv.withdraw()
		return step{next: s, body: fmt.Sprintf("I gave you $%d", taken), taken: taken}
	case "remaining":
		return step{next: s, body: "\n" + inv.Report()}
	case "exit":
		return step{next: terminatedState{}}
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, input)
		return step{next: s, body: "Unknown command: " + input, err: err}
	}
}

type selectingState struct{}

func (selectingState) id() StateID { return SelectingRecipe }

func (selectingState) prompt() string { return "\n" + buyPrompt }

func (s selectingState) handle(inv *Inventory, input string) step {
	if input == "back" {
		return step{next: readyState{}}
	}
	recipe, ok := Lookup(input)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownRecipeSelector, input)
		return step{next: s, body: fmt.Sprintf("Unknown coffee type: %s (choose %s or back)", input, strings.Join(Selectors(), ", ")), err: err}
	}
	if err := inv.Check(recipe); err != nil {
		return step{next: readyState{}, body: fmt.Sprintf("Sorry, %s!", err), err: err}
	}
	inv.commit(recipe)
	return step{next: readyState{}, body: servedReport, sale: &recipe}
}

// awaitingState collects one refill amount. A bad amount re-prompts for the
// same resource; the sequence only advances on a valid integer.
type awaitingState struct {
	resource Resource
}

func (s awaitingState) id() StateID {
	return AwaitingWater + StateID(s.resource)
}

func (s awaitingState) prompt() string {
	switch s.resource {
	case Water:
		return "\nWrite how many ml of water do you want to add:"
	case Milk:
		return "Write how many ml of milk do you want to add:"
	case Beans:
		return "Write how many grams of coffee beans do you want to add:"
	default:
		return "Write how many disposable cups of coffee do you want to add:"
	}
}

func (s awaitingState) handle(inv *Inventory, input string) step {
	amount, err := parseAmount(input)
	if err == nil {
		err = inv.refill(s.resource, amount)
	}
	if err != nil {
		return step{next: s, body: fmt.Sprintf("Please enter a whole number of %s to add", s.resource), err: err}
	}
	if s.resource == Cups {
		return step{next: readyState{}}
	}
	return step{next: awaitingState{resource: s.resource + 1}}
}

type terminatedState struct{}

func (terminatedState) id() StateID { return Terminated }

func (terminatedState) prompt() string { return "" }

func (s terminatedState) handle(_ *Inventory, input string) step {
	return step{next: s, body: "The coffee machine is switched off", err: ErrStateViolation}
}
