package coffeemachine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Resource is one of the consumables tracked by Inventory.
type Resource int

const (
	Water Resource = iota
	Milk
	Beans
	Cups
)

// resourceOrder is both the availability check order and the refill order.
var resourceOrder = [...]Resource{Water, Milk, Beans, Cups}

func (r Resource) String() string {
	switch r {
	case Water:
		return "water"
	case Milk:
		return "milk"
	case Beans:
		return "coffee beans"
	case Cups:
		return "disposable cups"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// Inventory holds the machine's consumables and collected money.
// All fields are non-negative; only the owning Machine mutates it.
type Inventory struct {
	Water int `json:"water" yaml:"water"`
	Milk  int `json:"milk" yaml:"milk"`
	Beans int `json:"beans" yaml:"beans"`
	Cups  int `json:"cups" yaml:"cups"`
	Money int `json:"money" yaml:"money"`
}

// DefaultInventory is the stock a freshly installed machine starts with.
func DefaultInventory() Inventory {
	return Inventory{Water: 400, Milk: 540, Beans: 120, Cups: 9, Money: 550}
}

// Validate rejects negative quantities.
func (inv Inventory) Validate() error {
	for _, r := range resourceOrder {
		if inv.amount(r) < 0 {
			return fmt.Errorf("inventory %s is negative: %d", r, inv.amount(r))
		}
	}
	if inv.Money < 0 {
		return fmt.Errorf("inventory money is negative: %d", inv.Money)
	}
	return nil
}

// Check reports whether recipe can be served from the current stock.
// It returns nil when the sale can proceed, otherwise a *ShortageError naming
// the first short resource in the order water, milk, beans, cups.
func (inv Inventory) Check(recipe Recipe) error {
	for _, r := range resourceOrder {
		if inv.amount(r) < required(recipe, r) {
			return &ShortageError{Resource: r}
		}
	}
	return nil
}

// Report renders the inventory the way the "remaining" command prints it.
func (inv Inventory) Report() string {
	return fmt.Sprintf("The coffee machine has:\n"+
		"%d of water\n"+
		"%d of milk\n"+
		"%d of coffee beans\n"+
		"%d of disposable cups\n"+
		"$%d of money",
		inv.Water, inv.Milk, inv.Beans, inv.Cups, inv.Money)
}

func required(recipe Recipe, r Resource) int {
	switch r {
	case Water:
		return recipe.Water
	case Milk:
		return recipe.Milk
	case Beans:
		return recipe.Beans
	case Cups:
		return 1
	}
	return 0
}

func (inv *Inventory) amount(r Resource) int {
	return *inv.counter(r)
}

func (inv *Inventory) counter(r Resource) *int {
	switch r {
	case Water:
		return &inv.Water
	case Milk:
		return &inv.Milk
	case Beans:
		return &inv.Beans
	default:
		return &inv.Cups
	}
}

// commit applies a sale. Callers must have just received nil from Check.
func (inv *Inventory) commit(recipe Recipe) {
	inv.Water -= recipe.Water
	inv.Milk -= recipe.Milk
	inv.Beans -= recipe.Beans
	inv.Cups--
	inv.Money += recipe.Price
}

// refill adds amount to r. The amount must already be validated by parseAmount.
func (inv *Inventory) refill(r Resource, amount int) error {
	c := inv.counter(r)
	if amount > math.MaxInt-*c {
		return fmt.Errorf("%w: adding %d would overflow %s", ErrNonNumericInput, amount, r)
	}
	*c += amount
	return nil
}

// withdraw empties the money counter and returns what was in it.
func (inv *Inventory) withdraw() int {
	taken := inv.Money
	inv.Money = 0
	return taken
}

// parseAmount parses one refill line as a non-negative integer.
func parseAmount(input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q is out of range", ErrNonNumericInput, input)
		}
		return 0, fmt.Errorf("%w: %q", ErrNonNumericInput, input)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrNonNumericInput, input)
	}
	return n, nil
}
