package coffeemachine_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	. "github.com/comalice/coffeemachine"
)

type machineFeature struct {
	m   *Machine
	out Output
}

func (f *machineFeature) aFreshlyInstalledCoffeeMachine() error {
	m, err := New()
	if err != nil {
		return err
	}
	f.m = m
	f.out = Output{}
	return nil
}

var quoted = regexp.MustCompile(`"([^"]*)"`)

// theLinesWereProcessed accepts `"a", "b"` as well as a single bare token.
func (f *machineFeature) theLinesWereProcessed(list string) error {
	lines := []string{list}
	if matches := quoted.FindAllStringSubmatch(`"`+list+`"`, -1); len(matches) > 0 {
		lines = lines[:0]
		for _, m := range matches {
			if s := strings.TrimSpace(m[1]); s != "" && s != "," {
				lines = append(lines, s)
			}
		}
	}
	for _, l := range lines {
		f.out = f.m.Process(l)
	}
	return nil
}

func (f *machineFeature) iSend(line string) error {
	f.out = f.m.Process(line)
	return nil
}

func (f *machineFeature) theReplyStartsWith(prefix string) error {
	if !strings.HasPrefix(f.out.Message, prefix) {
		return fmt.Errorf("expected reply to start with %q, got %q", prefix, f.out.Message)
	}
	return nil
}

func (f *machineFeature) theErrorIs(msg string) error {
	if f.out.Err == nil {
		return errors.New("expected an error but the line was accepted")
	}
	if !strings.Contains(f.out.Err.Error(), msg) &&
		!(msg == ErrInsufficientResource.Error() && errors.Is(f.out.Err, ErrInsufficientResource)) {
		return fmt.Errorf("expected error %q, got %q", msg, f.out.Err)
	}
	return nil
}

func (f *machineFeature) theMachineHas(water, milk, beans, cups, money int) error {
	want := Inventory{Water: water, Milk: milk, Beans: beans, Cups: cups, Money: money}
	if got := f.m.Inventory(); got != want {
		return fmt.Errorf("expected inventory %+v, got %+v", want, got)
	}
	return nil
}

func (f *machineFeature) theMachineIsInState(name string) error {
	if got := f.m.State().String(); got != name {
		return fmt.Errorf("expected state %s, got %s", name, got)
	}
	return nil
}

func (f *machineFeature) theMachineIsTerminated() error {
	if !f.m.IsTerminated() {
		return fmt.Errorf("expected machine to be off, state is %s", f.m.State())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &machineFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, f.aFreshlyInstalledCoffeeMachine()
	})

	ctx.Step(`^a freshly installed coffee machine$`, f.aFreshlyInstalledCoffeeMachine)
	ctx.Step(`^the lines? "(.*)" (?:was|were) processed$`, f.theLinesWereProcessed)

	ctx.Step(`^I send "([^"]*)"$`, f.iSend)

	ctx.Step(`^the reply starts with "([^"]*)"$`, f.theReplyStartsWith)
	ctx.Step(`^the error is "([^"]*)"$`, f.theErrorIs)
	ctx.Step(`^the machine has (\d+) water, (\d+) milk, (\d+) beans, (\d+) cups and \$(\d+)$`, f.theMachineHas)
	ctx.Step(`^the machine is in state "([^"]*)"$`, f.theMachineIsInState)
	ctx.Step(`^the machine is terminated$`, f.theMachineIsTerminated)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
