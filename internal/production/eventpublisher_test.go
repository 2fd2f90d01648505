// Tests for ChannelPublisher delivery and LogPublisher levels.
package production

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/coffeemachine"
)

func testMeta() Metadata {
	return Metadata{MachineID: "test-machine", SessionID: uuid.MustParse("00000000-0000-4000-8000-000000000001")}
}

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan PublishedEvent, 10)
	p := NewChannelPublisher(ch, testMeta())

	m, err := coffeemachine.New(coffeemachine.WithObserver(p))
	if err != nil {
		t.Fatal(err)
	}
	m.Process("buy")
	m.Process("2")

	select {
	case got := <-ch:
		if got.Seq != 1 || got.Record.Input != "buy" {
			t.Errorf("first event = seq %d input %q", got.Seq, got.Record.Input)
		}
		if got.Metadata != testMeta() {
			t.Errorf("Metadata mismatch: got %+v", got.Metadata)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No event delivered")
	}

	got := <-ch
	if got.Seq != 2 || got.Record.Sale == nil || got.Record.Sale.Name != "latte" {
		t.Errorf("second event should be the latte sale, got %+v", got.Record)
	}
	if got.Record.Output.From != coffeemachine.SelectingRecipe || got.Record.Output.To != coffeemachine.Ready {
		t.Errorf("transition mismatch: %s -> %s", got.Record.Output.From, got.Record.Output.To)
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan PublishedEvent, 1)
	p := NewChannelPublisher(ch, testMeta())

	p.Observe(coffeemachine.Record{Input: "kept"})
	p.Observe(coffeemachine.Record{Input: "dropped"})

	if p.Dropped() != 1 {
		t.Errorf("expected 1 dropped record, got %d", p.Dropped())
	}
	if got := <-ch; got.Record.Input != "kept" {
		t.Errorf("expected first record kept, got %q", got.Record.Input)
	}
}

func TestChannelPublisher_ConcurrentObservers(t *testing.T) {
	const workers, perWorker, capacity = 8, 50, 100
	ch := make(chan PublishedEvent, capacity)
	p := NewChannelPublisher(ch, testMeta())

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				p.Observe(coffeemachine.Record{Input: "take"})
			}
		}()
	}
	wg.Wait()
	p.Close()

	seen := map[int]bool{}
	for ev := range ch {
		if ev.Seq < 1 || ev.Seq > workers*perWorker || seen[ev.Seq] {
			t.Errorf("unexpected or duplicate seq %d", ev.Seq)
		}
		seen[ev.Seq] = true
	}
	if len(seen) != capacity {
		t.Errorf("expected %d delivered events, got %d", capacity, len(seen))
	}
	if p.Dropped() != workers*perWorker-capacity {
		t.Errorf("expected %d dropped, got %d", workers*perWorker-capacity, p.Dropped())
	}
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan PublishedEvent, 1)
	p := NewChannelPublisher(ch, testMeta())

	if err := p.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
}

func TestLogPublisher_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewLogPublisher(zap.New(core), testMeta())

	m, err := coffeemachine.New(coffeemachine.WithObserver(p))
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{"buy", "1", "dance"} {
		m.Process(in)
	}

	if n := logs.FilterMessage("line processed").FilterLevelExact(zapcore.DebugLevel).Len(); n != 1 {
		t.Errorf("expected 1 debug entry, got %d", n)
	}
	served := logs.FilterMessage("coffee served").All()
	if len(served) != 1 || served[0].ContextMap()["recipe"] != "espresso" {
		t.Errorf("expected espresso sale entry, got %+v", served)
	}
	refused := logs.FilterMessage("line refused").All()
	if len(refused) != 1 || refused[0].ContextMap()["input"] != "dance" {
		t.Errorf("expected refused entry for dance, got %+v", refused)
	}
	for _, e := range logs.All() {
		if e.ContextMap()["machine"] != "test-machine" {
			t.Errorf("entry missing machine id: %+v", e.ContextMap())
		}
	}
}
