package events_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/events"
)

func Test_Events(t *testing.T) {
	evts := events.New()

	ch1 := evts.Acquire("one")
	ch2 := evts.Acquire("two")
	if evts.Acquire("one") != ch1 {
		t.Fatal("Should get back the same channel for the same id.")
	}

	evts.Send("state: writeBlock: blk[2]")

	for _, ch := range []<-chan string{ch1, ch2} {
		if msg := <-ch; msg != "state: writeBlock: blk[2]" {
			t.Fatalf("Should receive the event, got %q.", msg)
		}
	}

	if err := evts.Release("one"); err != nil {
		t.Fatalf("Should be able to release a subscriber: %v", err)
	}
	if _, open := <-ch1; open {
		t.Fatal("Should close a released channel.")
	}
	if err := evts.Release("one"); err == nil {
		t.Fatal("Should not release an unknown subscriber.")
	}

	// A full subscriber never blocks the sender.
	for i := 0; i < 200; i++ {
		evts.Send("event")
	}

	evts.Shutdown()
	if evts.Count() != 0 {
		t.Fatalf("Should have no subscribers after shutdown, got %d.", evts.Count())
	}
}
