package eventqueue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderPreserved(t *testing.T) {
	q := New(8)
	want := []Event{
		{Kind: Key, Key: 'a'},
		{Kind: Key, Key: 'b'},
		{Kind: Timer, Ticks: 42},
	}
	for _, e := range want {
		if !q.Push(e) {
			t.Fatal("push should not fail under capacity")
		}
	}
	var got []Event
	for {
		e, ok := q.Poll()
		if !ok {
			break
		}
		got = append(got, e)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestFullQueueDropsNewest(t *testing.T) {
	q := New(2)
	q.Push(Event{Kind: Key, Key: '1'})
	q.Push(Event{Kind: Key, Key: '2'})
	if q.Push(Event{Kind: Key, Key: '3'}) {
		t.Fatal("push should fail once the queue is full")
	}
	e, _ := q.Poll()
	if e.Key != '1' {
		t.Fatalf("expected oldest surviving event '1', got %q", e.Key)
	}
}

func TestRoundTripCapacityMinusOne(t *testing.T) {
	q := New(16)
	for i := 0; i < 15; i++ {
		if !q.Push(Event{Kind: Key, Key: byte(i)}) {
			t.Fatalf("push %d should succeed under capacity", i)
		}
	}
	for i := 0; i < 15; i++ {
		e, ok := q.Poll()
		if !ok || e.Key != byte(i) {
			t.Fatalf("poll %d mismatch: %v %v", i, e, ok)
		}
	}
	if !q.IsEmpty() {
		t.Fatal("queue should be empty after draining")
	}
}
