package intake

import (
	"fmt"
	"testing"
)

func TestQueueSequential(t *testing.T) {
	const (
		capacity = 1024
		n        = 10_000
	)

	q := NewQueue[string](capacity)

	for i := 0; i < n; i++ {
		ok := q.Push(fmt.Sprintf("item %d", i))
		if i < capacity {
			if !ok {
				t.Fatalf("push failed at %d (queue unexpectedly full)", i)
			}
		} else if ok {
			t.Fatalf("push succeeded at %d (queue unexpectedly not full)", i)
		}
	}

	for i := 0; i < capacity; i++ {
		v, ok := q.Next()
		if !ok {
			t.Fatalf("next failed at %d (queue unexpectedly empty)", i)
		}
		want := fmt.Sprintf("item %d", i)
		if v != want {
			t.Fatalf("expected %q, got %q", want, v)
		}
		q.Release()
	}

	if _, ok := q.Next(); ok {
		t.Fatalf("expected empty queue at the end")
	}

	stats := q.SnapshotStats()
	if stats.PushAttempts != n {
		t.Fatalf("expected %d push attempts, got %d", n, stats.PushAttempts)
	}
	if stats.PushRejected == 0 {
		t.Fatalf("expected some rejected pushes once capacity was exceeded")
	}
}

func TestQueueCapacityBackpressure(t *testing.T) {
	const capacity = 8
	q := NewQueue[int](capacity)

	for i := 0; i < capacity; i++ {
		if !q.Push(i) {
			t.Fatalf("push failed at %d (queue unexpectedly full)", i)
		}
	}

	if q.Push(999) {
		t.Fatalf("expected backpressure (push should return false)")
	}

	if _, ok := q.Next(); !ok {
		t.Fatalf("expected a value to drain")
	}
	q.Release()

	if !q.Push(999) {
		t.Fatalf("expected push to succeed after draining one slot")
	}
}
