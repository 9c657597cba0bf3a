package intake

import (
	"runtime"
	"sync/atomic"
)

// Queue is a bounded MPSC intake buffer: any number of goroutines can
// push a payload onto it (Push), but only a single goroutine may ever
// drain it (Next/Release). It decouples "many callers want to publish"
// from the ring buffer's single-writer model — callers push here,
// and the one goroutine holding the ring's WriteHandle drains it and
// calls Publish.
type Queue[T any] struct {
	_        [64]byte
	mask     uint64
	capacity uint64
	slots    []entrySlot[T]
	_        [64]byte
	enqueue  atomic.Uint64 // many producers
	_        [64]byte
	dequeue  uint64 // single consumer
	_        [64]byte

	pushAttempts  uint64
	pushRejected  uint64
	drainAttempts uint64
	drainEmpty    uint64
}

// entrySlot is a single Vyukov-style bounded-queue slot: a sequence
// counter that coordinates which producer/consumer may touch val.
type entrySlot[T any] struct {
	seq atomic.Uint64
	val T
}

// Stats snapshots intake counters for diagnostics.
type Stats struct {
	PushAttempts  uint64
	PushRejected  uint64
	DrainAttempts uint64
	DrainEmpty    uint64
}

// NewQueue creates a bounded intake queue. capacity must be a power of
// two.
func NewQueue[T any](capacity uint64) *Queue[T] {
	if capacity == 0 || (capacity&(capacity-1)) != 0 {
		panic("intake: capacity must be power of 2 and > 0")
	}

	slots := make([]entrySlot[T], capacity)
	for i := uint64(0); i < capacity; i++ {
		slots[i].seq.Store(i)
	}

	return &Queue[T]{
		mask:     capacity - 1,
		capacity: capacity,
		slots:    slots,
	}
}

// Push enqueues a payload. Returns false if the intake queue is full;
// callers should treat that as backpressure and retry later rather
// than blocking the ring's single writer goroutine.
func (q *Queue[T]) Push(v T) bool {
	atomic.AddUint64(&q.pushAttempts, 1)
	for {
		pos := q.enqueue.Load()
		s := &q.slots[pos&q.mask]

		seq := s.seq.Load()
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if q.enqueue.CompareAndSwap(pos, pos+1) {
				s.val = v
				s.seq.Store(pos + 1)
				return true
			}
		case diff < 0:
			atomic.AddUint64(&q.pushRejected, 1)
			return false
		default:
			runtime.Gosched()
		}
	}
}

// Next returns the oldest pushed payload without freeing its slot.
// Must be called from a single consumer goroutine — the one draining
// into the ring's WriteHandle. Call Release once the payload has been
// published.
func (q *Queue[T]) Next() (T, bool) {
	var zero T
	pos := q.dequeue
	s := &q.slots[pos&q.mask]
	atomic.AddUint64(&q.drainAttempts, 1)

	seq := s.seq.Load()
	diff := int64(seq) - int64(pos+1)

	if diff == 0 {
		q.dequeue = pos + 1
		return s.val, true
	}

	atomic.AddUint64(&q.drainEmpty, 1)
	return zero, false
}

// Release frees the slot most recently returned by Next so producers
// may reuse it.
func (q *Queue[T]) Release() {
	pos := q.dequeue - 1
	s := &q.slots[pos&q.mask]
	s.seq.Store(pos + q.capacity)
}

// Capacity returns the fixed queue capacity.
func (q *Queue[T]) Capacity() uint64 {
	return q.capacity
}

// SnapshotStats returns a point-in-time view of intake counters.
func (q *Queue[T]) SnapshotStats() Stats {
	return Stats{
		PushAttempts:  atomic.LoadUint64(&q.pushAttempts),
		PushRejected:  atomic.LoadUint64(&q.pushRejected),
		DrainAttempts: atomic.LoadUint64(&q.drainAttempts),
		DrainEmpty:    atomic.LoadUint64(&q.drainEmpty),
	}
}
