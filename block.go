package ringbuffer

import "sync/atomic"

// block is one ring slot: a per-slot seqlock counter plus the payload
// it guards. version is even when the payload is a stable, published
// snapshot and odd while a publish is in flight; see WriteHandle.Publish.
type block[T any] struct {
	version atomic.Uint64
	payload T
}
