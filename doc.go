// Package ringbuffer implements a fixed-capacity, lock-free SPMC ring
// buffer built on a per-slot seqlock. A single writer publishes
// fixed-size messages without blocking; any number of readers observe
// the stream. Readers sharing a SharedReader cooperate over a CAS'd
// cursor so each message is claimed at most once; independent readers
// each see the full stream.
//
// Original algorithm: a seqlock-guarded SPMC ring, ported from the
// writer-claim / per-slot-version discipline described for the
// project's original C/Rust core.
package ringbuffer
