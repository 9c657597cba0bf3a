package ringbuffer

import "errors"

// ErrClaimFailed is returned by Buffer.TryAcquireWriter when another
// writer already holds the claim. The caller may retry or give up;
// the buffer never waits for the claim to free up.
var ErrClaimFailed = errors.New("ringbuffer: writer claim already held")
