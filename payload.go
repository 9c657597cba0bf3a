package ringbuffer

import (
	"sync/atomic"
	"unsafe"
)

// loadUnfenced and storeUnfenced copy a payload word-by-word using
// relaxed atomic loads/stores instead of a plain struct copy. A plain
// copy lets the compiler assume the source bytes are stable for the
// duration of the copy, which is false here: the writer may be
// concurrently overwriting the same memory while a reader's seqlock
// window is open. Element-wise atomic access is one of the strategies
// the seqlock discipline explicitly allows (the others being a
// compiler fence or a volatile byte copy) and keeps the torn bytes a
// reader might observe from ever being assumed coherent by the
// optimizer.
//
// The word-wise path is taken only when the payload's size is a
// multiple of the word size and its alignment is at least a word;
// other payloads (for example [8]byte, whose alignment is 1) are
// copied with a plain assignment.
//
// Ported from the word-at-a-time technique used for generic seqlock
// payloads elsewhere; simplified to a loop instead of unrolled small
// cases since payload sizes here are small, fixed, and not hot enough
// to justify the unroll.
func storeUnfenced[T any](dst *T, v T) {
	sz := unsafe.Sizeof(v)
	if sz == 0 {
		return
	}
	ws := unsafe.Sizeof(uintptr(0))
	if unsafe.Alignof(v) >= ws && sz%ws == 0 {
		n := sz / ws
		dstWords := unsafe.Slice((*uintptr)(unsafe.Pointer(dst)), n)
		srcWords := unsafe.Slice((*uintptr)(unsafe.Pointer(&v)), n)
		for i := uintptr(0); i < n; i++ {
			atomic.StoreUintptr(&dstWords[i], srcWords[i])
		}
		return
	}
	// Odd-sized or under-aligned payload: fall back to a plain copy.
	// Safe only because the writer has already bumped the slot's
	// version to odd before this runs, and readers discard anything
	// they observe while a slot's version is odd.
	*dst = v
}

func loadUnfenced[T any](src *T) T {
	var v T
	sz := unsafe.Sizeof(v)
	if sz == 0 {
		return v
	}
	ws := unsafe.Sizeof(uintptr(0))
	if unsafe.Alignof(v) >= ws && sz%ws == 0 {
		n := sz / ws
		srcWords := unsafe.Slice((*uintptr)(unsafe.Pointer(src)), n)
		dstWords := unsafe.Slice((*uintptr)(unsafe.Pointer(&v)), n)
		for i := uintptr(0); i < n; i++ {
			dstWords[i] = atomic.LoadUintptr(&srcWords[i])
		}
		return v
	}
	return *src
}
