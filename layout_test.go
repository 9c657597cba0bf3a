package ringbuffer

import (
	"testing"
	"unsafe"
)

// Hot scalar fields must not share a cache line with their neighbors.
func TestBufferHotFieldsAreSeparated(t *testing.T) {
	var b Buffer[[8]byte]
	base := unsafe.Pointer(&b)

	offWriteIndex := uintptr(unsafe.Pointer(&b.writeIndex)) - uintptr(base)
	offGlobalVersion := uintptr(unsafe.Pointer(&b.globalVersion)) - uintptr(base)
	offWriteClaimed := uintptr(unsafe.Pointer(&b.writeClaimed)) - uintptr(base)

	if offGlobalVersion-offWriteIndex < cacheLinePad {
		t.Fatalf("writeIndex and globalVersion are too close: %d bytes apart", offGlobalVersion-offWriteIndex)
	}
	if offWriteClaimed-offGlobalVersion < cacheLinePad {
		t.Fatalf("globalVersion and writeClaimed are too close: %d bytes apart", offWriteClaimed-offGlobalVersion)
	}
}

func TestSharedReaderHotFieldsAreSeparated(t *testing.T) {
	var r SharedReader[[8]byte]
	base := unsafe.Pointer(&r)

	offIndex := uintptr(unsafe.Pointer(&r.index)) - uintptr(base)
	offVersion := uintptr(unsafe.Pointer(&r.version)) - uintptr(base)

	if offVersion-offIndex < cacheLinePad {
		t.Fatalf("index and version are too close: %d bytes apart", offVersion-offIndex)
	}
}
