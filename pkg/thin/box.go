package thin

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"
)

// allocation tracks one live boxed representation
type allocation struct {
	pinner runtime.Pinner
	typ    string
}

// allocationRegistry keeps every boxed representation reachable and pinned
// until it is released through Unbox. Raw pointers handed out by IntoRaw may
// therefore cross a cgo boundary or sit in uintptr form without the garbage
// collector reclaiming them.
type allocationRegistry struct {
	mu    sync.Mutex
	live  map[unsafe.Pointer]*allocation
	total uint64
}

var registry = &allocationRegistry{
	live: make(map[unsafe.Pointer]*allocation),
}

// Box moves value to a fresh heap allocation, pins it and returns its address.
// The allocation stays valid until Unbox is called with the same pointer.
func Box[R any](value R) unsafe.Pointer {
	p := new(R)
	*p = value
	ptr := unsafe.Pointer(p)

	a := &allocation{typ: fmt.Sprintf("%T", p)}
	a.pinner.Pin(p)

	registry.mu.Lock()
	registry.live[ptr] = a
	registry.total++
	registry.mu.Unlock()
	return ptr
}

// Unbox releases an allocation made by Box and returns the value it held.
// The memory is zeroed before it is unpinned so a stale handle faults on its
// nil table instead of dispatching into a dead value.
//
// Unbox panics when ptr was never boxed or has already been released.
func Unbox[R any](ptr unsafe.Pointer) R {
	registry.mu.Lock()
	a, ok := registry.live[ptr]
	if ok {
		delete(registry.live, ptr)
	}
	registry.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("thin: release of unknown or already released pointer %p", ptr))
	}

	p := (*R)(ptr)
	value := *p
	var zero R
	*p = zero
	a.pinner.Unpin()
	return value
}

// IsLive reports whether ptr refers to an allocation that has not been released.
func IsLive(ptr unsafe.Pointer) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	_, ok := registry.live[ptr]
	return ok
}

// Stats describes the allocation registry
type Stats struct {
	Live  int
	Total uint64
}

// AllocationStats returns a snapshot of the allocation registry.
func AllocationStats() Stats {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return Stats{Live: len(registry.live), Total: registry.total}
}

// LiveTypes lists the representation types of all live allocations.
// Useful for leak hunting in tests.
func LiveTypes() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	types := make([]string, 0, len(registry.live))
	for _, a := range registry.live {
		types = append(types, a.typ)
	}
	return types
}
