package thin

import (
	"fmt"
	"hash"
	"hash/fnv"
	"reflect"
	"strings"
	"sync"
	"unsafe"
)

// Tables caches one dispatch table per concrete implementation type.
// Generated code keeps a package-level Tables value per interface.
type Tables[V any] struct {
	m sync.Map // reflect.Type -> *V
}

// TableFor returns the cached table for implementation type T, building it
// with build on first use. Tables are never mutated after publication, so
// the returned pointer may be shared freely.
func TableFor[T, V any](t *Tables[V], build func() V) *V {
	key := reflect.TypeFor[T]()
	if v, ok := t.m.Load(key); ok {
		return v.(*V)
	}
	table := build()
	v, _ := t.m.LoadOrStore(key, &table)
	return v.(*V)
}

// Len returns the number of cached tables.
func (t *Tables[V]) Len() int {
	n := 0
	t.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// SizeOf returns the size in bytes of T.
func SizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// AlignOf returns the alignment in bytes of T.
func AlignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// FuncAddr returns the identity of the function value f, or 0 for a nil
// function. The identity is the closure pointer, so closures built from the
// same literal for different implementation types are distinct while the
// same top-level function always yields the same word.
func FuncAddr(f any) uintptr {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	// A func is pointer shaped, so the interface data word is the closure.
	return uintptr((*[2]unsafe.Pointer)(unsafe.Pointer(&f))[1])
}

// SameFunc reports whether a and b are the same function value.
func SameFunc(a, b any) bool {
	return FuncAddr(a) == FuncAddr(b)
}

// Hasher accumulates table fields into a 64-bit FNV-1a digest
type Hasher struct {
	buf [8]byte
	h   hash.Hash64
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{h: fnv.New64a()}
}

// Uintptr mixes a word into the digest.
func (h *Hasher) Uintptr(v uintptr) *Hasher {
	return h.Uint64(uint64(v))
}

// Uint64 mixes a 64-bit value into the digest.
func (h *Hasher) Uint64(v uint64) *Hasher {
	for i := range h.buf {
		h.buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.h.Write(h.buf[:])
	return h
}

// Func mixes the identity of a function into the digest.
func (h *Hasher) Func(f any) *Hasher {
	return h.Uintptr(FuncAddr(f))
}

// Sum returns the digest.
func (h *Hasher) Sum() uint64 {
	return h.h.Sum64()
}

// Field is one named entry of a formatted table
type Field struct {
	Name  string
	Value any
}

// FormatTable renders a dispatch table for debugging. Function fields are
// printed as closure addresses, other fields with %v.
func FormatTable(name string, fields ...Field) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		if reflect.ValueOf(f.Value).Kind() == reflect.Func {
			if addr := FuncAddr(f.Value); addr != 0 {
				fmt.Fprintf(&b, "%#x", addr)
			} else {
				b.WriteString("nil")
			}
			continue
		}
		fmt.Fprintf(&b, "%v", f.Value)
	}
	b.WriteByte('}')
	return b.String()
}
