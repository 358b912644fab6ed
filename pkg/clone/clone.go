// Package clone produces structural copies of plain values so that data
// handed to one pipeline stage cannot be mutated by another.
//
// The reflective path covers scalars, strings, time.Time, pointers, slices,
// maps, interfaces and structs (exported fields only). Known limitations:
// functions and channels are shared rather than copied, unexported struct
// fields come back zero, fixed-size arrays are copied by value (so an array
// of slices still shares its elements), and cyclic pointer graphs are not
// supported. Types that need more control implement Cloner.
package clone

import "github.com/mohae/deepcopy"

// Cloner lets a type provide its own deep copy.
type Cloner[T any] interface {
	Clone() T
}

// Func is a per-type clone function. The engine accepts one to bypass reflection.
type Func[T any] func(T) T

// Value returns a deep copy of v that shares no mutable container with it.
func Value[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	cp := deepcopy.Copy(v)
	if cp == nil {
		// nil interface or untyped nil: nothing to copy
		return v
	}
	return cp.(T)
}

// Or returns fn when it is set and Value otherwise.
func Or[T any](fn Func[T]) Func[T] {
	if fn != nil {
		return fn
	}
	return Value[T]
}
