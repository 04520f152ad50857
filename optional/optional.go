// Package optional provides an explicit "may be absent" value so that AST
// fields and signature tables never rely on nil to mean "not present".
package optional

// Value holds either a value of T or nothing
type Value[T any] struct {
	value   T
	present bool
}

// Of returns a present value
func Of[T any](value T) Value[T] {
	return Value[T]{value: value, present: true}
}

// None returns an absent value
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it is present
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

// IsPresent reports whether a value is held
func (v Value[T]) IsPresent() bool {
	return v.present
}

// OrElse returns the held value or fallback
func (v Value[T]) OrElse(fallback T) T {
	if v.present {
		return v.value
	}
	return fallback
}
