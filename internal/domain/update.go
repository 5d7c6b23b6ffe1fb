package domain

import "strings"

// Field is an explicit update instruction for a single document field:
// either apply the carried value or leave the stored value alone.
// The zero value skips.
type Field[T any] struct {
	value T
	apply bool
}

// Set returns an instruction that applies v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, apply: true}
}

// Skip returns an instruction that keeps the stored value.
func Skip[T any]() Field[T] {
	return Field[T]{}
}

// Present applies *p when p is non-nil, including zero values such as "".
func Present[T any](p *T) Field[T] {
	if p == nil {
		return Skip[T]()
	}
	return Set(*p)
}

// NonBlank applies *p only when it holds a non-whitespace string. Used for
// fields an update must never clear (title, content, name).
func NonBlank(p *string) Field[string] {
	if p == nil || strings.TrimSpace(*p) == "" {
		return Skip[string]()
	}
	return Set(*p)
}

// Apply returns the new value for a field currently holding cur.
func (f Field[T]) Apply(cur T) T {
	if !f.apply {
		return cur
	}
	return f.value
}

// Get returns the carried value and whether it should be applied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.apply
}
