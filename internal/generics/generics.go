// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"maps"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SortedKeys returns the keys of the map m sorted.
func SortedKeys[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}

// IndicesOfMax returns the indices of all the elements equal to the maximum value of values,
// in increasing order. It returns nil if values is empty.
func IndicesOfMax[T cmp.Ordered](values []T) (indices []int) {
	for ii, v := range values {
		if len(indices) == 0 || v > values[indices[0]] {
			indices = append(indices[:0], ii)
		} else if v == values[indices[0]] {
			indices = append(indices, ii)
		}
	}
	return
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

// Without returns a copy of s with key removed. s itself is not changed, so sets can be
// shared among immutable values.
func (s Set[T]) Without(key T) Set[T] {
	c := maps.Clone(s)
	delete(c, key)
	return c
}

// SortedFunc returns the elements of the set sorted by the given comparison function.
func (s Set[T]) SortedFunc(cmpFn func(a, b T) int) []T {
	return slices.SortedFunc(maps.Keys(s), cmpFn)
}
