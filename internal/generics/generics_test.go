package generics

import (
	"cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	for range 100 {
		assert.Equal(t, []int{1, 3, 5}, SortedKeys(m))
	}
}

func TestIndicesOfMax(t *testing.T) {
	assert.Nil(t, IndicesOfMax([]float32{}))
	assert.Equal(t, []int{1}, IndicesOfMax([]float32{7, 9, -3}))
	assert.Equal(t, []int{0, 2, 3}, IndicesOfMax([]int{4, 1, 4, 4}))
	assert.Equal(t, []int{2}, IndicesOfMax([]int{1, 1, 2}))
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))

	// Without doesn't change the original.
	s3 := s2.Without(7)
	assert.Len(t, s3, 1)
	assert.True(t, s3.Has(5))
	assert.True(t, s2.Has(7))

	assert.Equal(t, []int{7, 5}, s2.SortedFunc(func(a, b int) int { return cmp.Compare(b, a) }))
}
