package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[int]string{
		3: "three",
		1: "one",
		2: "two",
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []int{1, 2, 3}, result)
}
