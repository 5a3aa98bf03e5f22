package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKept_FiltersSkipped(t *testing.T) {
	boom := errors.New("boom")
	in := []Result[int]{Ok(1), Skip[int](boom), Ok(3), Skip[int](ErrProcessUnavailable)}

	kept, skipped := Kept(in)
	assert.Equal(t, []int{1, 3}, kept)
	require.Len(t, skipped, 2)
	assert.ErrorIs(t, skipped[0], boom)
	assert.ErrorIs(t, skipped[1], ErrProcessUnavailable)
}

func TestKept_Empty(t *testing.T) {
	kept, skipped := Kept[string](nil)
	assert.Empty(t, kept)
	assert.NotNil(t, kept)
	assert.Nil(t, skipped)
}
