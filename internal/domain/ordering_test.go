package domain_test

import (
	"testing"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyArrangement materializes an arrangement (new position -> old position)
// against a concrete list.
func applyArrangement(items []string, arrangement []int) []string {
	out := make([]string, len(arrangement))
	for i, old := range arrangement {
		out[i] = items[old]
	}
	return out
}

func isPermutation(t *testing.T, arrangement []int, n int) {
	t.Helper()
	require.Len(t, arrangement, n)
	seen := make(map[int]bool, n)
	for _, v := range arrangement {
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, n)
		require.False(t, seen[v], "index %d appears twice", v)
		seen[v] = true
	}
}

func TestMoveIndices_SingleElementForward(t *testing.T) {
	// Moving A past B: the gap closes before insertion, so offset 2 lands A
	// right after B.
	arrangement, err := domain.MoveIndices(3, []int{0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, applyArrangement([]string{"A", "B", "C"}, arrangement))
}

func TestMoveIndices_SingleElementToEnd(t *testing.T) {
	arrangement, err := domain.MoveIndices(4, []int{0}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 0}, arrangement)
}

func TestMoveIndices_SingleElementBackward(t *testing.T) {
	arrangement, err := domain.MoveIndices(4, []int{3}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D", "B", "C"}, applyArrangement([]string{"A", "B", "C", "D"}, arrangement))
}

func TestMoveIndices_BlockKeepsRelativeOrder(t *testing.T) {
	// Source indices are a set; the moved elements always keep their original
	// relative order, regardless of how the indices were listed.
	arrangement, err := domain.MoveIndices(5, []int{3, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 0, 2, 4}, arrangement)
}

func TestMoveIndices_BlockToMiddle(t *testing.T) {
	arrangement, err := domain.MoveIndices(5, []int{0, 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D", "A", "B", "E"},
		applyArrangement([]string{"A", "B", "C", "D", "E"}, arrangement))
}

func TestMoveIndices_NoOp(t *testing.T) {
	arrangement, err := domain.MoveIndices(3, []int{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, arrangement)
}

func TestMoveIndices_AlwaysPermutation(t *testing.T) {
	// Sweep every single-element move and a spread of block moves; the result
	// must always be a permutation of 0..n-1.
	for n := 1; n <= 6; n++ {
		for from := 0; from < n; from++ {
			for to := 0; to <= n; to++ {
				arrangement, err := domain.MoveIndices(n, []int{from}, to)
				require.NoError(t, err)
				isPermutation(t, arrangement, n)
			}
		}
	}

	blocks := [][]int{{0, 1}, {0, 2}, {1, 3}, {0, 1, 2}, {0, 2, 4}, {1, 2, 3, 4}}
	for _, from := range blocks {
		for to := 0; to <= 5; to++ {
			arrangement, err := domain.MoveIndices(5, from, to)
			require.NoError(t, err)
			isPermutation(t, arrangement, 5)
		}
	}
}

func TestMoveIndices_Rejects(t *testing.T) {
	cases := []struct {
		name string
		n    int
		from []int
		to   int
	}{
		{name: "from negative", n: 3, from: []int{-1}, to: 0},
		{name: "from past end", n: 3, from: []int{3}, to: 0},
		{name: "from duplicate", n: 3, from: []int{1, 1}, to: 0},
		{name: "to negative", n: 3, from: []int{0}, to: -1},
		{name: "to past end", n: 3, from: []int{0}, to: 4},
		{name: "empty list", n: 0, from: []int{0}, to: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.MoveIndices(tc.n, tc.from, tc.to)
			assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
		})
	}
}

func TestMoveWithinScope_KeepsOtherSlotsFixed(t *testing.T) {
	// Full list T0..T5; the filtered view shows positions 1, 3, 5. Moving the
	// first visible element to the end of the view only permutes those three
	// slots.
	arrangement, err := domain.MoveWithinScope(6, []int{1, 3, 5}, []int{0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 2, 5, 4, 1}, arrangement)
	isPermutation(t, arrangement, 6)
}

func TestMoveWithinScope_FullScopeMatchesMoveIndices(t *testing.T) {
	scoped, err := domain.MoveWithinScope(4, []int{0, 1, 2, 3}, []int{2}, 0)
	require.NoError(t, err)
	plain, err := domain.MoveIndices(4, []int{2}, 0)
	require.NoError(t, err)
	assert.Equal(t, plain, scoped)
}

func TestMoveWithinScope_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		scope []int
		from  []int
		to    int
	}{
		{name: "scope out of range", n: 4, scope: []int{1, 4}, from: []int{0}, to: 0},
		{name: "scope not ascending", n: 4, scope: []int{2, 1}, from: []int{0}, to: 0},
		{name: "scope duplicate", n: 4, scope: []int{1, 1}, from: []int{0}, to: 0},
		{name: "from outside scope length", n: 4, scope: []int{0, 2}, from: []int{2}, to: 0},
		{name: "to outside scope length", n: 4, scope: []int{0, 2}, from: []int{0}, to: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.MoveWithinScope(tc.n, tc.scope, tc.from, tc.to)
			assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
		})
	}
}
