// internal/domain/ordering.go
package domain

import "errors"

// ErrIndexOutOfRange reports reorder indices that do not address the list
// they were issued against. Callers must not clamp or retry with adjusted
// indices; the request is rejected whole.
var ErrIndexOutOfRange = errors.New("reorder index out of range")

// MoveIndices computes the arrangement of an n-element list after moving the
// elements at the from indices, as one contiguous block, to offset to. The
// result maps new position -> old position and is always a permutation of
// 0..n-1.
//
// Semantics match the move operation of list UIs: the selected elements are
// removed first (keeping their relative order), the gap closes, and the block
// is inserted at to adjusted for the removals before it. to may equal n,
// meaning "after the last element". from is treated as a set; duplicates are
// rejected.
func MoveIndices(n int, from []int, to int) ([]int, error) {
	if to < 0 || to > n {
		return nil, ErrIndexOutOfRange
	}
	selected := make(map[int]bool, len(from))
	for _, f := range from {
		if f < 0 || f >= n || selected[f] {
			return nil, ErrIndexOutOfRange
		}
		selected[f] = true
	}

	// Insertion offset in the list with the selection removed.
	insert := to
	for f := range selected {
		if f < to {
			insert--
		}
	}

	moved := make([]int, 0, len(from))
	rest := make([]int, 0, n-len(from))
	for i := 0; i < n; i++ {
		if selected[i] {
			moved = append(moved, i)
		} else {
			rest = append(rest, i)
		}
	}

	result := make([]int, 0, n)
	result = append(result, rest[:insert]...)
	result = append(result, moved...)
	result = append(result, rest[insert:]...)
	return result, nil
}

// MoveWithinScope applies MoveIndices to a filtered subset of a list. scope
// holds the positions of the subset within the full n-element list, in
// ascending order; from and to address the subset as if it were a standalone
// list of len(scope) elements. The rearranged subset is written back across
// the scope's slots, so elements outside the scope keep their positions and
// their relative order. The result maps new position -> old position for the
// full list.
func MoveWithinScope(n int, scope []int, from []int, to int) ([]int, error) {
	prev := -1
	for _, s := range scope {
		if s <= prev || s >= n {
			return nil, ErrIndexOutOfRange
		}
		prev = s
	}

	arranged, err := MoveIndices(len(scope), from, to)
	if err != nil {
		return nil, err
	}

	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	for slot, idx := range arranged {
		result[scope[slot]] = scope[idx]
	}
	return result, nil
}
