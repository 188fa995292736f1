package content

import (
	"fmt"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// Direction is the direction of an adjacent move
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection parses "up" or "down", case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionUp:
		return DirectionUp, nil
	case DirectionDown:
		return DirectionDown, nil
	default:
		return "", shared.NewValidationError("direction", fmt.Sprintf("must be %q or %q", DirectionUp, DirectionDown))
	}
}

// MoveAdjacent swaps the record identified by id with its neighbour in dir
// and renumbers the result. The input slice keeps its element order, but the
// records are shared, so their order fields are rewritten in place. moved is
// false when id is unknown or already at the boundary; nothing is renumbered
// in that case.
func MoveAdjacent[T Record](records []T, id string, dir Direction) (result []T, moved bool) {
	result = make([]T, len(records))
	copy(result, records)

	idx := IndexOf(result, id)
	if idx < 0 {
		return result, false
	}

	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	}
	if target < 0 || target >= len(result) {
		return result, false
	}

	result[idx], result[target] = result[target], result[idx]
	Renumber(result)
	return result, true
}

// RemoveAndRenumber drops the record identified by id and renumbers the
// survivors to 0..N-2. removed is false when id is unknown.
func RemoveAndRenumber[T Record](records []T, id string) (result []T, removed bool) {
	result = make([]T, 0, len(records))
	for _, r := range records {
		if r.RecordID() == id {
			removed = true
			continue
		}
		result = append(result, r)
	}
	Renumber(result)
	return result, removed
}
