package plan

import "strings"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection parses a direction token case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return "", false
}

// OrderTerm is one ordering expression referencing a binding depth.
type OrderTerm struct {
	Depth     int
	Field     string
	Direction Direction
}

// NewOrderTerm builds a depth-addressed order term, enforcing the same depth
// ceiling as the join planner.
func NewOrderTerm(depth int, field string, dir Direction) (OrderTerm, error) {
	if depth < 0 || depth > MaxJoinDepth {
		return OrderTerm{}, &UnsupportedDepthError{Depth: depth, Max: MaxJoinDepth}
	}
	if dir != Asc && dir != Desc {
		dir = Asc
	}
	return OrderTerm{Depth: depth, Field: field, Direction: dir}, nil
}
