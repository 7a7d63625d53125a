package plan

// Operator is a comparison operator token as it appears in filter specs.
type Operator string

const (
	OpEq     Operator = "=="
	OpNe     Operator = "!="
	OpGt     Operator = ">"
	OpLt     Operator = "<"
	OpGe     Operator = ">="
	OpLe     Operator = "<="
	OpIn     Operator = "in"
	OpNotIn  Operator = "not_in"
	OpIsNil  Operator = "is_nil"
	OpNotNil Operator = "not_nil"
)

// Valid reports whether op is in the supported operator set.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpLt, OpGe, OpLe, OpIn, OpNotIn, OpIsNil, OpNotNil:
		return true
	}
	return false
}

// Predicate is one comparison referencing a binding depth. Depth 0 addresses
// the base relation.
type Predicate struct {
	Depth    int
	Field    string
	Operator Operator
	Value    any
}

// NewPredicate builds a depth-addressed predicate. A null value rewrites
// equality operators to their nullness forms; ordering and set operators
// reject null outright. The depth ceiling matches the planner's, so a
// predicate can never address a binding the planner could not produce.
func NewPredicate(depth int, field string, op Operator, value any) (Predicate, error) {
	if !op.Valid() {
		return Predicate{}, &UnknownOperatorError{Operator: op}
	}
	if depth < 0 || depth > MaxJoinDepth {
		return Predicate{}, &UnsupportedDepthError{Depth: depth, Max: MaxJoinDepth}
	}

	if value == nil {
		switch op {
		case OpEq:
			op = OpIsNil
		case OpNe:
			op = OpNotNil
		case OpIsNil, OpNotNil:
			// Already a nullness test.
		default:
			return Predicate{}, &InvalidNullComparisonError{Field: field, Operator: op}
		}
	}
	if op == OpIsNil || op == OpNotNil {
		value = nil
	}

	return Predicate{Depth: depth, Field: field, Operator: op, Value: value}, nil
}
