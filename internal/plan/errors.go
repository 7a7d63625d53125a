package plan

import "fmt"

// UnsupportedDepthError reports a join chain or expression depth beyond the
// supported binding ceiling. Plans are never silently truncated.
type UnsupportedDepthError struct {
	Depth int
	Max   int
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("join depth %d exceeds the supported maximum of %d", e.Depth, e.Max)
}

// InvalidNullComparisonError reports an ordering or set operator applied to a
// null value. Callers must use the nullness operators instead.
type InvalidNullComparisonError struct {
	Field    string
	Operator Operator
}

func (e *InvalidNullComparisonError) Error() string {
	return fmt.Sprintf("operator %q cannot compare field %q against null; use is_nil/not_nil", e.Operator, e.Field)
}

// UnknownOperatorError reports an operator token outside the supported set.
type UnknownOperatorError struct {
	Operator Operator
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Operator)
}
