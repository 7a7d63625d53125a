package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPredicateNullEqualityRewrites(t *testing.T) {
	pred, err := NewPredicate(0, "archived_at", OpEq, nil)
	require.NoError(t, err)
	require.Equal(t, OpIsNil, pred.Operator)
	require.Nil(t, pred.Value)

	pred, err = NewPredicate(0, "archived_at", OpNe, nil)
	require.NoError(t, err)
	require.Equal(t, OpNotNil, pred.Operator)
}

func TestNewPredicateNullOrderingRejected(t *testing.T) {
	for _, op := range []Operator{OpGt, OpLt, OpGe, OpLe, OpIn, OpNotIn} {
		for depth := 0; depth <= MaxJoinDepth; depth++ {
			_, err := NewPredicate(depth, "total", op, nil)
			var nullErr *InvalidNullComparisonError
			require.ErrorAs(t, err, &nullErr, "operator %s depth %d", op, depth)
			require.Equal(t, op, nullErr.Operator)
		}
	}
}

func TestNewPredicateDepthCeiling(t *testing.T) {
	_, err := NewPredicate(MaxJoinDepth, "name", OpEq, "x")
	require.NoError(t, err)

	_, err = NewPredicate(MaxJoinDepth+1, "name", OpEq, "x")
	var depthErr *UnsupportedDepthError
	require.ErrorAs(t, err, &depthErr)

	_, err = NewPredicate(-1, "name", OpEq, "x")
	require.ErrorAs(t, err, &depthErr)
}

func TestNewPredicateUnknownOperator(t *testing.T) {
	_, err := NewPredicate(0, "name", Operator("like"), "x")
	var opErr *UnknownOperatorError
	require.True(t, errors.As(err, &opErr))
}

func TestNewOrderTermDepthCeiling(t *testing.T) {
	term, err := NewOrderTerm(2, "name", Desc)
	require.NoError(t, err)
	require.Equal(t, 2, term.Depth)
	require.Equal(t, Desc, term.Direction)

	_, err = NewOrderTerm(MaxJoinDepth+1, "name", Asc)
	var depthErr *UnsupportedDepthError
	require.ErrorAs(t, err, &depthErr)
}

func TestParseDirection(t *testing.T) {
	dir, ok := ParseDirection("DESC")
	require.True(t, ok)
	require.Equal(t, Desc, dir)

	_, ok = ParseDirection("sideways")
	require.False(t, ok)
}
