// Package listspec interprets declarative filter and sort capability specs
// against request parameters, producing an immutable query plan. Specs are
// plain data constructed by the caller per endpoint; the interpreter decides
// per key whether to apply the caller-supplied value, a default, or nothing.
package listspec

import (
	"listql/internal/plan"
)

// ValueFunc computes a default filter value at interpretation time.
type ValueFunc func(args ...any) (any, error)

type defaultKind int

const (
	defaultNone defaultKind = iota
	defaultLiteral
	defaultComputed
)

// Default describes what a filter spec contributes when its key is absent from
// the request: nothing, a literal value, or a computed value.
type Default struct {
	kind    defaultKind
	literal any
	compute ValueFunc
	args    []any
}

// NoDefault is the zero Default: an absent key contributes nothing.
func NoDefault() Default {
	return Default{}
}

// Literal applies v as if the request had supplied it explicitly.
func Literal(v any) Default {
	return Default{kind: defaultLiteral, literal: v}
}

// Computed invokes fn with args at interpretation time and applies the result
// like a literal default.
func Computed(fn ValueFunc, args ...any) Default {
	return Default{kind: defaultComputed, compute: fn, args: args}
}

// OperatorSpec is either a fixed operator or a truthy/falsy pair resolved by
// the filter value before predicate construction.
type OperatorSpec struct {
	truthy plan.Operator
	falsy  plan.Operator
}

// Op declares a fixed operator.
func Op(op plan.Operator) OperatorSpec {
	return OperatorSpec{truthy: op}
}

// Conditional declares an operator pair selected by the truthiness of the
// filter value.
func Conditional(truthy, falsy plan.Operator) OperatorSpec {
	return OperatorSpec{truthy: truthy, falsy: falsy}
}

// IsConditional reports whether the spec carries a truthy/falsy pair.
func (o OperatorSpec) IsConditional() bool {
	return o.falsy != ""
}

// Resolve picks the effective operator for a value. Only false selects the
// falsy branch; a null value keeps the truthy branch, since nullness is
// handled by the predicate builder's rewrite rules.
func (o OperatorSpec) Resolve(value any) plan.Operator {
	if !o.IsConditional() {
		return o.truthy
	}
	if b, ok := value.(bool); ok && !b {
		return o.falsy
	}
	return o.truthy
}

// FilterSpec describes one queryable filter key: the association path and
// field it targets, its operator, and its default behavior. An empty path
// targets the base relation.
type FilterSpec struct {
	Key      string
	Path     []string
	Field    string
	Operator OperatorSpec
	AllowNil bool
	Default  Default
}

// SortSpec describes one sortable key. Specs flagged IsDefault form the
// effective sort when the request carries no valid explicit sort.
type SortSpec struct {
	Key       string
	Path      []string
	Field     string
	Direction plan.Direction
	IsDefault bool
}

// Request is the parsed query input handed to the interpreter.
type Request struct {
	Filters map[string]any
	Sort    []string
}
