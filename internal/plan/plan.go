package plan

import (
	"fmt"
	"strings"

	"listql/internal/schema"
	"listql/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
)

// QueryPlan is the immutable output of interpretation: the base relation, the
// join binding table, and the ordered predicates and order terms. A new
// request always builds a new plan; nothing here is mutated after assembly.
type QueryPlan struct {
	base       schema.Schema
	bindings   []Binding
	aliasDepth map[string]int
	predicates []Predicate
	orders     []OrderTerm
}

// NewQueryPlan assembles a plan from its resolved parts. The binding table and
// the predicate/order slices are copied so later caller mutations cannot leak
// into the plan.
func NewQueryPlan(base schema.Schema, bindings *BindingTable, predicates []Predicate, orders []OrderTerm) *QueryPlan {
	p := &QueryPlan{
		base:       base,
		bindings:   bindings.Bindings(),
		aliasDepth: make(map[string]int, bindings.Len()),
		predicates: append([]Predicate(nil), predicates...),
		orders:     append([]OrderTerm(nil), orders...),
	}
	for _, b := range p.bindings {
		p.aliasDepth[b.Alias] = b.Depth
	}
	return p
}

// Base returns the base relation schema.
func (p *QueryPlan) Base() schema.Schema {
	return p.base
}

// Bindings returns the joined paths in depth order.
func (p *QueryPlan) Bindings() []Binding {
	return append([]Binding(nil), p.bindings...)
}

// Predicates returns the plan's predicates in application order.
func (p *QueryPlan) Predicates() []Predicate {
	return append([]Predicate(nil), p.predicates...)
}

// OrderTerms returns the plan's effective sort in precedence order.
func (p *QueryPlan) OrderTerms() []OrderTerm {
	return append([]OrderTerm(nil), p.orders...)
}

// qualifier returns the SQL qualifier for a depth: the base table for depth 0,
// otherwise the binding alias at that position.
func (p *QueryPlan) qualifier(depth int) (string, error) {
	if depth == 0 {
		return p.base.Table, nil
	}
	if depth < 0 || depth > len(p.bindings) {
		return "", fmt.Errorf("depth %d has no join binding (plan has %d)", depth, len(p.bindings))
	}
	return p.bindings[depth-1].Alias, nil
}

// hasManyJoin reports whether any binding can multiply base rows.
func (p *QueryPlan) hasManyJoin() bool {
	for _, b := range p.bindings {
		if b.Step.Cardinality == schema.Many {
			return true
		}
	}
	return false
}

func (p *QueryPlan) joinClause(b Binding) string {
	parent := b.ParentAlias
	if parent == "" {
		parent = p.base.Table
	}
	return fmt.Sprintf(
		"%s AS %s ON %s = %s",
		sqlutil.QuoteIdentifier(b.Step.Table),
		sqlutil.QuoteIdentifier(b.Alias),
		sqlutil.QualifyColumn(parent, b.Step.OwnerKey),
		sqlutil.QualifyColumn(b.Alias, b.Step.RelatedKey),
	)
}

func (p *QueryPlan) condition(pred Predicate) (sq.Sqlizer, error) {
	qualifier, err := p.qualifier(pred.Depth)
	if err != nil {
		return nil, err
	}
	column := sqlutil.QualifyColumn(qualifier, pred.Field)

	switch pred.Operator {
	case OpEq, OpIn:
		return sq.Eq{column: pred.Value}, nil
	case OpNe, OpNotIn:
		return sq.NotEq{column: pred.Value}, nil
	case OpGt:
		return sq.Gt{column: pred.Value}, nil
	case OpGe:
		return sq.GtOrEq{column: pred.Value}, nil
	case OpLt:
		return sq.Lt{column: pred.Value}, nil
	case OpLe:
		return sq.LtOrEq{column: pred.Value}, nil
	case OpIsNil:
		return sq.Eq{column: nil}, nil
	case OpNotNil:
		return sq.NotEq{column: nil}, nil
	default:
		return nil, &UnknownOperatorError{Operator: pred.Operator}
	}
}

func (p *QueryPlan) applyJoinsAndWhere(builder sq.SelectBuilder) (sq.SelectBuilder, error) {
	for _, b := range p.bindings {
		builder = builder.LeftJoin(p.joinClause(b))
	}
	for _, pred := range p.predicates {
		cond, err := p.condition(pred)
		if err != nil {
			return builder, err
		}
		builder = builder.Where(cond)
	}
	return builder, nil
}

// SelectSQL renders the list query with bound args. Limit 0 means no limit.
// Joins that can multiply base rows force DISTINCT so a row never repeats in
// list output.
func (p *QueryPlan) SelectSQL(limit, offset uint64) (string, []any, error) {
	builder := sq.Select(sqlutil.QuoteIdentifier(p.base.Table) + ".*").
		From(sqlutil.QuoteIdentifier(p.base.Table))
	if p.hasManyJoin() {
		builder = builder.Distinct()
	}

	builder, err := p.applyJoinsAndWhere(builder)
	if err != nil {
		return "", nil, err
	}

	for _, term := range p.orders {
		qualifier, err := p.qualifier(term.Depth)
		if err != nil {
			return "", nil, err
		}
		builder = builder.OrderBy(
			sqlutil.QualifyColumn(qualifier, term.Field) + " " + strings.ToUpper(string(term.Direction)),
		)
	}

	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
	}

	return builder.PlaceholderFormat(sq.Question).ToSql()
}

// CountSQL renders the total-count query with the same joins and predicates
// as the list query but no ordering or pagination.
func (p *QueryPlan) CountSQL() (string, []any, error) {
	countExpr := "COUNT(*)"
	if p.hasManyJoin() {
		countExpr = fmt.Sprintf("COUNT(DISTINCT %s)", sqlutil.QualifyColumn(p.base.Table, p.base.PrimaryKey))
	}

	builder := sq.Select(countExpr).From(sqlutil.QuoteIdentifier(p.base.Table))
	builder, err := p.applyJoinsAndWhere(builder)
	if err != nil {
		return "", nil, err
	}
	return builder.PlaceholderFormat(sq.Question).ToSql()
}
