package listspec

import (
	"context"
	"fmt"

	"listql/internal/observability"
	"listql/internal/plan"
	"listql/internal/schema"

	"go.opentelemetry.io/otel/attribute"
)

// Interpreter turns filter/sort specs plus request parameters into query
// plans. It holds only the read-only schema registry and is safe for
// concurrent use.
type Interpreter struct {
	reg *schema.Registry
}

// NewInterpreter creates an interpreter over the given registry.
func NewInterpreter(reg *schema.Registry) *Interpreter {
	return &Interpreter{reg: reg}
}

// Interpret resolves the request against the spec lists and assembles a plan.
//
// Filter resolution is two-phase: keys present in the request are applied
// first (explicit null applies only when the spec allows nil, otherwise the
// key is skipped), then specs whose keys are absent contribute their defaults.
// Presence in the request is the sole phase discriminator; a key is never
// resolved by both phases.
func (it *Interpreter) Interpret(ctx context.Context, base schema.Schema, filters []FilterSpec, sorts []SortSpec, req Request) (_ *plan.QueryPlan, err error) {
	_, span := observability.StartSpan(ctx, "listspec.interpret",
		attribute.String("schema", base.Name),
		attribute.Int("filter_specs", len(filters)),
		attribute.Int("sort_specs", len(sorts)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := checkUniqueKeys(filters, sorts); err != nil {
		return nil, err
	}

	table := plan.NewBindingTable()
	var predicates []plan.Predicate

	// Explicit phase.
	for _, spec := range filters {
		value, present := req.Filters[spec.Key]
		if !present {
			continue
		}
		if value == nil && !spec.AllowNil {
			// Explicit null is not absence: the key is consumed and the
			// filter is skipped, defaults included.
			continue
		}
		pred, err := it.buildFilter(table, base, spec, value)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, pred)
	}

	// Default phase.
	for _, spec := range filters {
		if _, present := req.Filters[spec.Key]; present {
			continue
		}
		value, apply, err := spec.Default.resolve(spec.Key)
		if err != nil {
			return nil, err
		}
		if !apply {
			if !spec.AllowNil {
				continue
			}
			// No default but nil is allowed: apply a nullness test via the
			// truthy/base operator.
			value = nil
		}
		if value == nil && !spec.AllowNil {
			// A nil default behaves exactly like an explicitly supplied null.
			continue
		}
		pred, err := it.buildFilter(table, base, spec, value)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, pred)
	}

	orders, err := it.buildOrderTerms(table, base, sorts, req.Sort)
	if err != nil {
		return nil, err
	}

	return plan.NewQueryPlan(base, table, predicates, orders), nil
}

// buildFilter resolves a spec's path, binds its joins, and constructs the
// predicate with the operator resolved for value.
func (it *Interpreter) buildFilter(table *plan.BindingTable, base schema.Schema, spec FilterSpec, value any) (plan.Predicate, error) {
	depth, terminal, err := it.bindPath(table, base, spec.Path)
	if err != nil {
		return plan.Predicate{}, err
	}
	if _, ok := terminal.Field(spec.Field); !ok {
		return plan.Predicate{}, &schema.UnknownFieldError{Schema: terminal.Name, Field: spec.Field}
	}
	return plan.NewPredicate(depth, spec.Field, spec.Operator.Resolve(value), value)
}

// bindPath resolves an association path, ensures its joins, and returns the
// binding depth plus the schema the path lands on.
func (it *Interpreter) bindPath(table *plan.BindingTable, base schema.Schema, path []string) (int, schema.Schema, error) {
	steps, err := schema.Resolve(it.reg, base, path)
	if err != nil {
		return 0, schema.Schema{}, err
	}
	terminal, ok := schema.Terminal(it.reg, base, steps)
	if !ok {
		return 0, schema.Schema{}, fmt.Errorf("association path %v leaves the registry", path)
	}
	depth, err := table.Ensure(steps)
	if err != nil {
		return 0, schema.Schema{}, err
	}
	return depth, terminal, nil
}

func (d Default) resolve(key string) (any, bool, error) {
	switch d.kind {
	case defaultLiteral:
		return d.literal, true, nil
	case defaultComputed:
		value, err := d.compute(d.args...)
		if err != nil {
			return nil, false, &ComputedDefaultError{Key: key, Err: err}
		}
		return value, true, nil
	default:
		return nil, false, nil
	}
}

func checkUniqueKeys(filters []FilterSpec, sorts []SortSpec) error {
	seen := make(map[string]struct{}, len(filters))
	for _, spec := range filters {
		if _, dup := seen[spec.Key]; dup {
			return &DuplicateKeyError{Key: spec.Key}
		}
		seen[spec.Key] = struct{}{}
	}
	seen = make(map[string]struct{}, len(sorts))
	for _, spec := range sorts {
		if _, dup := seen[spec.Key]; dup {
			return &DuplicateKeyError{Key: spec.Key}
		}
		seen[spec.Key] = struct{}{}
	}
	return nil
}
