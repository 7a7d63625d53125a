// Package plan turns resolved association paths into an executable query plan:
// a deduplicated join binding table, depth-addressed predicates and order
// terms, and parameterized SQL rendered with squirrel. Bindings are
// runtime-indexed data, so a single builder covers every join depth up to the
// ceiling instead of one code path per depth.
package plan

import (
	"strings"

	"listql/internal/schema"
)

// MaxJoinDepth is the ceiling on distinct join bindings within one plan.
// Exceeding it is a hard error, never a truncated plan.
const MaxJoinDepth = 21

// aliasSeparator joins association path segments into a binding alias, e.g.
// path [customer region] gets the alias "customer_region".
const aliasSeparator = "_"

// Binding is one joined association path with its positional depth. Depths are
// 1-based and follow join order; depth 0 always means the base relation and
// never appears in the table.
type Binding struct {
	Depth       int
	Alias       string
	ParentAlias string
	Path        []string
	Step        schema.JoinStep
}

// BindingTable is the ordered, deduplicated set of joins for one plan. It is
// request-scoped and not safe for concurrent use; each request builds its own.
type BindingTable struct {
	entries []Binding
	index   map[string]int
}

// NewBindingTable returns an empty binding table.
func NewBindingTable() *BindingTable {
	return &BindingTable{index: make(map[string]int)}
}

// Ensure adds the joins for the given steps, reusing any path that is already
// bound so the same association path is never joined twice in one plan. It
// returns the depth of the final step, or 0 when steps is empty.
func (t *BindingTable) Ensure(steps []schema.JoinStep) (int, error) {
	depth := 0
	parentAlias := ""
	path := make([]string, 0, len(steps))

	for _, step := range steps {
		path = append(path, step.Association)
		alias := step.Association
		if parentAlias != "" {
			alias = parentAlias + aliasSeparator + step.Association
		}

		if i, ok := t.index[alias]; ok {
			depth = t.entries[i].Depth
		} else {
			if len(t.entries) >= MaxJoinDepth {
				return 0, &UnsupportedDepthError{Depth: len(t.entries) + 1, Max: MaxJoinDepth}
			}
			binding := Binding{
				Depth:       len(t.entries) + 1,
				Alias:       alias,
				ParentAlias: parentAlias,
				Path:        append([]string(nil), path...),
				Step:        step,
			}
			t.entries = append(t.entries, binding)
			t.index[alias] = len(t.entries) - 1
			depth = binding.Depth
		}
		parentAlias = alias
	}

	return depth, nil
}

// Len returns the number of bound joins.
func (t *BindingTable) Len() int {
	return len(t.entries)
}

// Bindings returns the bound joins in depth order.
func (t *BindingTable) Bindings() []Binding {
	return append([]Binding(nil), t.entries...)
}

// AliasFor returns the alias for a depth, or "" for depth 0 / unknown depths.
func (t *BindingTable) AliasFor(depth int) string {
	if depth < 1 || depth > len(t.entries) {
		return ""
	}
	return t.entries[depth-1].Alias
}

// PathAlias returns the alias a path would bind to, without binding it.
func PathAlias(path []string) string {
	return strings.Join(path, aliasSeparator)
}
