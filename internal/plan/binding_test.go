package plan

import (
	"errors"
	"fmt"
	"testing"

	"listql/internal/schema"
)

func customerSteps() []schema.JoinStep {
	return []schema.JoinStep{
		{Association: "customer", Target: "customers", Table: "customers", OwnerKey: "customer_id", RelatedKey: "id", Cardinality: schema.One},
		{Association: "region", Target: "regions", Table: "regions", OwnerKey: "region_id", RelatedKey: "id", Cardinality: schema.One},
	}
}

func TestEnsureAssignsDepthsInJoinOrder(t *testing.T) {
	table := NewBindingTable()

	depth, err := table.Ensure(customerSteps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth != 2 {
		t.Fatalf("expected final depth 2, got %d", depth)
	}

	bindings := table.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	if bindings[0].Alias != "customer" || bindings[0].Depth != 1 {
		t.Fatalf("first binding mismatch: %+v", bindings[0])
	}
	if bindings[1].Alias != "customer_region" || bindings[1].Depth != 2 {
		t.Fatalf("second binding mismatch: %+v", bindings[1])
	}
	if bindings[1].ParentAlias != "customer" {
		t.Fatalf("expected parent alias customer, got %q", bindings[1].ParentAlias)
	}
}

func TestEnsureReusesExistingPath(t *testing.T) {
	table := NewBindingTable()

	first, err := table.Ensure(customerSteps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := table.Ensure(customerSteps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatalf("same path must yield the same depth: %d vs %d", first, second)
	}
	if table.Len() != 2 {
		t.Fatalf("path joined twice: %d bindings", table.Len())
	}
}

func TestEnsureSharedPrefixJoinsOnce(t *testing.T) {
	table := NewBindingTable()

	if _, err := table.Ensure(customerSteps()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A second spec reaching only "customer" must reuse depth 1.
	depth, err := table.Ensure(customerSteps()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth != 1 {
		t.Fatalf("expected reused depth 1, got %d", depth)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 bindings, got %d", table.Len())
	}
}

func TestEnsureEmptyStepsIsBaseRelation(t *testing.T) {
	table := NewBindingTable()
	depth, err := table.Ensure(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth != 0 {
		t.Fatalf("expected depth 0 for base relation, got %d", depth)
	}
}

func deepChain(n int) []schema.JoinStep {
	steps := make([]schema.JoinStep, n)
	for i := range steps {
		name := fmt.Sprintf("hop%d", i)
		steps[i] = schema.JoinStep{Association: name, Target: name, Table: name, OwnerKey: "next_id", RelatedKey: "id"}
	}
	return steps
}

func TestEnsureDepthCeiling(t *testing.T) {
	table := NewBindingTable()

	if _, err := table.Ensure(deepChain(MaxJoinDepth)); err != nil {
		t.Fatalf("chain at the ceiling must plan: %v", err)
	}

	overflow := NewBindingTable()
	_, err := overflow.Ensure(deepChain(MaxJoinDepth + 1))
	var depthErr *UnsupportedDepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("expected UnsupportedDepthError, got %v", err)
	}
	if depthErr.Max != MaxJoinDepth {
		t.Fatalf("expected ceiling %d in error, got %d", MaxJoinDepth, depthErr.Max)
	}
}
