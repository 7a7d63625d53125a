package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		Schema{
			Name:       "orders",
			Table:      "orders",
			PrimaryKey: "id",
			Fields: []Field{
				{Name: "id", Type: TypeID},
				{Name: "total", Type: TypeFloat},
				{Name: "archived_at", Type: TypeTime},
			},
			Associations: []Association{
				{Name: "customer", Target: "customers", OwnerKey: "customer_id", RelatedKey: "id", Cardinality: One},
				{Name: "items", Target: "order_items", OwnerKey: "id", RelatedKey: "order_id", Cardinality: Many},
				{Name: "region", Through: []string{"customer", "region"}},
			},
		},
		Schema{
			Name:       "customers",
			Table:      "customers",
			PrimaryKey: "id",
			Fields: []Field{
				{Name: "id", Type: TypeID},
				{Name: "name", Type: TypeString},
			},
			Associations: []Association{
				{Name: "region", Target: "regions", OwnerKey: "region_id", RelatedKey: "id", Cardinality: One},
			},
		},
		Schema{
			Name:       "regions",
			Table:      "regions",
			PrimaryKey: "id",
			Fields: []Field{
				{Name: "id", Type: TypeID},
				{Name: "name", Type: TypeString},
			},
		},
		Schema{
			Name:       "order_items",
			Table:      "order_items",
			PrimaryKey: "id",
			Fields: []Field{
				{Name: "id", Type: TypeID},
				{Name: "order_id", Type: TypeID},
				{Name: "sku", Type: TypeString},
			},
		},
	)
	require.NoError(t, err)
	return reg
}

func TestResolveEmptyPath(t *testing.T) {
	reg := testRegistry(t)
	base, _ := reg.Schema("orders")

	steps, err := Resolve(reg, base, nil)
	require.NoError(t, err)
	require.Empty(t, steps)
}

func TestResolveDirectPath(t *testing.T) {
	reg := testRegistry(t)
	base, _ := reg.Schema("orders")

	steps, err := Resolve(reg, base, []string{"customer", "region"})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.Equal(t, "customer", steps[0].Association)
	require.Equal(t, "customers", steps[0].Target)
	require.Equal(t, "customer_id", steps[0].OwnerKey)
	require.Equal(t, "id", steps[0].RelatedKey)
	require.Equal(t, "region", steps[1].Association)
	require.Equal(t, "regions", steps[1].Target)
}

func TestResolveThroughExpandsToUnderlyingChain(t *testing.T) {
	reg := testRegistry(t)
	base, _ := reg.Schema("orders")

	steps, err := Resolve(reg, base, []string{"region"})
	require.NoError(t, err)
	require.Len(t, steps, 2, "one logical hop expands to two physical steps")
	require.Equal(t, "customer", steps[0].Association)
	require.Equal(t, "region", steps[1].Association)

	term, ok := Terminal(reg, base, steps)
	require.True(t, ok)
	require.Equal(t, "regions", term.Name)
}

func TestResolveUnknownAssociation(t *testing.T) {
	reg := testRegistry(t)
	base, _ := reg.Schema("orders")

	_, err := Resolve(reg, base, []string{"customer", "warehouse"})
	var unknown *UnknownAssociationError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "customers", unknown.Schema)
	require.Equal(t, "warehouse", unknown.Association)
}

func TestRegistryRejectsCyclicThrough(t *testing.T) {
	_, err := NewRegistry(
		Schema{
			Name:       "a",
			Table:      "a",
			PrimaryKey: "id",
			Fields:     []Field{{Name: "id", Type: TypeID}},
			Associations: []Association{
				{Name: "loop", Through: []string{"loop"}},
			},
		},
	)
	var cyclic *CyclicAssociationError
	require.ErrorAs(t, err, &cyclic)
	require.Equal(t, "a", cyclic.Schema)
	require.Equal(t, "loop", cyclic.Association)
}

func TestRegistryRejectsMutualThroughCycle(t *testing.T) {
	_, err := NewRegistry(
		Schema{
			Name:       "a",
			Table:      "a",
			PrimaryKey: "id",
			Fields:     []Field{{Name: "id", Type: TypeID}},
			Associations: []Association{
				{Name: "first", Through: []string{"second"}},
				{Name: "second", Through: []string{"first"}},
			},
		},
	)
	var cyclic *CyclicAssociationError
	require.ErrorAs(t, err, &cyclic)
}

func TestRegistryRejectsUnknownTarget(t *testing.T) {
	_, err := NewRegistry(
		Schema{
			Name:       "orders",
			Table:      "orders",
			PrimaryKey: "id",
			Fields:     []Field{{Name: "id", Type: TypeID}},
			Associations: []Association{
				{Name: "customer", Target: "customers", OwnerKey: "customer_id", RelatedKey: "id"},
			},
		},
	)
	require.Error(t, err)
}

func TestRegistryRejectsDuplicateSchema(t *testing.T) {
	_, err := NewRegistry(
		Schema{Name: "orders", Table: "orders", PrimaryKey: "id"},
		Schema{Name: "orders", Table: "orders_v2", PrimaryKey: "id"},
	)
	require.Error(t, err)
	require.False(t, errors.As(err, new(*UnknownAssociationError)))
}
