package plan

import (
	"testing"

	"listql/internal/schema"

	"github.com/stretchr/testify/require"
)

func ordersSchema() schema.Schema {
	return schema.Schema{
		Name:       "orders",
		Table:      "orders",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeID},
			{Name: "total", Type: schema.TypeFloat},
		},
	}
}

func TestSelectSQLWithJoinsAndPredicate(t *testing.T) {
	table := NewBindingTable()
	depth, err := table.Ensure(customerSteps())
	require.NoError(t, err)

	pred, err := NewPredicate(depth, "name", OpEq, "west")
	require.NoError(t, err)
	order, err := NewOrderTerm(0, "id", Asc)
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, []Predicate{pred}, []OrderTerm{order})
	sql, args, err := p.SelectSQL(25, 50)
	require.NoError(t, err)

	require.Equal(t,
		"SELECT `orders`.* FROM `orders` "+
			"LEFT JOIN `customers` AS `customer` ON `orders`.`customer_id` = `customer`.`id` "+
			"LEFT JOIN `regions` AS `customer_region` ON `customer`.`region_id` = `customer_region`.`id` "+
			"WHERE `customer_region`.`name` = ? "+
			"ORDER BY `orders`.`id` ASC LIMIT 25 OFFSET 50",
		sql,
	)
	require.Equal(t, []any{"west"}, args)
}

func TestSelectSQLManyJoinForcesDistinct(t *testing.T) {
	table := NewBindingTable()
	_, err := table.Ensure([]schema.JoinStep{
		{Association: "items", Target: "order_items", Table: "order_items", OwnerKey: "id", RelatedKey: "order_id", Cardinality: schema.Many},
	})
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, nil, nil)
	sql, _, err := p.SelectSQL(0, 0)
	require.NoError(t, err)
	require.Contains(t, sql, "SELECT DISTINCT `orders`.*")

	countSQL, _, err := p.CountSQL()
	require.NoError(t, err)
	require.Contains(t, countSQL, "COUNT(DISTINCT `orders`.`id`)")
}

func TestSelectSQLNullnessOperators(t *testing.T) {
	table := NewBindingTable()

	isNil, err := NewPredicate(0, "archived_at", OpIsNil, nil)
	require.NoError(t, err)
	notNil, err := NewPredicate(0, "deleted_at", OpNotNil, nil)
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, []Predicate{isNil, notNil}, nil)
	sql, args, err := p.SelectSQL(0, 0)
	require.NoError(t, err)
	require.Contains(t, sql, "`orders`.`archived_at` IS NULL")
	require.Contains(t, sql, "`orders`.`deleted_at` IS NOT NULL")
	require.Empty(t, args)
}

func TestSelectSQLSetMembership(t *testing.T) {
	table := NewBindingTable()
	in, err := NewPredicate(0, "id", OpIn, []any{1, 2, 3})
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, []Predicate{in}, nil)
	sql, args, err := p.SelectSQL(0, 0)
	require.NoError(t, err)
	require.Contains(t, sql, "`orders`.`id` IN (?,?,?)")
	require.Equal(t, []any{1, 2, 3}, args)
}

func TestSelectSQLRejectsUnboundDepth(t *testing.T) {
	table := NewBindingTable()
	pred, err := NewPredicate(3, "name", OpEq, "west")
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, []Predicate{pred}, nil)
	_, _, err = p.SelectSQL(0, 0)
	require.Error(t, err)
}

func TestCountSQLSharesPredicates(t *testing.T) {
	table := NewBindingTable()
	pred, err := NewPredicate(0, "total", OpGt, 100)
	require.NoError(t, err)

	p := NewQueryPlan(ordersSchema(), table, []Predicate{pred}, []OrderTerm{{Depth: 0, Field: "id", Direction: Asc}})
	sql, args, err := p.CountSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT COUNT(*) FROM `orders` WHERE `orders`.`total` > ?", sql)
	require.Equal(t, []any{100}, args)
}
