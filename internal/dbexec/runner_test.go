package dbexec

import (
	"context"
	"testing"

	"listql/internal/plan"
	"listql/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
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

func emptyPlan(t *testing.T) *plan.QueryPlan {
	t.Helper()
	pred, err := plan.NewPredicate(0, "total", plan.OpGt, 50)
	require.NoError(t, err)
	return plan.NewQueryPlan(ordersSchema(), plan.NewBindingTable(), []plan.Predicate{pred}, nil)
}

func TestRunnerList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `orders`\\.\\* FROM `orders` WHERE `orders`\\.`total` > \\? LIMIT 10").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total"}).
			AddRow(1, 99.5).
			AddRow(2, 120.0))

	runner := NewRunner(NewStandardExecutor(db))
	docs, err := runner.List(context.Background(), emptyPlan(t), 10, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, int64(1), docs[0]["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerListConvertsBytes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `orders`\\.\\*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "note"}).AddRow(1, []byte("rush")))

	runner := NewRunner(NewStandardExecutor(db))
	docs, err := runner.List(context.Background(), emptyPlan(t), 10, 0)
	require.NoError(t, err)
	require.Equal(t, "rush", docs[0]["note"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `orders` WHERE `orders`\\.`total` > \\?").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	runner := NewRunner(NewStandardExecutor(db))
	count, err := runner.Count(context.Background(), emptyPlan(t))
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerGetFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `orders`\\.\\* FROM `orders` WHERE `orders`\\.`id` = \\?").
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"id", "total"}).AddRow(42, 10.0))

	runner := NewRunner(NewStandardExecutor(db))
	doc, err := runner.Get(context.Background(), ordersSchema(), "42")
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, int64(42), doc["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `orders`\\.\\* FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "total"}))

	runner := NewRunner(NewStandardExecutor(db))
	doc, err := runner.Get(context.Background(), ordersSchema(), "404")
	require.NoError(t, err)
	require.Nil(t, doc)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStandardExecutorNilDB(t *testing.T) {
	exec := NewStandardExecutor(nil)
	_, err := exec.QueryContext(context.Background(), "SELECT 1")
	require.Error(t, err)
}
