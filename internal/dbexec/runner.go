package dbexec

import (
	"context"
	"fmt"

	"listql/internal/observability"
	"listql/internal/plan"
	"listql/internal/schema"
	"listql/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"
)

// Runner executes query plans and single-record lookups, scanning rows into
// field-keyed documents.
type Runner struct {
	exec QueryExecutor
}

// NewRunner creates a runner over the given executor.
func NewRunner(exec QueryExecutor) *Runner {
	return &Runner{exec: exec}
}

// List runs the plan's list query and returns one document per row.
func (r *Runner) List(ctx context.Context, p *plan.QueryPlan, limit, offset int) (_ []map[string]any, err error) {
	ctx, span := observability.StartSpan(ctx, "dbexec.list", attribute.String("schema", p.Base().Name))
	defer func() { observability.EndSpan(span, err) }()

	query, args, err := p.SelectSQL(uint64(limit), uint64(offset))
	if err != nil {
		return nil, err
	}
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Count runs the plan's count query.
func (r *Runner) Count(ctx context.Context, p *plan.QueryPlan) (_ int, err error) {
	ctx, span := observability.StartSpan(ctx, "dbexec.count", attribute.String("schema", p.Base().Name))
	defer func() { observability.EndSpan(span, err) }()

	query, args, err := p.CountSQL()
	if err != nil {
		return 0, err
	}
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	defer rows.Close()

	var count int
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("count query returned no rows")
	}
	if err := rows.Scan(&count); err != nil {
		return 0, err
	}
	return count, rows.Err()
}

// Get runs a primary-key lookup on the base relation. A missing record
// returns (nil, nil).
func (r *Runner) Get(ctx context.Context, base schema.Schema, id any) (_ map[string]any, err error) {
	ctx, span := observability.StartSpan(ctx, "dbexec.get", attribute.String("schema", base.Name))
	defer func() { observability.EndSpan(span, err) }()

	query, args, err := sq.Select(sqlutil.QuoteIdentifier(base.Table) + ".*").
		From(sqlutil.QuoteIdentifier(base.Table)).
		Where(sq.Eq{sqlutil.QualifyColumn(base.Table, base.PrimaryKey): id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lookup query failed: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// scanDocuments reads every row into a column-keyed map. Byte slices become
// strings so documents serialize as text rather than base64.
func scanDocuments(rows Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	docs := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		doc := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				doc[col] = string(b)
			} else {
				doc[col] = values[i]
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
