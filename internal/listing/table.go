package listing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by Get when no row matches.
var ErrNotFound = errors.New("record not found")

// SnapshotTxOptions is the transaction mode a listing runs in: the count and
// the page read the same snapshot, and nothing can be written through it.
var SnapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// Beginner opens transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// RowQuerier runs single-row queries. Pools, connections and transactions satisfy it.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Table describes one listable entity: the columns it selects, the related
// tables it joins, and which query parameters filter it.
//
// Columns, joins, search columns and filter columns are fixed at
// construction; request values only ever reach the query as bound arguments.
type Table[T any] struct {
	// Name is the FROM target, quoted if it is a reserved word.
	Name    string
	Columns []string
	Joins   []Join
	// Search lists the text columns the search parameter is matched against.
	Search  []string
	Filters []Filter
	// Scan reads one selected row, in Columns order.
	Scan func(row pgx.Row) (T, error)
}

// Parse validates raw query values for this table's filters.
func (t *Table[T]) Parse(values url.Values) (Params, error) {
	return ParseParams(values, t.Filters)
}

// CountSQL renders the count query for pred.
func (t *Table[T]) CountSQL(pred Predicate) string {
	return clause("SELECT count(*)", t.from(), pred.Where())
}

// PageSQL renders the page query for pred and returns it with its arguments,
// which are pred's arguments followed by limit and offset.
func (t *Table[T]) PageSQL(pred Predicate, params Params) (string, []any) {
	args := append([]any(nil), pred.Args...)
	args = append(args, params.Limit, params.Offset())
	limitPH := fmt.Sprintf("$%d", len(args)-1)
	offsetPH := fmt.Sprintf("$%d", len(args))

	sql := clause(
		t.selectList(),
		t.from(),
		pred.Where(),
		"ORDER BY "+t.Name+".created_at DESC, "+t.Name+".id DESC",
		"LIMIT "+limitPH,
		"OFFSET "+offsetPH,
	)
	return sql, args
}

// List runs the listing for params with no caller-supplied terms.
func (t *Table[T]) List(ctx context.Context, db Beginner, params Params) (*Page[T], error) {
	return t.ListWhere(ctx, db, Predicate{}, params)
}

// ListWhere runs the count and page queries for base plus the terms compiled
// from params. Both queries run in one read-only repeatable-read transaction
// so the total always describes the snapshot the page was read from.
func (t *Table[T]) ListWhere(ctx context.Context, db Beginner, base Predicate, params Params) (*Page[T], error) {
	pred := Compile(base, params, t.Search, t.Filters)

	tx, err := db.BeginTx(ctx, SnapshotTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin %s listing: %w", t.Name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	err = tx.QueryRow(ctx, t.CountSQL(pred), pred.Args...).Scan(&total)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("count %s: %w", t.Name, err)
	}

	query, args := t.PageSQL(pred, params)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s page: %w", t.Name, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return t.Scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s page: %w", t.Name, err)
	}

	return NewPage(items, params, int(total)), nil
}

// Get loads the single row whose column equals value, with the same joins
// and columns as the listing. It returns ErrNotFound when nothing matches.
func (t *Table[T]) Get(ctx context.Context, db RowQuerier, column string, value any) (T, error) {
	var pred Predicate
	pred.And(column + " = " + pred.Bind(value))

	query := clause(t.selectList(), t.from(), pred.Where(), "LIMIT 1")

	item, err := t.Scan(db.QueryRow(ctx, query, pred.Args...))
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", t.Name, err)
	}
	return item, nil
}

func (t *Table[T]) selectList() string {
	return "SELECT " + strings.Join(t.Columns, ", ")
}

func (t *Table[T]) from() string {
	parts := make([]string, 0, len(t.Joins)+1)
	parts = append(parts, "FROM "+t.Name)
	for _, j := range t.Joins {
		parts = append(parts, j.SQL())
	}
	return strings.Join(parts, " ")
}

// clause joins the non-empty SQL fragments with single spaces.
func clause(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
