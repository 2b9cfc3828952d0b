package listing

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID         int
	Name       string
	Department *string
}

func widgetTable() *Table[widget] {
	return &Table[widget]{
		Name:    "widgets",
		Columns: []string{"widgets.id", "widgets.name", "departments.name"},
		Joins: []Join{
			{Table: "departments", On: "widgets.department_id = departments.id"},
		},
		Search:  []string{"widgets.name", "widgets.code"},
		Filters: []Filter{{Param: "department", Column: "departments.name", Kind: Contains}},
		Scan: func(row pgx.Row) (widget, error) {
			var w widget
			err := row.Scan(&w.ID, &w.Name, &w.Department)
			return w, err
		},
	}
}

var widgetColumns = []string{"id", "name", "department"}

const (
	widgetCountSQL = "SELECT count(*) FROM widgets LEFT JOIN departments ON widgets.department_id = departments.id"
	widgetPageSQL  = "SELECT widgets.id, widgets.name, departments.name FROM widgets LEFT JOIN departments ON widgets.department_id = departments.id"
	widgetOrderSQL = "ORDER BY widgets.created_at DESC, widgets.id DESC"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func strPtr(s string) *string { return &s }

func TestListWithoutFiltersHasNoWhere(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(widgetPageSQL+" "+widgetOrderSQL+" LIMIT $1 OFFSET $2").
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(widgetColumns).
			AddRow(2, "Beta", strPtr("Math")).
			AddRow(1, "Alpha", (*string)(nil)))
	mock.ExpectRollback()

	page, err := table.List(context.Background(), mock, Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []widget{
		{ID: 2, Name: "Beta", Department: strPtr("Math")},
		{ID: 1, Name: "Alpha"},
	}, page.Items)
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 2, TotalPages: 1}, page.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBindsSearchAndFilters(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	params, err := table.Parse(url.Values{"search": {"calc"}, "department": {"math"}, "page": {"2"}, "limit": {"5"}})
	require.NoError(t, err)

	where := " WHERE (widgets.name ILIKE $1 OR widgets.code ILIKE $1) AND departments.name ILIKE $2"
	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL+where).
		WithArgs("%calc%", "%math%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(6)))
	mock.ExpectQuery(widgetPageSQL+where+" "+widgetOrderSQL+" LIMIT $3 OFFSET $4").
		WithArgs("%calc%", "%math%", 5, 5).
		WillReturnRows(pgxmock.NewRows(widgetColumns).AddRow(7, "Calculus", strPtr("Mathematics")))
	mock.ExpectRollback()

	page, err := table.List(context.Background(), mock, params)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Calculus", page.Items[0].Name)
	assert.Equal(t, Pagination{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, page.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPageBeyondEnd(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(widgetPageSQL+" "+widgetOrderSQL+" LIMIT $1 OFFSET $2").
		WithArgs(2, 8).
		WillReturnRows(pgxmock.NewRows(widgetColumns))
	mock.ExpectRollback()

	page, err := table.List(context.Background(), mock, Params{Page: 5, Limit: 2})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, Pagination{Page: 5, Limit: 2, Total: 3, TotalPages: 2}, page.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNoMatches(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL + " WHERE (widgets.name ILIKE $1 OR widgets.code ILIKE $1)").
		WithArgs("%zzz%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(widgetPageSQL+" WHERE (widgets.name ILIKE $1 OR widgets.code ILIKE $1) "+widgetOrderSQL+" LIMIT $2 OFFSET $3").
		WithArgs("%zzz%", 10, 0).
		WillReturnRows(pgxmock.NewRows(widgetColumns))
	mock.ExpectRollback()

	page, err := table.List(context.Background(), mock, Params{Search: "zzz", Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []widget{}, page.Items)
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}, page.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIsIdempotent(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	for range 2 {
		mock.ExpectBeginTx(SnapshotTxOptions)
		mock.ExpectQuery(widgetCountSQL).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
		mock.ExpectQuery(widgetPageSQL+" "+widgetOrderSQL+" LIMIT $1 OFFSET $2").
			WithArgs(10, 0).
			WillReturnRows(pgxmock.NewRows(widgetColumns).AddRow(1, "Alpha", strPtr("Math")))
		mock.ExpectRollback()
	}

	params := Params{Page: 1, Limit: 10}
	first, err := table.List(context.Background(), mock, params)
	require.NoError(t, err)
	second, err := table.List(context.Background(), mock, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCountFailureSkipsPage(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()
	boom := errors.New("connection reset")

	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL).WillReturnError(boom)
	mock.ExpectRollback()

	page, err := table.List(context.Background(), mock, Params{Page: 1, Limit: 10})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPageFailure(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()
	boom := errors.New("statement timeout")

	mock.ExpectBeginTx(SnapshotTxOptions)
	mock.ExpectQuery(widgetCountSQL).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(widgetPageSQL+" "+widgetOrderSQL+" LIMIT $1 OFFSET $2").
		WithArgs(10, 0).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := table.List(context.Background(), mock, Params{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBeginFailure(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("pool closed")

	mock.ExpectBeginTx(SnapshotTxOptions).WillReturnError(boom)

	_, err := widgetTable().List(context.Background(), mock, Params{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	mock := newMock(t)
	table := widgetTable()

	mock.ExpectQuery(widgetPageSQL + " WHERE widgets.id = $1 LIMIT 1").
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(widgetColumns).AddRow(7, "Calculus", strPtr("Math")))

	w, err := table.Get(context.Background(), mock, "widgets.id", 7)
	require.NoError(t, err)
	assert.Equal(t, widget{ID: 7, Name: "Calculus", Department: strPtr("Math")}, w)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE widgets.id = $1 LIMIT 1")).
		WithArgs(999999).
		WillReturnRows(pgxmock.NewRows(widgetColumns))

	_, err = widgetTable().Get(context.Background(), mock, "widgets.id", 999999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalMatchesPageUnderSnapshot(t *testing.T) {
	// Rows a listing returns never exceed its limit, and the reported total
	// covers every page when walked to the end.
	mock := newMock(t)
	table := widgetTable()
	const total = 23
	const limit = 10

	var seen int
	for page := 1; page <= TotalPages(total, limit); page++ {
		rows := pgxmock.NewRows(widgetColumns)
		n := min(limit, total-(page-1)*limit)
		for i := range n {
			rows.AddRow(total-(page-1)*limit-i, "w", (*string)(nil))
		}
		mock.ExpectBeginTx(SnapshotTxOptions)
		mock.ExpectQuery(widgetCountSQL).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(total)))
		mock.ExpectQuery(widgetPageSQL+" "+widgetOrderSQL+" LIMIT $1 OFFSET $2").
			WithArgs(limit, (page-1)*limit).
			WillReturnRows(rows)
		mock.ExpectRollback()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		p, err := table.List(ctx, mock, Params{Page: page, Limit: limit})
		cancel()
		require.NoError(t, err)
		assert.LessOrEqual(t, len(p.Items), limit)
		assert.Equal(t, total, p.Pagination.Total)
		seen += len(p.Items)
	}
	assert.Equal(t, total, seen)
	assert.NoError(t, mock.ExpectationsWereMet())
}
