package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFilters = []Filter{
	{Param: "department", Column: "departments.name", Kind: Contains},
	{Param: "role", Column: "users.role", Kind: Enum, Values: []string{"student", "teacher", "admin"}},
}

func TestParseParamsDefaults(t *testing.T) {
	p, err := ParseParams(url.Values{}, testFilters)
	require.NoError(t, err)

	assert.Equal(t, Params{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestParseParamsPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "explicit", query: "page=3&limit=20", wantPage: 3, wantLimit: 20},
		{name: "clamped to max", query: "limit=101", wantPage: 1, wantLimit: MaxLimit},
		{name: "far above max", query: "limit=100000", wantPage: 1, wantLimit: MaxLimit},
		{name: "exactly max", query: "limit=100", wantPage: 1, wantLimit: 100},
		{name: "limit beyond int range", query: "limit=100000000000000000000", wantPage: 1, wantLimit: MaxLimit},
		{name: "first of repeated", query: "page=2&page=9", wantPage: 2, wantLimit: 10},
		{name: "surrounding spaces", query: "page=%202%20", wantPage: 2, wantLimit: 10},
		{name: "zero page", query: "page=0", wantErr: true},
		{name: "negative limit", query: "limit=-5", wantErr: true},
		{name: "zero limit", query: "limit=0", wantErr: true},
		{name: "not a number", query: "page=abc", wantErr: true},
		{name: "trailing garbage", query: "limit=10abc", wantErr: true},
		{name: "fraction", query: "page=1.5", wantErr: true},
		{name: "empty value", query: "page=", wantErr: true},
		{name: "infinity", query: "limit=Infinity", wantErr: true},
		{name: "overflow", query: "page=99999999999999999999", wantErr: true},
		{name: "negative overflow", query: "limit=-100000000000000000000", wantErr: true},
		{name: "offset overflow", query: "page=9223372036854775807", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			p, err := ParseParams(values, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPagination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, (tt.wantPage-1)*tt.wantLimit, p.Offset())
		})
	}
}

func TestParseParamsFilters(t *testing.T) {
	values := url.Values{
		"search":     {"  calc  "},
		"department": {"Math", "Physics"},
		"role":       {"teacher"},
		"unknown":    {"x"},
	}

	p, err := ParseParams(values, testFilters)
	require.NoError(t, err)

	assert.Equal(t, "calc", p.Search)
	assert.Equal(t, map[string]string{"department": "Math", "role": "teacher"}, p.Filters)
}

func TestParseParamsDropsUnknownEnumValue(t *testing.T) {
	for _, role := range []string{"superuser", "Teacher", "student,admin", ""} {
		p, err := ParseParams(url.Values{"role": {role}}, testFilters)
		require.NoError(t, err)
		assert.Empty(t, p.Filter("role"), "role %q", role)
	}
}

func TestParseParamsPassesSearchThroughOpaque(t *testing.T) {
	raw := `'; DROP TABLE subjects; --`
	p, err := ParseParams(url.Values{"search": {raw}}, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, p.Search)
}
