package listing

import (
	"errors"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit bounds the rows a single listing request may return.
	MaxLimit = 100

	maxPage = math.MaxInt64 / MaxLimit
)

// ErrInvalidPagination is returned when page or limit is not a positive integer.
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// Params is the validated, typed form of a listing request's query string.
type Params struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
}

// Offset is the number of rows skipped before the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Filter returns the accepted value of a named filter, or "".
func (p Params) Filter(name string) string {
	return p.Filters[name]
}

// ParseParams normalizes raw query values against the filters a listing accepts.
//
// Repeated keys use their first value. page and limit default to 1 and 10 when
// absent and must otherwise be integers >= 1; limit is clamped to MaxLimit.
// Enum filter values outside their closed set are dropped. Search and text
// filter values are kept verbatim (trimmed) and only ever bound as arguments.
func ParseParams(values url.Values, filters []Filter) (Params, error) {
	page, err := positiveInt(values, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}
	if page > maxPage {
		return Params{}, ErrInvalidPagination
	}

	limit, err := positiveInt(values, "limit", DefaultLimit)
	if err != nil {
		return Params{}, err
	}
	limit = min(limit, MaxLimit)

	search, _ := firstValue(values, "search")
	p := Params{
		Search: search,
		Page:   page,
		Limit:  limit,
	}

	for _, f := range filters {
		v, ok := firstValue(values, f.Param)
		if !ok || v == "" {
			continue
		}
		if f.Kind == Enum && !slices.Contains(f.Values, v) {
			continue
		}
		if p.Filters == nil {
			p.Filters = make(map[string]string, len(filters))
		}
		p.Filters[f.Param] = v
	}

	return p, nil
}

// firstValue reports the trimmed first value of key and whether key was sent.
func firstValue(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

func positiveInt(values url.Values, key string, fallback int) (int, error) {
	raw, ok := firstValue(values, key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		// Saturated at MaxInt; callers bound it.
		return n, nil
	}
	if err != nil || n < 1 {
		return 0, ErrInvalidPagination
	}
	return n, nil
}
