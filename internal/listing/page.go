package listing

// Pagination is the metadata block returned with every successful listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of rows plus its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPage assembles a page. Items is never nil so it encodes as [].
func NewPage[T any](items []T, params Params, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: TotalPages(total, params.Limit),
		},
	}
}

// TotalPages is ceil(total / limit), and 0 for an empty result.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
