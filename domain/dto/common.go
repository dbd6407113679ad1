package dto

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 100000
)

type PaginationRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize fills defaults and returns the page, limit and row offset.
func Normalize(page, limit int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}
