package helpers

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NormalizePagination clamps raw page/limit query values to their valid
// ranges and returns the resulting offset.
func NormalizePagination(page, limit int) (normPage, normLimit, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}

// TotalPages returns the page count for a total row count. A zero total
// still reports one page so clients always have a valid last page.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// UTCDateString formats t as the UTC calendar date used for quota resets.
func UTCDateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
