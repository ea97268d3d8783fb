package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	page, limit, offset := NormalizePagination(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	page, limit, offset = NormalizePagination(3, 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	_, limit, _ = NormalizePagination(1, 1000)
	assert.Equal(t, MaxLimit, limit)

	page, _, offset = NormalizePagination(-5, 10)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, 0, offset)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
}

func TestUTCDateString(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	// 01:00 on the 2nd in Colombo is still the 1st in UTC.
	local := time.Date(2026, 3, 2, 1, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", UTCDateString(local))

	assert.Equal(t, "2026-03-02", UTCDateString(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}
