// Package pagination parses the page/limit query parameters shared by every
// list endpoint and derives the values the storage layer needs from them.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a sanitized page request. Page is 1-based; Offset is what the
// query layer feeds to OFFSET.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the request, falling back to defaults and
// capping limit so a single request cannot drain a whole table.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Pages returns how many pages a result set of the given total spans.
func (p Params) Pages(total int64) int {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}
