package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit is how many members a list page shows unless asked
	DefaultLimit = 25
	// MaxLimit caps the limit query parameter
	MaxLimit = 100
)

// Params is a validated page request. Page counts from 1.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes one page of a list. From and To number the rows shown,
// counting from 1, and are both 0 for an empty page.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	From       int64 `json:"from"`
	To         int64 `json:"to"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// FromQuery reads the page and limit query parameters
func FromQuery(c *fiber.Ctx) *Params {
	return Parse(c.Query("page"), c.Query("limit"))
}

// Parse turns raw page and limit values into Params. Junk or out of range
// values fall back to the first page and the default limit, and a limit
// above MaxLimit is cut down to it.
func Parse(rawPage, rawLimit string) *Params {
	page := atoiOr(rawPage, 1)
	limit := atoiOr(rawLimit, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return &Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// atoiOr parses a positive integer, returning def for anything else
func atoiOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// NewMeta describes the page p of a list holding total rows
func NewMeta(p *Params, total int64) *Meta {
	limit := int64(p.Limit)
	pages := int((total + limit - 1) / limit)

	m := &Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
	if first := int64(p.Offset) + 1; first <= total {
		m.From = first
		m.To = min(int64(p.Offset)+limit, total)
	}
	return m
}
