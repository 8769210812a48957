package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Page is a 1-based window over an ordered result set.
type Page struct {
	Number  int
	PerPage int
}

// NewPage clamps number to at least 1 and perPage into [1, MaxPerPage],
// using DefaultPerPage when perPage is unset.
func NewPage(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	switch {
	case perPage < 1:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// PageFromQuery reads ?page= and ?per_page=. Missing or garbage values fall
// back to the defaults.
func PageFromQuery(q url.Values) Page {
	return NewPage(positiveInt(q.Get("page"), 1), positiveInt(q.Get("per_page"), DefaultPerPage))
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) TotalPages(total int64) int {
	if total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func positiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
