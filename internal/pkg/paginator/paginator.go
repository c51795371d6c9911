// Package paginator slices result sets into pages described by a
// Lucid-compatible simple paginator envelope.
package paginator

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is used when the requested page size is not positive.
const DefaultPerPage = 20

type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

type Meta struct {
	Total           int        `json:"total"`
	PerPage         int        `json:"perPage"`
	CurrentPage     int        `json:"currentPage"`
	LastPage        int        `json:"lastPage"`
	FirstPage       int        `json:"firstPage"`
	FirstPageURL    string     `json:"firstPageUrl"`
	LastPageURL     string     `json:"lastPageUrl"`
	NextPageURL     *string    `json:"nextPageUrl"`
	PreviousPageURL *string    `json:"previousPageUrl"`
	PagesInRange    []PageLink `json:"pagesInRange,omitempty"`
}

type PageLink struct {
	URL      string `json:"url"`
	Page     int    `json:"page"`
	IsActive bool   `json:"isActive"`
}

// Range selects the page links listed in Meta.PagesInRange. Zero bounds
// default to the first and last page.
type Range struct {
	Start int
	End   int
}

// Paginate returns page (1-based) of items. baseURL receives page and
// perPage query parameters, keeping any it already has.
func Paginate[T any](items []T, page, perPage int, baseURL string, rng *Range) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	lastPage := max((total+perPage-1)/perPage, 1)
	if page < 1 {
		page = 1
	}

	// page*perPage may overflow for client-supplied pages
	start := total
	if page <= lastPage {
		start = (page - 1) * perPage
	}
	end := min(start+perPage, total)
	data := make([]T, end-start)
	copy(data, items[start:end])

	link := func(p int) string { return pageURL(baseURL, p, perPage) }
	meta := Meta{
		Total:        total,
		PerPage:      perPage,
		CurrentPage:  page,
		LastPage:     lastPage,
		FirstPage:    1,
		FirstPageURL: link(1),
		LastPageURL:  link(lastPage),
	}
	if page < lastPage {
		next := link(page + 1)
		meta.NextPageURL = &next
	}
	if page > 1 {
		prev := link(page - 1)
		meta.PreviousPageURL = &prev
	}

	if rng != nil && (rng.Start > 0 || rng.End > 0) {
		from := rng.Start
		if from <= 0 {
			from = 1
		}
		to := rng.End
		if to <= 0 {
			to = lastPage
		}
		for p := from; p <= to; p++ {
			meta.PagesInRange = append(meta.PagesInRange, PageLink{URL: link(p), Page: p, IsActive: p == page})
		}
	}

	return Page[T]{Data: data, Meta: meta}
}

func pageURL(base string, page, perPage int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return u.String()
}
