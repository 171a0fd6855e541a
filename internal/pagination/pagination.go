// Package pagination turns a countable, pageable collection into the page
// envelope returned by every collection endpoint:
//
//	{"items": [...], "_meta": {...}, "_links": {"self": ..., "next": ..., "prev": ...}}
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// Page size bounds.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Source is a collection that can be counted and read a page at a time.
// store.Query satisfies it.
type Source[T any] interface {
	Count() (int, error)
	Page(limit, offset int) ([]T, error)
}

// Request is the requested page and page size.
type Request struct {
	Page    int
	PerPage int
}

// FromValues reads page and per_page from query parameters. Missing or
// malformed values fall back to the defaults. The result is normalized.
func FromValues(v url.Values) Request {
	r := Request{Page: 1, PerPage: DefaultPerPage}
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		r.Page = n
	}
	if n, err := strconv.Atoi(v.Get("per_page")); err == nil {
		r.PerPage = n
	}
	return r.Normalize()
}

// Normalize clamps the request: pages start at 1 and per_page lies in
// [1, MaxPerPage], with values below 1 replaced by DefaultPerPage.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = DefaultPerPage
	}
	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}
	return r
}

// Offset returns the number of rows before the requested page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// Meta describes the page within the whole collection.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Links holds the URLs of this page and its neighbours. Next and Prev are nil
// at the ends of the collection.
type Links struct {
	Self string  `json:"self"`
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// Page is the envelope of one page of a collection.
type Page struct {
	Items []types.Dict `json:"items"`
	Meta  Meta         `json:"_meta"`
	Links Links        `json:"_links"`
}

// LinkBuilder builds page URLs for one endpoint. Every query parameter is
// carried into the links so filters survive paging; only page and per_page
// are replaced.
type LinkBuilder struct {
	Path  string
	Query url.Values
}

// URL returns the link to page with the given page size.
func (lb LinkBuilder) URL(page, perPage int) string {
	q := url.Values{}
	for k, vs := range lb.Query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return lb.Path + "?" + q.Encode()
}

// Paginate reads one page from src and renders each item. Requests past the
// last page yield an empty items list, not an error.
func Paginate[T any](src Source[T], req Request, links LinkBuilder, render func(T) types.Dict) (*Page, error) {
	req = req.Normalize()

	total, err := src.Count()
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	totalPages := (total + req.PerPage - 1) / req.PerPage

	// Pages past the end are compared before Offset, which overflows for huge
	// page numbers.
	items := []types.Dict{}
	if req.Page <= totalPages {
		rows, err := src.Page(req.PerPage, req.Offset())
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", req.Page, err)
		}
		for _, row := range rows {
			items = append(items, render(row))
		}
	}

	page := &Page{
		Items: items,
		Meta: Meta{
			Page:       req.Page,
			PerPage:    req.PerPage,
			TotalPages: totalPages,
			TotalItems: total,
		},
		Links: Links{Self: links.URL(req.Page, req.PerPage)},
	}
	if req.Page < totalPages {
		next := links.URL(req.Page+1, req.PerPage)
		page.Links.Next = &next
	}
	if req.Page > 1 {
		prev := links.URL(req.Page-1, req.PerPage)
		page.Links.Prev = &prev
	}
	return page, nil
}
