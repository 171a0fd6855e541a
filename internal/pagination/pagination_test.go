package pagination

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// sliceSource pages over an in-memory slice and records the page reads.
type sliceSource struct {
	items []int
	reads int
	err   error
}

func (s *sliceSource) Count() (int, error) { return len(s.items), s.err }

func (s *sliceSource) Page(limit, offset int) ([]int, error) {
	s.reads++
	end := min(offset+limit, len(s.items))
	return s.items[offset:end], nil
}

func render(n int) types.Dict { return types.Dict{"n": n} }

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestFromValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Request
	}{
		{name: "defaults", query: "", want: Request{Page: 1, PerPage: 10}},
		{name: "explicit", query: "page=3&per_page=25", want: Request{Page: 3, PerPage: 25}},
		{name: "per_page clamped to max", query: "per_page=250", want: Request{Page: 1, PerPage: 100}},
		{name: "zero per_page uses default", query: "per_page=0", want: Request{Page: 1, PerPage: 10}},
		{name: "negative page becomes first", query: "page=-4", want: Request{Page: 1, PerPage: 10}},
		{name: "malformed values ignored", query: "page=two&per_page=lots", want: Request{Page: 1, PerPage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FromValues(v))
		})
	}
}

func TestPaginate(t *testing.T) {
	links := LinkBuilder{Path: "/recipes"}

	tests := []struct {
		name      string
		total     int
		req       Request
		wantItems int
		wantPages int
		wantNext  bool
		wantPrev  bool
		wantReads int
	}{
		{name: "first page", total: 25, req: Request{Page: 1, PerPage: 10}, wantItems: 10, wantPages: 3, wantNext: true, wantReads: 1},
		{name: "middle page", total: 25, req: Request{Page: 2, PerPage: 10}, wantItems: 10, wantPages: 3, wantNext: true, wantPrev: true, wantReads: 1},
		{name: "last partial page", total: 25, req: Request{Page: 3, PerPage: 10}, wantItems: 5, wantPages: 3, wantPrev: true, wantReads: 1},
		{name: "beyond the last page", total: 25, req: Request{Page: 9, PerPage: 10}, wantItems: 0, wantPages: 3, wantPrev: true},
		{name: "empty collection", total: 0, req: Request{Page: 1, PerPage: 10}, wantItems: 0, wantPages: 0},
		{name: "exact multiple", total: 20, req: Request{Page: 2, PerPage: 10}, wantItems: 10, wantPages: 2, wantPrev: true, wantReads: 1},
		{name: "huge page with wrapping offset", total: 3, req: Request{Page: math.MaxInt/100 + 2, PerPage: 100}, wantItems: 0, wantPages: 1, wantPrev: true},
		{name: "max int page", total: 3, req: Request{Page: math.MaxInt, PerPage: 100}, wantItems: 0, wantPages: 1, wantPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &sliceSource{items: numbers(tt.total)}
			page, err := Paginate[int](src, tt.req, links, render)
			require.NoError(t, err)

			assert.Len(t, page.Items, tt.wantItems)
			assert.NotNil(t, page.Items)
			assert.Equal(t, tt.wantPages, page.Meta.TotalPages)
			assert.Equal(t, tt.total, page.Meta.TotalItems)
			assert.Equal(t, tt.wantNext, page.Links.Next != nil)
			assert.Equal(t, tt.wantPrev, page.Links.Prev != nil)
			assert.Equal(t, tt.wantReads, src.reads)
		})
	}
}

func TestPaginateClampsPerPage(t *testing.T) {
	src := &sliceSource{items: numbers(250)}
	page, err := Paginate[int](src, Request{Page: 1, PerPage: 250}, LinkBuilder{Path: "/baseitems"}, render)
	require.NoError(t, err)

	assert.Equal(t, 100, page.Meta.PerPage)
	assert.Len(t, page.Items, 100)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.Contains(t, page.Links.Self, "per_page=100")
}

func TestPaginateLinksKeepQuery(t *testing.T) {
	query := url.Values{"q": {"garlic bread"}, "name": {"toast"}, "page": {"2"}, "per_page": {"5"}}
	src := &sliceSource{items: numbers(12)}

	page, err := Paginate[int](src, FromValues(query), LinkBuilder{Path: "/recipes", Query: query}, render)
	require.NoError(t, err)

	assert.Equal(t, "/recipes?name=toast&page=2&per_page=5&q=garlic+bread", page.Links.Self)
	require.NotNil(t, page.Links.Next)
	assert.Equal(t, "/recipes?name=toast&page=3&per_page=5&q=garlic+bread", *page.Links.Next)
	require.NotNil(t, page.Links.Prev)
	assert.Equal(t, "/recipes?name=toast&page=1&per_page=5&q=garlic+bread", *page.Links.Prev)

	next, err := url.Parse(*page.Links.Next)
	require.NoError(t, err)
	assert.Equal(t, "garlic bread", next.Query().Get("q"))
	assert.Equal(t, "2", query.Get("page"), "caller's query is not modified")
}

func TestPaginateJSONShape(t *testing.T) {
	page, err := Paginate[int](&sliceSource{}, Request{Page: 2}, LinkBuilder{Path: "/shops"}, render)
	require.NoError(t, err)

	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"items": [],
		"_meta": {"page": 2, "per_page": 10, "total_pages": 0, "total_items": 0},
		"_links": {"self": "/shops?page=2&per_page=10", "next": null, "prev": "/shops?page=1&per_page=10"}
	}`, string(b))
}

func TestPaginateCountError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Paginate[int](&sliceSource{err: boom}, Request{}, LinkBuilder{}, render)
	assert.ErrorIs(t, err, boom)
}
