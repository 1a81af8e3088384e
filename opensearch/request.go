package opensearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	estypes "github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/guenzelsen/querydsl/internal/types"
	"github.com/olivere/elastic/v7"
)

// requestOptions holds the search request settings around a query.
type requestOptions struct {
	size     *int
	from     *int
	includes []string
	excludes []string
}

// RequestOption configures a search request.
type RequestOption func(*requestOptions)

// WithSize sets the number of hits to return.
func WithSize(n int) RequestOption {
	return func(o *requestOptions) { o.size = &n }
}

// WithFrom sets the offset of the first hit.
func WithFrom(n int) RequestOption {
	return func(o *requestOptions) { o.from = &n }
}

// WithSourceIncludes limits _source to the given fields.
func WithSourceIncludes(fields ...string) RequestOption {
	return func(o *requestOptions) { o.includes = append(o.includes, fields...) }
}

// WithSourceExcludes drops the given fields from _source.
func WithSourceExcludes(fields ...string) RequestOption {
	return func(o *requestOptions) { o.excludes = append(o.excludes, fields...) }
}

func newRequestOptions(opts []RequestOption) (*requestOptions, error) {
	o := &requestOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.size != nil && *o.size < 0 {
		return nil, fmt.Errorf("size cannot be negative: %d", *o.size)
	}
	if o.from != nil && *o.from < 0 {
		return nil, fmt.Errorf("from cannot be negative: %d", *o.from)
	}
	return o, nil
}

// SearchRequest builds a typed go-elasticsearch search request for q.
func SearchRequest(q *types.Query, opts ...RequestOption) (*search.Request, error) {
	o, err := newRequestOptions(opts)
	if err != nil {
		return nil, err
	}

	result, err := New().Render(q)
	if err != nil {
		return nil, err
	}

	var query estypes.Query
	if err := json.Unmarshal([]byte(result.JSON), &query); err != nil {
		return nil, fmt.Errorf("failed to convert query: %w", err)
	}

	request := &search.Request{Query: &query}
	if o.size != nil {
		request.Size = o.size
	}
	if o.from != nil {
		request.From = o.from
	}
	if len(o.includes) > 0 || len(o.excludes) > 0 {
		request.Source_ = estypes.SourceFilter{
			Includes: o.includes,
			Excludes: o.excludes,
		}
	}
	return request, nil
}

// Apply sets q and the request options on an olivere search service.
func Apply(ss *elastic.SearchService, q *types.Query, opts ...RequestOption) (*elastic.SearchService, error) {
	if ss == nil {
		return nil, fmt.Errorf("search service cannot be nil")
	}
	o, err := newRequestOptions(opts)
	if err != nil {
		return nil, err
	}
	eq, err := New().Query(q)
	if err != nil {
		return nil, err
	}

	ss = ss.Query(eq)
	if o.size != nil {
		ss = ss.Size(*o.size)
	}
	if o.from != nil {
		ss = ss.From(*o.from)
	}
	if len(o.includes) > 0 || len(o.excludes) > 0 {
		ss = ss.FetchSourceContext(elastic.NewFetchSourceContext(true).Include(o.includes...).Exclude(o.excludes...))
	}
	return ss, nil
}

// Search runs q against index with an olivere client.
func Search(ctx context.Context, client *elastic.Client, index string, q *types.Query, opts ...RequestOption) (*elastic.SearchResult, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	ss, err := Apply(client.Search(index), q, opts...)
	if err != nil {
		return nil, err
	}
	res, err := ss.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return res, nil
}
