package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/Makepad-fr/orderup/internal/model"
)

// Paginated fetches one page of a list endpoint.
func Paginated[T any](ctx context.Context, c *Client, rawURL string) (model.Page[T], error) {
	return FetchWithToken[model.Page[T]](ctx, c, http.MethodGet, rawURL, nil).
		Value("No data received from server")
}

// CachedPage is Paginated with in-flight de-duplication: concurrent calls for
// the same URL and element type share one request, and the URL is forgotten as soon as that
// request settles, whatever the outcome. Nothing is cached after that.
//
// The shared request ignores the callers' cancellation; a caller whose ctx
// ends stops waiting and the others still get the result.
func CachedPage[T any](ctx context.Context, c *Client, rawURL string) (model.Page[T], error) {
	key := reflect.TypeFor[T]().String() + " " + rawURL
	ch := c.pages.DoChan(key, func() (any, error) {
		return Paginated[T](context.WithoutCancel(ctx), c, rawURL)
	})
	select {
	case <-ctx.Done():
		return model.Page[T]{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Page[T]{}, res.Err
		}
		page, ok := res.Val.(model.Page[T])
		if !ok {
			return model.Page[T]{}, &APIError{Message: fmt.Sprintf("unexpected page type %T", res.Val)}
		}
		return page, nil
	}
}

// pageURL appends pageNo, limit and every non-empty filter to base.
func pageURL(base string, page, limit int, filters url.Values) string {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("pageNo", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	for k, vs := range filters {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	return base + "?" + q.Encode()
}
