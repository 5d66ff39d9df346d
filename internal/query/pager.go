package query

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/model"
)

// DefaultLimit is the page size when none is given.
const DefaultLimit = 20

// PageFunc fetches page (1-based) of size limit with filters F.
type PageFunc[F, T any] func(ctx context.Context, page, limit int, filters F) (model.Page[T], error)

type Pagination struct {
	Page         int
	TotalPages   int
	TotalRecords int
	HasMore      bool
}

// Pager accumulates the pages of a list endpoint.
type Pager[F, T any] struct {
	limit int
	q     *Query[pageParams[F], model.Page[T]]

	mu      sync.Mutex
	items   []T
	pg      Pagination
	filters F
	gen     uint64 // bumped by every load; only the latest one lands
}

type pageParams[F any] struct {
	page    int
	filters F
}

func NewPager[F, T any](fn PageFunc[F, T], limit int, logger *zap.Logger) *Pager[F, T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	p := &Pager[F, T]{
		limit: limit,
		pg:    Pagination{TotalPages: 1, HasMore: true},
	}
	p.q = New(func(ctx context.Context, pp pageParams[F]) (model.Page[T], error) {
		return fn(ctx, pp.page, limit, pp.filters)
	}, WithLogger[model.Page[T]](logger))
	return p
}

// LoadPage fetches page. Page 1 replaces what was loaded, later pages append.
// A load overtaken by a later one is dropped, its error included.
func (p *Pager[F, T]) LoadPage(ctx context.Context, page int, filters F) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	res, err := p.q.Execute(ctx, pageParams[F]{page: page, filters: filters})

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	if err != nil {
		return err
	}
	if page == 1 {
		p.items = append([]T(nil), res.Data...)
	} else {
		p.items = append(p.items, res.Data...)
	}
	p.filters = filters
	p.pg = Pagination{
		Page:         res.PageNo,
		TotalPages:   res.TotalPages,
		TotalRecords: res.TotalRecords,
		HasMore:      res.PageNo < res.TotalPages,
	}
	return nil
}

// LoadMore fetches the next page with the filters of the last load. It is a
// no-op, reporting false, when there is nothing more or a load is running.
func (p *Pager[F, T]) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if !p.pg.HasMore || p.q.Loading() {
		p.mu.Unlock()
		return false, nil
	}
	next, filters := p.pg.Page+1, p.filters
	p.mu.Unlock()
	return true, p.LoadPage(ctx, next, filters)
}

// Refresh reloads from page 1 with filters.
func (p *Pager[F, T]) Refresh(ctx context.Context, filters F) error {
	return p.LoadPage(ctx, 1, filters)
}

// Items returns a copy of everything loaded so far.
func (p *Pager[F, T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *Pager[F, T]) Pagination() Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pg
}

func (p *Pager[F, T]) Loading() bool { return p.q.Loading() }

func (p *Pager[F, T]) Err() error { return p.q.Snapshot().Err }
