package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/orderup/internal/model"
)

// fakeList serves ids 1..total in pages, filtered by a prefix.
type fakeList struct {
	total int
	calls []int
	fail  error
}

func (f *fakeList) fetch(_ context.Context, page, limit int, prefix string) (model.Page[string], error) {
	f.calls = append(f.calls, page)
	if f.fail != nil {
		return model.Page[string]{}, f.fail
	}
	pages := (f.total + limit - 1) / limit
	var data []string
	for i := (page-1)*limit + 1; i <= min(page*limit, f.total); i++ {
		data = append(data, prefix+string(rune('0'+i)))
	}
	return model.Page[string]{TotalRecords: f.total, TotalPages: pages, PageNo: page, Data: data}, nil
}

func TestPagerAccumulatesPages(t *testing.T) {
	f := &fakeList{total: 5}
	p := NewPager(f.fetch, 2, nil)
	ctx := context.Background()

	require.NoError(t, p.LoadPage(ctx, 1, "o"))
	assert.Equal(t, []string{"o1", "o2"}, p.Items())
	assert.Equal(t, Pagination{Page: 1, TotalPages: 3, TotalRecords: 5, HasMore: true}, p.Pagination())

	ok, err := p.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	if diff := cmp.Diff([]string{"o1", "o2", "o3", "o4", "o5"}, p.Items()); diff != "" {
		t.Fatalf("items (-want +got):\n%s", diff)
	}
	assert.False(t, p.Pagination().HasMore)

	ok, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no more pages")
	assert.Equal(t, []int{1, 2, 3}, f.calls)
}

func TestPagerRefreshReplaces(t *testing.T) {
	f := &fakeList{total: 4}
	p := NewPager(f.fetch, 2, nil)
	ctx := context.Background()
	require.NoError(t, p.LoadPage(ctx, 1, "a"))
	_, err := p.LoadMore(ctx)
	require.NoError(t, err)
	require.Len(t, p.Items(), 4)

	require.NoError(t, p.Refresh(ctx, "b"))
	assert.Equal(t, []string{"b1", "b2"}, p.Items())
	assert.Equal(t, 1, p.Pagination().Page)
}

func TestPagerLoadMoreBeforeFirstLoadStartsAtOne(t *testing.T) {
	f := &fakeList{total: 1}
	p := NewPager(f.fetch, 0, nil)
	ok, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, f.calls)
	assert.Equal(t, []string{"1"}, p.Items())
}

func TestPagerErrorKeepsItems(t *testing.T) {
	f := &fakeList{total: 4}
	p := NewPager(f.fetch, 2, nil)
	ctx := context.Background()
	require.NoError(t, p.LoadPage(ctx, 1, ""))

	f.fail = errors.New("HTTP 500")
	_, err := p.LoadMore(ctx)
	assert.EqualError(t, err, "HTTP 500")
	assert.EqualError(t, p.Err(), "HTTP 500")
	assert.Len(t, p.Items(), 2)
	assert.Equal(t, 1, p.Pagination().Page)
}

func TestPagerDropsOvertakenLoad(t *testing.T) {
	f := &fakeList{total: 3}
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, page, limit int, prefix string) (model.Page[string], error) {
		if prefix == "slow" {
			close(started)
			<-release
		}
		return f.fetch(ctx, page, limit, prefix)
	}
	p := NewPager(fetch, 5, nil)
	ctx := context.Background()

	done := make(chan error)
	go func() { done <- p.Refresh(ctx, "slow") }()
	<-started
	require.NoError(t, p.Refresh(ctx, "new"))
	close(release)
	require.NoError(t, <-done)

	if diff := cmp.Diff([]string{"new1", "new2", "new3"}, p.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}
