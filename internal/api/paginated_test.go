package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Makepad-fr/orderup/internal/model"
)

// gatedServer answers list requests only once release is closed.
type gatedServer struct {
	*httptest.Server
	hits    atomic.Int32
	entered chan struct{}
	release chan struct{}
	fail    atomic.Bool
}

func newGatedServer(t *testing.T) *gatedServer {
	g := &gatedServer{entered: make(chan struct{}, 64), release: make(chan struct{})}
	g.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.hits.Add(1)
		g.entered <- struct{}{}
		<-g.release
		if g.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		json.NewEncoder(w).Encode(model.Page[model.Order]{
			TotalRecords: 1, TotalPages: 1, PageNo: 1,
			Data: []model.Order{{ID: "1", OrderNumber: "#139526937622371924"}},
		})
	}))
	t.Cleanup(g.Close)
	return g
}

func fanOut(n int, fn func() (model.Page[model.Order], error)) ([]model.Page[model.Order], []error) {
	pages := make([]model.Page[model.Order], n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pages[i], errs[i] = fn()
		}()
	}
	wg.Wait()
	return pages, errs
}

func TestCachedPageSharesInFlightRequest(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	g := newGatedServer(t)
	c := New(g.URL, WithHTTPClient(g.Client()))
	ctx := context.Background()
	call := func() (model.Page[model.Order], error) {
		return c.Orders(ctx, 1, 20, OrdersFilters{Status: "new"})
	}

	done := make(chan struct{})
	var pages []model.Page[model.Order]
	var errs []error
	go func() {
		pages, errs = fanOut(10, call)
		close(done)
	}()

	<-g.entered
	// let the other callers join the in-flight request
	time.Sleep(50 * time.Millisecond)
	close(g.release)
	<-done

	assert.EqualValues(t, 1, g.hits.Load())
	for i := range pages {
		require.NoError(t, errs[i])
		assert.Equal(t, "1", pages[i].Data[0].ID)
	}

	// settled: the next call goes to the network again
	_, err := call()
	require.NoError(t, err)
	assert.EqualValues(t, 2, g.hits.Load())

	g.Close()
	g.Client().CloseIdleConnections()
}

func TestCachedPageForgetsFailedRequest(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	g := newGatedServer(t)
	g.fail.Store(true)
	c := New(g.URL, WithHTTPClient(g.Client()))
	ctx := context.Background()
	call := func() (model.Page[model.Order], error) { return c.Orders(ctx, 1, 20, OrdersFilters{}) }

	done := make(chan struct{})
	var errs []error
	go func() {
		_, errs = fanOut(5, call)
		close(done)
	}()
	<-g.entered
	time.Sleep(50 * time.Millisecond)
	close(g.release)
	<-done

	assert.EqualValues(t, 1, g.hits.Load())
	for _, err := range errs {
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
		assert.Contains(t, err.Error(), "boom")
	}

	g.fail.Store(false)
	_, err := call()
	require.NoError(t, err)
	assert.EqualValues(t, 2, g.hits.Load())

	g.Close()
	g.Client().CloseIdleConnections()
}

func TestCachedPageDistinctURLsDoNotShare(t *testing.T) {
	g := newGatedServer(t)
	close(g.release)
	c := New(g.URL, WithHTTPClient(g.Client()))
	ctx := context.Background()

	_, err := c.Orders(ctx, 1, 20, OrdersFilters{})
	require.NoError(t, err)
	_, err = c.Orders(ctx, 2, 20, OrdersFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, g.hits.Load())
}

func TestCachedPageWaiterCancellation(t *testing.T) {
	g := newGatedServer(t)
	c := New(g.URL, WithHTTPClient(g.Client()))

	leader := make(chan error, 1)
	go func() {
		_, err := c.Orders(context.Background(), 1, 20, OrdersFilters{})
		leader <- err
	}()
	<-g.entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Orders(ctx, 1, 20, OrdersFilters{})
	assert.ErrorIs(t, err, context.Canceled)

	close(g.release)
	require.NoError(t, <-leader)
	assert.EqualValues(t, 1, g.hits.Load())
}

func TestPaginatedNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	_, err := Paginated[model.Order](context.Background(), c, srv.URL+"/orders")
	assert.EqualError(t, err, "No data received from server (status 200)")
}

func TestPageURLDropsEmptyFilters(t *testing.T) {
	c := New("http://localhost:3000/api")
	raw := c.OrdersURL(0, 20, OrdersFilters{Status: "new", Source: "shopify,phone"})
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/orders", u.Path)
	assert.Equal(t, url.Values{
		"pageNo": {"1"},
		"limit":  {"20"},
		"status": {"new"},
		"source": {"shopify,phone"},
	}, u.Query())

	raw = c.PicklistsURL(3, 10, PicklistsFilters{})
	assert.Equal(t, "http://localhost:3000/api/picklists?limit=10&pageNo=3", raw)
}

func TestCachedPageSameURLDifferentTypesDoNotShare(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	g := newGatedServer(t)
	c := New(g.URL, WithHTTPClient(g.Client()))
	ctx := context.Background()
	u := g.URL + "/orders?pageNo=1"

	var wg sync.WaitGroup
	var orders model.Page[model.Order]
	var refs model.Page[model.OrderRef]
	var errOrders, errRefs error
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, errOrders = CachedPage[model.Order](ctx, c, u)
	}()
	go func() {
		defer wg.Done()
		refs, errRefs = CachedPage[model.OrderRef](ctx, c, u)
	}()
	<-g.entered
	<-g.entered
	close(g.release)
	wg.Wait()

	require.NoError(t, errOrders)
	require.NoError(t, errRefs)
	assert.EqualValues(t, 2, g.hits.Load())
	assert.Equal(t, "1", orders.Data[0].ID)
	assert.Equal(t, "#139526937622371924", refs.Data[0].OrderNumber)

	g.Close()
	g.Client().CloseIdleConnections()
}
