package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/orderup/internal/model"
)

func init() { gin.SetMode(gin.TestMode) }

type harness struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t, router: New(opts...).Router()}
	rec := h.do(http.MethodPost, "/api/auth/login", map[string]string{
		"domain": "fly", "username": "john smith", "password": "x",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	h.token = sess.Token
	return h
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	h := &harness{t: t, router: New().Router()}
	rec := h.do(http.MethodPost, "/api/auth/login", map[string]string{"domain": "fly", "username": "nobody", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "john smith"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequiresBearerToken(t *testing.T) {
	h := &harness{t: t, router: New().Router()}
	rec := h.do(http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	h.token = "garbage"
	rec = h.do(http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	now := time.Date(2025, 7, 17, 10, 32, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	h := newHarness(t, WithClock(clock), WithTokenExpiry(time.Minute))
	now = now.Add(2 * time.Minute)

	rec := h.do(http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Token expired"}`, rec.Body.String())
}

func TestOrdersPagination(t *testing.T) {
	h := newHarness(t)
	page := decode[model.Page[model.Order]](t, h.do(http.MethodGet, "/api/orders?pageNo=2&limit=3", nil))
	assert.Equal(t, 8, page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.PageNo)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "4", page.Data[0].ID)

	page = decode[model.Page[model.Order]](t, h.do(http.MethodGet, "/api/orders?pageNo=9&limit=3", nil))
	assert.Empty(t, page.Data)
}

func TestOrdersFilters(t *testing.T) {
	h := newHarness(t)
	page := decode[model.Page[model.Order]](t, h.do(http.MethodGet, "/api/orders?source=shopify,phone&limit=50", nil))
	assert.Equal(t, 3, page.TotalRecords)

	page = decode[model.Page[model.Order]](t, h.do(http.MethodGet, "/api/orders?status=ready", nil))
	for _, o := range page.Data {
		assert.Equal(t, model.OrderReady, o.Status)
	}
}

func TestPicklistLifecycle(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/orders/create-picklist", map[string]any{"orderIds": []string{"2", "3"}, "assignedTo": "u2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["picklistId"]
	require.NotEmpty(t, id)

	d := decode[model.PicklistDetails](t, h.do(http.MethodGet, "/api/picklists/"+id, nil))
	assert.Equal(t, model.PicklistOpen, d.Status)
	assert.Equal(t, "Emma Wilson", d.Assignee())
	require.Len(t, d.Orders, 2)
	require.Len(t, d.Items, 3)

	rec = h.do(http.MethodPut, "/api/picklists/complete/"+id, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPut, "/api/picklists/items/"+id+"/1", map[string]int{"picked": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(http.MethodPut, "/api/picklists/items/"+id+"/1", map[string]int{"picked": 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	d = decode[model.PicklistDetails](t, h.do(http.MethodGet, "/api/picklists/"+id, nil))
	assert.Equal(t, model.PicklistInProgress, d.Status)
	assert.Equal(t, 1, d.ItemsPicked)

	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/picklists/"+id+"/mark-all-picked", nil).Code)
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/picklists/complete/"+id, nil).Code)

	packing := decode[[]model.PackingOrder](t, h.do(http.MethodGet, "/api/packing/"+id, nil))
	require.Len(t, packing, 2)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/fulfillment/2", nil).Code)
	packing = decode[[]model.PackingOrder](t, h.do(http.MethodGet, "/api/packing/"+id, nil))
	require.Len(t, packing, 1)

	dash := decode[model.Dashboard](t, h.do(http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, 1, dash.Stats.CompletedToday)
}

func TestCreatePicklistValidation(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/api/orders/create-picklist", map[string]any{"orderIds": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/api/orders/create-picklist", map[string]any{"orderIds": []string{"2", "404"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	o := decode[model.Order](t, h.do(http.MethodGet, "/api/orders/2", nil))
	assert.Equal(t, model.OrderNew, o.Status, "failed create must not touch orders")
}
