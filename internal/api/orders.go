package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Makepad-fr/orderup/internal/model"
)

// OrdersFilters narrow the order list; empty fields are not sent.
type OrdersFilters struct {
	Status   string
	Search   string
	Source   string
	DateFrom string
	DateTo   string
}

func (f OrdersFilters) values() url.Values {
	return url.Values{
		"status":   {f.Status},
		"search":   {f.Search},
		"source":   {f.Source},
		"dateFrom": {f.DateFrom},
		"dateTo":   {f.DateTo},
	}
}

// OrdersURL is the list URL for one page; it is also the de-duplication key.
func (c *Client) OrdersURL(page, limit int, f OrdersFilters) string {
	return pageURL(c.endpoint(c.Endpoints.Orders), page, limit, f.values())
}

func (c *Client) Orders(ctx context.Context, page, limit int, f OrdersFilters) (model.Page[model.Order], error) {
	return CachedPage[model.Order](ctx, c, c.OrdersURL(page, limit, f))
}

func (c *Client) OrderDetails(ctx context.Context, orderID string) (model.Order, error) {
	return FetchWithToken[model.Order](ctx, c, http.MethodGet, c.endpoint(c.Endpoints.OrderDetails, orderID), nil).
		Value("Order not found")
}

// CreatePicklistRequest groups orders into a new picklist. Location and
// assignee are optional.
type CreatePicklistRequest struct {
	OrderIDs   []string `json:"orderIds"`
	LocationID string   `json:"locationId,omitempty"`
	AssignedTo string   `json:"assignedTo,omitempty"`
}

// CreatePicklist returns the new picklist's ID.
func (c *Client) CreatePicklist(ctx context.Context, req CreatePicklistRequest) (string, error) {
	type created struct {
		PicklistID string `json:"picklistId"`
	}
	out, err := FetchWithToken[created](ctx, c, http.MethodPost, c.endpoint(c.Endpoints.CreatePicklist), req).
		Value("Failed to create picklist")
	if err != nil {
		return "", err
	}
	return out.PicklistID, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	body := struct {
		Status model.OrderStatus `json:"status"`
	}{status}
	return FetchWithToken[struct{}](ctx, c, http.MethodPut, c.endpoint(c.Endpoints.OrderDetails, orderID, "status"), body).Err()
}
