package api

import (
	"context"
	"net/http"

	"github.com/Makepad-fr/orderup/internal/model"
)

func (c *Client) Locations(ctx context.Context) ([]model.Location, error) {
	return FetchWithToken[[]model.Location](ctx, c, http.MethodGet, c.endpoint(c.Endpoints.Locations), nil).
		Value("No locations available")
}

// PackingOrders lists the orders of a picked picklist that still need boxing.
func (c *Client) PackingOrders(ctx context.Context, picklistID string) ([]model.PackingOrder, error) {
	return FetchWithToken[[]model.PackingOrder](ctx, c, http.MethodGet, c.endpoint(c.Endpoints.Packing, picklistID), nil).
		Value("No orders to pack")
}

// FulfillOrder marks a packed order ready for pickup or delivery.
func (c *Client) FulfillOrder(ctx context.Context, orderID string) error {
	return FetchWithToken[struct{}](ctx, c, http.MethodPost, c.endpoint(c.Endpoints.Fulfillment, orderID), nil).Err()
}
