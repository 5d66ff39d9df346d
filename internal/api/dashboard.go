package api

import (
	"context"
	"net/http"

	"github.com/Makepad-fr/orderup/internal/model"
)

func (c *Client) Dashboard(ctx context.Context) (model.Dashboard, error) {
	return FetchWithToken[model.Dashboard](ctx, c, http.MethodGet, c.endpoint(c.Endpoints.Dashboard), nil).
		Value("Failed to load dashboard data")
}
