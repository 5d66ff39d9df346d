package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Makepad-fr/orderup/internal/model"
)

type PicklistsFilters struct {
	Status     string
	AssignedTo string
	Search     string
}

func (f PicklistsFilters) values() url.Values {
	return url.Values{
		"status":     {f.Status},
		"assignedTo": {f.AssignedTo},
		"search":     {f.Search},
	}
}

func (c *Client) PicklistsURL(page, limit int, f PicklistsFilters) string {
	return pageURL(c.endpoint(c.Endpoints.Picklists), page, limit, f.values())
}

func (c *Client) Picklists(ctx context.Context, page, limit int, f PicklistsFilters) (model.Page[model.Picklist], error) {
	return CachedPage[model.Picklist](ctx, c, c.PicklistsURL(page, limit, f))
}

func (c *Client) PicklistDetails(ctx context.Context, picklistID string) (model.PicklistDetails, error) {
	return FetchWithToken[model.PicklistDetails](ctx, c, http.MethodGet, c.endpoint(c.Endpoints.PicklistDetails, picklistID), nil).
		Value("Picklist not found")
}

// UpdatePicklistItem sets the picked count of one line.
func (c *Client) UpdatePicklistItem(ctx context.Context, picklistID, itemID string, picked int) error {
	body := struct {
		Picked int `json:"picked"`
	}{picked}
	return FetchWithToken[struct{}](ctx, c, http.MethodPut, c.endpoint(c.Endpoints.UpdatePicklistItem, picklistID, itemID), body).Err()
}

func (c *Client) MarkAllItemsPicked(ctx context.Context, picklistID string) error {
	return FetchWithToken[struct{}](ctx, c, http.MethodPut, c.endpoint(c.Endpoints.PicklistDetails, picklistID, "mark-all-picked"), nil).Err()
}

func (c *Client) CompletePicklist(ctx context.Context, picklistID string) error {
	return FetchWithToken[struct{}](ctx, c, http.MethodPut, c.endpoint(c.Endpoints.MarkPicklistComplete, picklistID), nil).Err()
}
