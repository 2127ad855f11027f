package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bridgette-app/bridgette/internal/model"
)

// Family fetches the current user's family profile, including children.
func (c *Client) Family(ctx context.Context) (model.Family, error) {
	var family model.Family
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/family", nil, &family)
	return family, err
}

// CreateFamily sets up a family profile for the current user.
func (c *Client) CreateFamily(ctx context.Context, req model.FamilyCreate) (model.Family, error) {
	var family model.Family
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/family", req, &family)
	return family, err
}

// AddChild adds a child to the current user's family.
func (c *Client) AddChild(ctx context.Context, child model.Child) (model.Child, error) {
	var created model.Child
	if err := child.Validate(); err != nil {
		return created, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/children", child, &created)
	return created, err
}

// UpdateChild updates an existing child record.
func (c *Client) UpdateChild(ctx context.Context, childID string, child model.Child) (model.Child, error) {
	var updated model.Child
	path := "/api/v1/children/" + url.PathEscape(childID)
	err := c.doJSON(ctx, http.MethodPut, path, child, &updated)
	return updated, err
}

// DeleteChild removes a child from the family.
func (c *Client) DeleteChild(ctx context.Context, childID string) error {
	path := "/api/v1/children/" + url.PathEscape(childID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
