package api

import (
	"context"
	"net/http"

	"github.com/bridgette-app/bridgette/internal/model"
)

// AdminStats fetches the aggregate counters for the admin dashboard.
// Requires the admin role; 403 otherwise.
func (c *Client) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &stats)
	return stats, err
}

// AdminFamilies fetches every family for the admin dashboard.
func (c *Client) AdminFamilies(ctx context.Context) ([]model.AdminFamily, error) {
	var families []model.AdminFamily
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/families", nil, &families)
	return families, err
}

// AdminUsers fetches every user for the admin dashboard.
func (c *Client) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/users", nil, &users)
	return users, err
}
