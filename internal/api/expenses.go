package api

import (
	"context"
	"net/http"

	"github.com/bridgette-app/bridgette/internal/model"
)

// Expenses fetches the family's shared expense log.
func (c *Client) Expenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/expenses", nil, &expenses)
	return expenses, err
}
