package repository

import (
	"context"

	"github.com/leeyosep19/portfolio-shopping/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProductID returns all reviews for a product in insertion order.
	ListByProductID(ctx context.Context, productID string) ([]domain.Review, error)

	// DeleteByID removes the review with the given id and returns the
	// product id it belonged to. Returns an error wrapping ErrNotFound
	// when no such review exists.
	DeleteByID(ctx context.Context, id string) (string, error)
}
