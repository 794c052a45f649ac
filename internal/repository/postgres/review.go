package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/leeyosep19/portfolio-shopping/internal/domain"
	"github.com/leeyosep19/portfolio-shopping/pkg/database"
	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	ctx, done := database.TraceQuery(ctx, "insert", query)
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Text,
		review.CreatedAt,
	)
	done(err)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProductID returns all reviews for a product, oldest first.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, text, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at ASC, id ASC`

	ctx, done := database.TraceQuery(ctx, "select", query)
	rows, err := r.pool.Query(ctx, query, productID)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// DeleteByID removes a review and returns the id of the product it belonged to.
func (r *ReviewRepository) DeleteByID(ctx context.Context, id string) (string, error) {
	query := `
		DELETE FROM reviews
		WHERE id = $1
		RETURNING product_id`

	ctx, done := database.TraceQuery(ctx, "delete", query)
	var productID string
	err := r.pool.QueryRow(ctx, query, id).Scan(&productID)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("삭제할 리뷰를 찾을 수 없습니다.")
		}
		return "", fmt.Errorf("delete review: %w", err)
	}

	return productID, nil
}
