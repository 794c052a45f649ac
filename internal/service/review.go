package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leeyosep19/portfolio-shopping/internal/domain"
	"github.com/leeyosep19/portfolio-shopping/internal/repository"
	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
)

// EventPublisher publishes review domain events.
type EventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
	PublishReviewDeleted(ctx context.Context, reviewID, productID string) error
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo     repository.ReviewRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, producer EventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ProductID string
	UserID    string
	Rating    int
	Text      string
}

// CreateReview validates the input, persists a new review and publishes a
// review.created event. Event publish failures are logged but do not fail
// the operation.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.InvalidInput("review text is required")
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListByProduct returns all reviews for a product, oldest first. An unknown
// product yields an empty list, not an error.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	return s.repo.ListByProductID(ctx, productID)
}

// DeleteReview removes a review by id and publishes a review.deleted event
// carrying the product the review belonged to.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.InvalidInput("review id is required")
	}

	productID, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.producer.PublishReviewDeleted(ctx, id, productID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.deleted event",
			slog.String("review_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", id),
		slog.String("product_id", productID),
	)

	return nil
}
