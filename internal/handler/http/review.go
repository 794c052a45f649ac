package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leeyosep19/portfolio-shopping/internal/service"
	"github.com/leeyosep19/portfolio-shopping/pkg/httputil"
	"github.com/leeyosep19/portfolio-shopping/pkg/validator"
)

// maxBodySize caps review request bodies at 1 MiB.
const maxBodySize = 1 << 20

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateReviewRequest is the JSON request body for posting a review.
type CreateReviewRequest struct {
	UserID string `json:"userId" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}

// CreateReview handles POST /review/{productId}
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, "리뷰 저장 실패", err, h.logger)
		return
	}

	review, err := h.service.CreateReview(r.Context(), &service.CreateReviewInput{
		ProductID: productID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		httputil.WriteError(w, r, "리뷰 저장 실패", err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /review/{productId}
//
// The response body is the bare review array, never null: clients render it
// directly, so an unknown product yields [].
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, "리뷰 조회 실패", err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// DeleteReview handles DELETE /review/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), id); err != nil {
		httputil.WriteError(w, r, "리뷰 삭제 실패", err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.MessageBody{Message: "리뷰 삭제 성공"})
}
