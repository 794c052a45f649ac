package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leeyosep19/portfolio-shopping/internal/domain"
	"github.com/leeyosep19/portfolio-shopping/internal/service"
	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
	"github.com/leeyosep19/portfolio-shopping/pkg/httputil"
)

// ============================================================================
// Mock ReviewRepository
// ============================================================================

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) DeleteByID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// noopPublisher satisfies service.EventPublisher without a broker.
type noopPublisher struct{}

func (noopPublisher) PublishReviewCreated(context.Context, *domain.Review) error { return nil }
func (noopPublisher) PublishReviewDeleted(context.Context, string, string) error { return nil }

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testReviewHandler(repo *mockReviewRepository) *ReviewHandler {
	svc := service.NewReviewService(repo, noopPublisher{}, testLogger())
	return NewReviewHandler(svc, testLogger())
}

// setupReviewRouter mirrors the production route layout, including the
// ContentTypeJSON middleware.
func setupReviewRouter(handler *ReviewHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/review", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/{productId}", handler.CreateReview)
		r.Get("/{productId}", handler.ListReviews)
		r.Delete("/{id}", handler.DeleteReview)
	})
	return r
}

func sampleReviews() []domain.Review {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Review{
		{ID: "rev-001", ProductID: "prod-001", UserID: "user-001", Rating: 5, Text: "최고예요", CreatedAt: now},
		{ID: "rev-002", ProductID: "prod-001", UserID: "user-002", Rating: 2, Text: "아쉬워요", CreatedAt: now.Add(time.Hour)},
	}
}

// ============================================================================
// POST /review/{productId}
// ============================================================================

func TestCreateReview_Created(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	router := setupReviewRouter(testReviewHandler(repo))

	body := []byte(`{"userId":"user-001","rating":5,"text":"최고예요"}`)
	req := httptest.NewRequest(http.MethodPost, "/review/prod-001", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Review
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "prod-001", got.ProductID)
	assert.Equal(t, "user-001", got.UserID)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "최고예요", got.Text)
	assert.False(t, got.CreatedAt.IsZero())

	repo.AssertExpectations(t)
}

func TestCreateReview_ValidationFailure(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(testReviewHandler(repo))

	// rating out of range and missing text
	body := []byte(`{"userId":"user-001","rating":9}`)
	req := httptest.NewRequest(http.MethodPost, "/review/prod-001", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "리뷰 저장 실패", resp.Message)
	assert.Contains(t, resp.Fields, "rating")
	assert.Contains(t, resp.Fields, "text")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_MalformedJSON(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/review/prod-001", bytes.NewReader([]byte(`{"userId":`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReview_WrongContentType(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/review/prod-001", bytes.NewReader([]byte(`userId=user-001`)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCreateReview_StoreFailure(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(assertableErr("disk full"))

	router := setupReviewRouter(testReviewHandler(repo))

	body := []byte(`{"userId":"user-001","rating":3,"text":"그냥 그래요"}`)
	req := httptest.NewRequest(http.MethodPost, "/review/prod-001", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "리뷰 저장 실패", resp.Message)
	assert.NotEmpty(t, resp.Error)
}

// ============================================================================
// GET /review/{productId}
// ============================================================================

func TestListReviews_OK(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListByProductID", mock.Anything, "prod-001").Return(sampleReviews(), nil)

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/review/prod-001", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Review
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "rev-001", got[0].ID)
	assert.Equal(t, "rev-002", got[1].ID)
}

func TestListReviews_EmptyIsArray(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListByProductID", mock.Anything, "prod-unknown").Return([]domain.Review{}, nil)

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/review/prod-unknown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListReviews_StoreFailure(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListByProductID", mock.Anything, "prod-001").Return(nil, assertableErr("timeout"))

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/review/prod-001", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "리뷰 조회 실패", resp.Message)
}

// ============================================================================
// DELETE /review/{id}
// ============================================================================

func TestDeleteReview_OK(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("DeleteByID", mock.Anything, "rev-001").Return("prod-001", nil)

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/review/rev-001", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.MessageBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "리뷰 삭제 성공", resp.Message)
}

func TestDeleteReview_NotFound(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("DeleteByID", mock.Anything, "rev-missing").
		Return("", apperrors.NotFound("삭제할 리뷰를 찾을 수 없습니다."))

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/review/rev-missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "삭제할 리뷰를 찾을 수 없습니다.", resp.Message)
}

func TestDeleteReview_StoreFailure(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("DeleteByID", mock.Anything, "rev-001").Return("", assertableErr("timeout"))

	router := setupReviewRouter(testReviewHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/review/rev-001", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp httputil.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "리뷰 삭제 실패", resp.Message)
	assert.NotEmpty(t, resp.Error)
}

// assertableErr builds a plain error with a stable message.
type assertableErr string

func (e assertableErr) Error() string { return string(e) }
