package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
	"github.com/leeyosep19/portfolio-shopping/pkg/httpclient"
)

// testClient builds an httpclient with retries disabled so error paths do
// not back off during tests.
func testClient() *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Timeout:         2 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 10,
	})
}

func serverReview() Review {
	return Review{
		ID:        "rev-001",
		ProductID: "prod-001",
		UserID:    "user-001",
		Rating:    5,
		Text:      "좋아요",
		CreatedAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAPI_FetchReviews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/review/prod-001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Review{serverReview()})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	got, err := api.FetchReviews(context.Background(), "prod-001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rev-001", got[0].ID)
	assert.Equal(t, 5, got[0].Rating)
}

func TestAPI_FetchReviews_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"리뷰 조회 실패","error":"timeout"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	got, err := api.FetchReviews(context.Background(), "prod-001")
	assert.Nil(t, got)
	require.Error(t, err)
}

func TestAPI_CreateReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/review/prod-001", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in ReviewInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "user-001", in.UserID)
		assert.Equal(t, 4, in.Rating)

		rv := serverReview()
		rv.Rating = in.Rating
		rv.Text = in.Text
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rv)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	got, err := api.CreateReview(context.Background(), "prod-001", ReviewInput{
		UserID: "user-001", Rating: 4, Text: "만족",
	})
	require.NoError(t, err)
	assert.Equal(t, "rev-001", got.ID)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "만족", got.Text)
}

func TestAPI_CreateReview_ValidationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"리뷰 저장 실패","error":"field 'rating' must be at most 5"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	got, err := api.CreateReview(context.Background(), "prod-001", ReviewInput{
		UserID: "user-001", Rating: 9, Text: "x",
	})
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestAPI_DeleteReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/review/rev-001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"리뷰 삭제 성공"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	assert.NoError(t, api.DeleteReview(context.Background(), "rev-001"))
}

func TestAPI_DeleteReview_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"삭제할 리뷰를 찾을 수 없습니다."}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testClient())

	err := api.DeleteReview(context.Background(), "rev-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "삭제할 리뷰를 찾을 수 없습니다.", appErr.Message)
}

func TestAPI_BaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/review/prod-001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL+"/", testClient())

	got, err := api.FetchReviews(context.Background(), "prod-001")
	require.NoError(t, err)
	assert.Empty(t, got)
}
