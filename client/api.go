// Package client is a Go SDK for the review service. API is a thin HTTP
// adapter; Store keeps a local mirror of one product's reviews the way the
// shop frontend does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/leeyosep19/portfolio-shopping/internal/domain"
	"github.com/leeyosep19/portfolio-shopping/pkg/httpclient"
)

// Doer is the subset of the resilient HTTP client used by the API adapter.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy it.
type Doer interface {
	Get(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error)
	Delete(ctx context.Context, url string) (*http.Response, error)
}

// Review is the review entity as served by the API. It is an alias of the
// service's domain type so SDK consumers outside this module can name it.
type Review = domain.Review

// ReviewInput holds the fields a user submits with a new review.
type ReviewInput struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// API calls the review service endpoints.
type API struct {
	baseURL string
	http    Doer
}

// NewAPI creates a review API adapter. baseURL is the service root, e.g.
// "http://localhost:8007".
func NewAPI(baseURL string, client Doer) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (a *API) reviewURL(pathParam string) string {
	return a.baseURL + "/review/" + url.PathEscape(pathParam)
}

// FetchReviews returns all reviews for a product.
func (a *API) FetchReviews(ctx context.Context, productID string) ([]Review, error) {
	resp, err := a.http.Get(ctx, a.reviewURL(productID))
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "review")
	}

	var reviews []Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview submits a new review for a product and returns the stored review.
func (a *API) CreateReview(ctx context.Context, productID string, input ReviewInput) (*Review, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal review input: %w", err)
	}

	resp, err := a.http.Post(ctx, a.reviewURL(productID), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "review")
	}

	var review Review
	if err := json.NewDecoder(resp.Body).Decode(&review); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes a review by id.
func (a *API) DeleteReview(ctx context.Context, reviewID string) error {
	resp, err := a.http.Delete(ctx, a.reviewURL(reviewID))
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "review")
	}

	// Drain the confirmation body so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
