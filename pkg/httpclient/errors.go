package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
)

// DownstreamErrorBody mirrors the {message, error} body returned by the
// review service. It is used to parse structured error responses from
// downstream HTTP calls.
type DownstreamErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and
// translates it into an AppError. If the body matches the standard
// {message, error} shape the message is preserved; otherwise a generic
// error with the status code and raw body is returned.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var downstream DownstreamErrorBody
	if json.Unmarshal(bodyBytes, &downstream) == nil && downstream.Message != "" {
		return mapDownstreamError(resp.StatusCode, downstream, serviceName)
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

func mapDownstreamError(status int, body DownstreamErrorBody, serviceName string) error {
	message := body.Message
	if body.Error != "" {
		message = fmt.Sprintf("%s: %s", body.Message, body.Error)
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(body.Message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(message)
	default:
		return &apperrors.AppError{
			Code:    "DOWNSTREAM_ERROR",
			Message: fmt.Sprintf("%s: %s", serviceName, message),
			Status:  status,
			Err:     apperrors.ErrInternal,
		}
	}
}
