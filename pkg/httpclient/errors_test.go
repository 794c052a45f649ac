package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_NotFound(t *testing.T) {
	resp := newResponse(http.StatusNotFound, `{"message":"삭제할 리뷰를 찾을 수 없습니다."}`)

	err := ParseResponseError(resp, "review-service")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "삭제할 리뷰를 찾을 수 없습니다.", appErr.Message)
}

func TestParseResponseError_BadRequest(t *testing.T) {
	resp := newResponse(http.StatusBadRequest, `{"message":"리뷰 저장 실패","error":"field 'Rating' is required"}`)

	err := ParseResponseError(resp, "review-service")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Rating")
}

func TestParseResponseError_ServerError(t *testing.T) {
	resp := newResponse(http.StatusInternalServerError, `{"message":"리뷰 조회 실패","error":"connection refused"}`)

	err := ParseResponseError(resp, "review-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "리뷰 조회 실패")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := newResponse(http.StatusBadGateway, "upstream exploded")

	err := ParseResponseError(resp, "review-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream exploded")
}
