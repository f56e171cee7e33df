package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bayleaf/shared/failure"
	"bayleaf/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithError(rec, failure.Timeout("reservation submission timed out"))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.JSONEq(t, `{"error":"reservation submission timed out"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWithError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithError(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "r-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"r-1"}}`, rec.Body.String())
}
