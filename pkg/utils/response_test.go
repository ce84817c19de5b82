package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-crm/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body["id"])
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperrors.Validation("stage is required"), http.StatusBadRequest, "stage is required"},
		{"not found", apperrors.NotFound("inquiry 7 not found"), http.StatusNotFound, "inquiry 7 not found"},
		{"conflict", apperrors.Conflict("duplicate invoice number"), http.StatusConflict, "duplicate invoice number"},
		{"internal", apperrors.Internal(errors.New("pg down")), http.StatusInternalServerError, "internal server error"},
		{"unclassified", errors.New("pg down"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}

func TestErrorNeverLeaksCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperrors.Internal(errors.New("dial tcp 10.0.0.5:5432: connection refused")))

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
