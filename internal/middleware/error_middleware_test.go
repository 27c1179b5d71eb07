package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleAPIError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return recorder.Code, body
}

func TestHandleAPIErrorStatusAndReason(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ReasonCode
	}{
		{apperrors.NewInvalidArgumentError("bad input"), http.StatusBadRequest, dto.ReasonInvalidArgument},
		{apperrors.NewNotFoundError("slot not found"), http.StatusNotFound, dto.ReasonNotFound},
		{apperrors.ErrDuplicateSlot, http.StatusConflict, dto.ReasonDuplicateSlot},
		{apperrors.ErrSlotTaken, http.StatusConflict, dto.ReasonSlotTaken},
		{apperrors.ErrSlotTakenSecondSlot, http.StatusConflict, dto.ReasonSlotTakenSecondSlot},
		{apperrors.NewConflictError("constraint"), http.StatusConflict, dto.ReasonConflict},
		{apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "db down"), http.StatusServiceUnavailable, dto.ReasonStorageUnavailable},
		{apperrors.ErrBadCredentials, http.StatusUnauthorized, dto.ReasonBadCredentials},
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ReasonUnauthenticated},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError, dto.ReasonServerError},
	}

	for _, tc := range cases {
		status, body := runHandleAPIError(t, tc.err)
		if status != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, status, tc.status)
		}
		if body.Error.Code != tc.code {
			t.Errorf("%v: code = %s, want %s", tc.err, body.Error.Code, tc.code)
		}
		if body.Error.Message == "" {
			t.Errorf("%v: empty message", tc.err)
		}
	}
}

func TestHandleAPIErrorUnclassifiedHidesDiagnostic(t *testing.T) {
	_, body := runHandleAPIError(t, fmt.Errorf("pq: secret table does not exist"))
	if body.Error.Message != "Internal server error" {
		t.Errorf("message = %q, want generic message", body.Error.Message)
	}
}

func TestHandleAPIErrorCarriesDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrSlotTaken, "another class occupies this minute").
		WithDetails(map[string]interface{}{"occupants": []string{"Yoga"}})

	status, body := runHandleAPIError(t, err)
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if body.Error.Details == nil {
		t.Fatal("expected details to survive the envelope")
	}
}
