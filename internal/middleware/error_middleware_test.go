package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

func handleOnTestContext(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return rec, resp
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"donor not found", apperrors.ErrDonorNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"no active checkout", apperrors.ErrNoActiveCheckout, 404, dto.ErrorCodeResourceNotFound},
		{"fridge number conflict", apperrors.ErrFridgeNumberExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"fridge not available", apperrors.ErrFridgeNotAvailable, 400, dto.ErrorCodeStateViolation},
		{"fridge has history", apperrors.ErrFridgeHasHistory, 400, dto.ErrorCodeStateViolation},
		{"validation", apperrors.NewValidationError("name is required"), 400, dto.ErrorCodeValidationFailed},
		{"upstream", apperrors.NewUpstreamError("storage write failed", errors.New("disk full")), 500, dto.ErrorCodeExternalServiceError},
		{"unknown", errors.New("boom"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := handleOnTestContext(t, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp.Error == nil {
				t.Fatal("response has no error detail")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	_, resp := handleOnTestContext(t, fmt.Errorf("querying donors: %w", errors.New("connection refused")))

	if resp.Error.Message != "Internal server error" {
		t.Errorf("message = %q, internal detail leaked", resp.Error.Message)
	}
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	_, resp := handleOnTestContext(t, apperrors.NewValidationError("studentEmail is required"))

	if resp.Error.Message != "studentEmail is required" {
		t.Errorf("message = %q, want the validation message", resp.Error.Message)
	}
}

func TestFormatBindingErrorFieldMessages(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(form{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	got := FormatBindingError(err)
	if got != "Name is required; Email must be a valid email address" {
		t.Errorf("formatted = %q", got)
	}
}

func TestFormatBindingErrorFallsBack(t *testing.T) {
	err := errors.New("unexpected EOF")
	if got := FormatBindingError(err); got != "unexpected EOF" {
		t.Errorf("formatted = %q, want raw error text", got)
	}
}
