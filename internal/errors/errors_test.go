package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		errType    ErrorType
		statusCode int
	}{
		{"Validation", NewValidationError("bad input", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"Malformed input", NewMalformedInputError("bad data URL", nil), ErrorTypeMalformedInput, http.StatusBadRequest},
		{"Decode", NewDecodeError("not an image", nil), ErrorTypeDecode, http.StatusBadRequest},
		{"Network", NewNetworkError("fetch failed", nil), ErrorTypeNetwork, http.StatusBadGateway},
		{"Timeout", NewTimeoutError("took too long", nil), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"Internal", NewInternalError("boom", nil), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.errType {
				t.Errorf("Expected type %s, got %s", tt.errType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.statusCode {
				t.Errorf("Expected status %d, got %d", tt.statusCode, tt.err.StatusCode)
			}
			if !IsType(tt.err, tt.errType) {
				t.Error("IsType should match the constructor's type")
			}
			if GetStatusCode(tt.err) != tt.statusCode {
				t.Errorf("GetStatusCode: expected %d, got %d", tt.statusCode, GetStatusCode(tt.err))
			}
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewDecodeError("could not decode image", cause)

	if !strings.Contains(err.Error(), "could not decode image") {
		t.Errorf("Expected message in Error(), got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Expected cause in Error(), got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause through Unwrap")
	}
}

func TestIsType_NonAppError(t *testing.T) {
	if IsType(stderrors.New("plain"), ErrorTypeValidation) {
		t.Error("Plain errors must not match any type")
	}
	if GetStatusCode(stderrors.New("plain")) != http.StatusInternalServerError {
		t.Error("Plain errors default to 500")
	}
}
