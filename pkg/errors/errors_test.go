package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodePersonNotFound, "no person with id %q", "p1")

	if err.Code != ErrCodePersonNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodePersonNotFound)
	}

	if err.Message != `no person with id "p1"` {
		t.Errorf("Message = %v, want %v", err.Message, `no person with id "p1"`)
	}

	expected := `PERSON_NOT_FOUND: no person with id "p1"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, cause, "open store")

	if err.Code != ErrCodeStoreUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreUnavailable)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidMode, "x"), ErrCodeInvalidMode, true},
		{"non-matching code", New(ErrCodeInvalidMode, "x"), ErrCodeInvalidFormat, false},
		{"wrapped error", Wrap(ErrCodeExportFailed, New(ErrCodeInternal, "inner"), "outer"), ErrCodeExportFailed, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidPersonID, "test"), ErrCodeInvalidPersonID},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v, want friendly message", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want plain error", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidMode, "x"), 400},
		{New(ErrCodeInvalidPersonID, "x"), 400},
		{New(ErrCodePersonNotFound, "x"), 404},
		{New(ErrCodeStoreUnavailable, "x"), 503},
		{New(ErrCodeUnsupported, "x"), 501},
		{errors.New("plain"), 500},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
