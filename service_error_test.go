package main

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceError_Error(t *testing.T) {
	se := &ServiceError{
		Service:   "provision",
		Operation: "EnsureProvisioned",
		Err:       fmt.Errorf("permission denied"),
	}

	want := "[provision.EnsureProvisioned] permission denied"
	if got := se.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	wrapped := WrapError("launcher", "LaunchBot", fmt.Errorf("no such file: %w", ErrBotScriptMissing))
	if !errors.Is(wrapped, ErrBotScriptMissing) {
		t.Error("errors.Is should see through ServiceError")
	}

	var se *ServiceError
	if !errors.As(wrapped, &se) {
		t.Fatal("errors.As should find the ServiceError")
	}
	if se.Service != "launcher" || se.Operation != "LaunchBot" {
		t.Errorf("unexpected context: %s.%s", se.Service, se.Operation)
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError("settings", "Set", nil) != nil {
		t.Error("WrapError(nil) should stay nil")
	}
}
