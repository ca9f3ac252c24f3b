package cli

import (
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "ledger.path",
		Message: "missing required field",
	}

	expected := "config error in ledger.path: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &CommandError{
		Command: "lint",
		Err:     underlyingErr,
	}

	expected := "command lint failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &CommandError{
		Command: "lint",
		Err:     underlyingErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlyingErr)
	}

	// Test with errors.Is
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestNewCommandError(t *testing.T) {
	underlyingErr := errors.New("test")
	err := NewCommandError("command", underlyingErr)

	if err.Command != "command" {
		t.Errorf("Command = %q, want %q", err.Command, "command")
	}
	if err.Err != underlyingErr {
		t.Errorf("Err = %v, want %v", err.Err, underlyingErr)
	}
}

func TestExitError(t *testing.T) {
	underlyingErr := errors.New("3 lint findings")
	err := NewExitError(1, underlyingErr)

	if err.Code != 1 {
		t.Errorf("Code = %d, want 1", err.Code)
	}
	if err.Error() != "3 lint findings" {
		t.Errorf("Error() = %q, want %q", err.Error(), "3 lint findings")
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with ExitError.Unwrap()")
	}
}

func TestExitErrorNilErr(t *testing.T) {
	err := NewExitError(2, nil)

	if err.Error() != "exit status 2" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit status 2")
	}
}
