package main

import (
	"runtime"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if GitCommit == "" {
		t.Error("GitCommit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd should not be nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if versionCmd.Run == nil {
		t.Error("Run function should not be nil")
	}
}

func TestRuntimeInfo(t *testing.T) {
	if runtime.Version() == "" {
		t.Error("runtime version should not be empty")
	}
	if runtime.GOOS == "" {
		t.Error("GOOS should not be empty")
	}
	if runtime.GOARCH == "" {
		t.Error("GOARCH should not be empty")
	}
}
