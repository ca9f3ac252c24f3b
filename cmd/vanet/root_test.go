package main

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := []string{"lint", "query", "streams", "sections", "campaign", "runs", "version", "completion"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestRunsSubcommands(t *testing.T) {
	want := []string{"list", "prune"}

	registered := make(map[string]bool)
	for _, cmd := range runsCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("runs subcommand %q is not registered", name)
		}
	}
}

func TestInitRuntimeDefaults(t *testing.T) {
	cfg, logger, _, err := initRuntime()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected a configuration")
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}
	if cfg.Engine.DefaultSection == "" {
		t.Error("expected engine defaults to be applied")
	}
}
