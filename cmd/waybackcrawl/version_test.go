package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("expected non-empty version")
	}
}

// TestGetCommit tests commit hash resolution.
func TestGetCommit(t *testing.T) {
	if got := getCommit(); got == "" {
		t.Error("expected non-empty commit")
	}
}

// TestGetDate tests build date resolution.
func TestGetDate(t *testing.T) {
	if got := getDate(); got == "" {
		t.Error("expected non-empty date")
	}
}

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "waybackcrawl version") {
		t.Errorf("expected version line, got: %s", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("expected commit line, got: %s", out)
	}
	if !strings.Contains(out, "built:") {
		t.Errorf("expected built line, got: %s", out)
	}
}
