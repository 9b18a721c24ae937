//go:build !windows

package executor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "git.asdf.cafe/abs3nt/simpledesktop/errors"
)

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "hook.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScriptExecutor_Execute(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "out.txt")
	script := writeScript(t, tmpDir, `printf '%s' "$1" > "`+out+`"`+"\n")

	if err := NewScriptExecutor(nil).Execute(script, "/pics/SimpleDesktop/Sunset.png"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "/pics/SimpleDesktop/Sunset.png" {
		t.Errorf("Expected script to receive image path, got %q", data)
	}
}

func TestScriptExecutor_ExecuteFailure(t *testing.T) {
	script := writeScript(t, t.TempDir(), "exit 3\n")

	err := NewScriptExecutor(nil).Execute(script, "/tmp/x.png")
	if !errors.Is(err, apperrors.ErrScriptExecution) {
		t.Errorf("Expected ErrScriptExecution, got %v", err)
	}
	if !apperrors.Is(err, apperrors.KindPlatform) {
		t.Errorf("Expected PlatformError kind, got %v", apperrors.KindOf(err))
	}
}

func TestScriptExecutor_MissingScript(t *testing.T) {
	err := NewScriptExecutor(nil).Execute(filepath.Join(t.TempDir(), "nope.sh"), "/tmp/x.png")
	if !apperrors.Is(err, apperrors.KindConfiguration) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}
