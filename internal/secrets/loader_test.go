package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  top-secret \n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path, Value: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "top-secret" {
		t.Fatalf("expected trimmed file value, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TALENTSCOUT_TEST_KEY", "env-secret")

	got, err := Load(Source{Name: "api key", Env: "TALENTSCOUT_TEST_KEY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-secret" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestLoadUnconfigured(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected error when nothing is configured")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("   "), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatalf("expected error for empty secret file")
	}
}
