package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("DOCGUARD_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde prefix", "~/db/docguard.db", filepath.Join(home, "db", "docguard.db")},
		{"bare tilde", "~", home},
		{"env var", "$DOCGUARD_TEST_DIR/docguard.db", "/var/data/docguard.db"},
		{"plain path untouched", "/opt/docguard.db", "/opt/docguard.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	got := DefaultDatabasePath()
	if !strings.HasSuffix(got, filepath.Join("docguard", "docguard.db")) {
		t.Errorf("DefaultDatabasePath() = %q", got)
	}
}
