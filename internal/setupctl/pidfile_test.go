package setupctl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPIDHintRoundtrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ollama.pid")
	if err := writePIDHint(p, 1234); err != nil {
		t.Fatalf("write: %v", err)
	}
	pid, ok := readPIDHint(p)
	if !ok || pid != 1234 {
		t.Fatalf("read: pid=%d ok=%v", pid, ok)
	}
	clearPIDHint(p)
	if _, ok := readPIDHint(p); ok {
		t.Fatalf("hint should be gone after clear")
	}
}

func TestReadPIDHintRejectsGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ollama.pid")
	for _, content := range []string{"", "abc", "-5", "0", "12 34"} {
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, ok := readPIDHint(p); ok {
			t.Errorf("content %q should not parse as a pid", content)
		}
	}
}

func TestClearPIDHintMissingFile(t *testing.T) {
	// clearing a hint that never existed is fine
	clearPIDHint(filepath.Join(t.TempDir(), "nope.pid"))
}
