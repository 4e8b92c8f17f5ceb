package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileWriterWrite(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	if _, err := fw.Write([]byte(`{"msg":"test"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	content, err := os.ReadFile(filepath.Join(tmpDir, today+".jsonl"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), `{"msg":"test"}`) {
		t.Errorf("expected content to contain test message, got: %s", content)
	}
}

func TestCleanupRemovesOldFiles(t *testing.T) {
	tmpDir := t.TempDir()

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02") + ".jsonl"
	recent := time.Now().Format("2006-01-02") + ".jsonl"
	unrelated := "notes.txt"

	for _, name := range []string{old, recent, unrelated} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	Cleanup(tmpDir, 7)

	if _, err := os.Stat(filepath.Join(tmpDir, old)); !os.IsNotExist(err) {
		t.Error("old log file should have been removed")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, recent)); err != nil {
		t.Error("recent log file should survive cleanup")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, unrelated)); err != nil {
		t.Error("unrelated file should survive cleanup")
	}
}
