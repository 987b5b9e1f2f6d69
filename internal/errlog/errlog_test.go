package errlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWritesBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	l := New(path)

	if err := l.Append("src/a.py", errors.New("radon exited with status 1\nstderr: boom")); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := l.Append("src/b.py", errors.New("empty output")); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)

	want := "File: src/a.py\n" +
		"Error: radon exited with status 1\n" +
		"radon exited with status 1\nstderr: boom\n" +
		rule + "\n" +
		"File: src/b.py\n" +
		"Error: empty output\n" +
		"empty output\n" +
		rule + "\n"
	if got != want {
		t.Errorf("log content =\n%s\nwant\n%s", got, want)
	}
}

func TestAppendPreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := New(path).Append("x.js", errors.New("bad json")); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "previous run\n") {
		t.Errorf("existing content was not preserved: %q", data)
	}
	if strings.Count(string(data), rule) != 1 {
		t.Errorf("expected exactly one entry, got %q", data)
	}
}

func TestDisabledLog(t *testing.T) {
	var nilLog *Log
	if err := nilLog.Append("a.py", errors.New("x")); err != nil {
		t.Errorf("nil log Append() = %v, want nil", err)
	}
	if err := New("").Append("a.py", errors.New("x")); err != nil {
		t.Errorf("empty path Append() = %v, want nil", err)
	}
}

func TestAppendUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "errors.log")
	if err := New(path).Append("a.py", errors.New("x")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
