package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hkg.log")
	log, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.WithField("bucket", "topics").Debug("cache miss")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "cache miss") || !strings.Contains(string(data), "bucket=topics") {
		t.Fatalf("unexpected log content: %q", string(data))
	}
}

func TestNew_Level(t *testing.T) {
	log, _, err := New("", "warn")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", log.GetLevel())
	}
	if _, _, err := New("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
