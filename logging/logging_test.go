package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studiomon.log")

	log, closer, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello", "session", "s1")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "hello" || entry["session"] != "s1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic or write anywhere.
	Nop().Error("dropped")
}
