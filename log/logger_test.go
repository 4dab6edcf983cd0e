package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().WithOutput(&buf)

	logger.Infow("program run completed", "program", "max-eff-tob", "run_number", 1)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if decoded["message"] != "program run completed" {
		t.Errorf("message = %v, want %q", decoded["message"], "program run completed")
	}
	if decoded["program"] != "max-eff-tob" {
		t.Errorf("program = %v, want %q", decoded["program"], "max-eff-tob")
	}
}

func TestLogger_WithBindsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().WithOutput(&buf).With("challenge", "abc-123")

	logger.Warnw("analyzer dependency missing", "analyzer", "TobRoleAnalyzer")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if decoded["challenge"] != "abc-123" {
		t.Errorf("challenge = %v, want %q (should be bound via With)", decoded["challenge"], "abc-123")
	}
	if decoded["analyzer"] != "TobRoleAnalyzer" {
		t.Errorf("analyzer = %v, want %q", decoded["analyzer"], "TobRoleAnalyzer")
	}
}

func TestLogger_WithWritesToParentOutput(t *testing.T) {
	var parentBuf bytes.Buffer
	parent := NewLogger().WithOutput(&parentBuf)
	child := parent.With("run_number", 7)

	child.Errorw("program run failed", "error", "boom")

	var decoded map[string]any
	if err := json.Unmarshal(parentBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if decoded["run_number"] != float64(7) {
		t.Errorf("run_number = %v, want 7", decoded["run_number"])
	}
}
