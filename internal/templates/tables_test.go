package templates_test

import (
	"strings"
	"testing"

	"larknotify/internal/templates"
)

func TestMarkdownTable(t *testing.T) {
	out := templates.MarkdownTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Throughput", "1153"},
			{"Latency", "42ms"},
		},
		[]templates.Alignment{templates.AlignLeft, templates.AlignRight},
	)

	if out == "" {
		t.Fatal("expected non-empty table")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected header, separator, and two rows, got %d lines: %q", len(lines), out)
	}
	for _, want := range []string{"Metric", "Value", "Throughput", "1153", "Latency", "42ms"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered table: %q", want, out)
		}
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "|") {
			t.Fatalf("line %d is not a markdown table row: %q", i, line)
		}
	}
}

func TestMarkdownTablePadsShortRows(t *testing.T) {
	out := templates.MarkdownTable(
		[]string{"A", "B", "C"},
		[][]string{{"only"}},
		nil,
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("expected row content in table: %q", out)
	}
}

func TestMarkdownTableEmptyHeaders(t *testing.T) {
	if out := templates.MarkdownTable(nil, nil, nil); out != "" {
		t.Fatalf("expected empty output for empty headers, got %q", out)
	}
}
