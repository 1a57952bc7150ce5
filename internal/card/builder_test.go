package card_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"larknotify/internal/card"
)

func buildOrFatal(t *testing.T, b *card.Builder) card.Block {
	t.Helper()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return c.Payload()
}

func bodyElements(t *testing.T, payload card.Block) []card.Block {
	t.Helper()
	body, ok := payload["body"].(card.Block)
	if !ok {
		t.Fatalf("missing body in payload: %v", payload)
	}
	elements, ok := body["elements"].([]card.Block)
	if !ok {
		t.Fatalf("missing body elements: %v", body)
	}
	return elements
}

func TestSimpleBuilder(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test Title", card.WithStatus("success"), card.WithColor("green")).
		Metadata("Key", "Value"))

	if payload["schema"] != "2.0" {
		t.Fatalf("unexpected schema: %v", payload["schema"])
	}
	if _, ok := payload["header"]; !ok {
		t.Fatal("expected header in payload")
	}
	elements := bodyElements(t, payload)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if elements[0]["tag"] != "markdown" {
		t.Fatalf("unexpected element tag: %v", elements[0]["tag"])
	}
	if elements[0]["content"] != "**Key:** Value" {
		t.Fatalf("unexpected metadata content: %v", elements[0]["content"])
	}
	header := payload["header"].(card.Block)
	if header["template"] != "green" {
		t.Fatalf("expected green header, got %v", header["template"])
	}
}

func TestBodyOrderMatchesCallOrder(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		Metadata("Key1", "Value1").
		Markdown("Before").
		Divider().
		Markdown("After").
		Collapsible("Details", "More info", false))

	elements := bodyElements(t, payload)
	wantTags := []string{"markdown", "markdown", "hr", "markdown", "collapsible_panel"}
	if len(elements) != len(wantTags) {
		t.Fatalf("expected %d elements, got %d", len(wantTags), len(elements))
	}
	for i, want := range wantTags {
		if elements[i]["tag"] != want {
			t.Fatalf("element %d: expected tag %q, got %v", i, want, elements[i]["tag"])
		}
	}
}

func TestColumns(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		Columns().
		Column("Left", "Value1").
		Column("Right", "Value2", card.WithWidth(card.WidthWeighted)).
		EndColumns())

	elements := bodyElements(t, payload)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	set := elements[0]
	if set["tag"] != "column_set" {
		t.Fatalf("expected column_set, got %v", set["tag"])
	}
	columns := set["columns"].([]card.Block)
	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	if columns[0]["width"] != "auto" {
		t.Fatalf("expected auto width, got %v", columns[0]["width"])
	}
	if _, ok := columns[0]["weight"]; ok {
		t.Fatal("auto column must not carry weight")
	}
	if columns[1]["width"] != "weighted" {
		t.Fatalf("expected weighted width, got %v", columns[1]["width"])
	}
	if columns[1]["weight"] != 1 {
		t.Fatalf("expected default weight 1, got %v", columns[1]["weight"])
	}
	left := columns[0]["elements"].([]card.Block)[0]
	if !strings.Contains(left["content"].(string), "**Left**") {
		t.Fatalf("unexpected column content: %v", left["content"])
	}
}

func TestMultipleColumnSets(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		Columns().Column("A", "1").Column("B", "2").EndColumns().
		Columns().Column("C", "3").Column("D", "4").EndColumns())

	elements := bodyElements(t, payload)
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	for i, el := range elements {
		if el["tag"] != "column_set" {
			t.Fatalf("element %d: expected column_set, got %v", i, el["tag"])
		}
	}
}

func TestCollapsible(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		Collapsible("Section 1", "Content 1", false).
		Collapsible("Section 2", "Content 2", true))

	elements := bodyElements(t, payload)
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[0]["expanded"] != false {
		t.Fatalf("expected collapsed panel, got %v", elements[0]["expanded"])
	}
	if elements[1]["expanded"] != true {
		t.Fatalf("expected expanded panel, got %v", elements[1]["expanded"])
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name       string
		build      func() *card.Builder
		wantReason string
	}{
		{
			name: "unclosed columns at build",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").Columns().Column("A", "1")
			},
			wantReason: "unclosed column context",
		},
		{
			name: "column without context",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").Column("A", "1").EndColumns()
			},
			wantReason: "call Columns before Column",
		},
		{
			name: "end columns without context",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").EndColumns()
			},
			wantReason: "no column context to end",
		},
		{
			name: "columns while open",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").Columns().Columns()
			},
			wantReason: "unclosed column context",
		},
		{
			name: "metadata while columns open",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").Columns().Metadata("K", "V")
			},
			wantReason: "column context open",
		},
		{
			name: "collapsible while columns open",
			build: func() *card.Builder {
				return card.NewBuilder().Header("Test").Columns().Collapsible("T", "C", false)
			},
			wantReason: "column context open",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.build()
			_, err := b.Build()
			if err == nil {
				t.Fatal("expected Build to fail")
			}
			var stateErr *card.StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("expected StateError, got %T: %v", err, err)
			}
			if !strings.Contains(stateErr.Reason, tc.wantReason) {
				t.Fatalf("expected reason containing %q, got %q", tc.wantReason, stateErr.Reason)
			}
			if b.Err() == nil && tc.wantReason != "unclosed column context" {
				t.Fatal("expected Err to report the recorded misuse")
			}
		})
	}
}

func TestErrorIsStickyAndAttributedToFirstMisuse(t *testing.T) {
	b := card.NewBuilder().Header("Test").EndColumns().Metadata("K", "V").Columns()
	_, err := b.Build()
	var stateErr *card.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if stateErr.Op != "EndColumns" {
		t.Fatalf("expected first misuse op EndColumns, got %q", stateErr.Op)
	}
}

func TestStatusColorResolution(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"running", "wathet"},
		{"pending", "wathet"},
		{"success", "green"},
		{"completed", "green"},
		{"failed", "red"},
		{"error", "red"},
		{"warning", "orange"},
		{"info", "blue"},
		{"something-else", "blue"},
		{"", "blue"},
	}

	for _, tc := range tests {
		payload := buildOrFatal(t, card.NewBuilder().Header("Test", card.WithStatus(tc.status)))
		header := payload["header"].(card.Block)
		if header["template"] != tc.want {
			t.Fatalf("status %q: expected template %q, got %v", tc.status, tc.want, header["template"])
		}
	}
}

func TestExplicitColorOverridesStatus(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test", card.WithStatus("failed"), card.WithColor("purple")))
	header := payload["header"].(card.Block)
	if header["template"] != "purple" {
		t.Fatalf("expected explicit purple, got %v", header["template"])
	}
}

func TestHeaderLastCallWins(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("First", card.WithStatus("failed")).
		Header("Second", card.WithStatus("success")))
	header := payload["header"].(card.Block)
	if header["template"] != "green" {
		t.Fatalf("expected green header, got %v", header["template"])
	}
	title := header["title"].(card.Block)
	if title["content"] != "Second" {
		t.Fatalf("expected last title to win, got %v", title["content"])
	}
}

func TestMetadataBlockTitleCasesKeys(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		MetadataBlock(
			card.Field{Key: "task_name", Value: "my-task"},
			card.Field{Key: "duration", Value: "5m"},
			card.Field{Key: "status", Value: "complete"},
		))

	elements := bodyElements(t, payload)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	content := elements[0]["content"].(string)
	for _, want := range []string{"Task Name", "Duration", "Status"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in metadata block, got %q", want, content)
		}
	}
	lines := strings.Split(content, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "**Task Name:** my-task" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestAddRawBlock(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().
		Header("Test").
		AddBlock(card.Markdown("**Raw Content**")))

	elements := bodyElements(t, payload)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if !strings.Contains(elements[0]["content"].(string), "Raw Content") {
		t.Fatalf("unexpected raw block content: %v", elements[0]["content"])
	}
}

func TestLanguageOption(t *testing.T) {
	if got := card.NewBuilder().Language(); got != "zh" {
		t.Fatalf("expected default language zh, got %q", got)
	}
	b := card.NewBuilder(card.WithLanguage("en"))
	if got := b.Language(); got != "en" {
		t.Fatalf("expected language en, got %q", got)
	}
	c, err := b.Header("Test").Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if c.Language() != "en" {
		t.Fatalf("expected card language en, got %q", c.Language())
	}
	if got := card.NewBuilder(card.WithLanguage("not a tag")).Language(); got != "zh" {
		t.Fatalf("expected invalid tag to keep default, got %q", got)
	}
}

func TestRepeatedBuildIsIdempotent(t *testing.T) {
	b := card.NewBuilder().Header("Test", card.WithStatus("success")).Metadata("K", "V")
	first, err := b.Build()
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	firstJSON, err := first.JSON()
	if err != nil {
		t.Fatalf("serialize first: %v", err)
	}
	secondJSON, err := second.JSON()
	if err != nil {
		t.Fatalf("serialize second: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Fatal("expected repeated builds to produce identical cards")
	}
}

func TestJSONRoundTripHasNoNullValues(t *testing.T) {
	c, err := card.NewBuilder().
		Header("Experiment Workflow Complete", card.WithStatus("success")).
		Metadata("Experiment ID", "EXP-001").
		Divider().
		Collapsible("Stage 1", "Network generation complete", false).
		Columns().
		Column("Success Rate", "99%").
		Column("Total Tasks", 500, card.WithWidth(card.WidthWeighted), card.WithWeight(2)).
		EndColumns().
		Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	raw, err := c.JSON()
	if err != nil {
		t.Fatalf("serialize card: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Fatalf("expected no null values in serialized card: %s", raw)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("round trip decode: %v", err)
	}
	if decoded["schema"] != "2.0" {
		t.Fatalf("unexpected schema after round trip: %v", decoded["schema"])
	}
}

func TestBuildWithoutHeaderOmitsHeader(t *testing.T) {
	payload := buildOrFatal(t, card.NewBuilder().Markdown("body only"))
	if _, ok := payload["header"]; ok {
		t.Fatal("expected no header block when none was set")
	}
}
