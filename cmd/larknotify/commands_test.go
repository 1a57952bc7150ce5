package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRenderCommandOutputsCardJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t,
		"render",
		"--title", "Deploy Complete",
		"--status", "success",
		"--metadata", "Environment=prod",
		"--markdown", "All services healthy",
		"--pretty",
	)
	if err != nil {
		t.Fatalf("render returned error: %v (output: %s)", err, out)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("render output is not valid JSON: %v\n%s", err, out)
	}
	if payload["schema"] != "2.0" {
		t.Fatalf("unexpected schema: %v", payload["schema"])
	}
	header := payload["header"].(map[string]any)
	if header["template"] != "green" {
		t.Fatalf("expected green header, got %v", header["template"])
	}
	body := payload["body"].(map[string]any)
	elements := body["elements"].([]any)
	if len(elements) != 2 {
		t.Fatalf("expected 2 body elements, got %d", len(elements))
	}
}

func TestRenderRequiresTitle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, "render")
	if err == nil || !strings.Contains(err.Error(), "--title") {
		t.Fatalf("expected title requirement error, got %v", err)
	}
}

func TestRenderRejectsMalformedMetadata(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, "render", "--title", "T", "--metadata", "novalue")
	if err == nil || !strings.Contains(err.Error(), "key=value") {
		t.Fatalf("expected key=value error, got %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init returned error: %v (output: %s)", err, out)
	}
	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected sample config to exist: %v", err)
	}
	if !strings.Contains(string(raw), "[webhook]") {
		t.Fatalf("unexpected sample contents: %s", raw)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	for _, want := range []string{"card.language: zh", "webhook.url: (unset)", "logging.level: info"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSendDeliversToWebhook(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &captured); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "larknotify.toml")
	body := "[webhook]\nurl = \"" + server.URL + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCommand(t,
		"send",
		"--config", configPath,
		"--title", "Job Failed",
		"--status", "failed",
		"--collapsible", "Error Details=scheduler unavailable",
	)
	if err != nil {
		t.Fatalf("send returned error: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "Card sent") {
		t.Fatalf("expected confirmation, got %q", out)
	}
	if captured["msg_type"] != "interactive" {
		t.Fatalf("unexpected msg_type: %v", captured["msg_type"])
	}
	cardPayload := captured["card"].(map[string]any)
	header := cardPayload["header"].(map[string]any)
	if header["template"] != "red" {
		t.Fatalf("expected red header, got %v", header["template"])
	}
}

func TestTestNotifyWithoutWebhookFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "test-notify")
	if err == nil {
		t.Fatal("expected error when webhook is not configured")
	}
	if !strings.Contains(out, "No webhook configured") {
		t.Fatalf("expected guidance message, got %q", out)
	}
}
