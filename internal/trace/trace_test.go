package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPass, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "check")
	pctx, pass := Start(ctx, ScopePass, "pass1")
	_, file := Start(pctx, ScopeFile, "file:top.veryl")
	file.End("")
	pass.End("2 files")
	run.End("")

	out := buf.String()
	if strings.Contains(out, "file:top.veryl") {
		t.Fatalf("file scope leaked at pass level:\n%s", out)
	}
	if !strings.Contains(out, "  \u2192 pass1") || !strings.Contains(out, "\u2190 pass1 (2 files)") {
		t.Fatalf("pass span missing or not nested:\n%s", out)
	}
}

func TestNDJSONCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelFile, Format: FormatNDJSON, Output: &buf, Session: "abc"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sp := Begin(tr, ScopeFile, "file:a.veryl", 0)
	sp.WithExtra("diagnostics", "3").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind  string            `json:"kind"`
		Extra map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Kind != "end" || ev.Extra["session"] != "abc" || ev.Extra["diagnostics"] != "3" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "pass", "FILE", "handler"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNopSpan(t *testing.T) {
	ctx, sp := Start(context.Background(), ScopeDriver, "x")
	if sp.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatal("nop tracer must not allocate spans")
	}
	if sp.End("") != 0 {
		t.Fatal("nop span has no duration")
	}
}
