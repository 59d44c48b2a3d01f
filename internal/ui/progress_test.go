package ui

import (
	"strings"
	"testing"

	"veryl/internal/analyzer"
)

func TestApplyEventTracksPasses(t *testing.T) {
	m := NewProgressModel("check", []string{"a.veryl", "b.veryl"}, nil).(*progressModel)

	m.applyEvent(analyzer.Event{File: "a.veryl", Stage: analyzer.StagePass2, Status: analyzer.StatusWorking})
	if m.items[0].track[2] != analyzer.StatusWorking {
		t.Fatalf("track = %v", m.items[0].track)
	}
	for _, st := range analyzer.Stages {
		status := analyzer.StatusDone
		if st == analyzer.StagePass2 {
			status = analyzer.StatusError
		}
		m.applyEvent(analyzer.Event{File: "a.veryl", Stage: st, Status: status, Diagnostics: 1})
	}
	a := &m.items[0]
	if !a.finished() || !a.failed() || a.diags != len(analyzer.Stages) {
		t.Fatalf("a = %+v", *a)
	}

	m.applyEvent(analyzer.Event{File: "b.veryl", Stage: analyzer.StageParse, Status: analyzer.StatusDone})
	m.applyEvent(analyzer.Event{File: "b.veryl", Stage: analyzer.StagePass1, Status: analyzer.StatusDone})
	if got := m.percent(); got != 0.75 {
		t.Fatalf("percent = %v", got)
	}

	m.applyEvent(analyzer.Event{File: "unknown.veryl", Stage: analyzer.StagePass1, Status: analyzer.StatusWorking})
	m.applyEvent(analyzer.Event{Stage: analyzer.StagePass3, Status: analyzer.StatusWorking})
	if m.current != analyzer.StagePass3 {
		t.Fatalf("current stage = %q", m.current)
	}
	v := m.View()
	for _, want := range []string{"check (checking) 1/2 files", "[++x+]", "[++..]", "4 diag", "b.veryl"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view misses %q:\n%s", want, v)
		}
	}
}

func TestSkippedFileStaysUnfinished(t *testing.T) {
	m := NewProgressModel("check", []string{"bad.veryl"}, nil).(*progressModel)
	m.applyEvent(analyzer.Event{File: "bad.veryl", Stage: analyzer.StageParse, Status: analyzer.StatusError, Diagnostics: 2})
	if m.items[0].finished() || m.percent() != 0.25 {
		t.Fatalf("item = %+v, percent %v", m.items[0], m.percent())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.veryl", 10); got != "src/ver..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
