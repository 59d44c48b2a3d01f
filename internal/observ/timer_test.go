package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("pass1")
	tm.End(idx, "3 files")

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("pass1/files", 2*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	files := r.Phases[1]
	if files.Files != 3 || files.DurationMS != 6 {
		t.Fatalf("folded phase = %+v", files)
	}
	if r.TotalMS != r.Phases[0].DurationMS {
		t.Fatalf("total %v must not include folded phases", r.TotalMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "(3 files, cumulative)") || !strings.Contains(s, "// 3 files") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("End must not create phases")
	}
}
