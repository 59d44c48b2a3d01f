package trace

import (
	"io"
	"os"
	"sync"
	"time"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	level   Level
	format  Format
	start   time.Time
	session string
	depth   map[uint64]int // span id -> nesting, for text indentation
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		w:      w,
		level:  level,
		format: format,
		start:  time.Now(),
		depth:  make(map[uint64]int),
	}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	if t.session != "" {
		if ev.Extra == nil {
			ev.Extra = make(map[string]string, 1)
		}
		ev.Extra["session"] = t.session
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	indent := 0
	switch ev.Kind {
	case KindSpanBegin:
		indent = t.depth[ev.ParentID]
		if ev.ParentID != 0 {
			indent++
		}
		t.depth[ev.SpanID] = indent
	case KindSpanEnd:
		indent = t.depth[ev.SpanID]
		delete(t.depth, ev.SpanID)
	default:
		indent = t.depth[ev.ParentID] + 1
	}
	data := FormatEvent(ev, t.format, ev.Time.Sub(t.start), indent)
	// трассировка не должна ломать анализ: ошибки записи игнорируем
	_, _ = t.w.Write(data)
}

func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
