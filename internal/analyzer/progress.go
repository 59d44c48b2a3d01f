package analyzer

import "time"

// Stage names one step of the analysis of a file.
type Stage string

const (
	StageParse Stage = "parse"
	StagePass1 Stage = "pass1"
	StagePass2 Stage = "pass2"
	StagePass3 Stage = "pass3"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageParse, StagePass1, StagePass2, StagePass3}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error" // the stage produced error diagnostics
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
	Elapsed     time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: pass 1 reports from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
