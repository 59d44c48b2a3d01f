package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"veryl/internal/analyzer"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type progressModel struct {
	title   string
	events  <-chan analyzer.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	current analyzer.Stage // стадия всего прогона, пусто до первого события
	width   int
	done    bool
}

// fileItem is one source file; track holds the status of every stage in
// analyzer.Stages order.
type fileItem struct {
	path  string
	track []analyzer.Status
	diags int
}

type eventMsg analyzer.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file pass
// progress. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan analyzer.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleRunning

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, 0, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.index[file] = len(m.items)
		m.items = append(m.items, newFileItem(file))
	}
	return m
}

func newFileItem(path string) fileItem {
	track := make([]analyzer.Status, len(analyzer.Stages))
	for i := range track {
		track[i] = analyzer.StatusQueued
	}
	return fileItem{path: path, track: track}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(analyzer.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent records ev. Events without a file move the run-wide stage.
func (m *progressModel) applyEvent(ev analyzer.Event) tea.Cmd {
	pos := stagePos(ev.Stage)
	if pos < 0 {
		return nil
	}
	if ev.File == "" {
		if ev.Status == analyzer.StatusWorking {
			m.current = ev.Stage
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.track[pos] = ev.Status
	if ev.Status != analyzer.StatusWorking {
		item.diags += ev.Diagnostics
	}
	return m.prog.SetPercent(m.percent())
}

func stagePos(s analyzer.Stage) int {
	for i, st := range analyzer.Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// completed counts stages of the file that have finished.
func (it *fileItem) completed() int {
	n := 0
	for _, st := range it.track {
		if st == analyzer.StatusDone || st == analyzer.StatusError {
			n++
		}
	}
	return n
}

func (it *fileItem) failed() bool {
	for _, st := range it.track {
		if st == analyzer.StatusError {
			return true
		}
	}
	return false
}

func (it *fileItem) finished() bool { return it.completed() == len(it.track) }

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	stages := float64(len(analyzer.Stages))
	total := 0.0
	for i := range m.items {
		total += float64(m.items[i].completed()) / stages
	}
	return total / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	finished := 0
	for i := range m.items {
		if m.items[i].finished() {
			finished++
		}
	}
	header := m.title
	if label := stageLabel(m.current); label != "" && !m.done {
		header += " (" + label + ")"
	}
	header += fmt.Sprintf(" %d/%d files", finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(header))
	b.WriteString("\n\n")

	trackWidth := len(analyzer.Stages) + 2
	nameWidth := max(m.width-trackWidth-14, 20)
	for i := range m.items {
		it := &m.items[i]
		fmt.Fprintf(&b, "  %s %s %s\n", m.renderTrack(it), renderDiags(it), truncate(it.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// renderTrack draws one glyph per stage: parse, declare, resolve, check.
func (m *progressModel) renderTrack(it *fileItem) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, st := range it.track {
		switch st {
		case analyzer.StatusDone:
			b.WriteString(styleOK.Render("+"))
		case analyzer.StatusError:
			b.WriteString(styleErr.Render("x"))
		case analyzer.StatusWorking:
			b.WriteString(styleRunning.Render("*"))
		default:
			b.WriteString(styleIdle.Render("."))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func renderDiags(it *fileItem) string {
	cell := fmt.Sprintf("%4d diag", it.diags)
	switch {
	case it.failed():
		return styleErr.Render(cell)
	case it.diags == 0:
		return styleIdle.Render(cell)
	}
	return styleOK.Render(cell)
}

func stageLabel(stage analyzer.Stage) string {
	switch stage {
	case analyzer.StageParse:
		return "parsing"
	case analyzer.StagePass1:
		return "declaring"
	case analyzer.StagePass2:
		return "resolving"
	case analyzer.StagePass3:
		return "checking"
	}
	return ""
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
