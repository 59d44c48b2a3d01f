package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"veryl/internal/analyzer"
	"veryl/internal/driver"
	"veryl/internal/ui"
)

// runCheckWithUI runs Check while a Bubble Tea progress view renders on stderr.
func runCheckWithUI(ctx context.Context, req driver.Request) (*driver.Result, error) {
	md, files, err := driver.ResolveInputs(req)
	if err != nil {
		return nil, err
	}
	title := "veryl check"
	if md != nil {
		title = fmt.Sprintf("veryl check %s", md.Name)
	}

	events := make(chan analyzer.Event, 256)
	req.Progress = analyzer.ChannelSink{Ch: events}

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))

	type outcome struct {
		res *driver.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := driver.Check(ctx, req)
		close(events)
		done <- outcome{res: res, err: err}
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "progress UI failed: %v\n", err)
	}
	// UI мог выйти раньше: вычитываем остаток, чтобы анализ не встал
	for range events {
	}
	out := <-done
	return out.res, out.err
}
