package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lox/internal/driver"
	"lox/internal/source"
	"lox/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.CheckOptions) (*source.FileSet, []driver.CheckResult, error) {
	events := make(chan driver.CheckEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqOpts := opts
		reqOpts.Observer = func(ev driver.CheckEvent) { events <- ev }
		fs, results, err := driver.Check(ctx, files, reqOpts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог закрыться раньше (ctrl+c): дочитываем события, чтобы воркеры не зависли
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err == nil {
		outcome.err = uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
