package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/hkg-cli/internal/app"
	"github.com/glabrego/hkg-cli/internal/fetch"
)

type Service interface {
	StartIndex(ctx context.Context, force bool) *fetch.Task[app.Index]
	StartThread(ctx context.Context, threadID string, page int, force bool) *fetch.Task[app.Thread]
}

// StartMsg asks the model to begin its first load.
type StartMsg struct{}

type IndexLoadedMsg struct {
	Seq      int
	Index    app.Index
	Duration time.Duration
	Force    bool
}

type IndexErrorMsg struct {
	Seq      int
	Err      error
	Canceled bool
	Duration time.Duration
}

type ThreadLoadedMsg struct {
	Seq      int
	Thread   app.Thread
	Duration time.Duration
	Force    bool
}

type ThreadErrorMsg struct {
	Seq      int
	ThreadID string
	Page     int
	Err      error
	Canceled bool
	Duration time.Duration
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func StartCmd() tea.Cmd {
	return func() tea.Msg {
		return StartMsg{}
	}
}

// WaitIndexCmd blocks on task and reports its outcome tagged with seq.
func WaitIndexCmd(seq int, force bool, task *fetch.Task[app.Index]) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		index, err := task.Wait()
		duration := time.Since(started)
		if err != nil {
			return IndexErrorMsg{Seq: seq, Err: err, Canceled: task.Canceled(), Duration: duration}
		}
		return IndexLoadedMsg{Seq: seq, Index: index, Duration: duration, Force: force}
	}
}

// WaitThreadCmd blocks on task and reports its outcome tagged with seq.
func WaitThreadCmd(seq int, threadID string, page int, force bool, task *fetch.Task[app.Thread]) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		thread, err := task.Wait()
		duration := time.Since(started)
		if err != nil {
			return ThreadErrorMsg{Seq: seq, ThreadID: threadID, Page: page, Err: err, Canceled: task.Canceled(), Duration: duration}
		}
		return ThreadLoadedMsg{Seq: seq, Thread: thread, Duration: duration, Force: force}
	}
}

func OpenURLCmd(url string, openURL func(string) error, copyURL func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err == nil {
			return OpenURLSuccessMsg{Status: "Opened thread in browser", Opened: true}
		}
		if err := copyURL(url); err == nil {
			return OpenURLSuccessMsg{Status: "Could not open browser; URL copied to clipboard", Opened: false}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("open URL failed and clipboard fallback failed")}
	}
}

func CopyURLCmd(url string, copyURL func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := copyURL(url); err != nil {
			return OpenURLErrorMsg{Err: fmt.Errorf("copy URL: %w", err)}
		}
		return OpenURLSuccessMsg{Status: "Copied thread URL to clipboard", Opened: false}
	}
}
