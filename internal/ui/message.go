package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgItemsFetched MsgKind = iota
	MsgProgressUpdate
	MsgProgressDone
)

type itemsFetched struct {
	items []models.Item
	err   error
}

// itemsFetchedMsg is the constructor for [MsgItemsFetched]
func itemsFetchedMsg(items []models.Item, err error) Msg {
	return Msg{kind: MsgItemsFetched, data: itemsFetched{items, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// progressDoneMsg is the constructor for [MsgProgressDone]
func progressDoneMsg() Msg {
	return Msg{kind: MsgProgressDone}
}
