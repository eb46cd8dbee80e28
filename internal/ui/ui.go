package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/shared"
	"github.com/glyn/stream-inspector/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ItemListView
	DetailView
)

// ItemFetcher loads the playlist items in playlist order. [tasks.PlaylistManager] satisfies it.
type ItemFetcher interface {
	Items(ctx context.Context) ([]models.Item, error)
	PlaylistID() string
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	fetcher      ItemFetcher
	maxStreamed  int
	width        int
	height       int
	itemList     list.Model
	listReady    bool
	decisions    []models.Decision
	selected     *decisionItem
	removalsOnly bool
	progressChan <-chan tasks.ProgressUpdate
	loaded       chan struct{}
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. progress should be the channel the fetcher reports on, or nil.
func NewModel(ctx context.Context, fetcher ItemFetcher, maxStreamed int, progress <-chan tasks.ProgressUpdate) *Model {
	return &Model{
		ctx:          ctx,
		view:         LoadingView,
		fetcher:      fetcher,
		maxStreamed:  maxStreamed,
		progressChan: progress,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts fetching the playlist.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.itemList.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case ItemListView:
			return m.handleItemListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == ItemListView && m.listReady {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgItemsFetched:
		data := msg.data.(itemsFetched)
		if data.err != nil {
			m.err = data.err
			m.view = ItemListView
			return m, nil
		}
		m.err = nil
		m.decisions = models.Classify(models.SortItems(data.items), m.maxStreamed)
		m.itemList = list.New(decisionItems(m.decisions, m.removalsOnly), list.NewDefaultDelegate(), 0, 0)
		m.itemList.Title = fmt.Sprintf("Playlist %s", m.fetcher.PlaylistID())
		m.itemList.SetSize(max(m.width-4, 0), max(m.height-8, 0))
		m.listReady = true
		m.view = ItemListView
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgProgressDone:
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ItemListView:
		return m.renderItemList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleItemListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.listReady {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			m.view = LoadingView
			m.err = nil
			return m, m.load()
		}
		return m, nil
	}

	if m.itemList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.view = LoadingView
		m.err = nil
		return m, m.load()
	case key.Matches(msg, m.keys.removals):
		m.removalsOnly = !m.removalsOnly
		return m, m.itemList.SetItems(decisionItems(m.decisions, m.removalsOnly))
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.itemList.SelectedItem().(decisionItem); ok {
			m.selected = &it
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = ItemListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) load() tea.Cmd {
	loaded := make(chan struct{})
	m.loaded = loaded
	m.progress = tasks.ProgressUpdate{}

	fetch := func() tea.Msg {
		defer close(loaded)
		items, err := m.fetcher.Items(m.ctx)
		return itemsFetchedMsg(items, err)
	}
	return tea.Batch(fetch, m.waitForProgress())
}

// waitForProgress relays the next progress update until the current fetch completes.
func (m *Model) waitForProgress() tea.Cmd {
	progress, loaded := m.progressChan, m.loaded
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case update := <-progress:
			return progressUpdateMsg(update)
		case <-loaded:
			return progressDoneMsg()
		case <-m.ctx.Done():
			return progressDoneMsg()
		}
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render(fmt.Sprintf("Fetching playlist %s", m.fetcher.PlaylistID()))

	status := "Listing playlist entries..."
	if m.progress.Total > 0 {
		status = fmt.Sprintf("Fetching video details (%d/%d)", m.progress.Step, m.progress.Total)
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, status, m.progress.Message, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderItemList() string {
	summary := m.summary()
	return fmt.Sprintf("%s\n%s\n\n%s", m.itemList.View(), styles.help.Render(summary), m.help.View(m.keys))
}

func (m *Model) summary() string {
	counts := map[models.Reason]int{}
	for _, d := range m.decisions {
		counts[d.Reason]++
	}

	parts := []string{fmt.Sprintf("%d items", len(m.decisions))}
	for _, r := range []models.Reason{models.ReasonKeep, models.ReasonBlocked, models.ReasonSurplusStreamed, models.ReasonUnscheduled} {
		if counts[r] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[r], r))
		}
	}
	parts = append(parts, fmt.Sprintf("max streamed %d", m.maxStreamed))
	return strings.Join(parts, " • ")
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	d := m.selected.decision
	it := d.Item

	title := styles.title.Render(it.Title)
	rows := []string{
		fmt.Sprintf("Position:   %d", m.selected.position),
		fmt.Sprintf("Video ID:   %s", it.VideoID),
		fmt.Sprintf("Entry ID:   %s", it.EntryID),
		fmt.Sprintf("Tier:       %s", it.Tier()),
		fmt.Sprintf("Scheduled:  %s", shared.FormatTime(it.ScheduledStartTime)),
		fmt.Sprintf("Started:    %s", shared.FormatTime(it.ActualStartTime)),
		fmt.Sprintf("Blocked:    %t", it.Blocked),
		fmt.Sprintf("Decision:   %s", styles.reasonStyle(d.Reason).Render(d.Reason.String())),
	}
	if it.Streamed() && !it.Blocked {
		rows = append(rows, fmt.Sprintf("Streamed #: %d of %d kept", d.StreamedCount, m.maxStreamed))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(rows, "\n"), helpView)
}
