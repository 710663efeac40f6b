package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/hkg-cli/internal/app"
	"github.com/glabrego/hkg-cli/internal/builder"
	"github.com/glabrego/hkg-cli/internal/forum"
	"github.com/glabrego/hkg-cli/internal/render/show"
	"github.com/glabrego/hkg-cli/internal/tui/actions"
	"github.com/glabrego/hkg-cli/internal/tui/platform"
	"github.com/glabrego/hkg-cli/internal/tui/state"
	tuitheme "github.com/glabrego/hkg-cli/internal/tui/theme"
	"github.com/glabrego/hkg-cli/internal/tui/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// listChromeRows is header, toolbar, two spacers, message and footer.
	listChromeRows = 6

	statusNotFound = "not found / failed to parse"
	statusCanceled = "Load canceled"
)

type screen int

const (
	screenList screen = iota
	screenThread
)

type clearStatusMsg struct {
	id int
}

// Options seeds a new Model. A non-empty ThreadID opens that thread instead
// of the topic list.
type Options struct {
	ForumTitle string
	Channel    string
	ThreadID   string
	Page       int
}

type Model struct {
	service    actions.Service
	theme      tuitheme.Theme
	forumTitle string
	channel    string

	screen         screen
	topics         []forum.Topic
	indexFromCache bool
	cursor         int
	selectedID     string

	thread   app.Thread
	threadID string
	scroll   state.Scroll

	startThread string
	startPage   int

	seq      int
	inFlight pendingLoad
	loading  bool

	showHelp bool
	width    int
	height   int
	status   string
	statusID int
	err      error

	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
}

func NewModel(service actions.Service, opts Options) Model {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	return Model{
		service:     service,
		theme:       tuitheme.Default(),
		forumTitle:  opts.ForumTitle,
		channel:     opts.Channel,
		startThread: strings.TrimSpace(opts.ThreadID),
		startPage:   page,
		openURLFn:   platform.OpenURLInBrowser,
		copyURLFn:   platform.CopyURLToClipboard,
		nowFn:       time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return actions.StartCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		resized := msg.Width != m.width || msg.Height != m.height
		m.width = msg.Width
		m.height = msg.Height
		if resized {
			return m, tea.ClearScreen
		}
		return m, nil
	case actions.StartMsg:
		if m.startThread != "" {
			return m.loadThread(m.startThread, m.startPage, false)
		}
		return m.loadIndex(false)
	case actions.IndexLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.finishLoad()
		m.topics = msg.Index.Topics
		m.indexFromCache = msg.Index.FromCache
		m.restoreSelection()
		m.status = fmt.Sprintf("Loaded %d topics in %dms", len(m.topics), msg.Duration.Milliseconds())
		return m, nil
	case actions.IndexErrorMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.finishLoad()
		if msg.Canceled {
			m.status = statusCanceled
			return m, nil
		}
		if errors.Is(msg.Err, builder.ErrParse) {
			m.status = statusNotFound
			return m, nil
		}
		m.status = ""
		m.err = msg.Err
		return m, nil
	case actions.ThreadLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.finishLoad()
		if msg.Thread.Page.IsZero() {
			m.screen = screenList
			m.status = statusNotFound
			if len(m.topics) == 0 {
				return m.loadIndex(false)
			}
			return m, tea.ClearScreen
		}
		sameThread := m.screen == screenThread && m.threadID == msg.Thread.Page.SourceQuery && m.thread.Page.Page == msg.Thread.Page.Page
		m.thread = msg.Thread
		m.threadID = msg.Thread.Page.SourceQuery
		m.screen = screenThread
		if !(sameThread && msg.Force) {
			m.scroll.Reset()
		}
		m.status = fmt.Sprintf("Loaded page %d/%d in %dms", msg.Thread.Page.Page, msg.Thread.Page.MaxPage, msg.Duration.Milliseconds())
		return m, tea.ClearScreen
	case actions.ThreadErrorMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.finishLoad()
		if msg.Canceled {
			m.status = statusCanceled
			return m, nil
		}
		if errors.Is(msg.Err, builder.ErrParse) {
			m.screen = screenList
			m.status = statusNotFound
			if len(m.topics) == 0 {
				return m.loadIndex(false)
			}
			return m, tea.ClearScreen
		}
		m.status = ""
		m.err = msg.Err
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actions.OpenURLErrorMsg:
		m.status = ""
		m.err = msg.Err
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelInFlight()
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.screen == screenThread {
			return m.updateThreadKeys(msg)
		}
		return m.updateListKeys(msg)
	}

	return m, nil
}

func (m Model) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.cancelCurrentLoad()
	case "up", "k":
		m.moveCursorBy(-1)
	case "down", "j":
		m.moveCursorBy(1)
	case "g", "home":
		m.moveCursorTo(0)
	case "G", "end":
		m.moveCursorTo(len(m.topics) - 1)
	case "pgup":
		m.moveCursorBy(-state.PageStep(m.listHeight(), false))
	case "pgdown":
		m.moveCursorBy(state.PageStep(m.listHeight(), false))
	case "enter":
		if len(m.topics) == 0 {
			return m, nil
		}
		topic := m.topics[m.cursor]
		return m.loadThread(topic.ID, 1, false)
	case "r":
		return m.loadIndex(true)
	}
	return m, nil
}

func (m Model) updateThreadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.loading {
			return m.cancelCurrentLoad()
		}
		return m.backToList()
	case "backspace":
		return m.backToList()
	case "up", "k":
		changed := m.scroll.ScrollUp(1)
		return m.scrolled(changed)
	case "down", "j":
		changed := m.scrollDown(1)
		return m.scrolled(changed)
	case "pgup":
		changed := m.scroll.ScrollUp(m.bodyHeight())
		return m.scrolled(changed)
	case "pgdown", " ":
		changed := m.scrollDown(m.bodyHeight())
		return m.scrolled(changed)
	case "g", "home":
		changed := m.scroll.Offset() > 0
		m.scroll.Reset()
		return m.scrolled(changed)
	case "left", "h":
		return m.turnPage(-1)
	case "right", "l":
		return m.turnPage(1)
	case "r":
		return m.loadThread(m.threadID, m.thread.Page.Page, true)
	case "o":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()
	}
	return m, nil
}

func (m Model) View() string {
	if m.screen == screenThread {
		return m.threadView()
	}

	var b strings.Builder
	b.WriteString(view.ListHeader(m.forumTitle, m.channel, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Toolbar(m.showHelp, false))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.topics) == 0:
		b.WriteString("Loading topics...\n")
	case len(m.topics) == 0:
		b.WriteString("No topics loaded.\n")
	default:
		start, end := state.CenteredWindow(len(m.topics), m.cursor, m.listHeight())
		now := m.nowFn()
		width := m.contentWidth()
		b.WriteString(view.RenderListBody(view.ListRenderInput{
			Topics: m.topics,
			Start:  start,
			End:    end,
			Cursor: m.cursor,
			RenderTopicLine: func(i int, active bool) string {
				return view.RenderTopicLine(view.TopicLineParams{
					Topic:       m.topics[i],
					Now:         now,
					ShowNumbers: true,
					VisiblePos:  i,
					Active:      active,
					Width:       width,
				}, m.theme)
			},
		}))
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(view.ListFooter(m.channel, len(m.topics), m.indexFromCache, m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) threadView() string {
	width, height := m.viewport()
	frame := show.Compose(m.thread.Page, m.forumTitle, "", m.scroll.Offset(), width, height, m.nowFn())
	status := m.messagePanel()
	if m.showHelp {
		status = view.Toolbar(true, true)
	} else if m.err == nil && m.status == "" && !m.loading {
		page := m.thread.Page
		status = view.ThreadFooter(m.threadID, page.Page, page.MaxPage, page.ReplyCount, m.thread.FromCache, m.theme)
	}
	return view.RenderThread(frame, status, m.theme)
}

func (m Model) loadIndex(force bool) (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.cancelInFlight()
	m.seq++
	task := m.service.StartIndex(context.Background(), force)
	m.inFlight = task
	m.loading = true
	m.err = nil
	m.status = "Loading topics..."
	return m, actions.WaitIndexCmd(m.seq, force, task)
}

func (m Model) loadThread(threadID string, page int, force bool) (tea.Model, tea.Cmd) {
	if m.service == nil || threadID == "" {
		return m, nil
	}
	m.cancelInFlight()
	m.seq++
	task := m.service.StartThread(context.Background(), threadID, page, force)
	m.inFlight = task
	m.loading = true
	m.err = nil
	m.status = fmt.Sprintf("Loading thread %s page %d...", threadID, page)
	return m, actions.WaitThreadCmd(m.seq, threadID, page, force, task)
}

// cancelCurrentLoad abandons the load in flight. Its result will carry a
// stale sequence number and be dropped.
func (m Model) cancelCurrentLoad() (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	m.cancelInFlight()
	m.seq++
	m.loading = false
	m.status = statusCanceled
	return m, nil
}

// pendingLoad is the part of a fetch task the model needs to abandon it.
type pendingLoad interface {
	Done() bool
	Cancel() bool
}

func (m *Model) cancelInFlight() {
	if m.inFlight != nil && !m.inFlight.Done() {
		m.inFlight.Cancel()
	}
	m.inFlight = nil
}

func (m *Model) finishLoad() {
	m.loading = false
	m.inFlight = nil
	m.err = nil
}

func (m Model) backToList() (tea.Model, tea.Cmd) {
	m.cancelInFlight()
	if m.loading {
		m.seq++
		m.loading = false
	}
	m.screen = screenList
	m.scroll.Reset()
	if len(m.topics) == 0 {
		return m.loadIndex(false)
	}
	return m, tea.ClearScreen
}

func (m Model) turnPage(delta int) (tea.Model, tea.Cmd) {
	target, ok := state.PageTarget(m.thread.Page, delta)
	if !ok {
		return m, nil
	}
	return m.loadThread(m.threadID, target, false)
}

func (m Model) scrolled(changed bool) (tea.Model, tea.Cmd) {
	if !changed {
		return m, nil
	}
	return m, tea.ClearScreen
}

// scrollDown stops once the last row of the page is at the bottom of the
// body area.
func (m *Model) scrollDown(n int) bool {
	limit := m.maxScrollOffset()
	offset := m.scroll.Offset()
	if offset >= limit {
		return false
	}
	if offset+n > limit {
		n = limit - offset
	}
	return m.scroll.ScrollDown(n)
}

func (m Model) maxScrollOffset() int {
	width, _ := m.viewport()
	total := show.RenderAt(m.thread.Page.Replies, 0, width, 0, m.nowFn()).NextRow
	limit := total - m.bodyHeight()
	if limit < 0 {
		return 0
	}
	return limit
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	url, err := platform.ValidateThreadURL(m.thread.URL)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.status = "Opening thread..."
	return m, actions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	url, err := platform.ValidateThreadURL(m.thread.URL)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, actions.CopyURLCmd(url, m.copyURLFn)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) moveCursorBy(delta int) {
	m.moveCursorTo(m.cursor + delta)
}

func (m *Model) moveCursorTo(cursor int) {
	m.cursor = state.ClampCursor(cursor, len(m.topics))
	if len(m.topics) > 0 {
		m.selectedID = m.topics[m.cursor].ID
	}
}

// restoreSelection keeps the cursor on the same topic across reloads.
func (m *Model) restoreSelection() {
	if idx := state.TopicIndexByID(m.topics, m.selectedID); idx >= 0 {
		m.moveCursorTo(idx)
		return
	}
	m.moveCursorTo(m.cursor)
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	return view.CompactMessage(m.loading, m.err != nil, m.status, warning, m.theme)
}

func (m Model) viewport() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m Model) contentWidth() int {
	width, _ := m.viewport()
	return width
}

func (m Model) bodyHeight() int {
	_, height := m.viewport()
	if h := show.BodyHeight(height); h > 0 {
		return h
	}
	return 1
}

func (m Model) listHeight() int {
	_, height := m.viewport()
	if h := height - listChromeRows; h > 0 {
		return h
	}
	return 1
}
