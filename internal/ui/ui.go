package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/network"
	"github.com/wanderwise/wander/internal/repositories"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GuideListView ViewState = iota
	GuideDetailView
)

// Model represents the TUI application state.
type Model struct {
	view       ViewState
	guides     *repositories.GuideRepository
	monitor    *network.Monitor
	width      int
	height     int
	guideList  list.Model
	listReady  bool
	pinnedOnly bool
	selected   *models.Guide
	online     bool
	netChan    chan bool
	unsub      func()
	err        error
	help       help.Model
	keys       keyMap
}

type guidesLoadedMsg struct {
	guides []models.Guide
	pinned map[string]bool
}

type pinToggledMsg struct {
	id     string
	pinned bool
	err    error
}

type connectivityMsg bool

// NewModel creates a new TUI model over the guide cache. monitor may be nil
// when connectivity display is not wanted.
func NewModel(guides *repositories.GuideRepository, monitor *network.Monitor) *Model {
	m := &Model{
		view:    GuideListView,
		guides:  guides,
		monitor: monitor,
		help:    help.New(),
		keys:    newKeyMap(),
	}

	if monitor != nil {
		m.online = monitor.Online()
		m.netChan = make(chan bool, 4)
		// Drop transitions when the UI loop is behind; the sampler must
		// never block on a slow consumer.
		m.unsub = monitor.Subscribe(
			func() { m.relay(true) },
			func() { m.relay(false) },
		)
	}

	return m
}

func (m *Model) relay(online bool) {
	select {
	case m.netChan <- online:
	default:
	}
}

// Init loads the guide catalog and begins listening for connectivity changes.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadGuides()}
	if m.netChan != nil {
		cmds = append(cmds, m.waitForConnectivity())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.guideList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GuideListView:
			return m.handleListKeys(msg)
		case GuideDetailView:
			return m.handleDetailKeys(msg)
		}

	case guidesLoadedMsg:
		items := make([]list.Item, 0, len(msg.guides))
		for _, g := range msg.guides {
			if m.pinnedOnly && !msg.pinned[g.ID] {
				continue
			}
			items = append(items, guideItem{guide: g, pinned: msg.pinned[g.ID]})
		}
		m.guideList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.guideList.Title = m.listTitle()
		m.guideList.SetSize(m.width-4, m.height-8)
		m.listReady = true
		return m, nil

	case pinToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.loadGuides()

	case connectivityMsg:
		m.online = bool(msg)
		if m.listReady {
			m.guideList.Title = m.listTitle()
		}
		return m, m.waitForConnectivity()
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case GuideListView:
		return m.renderList()
	case GuideDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

// Close releases the connectivity subscription.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let an active filter prompt consume every key first.
	if m.listReady && m.guideList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "enter":
		if item, ok := m.selectedItem(); ok {
			guide := item.guide
			m.selected = &guide
			m.view = GuideDetailView
		}
		return m, nil
	case "p":
		if item, ok := m.selectedItem(); ok {
			return m, m.togglePin(item.guide, item.pinned)
		}
		return m, nil
	case "o":
		m.pinnedOnly = !m.pinnedOnly
		return m, m.loadGuides()
	}

	return m.updateList(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "esc":
		m.view = GuideListView
		m.selected = nil
		return m, nil
	case "p":
		if m.selected != nil {
			return m, m.togglePin(*m.selected, m.guides.IsPinned(m.selected.ID))
		}
	}
	return m, nil
}

func (m *Model) selectedItem() (guideItem, bool) {
	if !m.listReady {
		return guideItem{}, false
	}
	item, ok := m.guideList.SelectedItem().(guideItem)
	return item, ok
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listReady || m.view != GuideListView {
		return m, nil
	}
	var cmd tea.Cmd
	m.guideList, cmd = m.guideList.Update(msg)
	return m, cmd
}

func (m *Model) listTitle() string {
	title := "Destination Guides"
	if m.pinnedOnly {
		title = "Offline Guides"
	}
	if m.monitor == nil {
		return title
	}
	if m.online {
		return title + " (online)"
	}
	return title + " (offline)"
}

func (m *Model) loadGuides() tea.Cmd {
	return func() tea.Msg {
		guides := m.guides.AllGuides()

		pinned := make(map[string]bool)
		for _, p := range m.guides.Pinned() {
			pinned[p.ID] = true
		}

		return guidesLoadedMsg{guides: guides, pinned: pinned}
	}
}

func (m *Model) togglePin(guide models.Guide, pinned bool) tea.Cmd {
	return func() tea.Msg {
		if pinned {
			err := m.guides.Unpin(guide.ID)
			return pinToggledMsg{id: guide.ID, pinned: false, err: err}
		}
		_, err := m.guides.PinForOffline(guide)
		return pinToggledMsg{id: guide.ID, pinned: true, err: err}
	}
}

func (m *Model) waitForConnectivity() tea.Cmd {
	return func() tea.Msg {
		return connectivityMsg(<-m.netChan)
	}
}

func (m *Model) renderList() string {
	if !m.listReady {
		return "Loading guides..."
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.pin, m.keys.offline, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.guideList.View(), helpView)
}

func (m *Model) renderDetail() string {
	g := m.selected
	if g == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("%s, %s", g.Destination, g.Country)))
	b.WriteString("\n\n")
	b.WriteString(g.Description + "\n\n")

	if m.guides.IsPinned(g.ID) {
		b.WriteString(styles.ok.Render("● Saved for offline") + "\n\n")
	}

	b.WriteString(fmt.Sprintf("Best time to visit: %s\n", g.BestTimeToVisit))
	b.WriteString(fmt.Sprintf("Language: %s\n", g.Language))
	b.WriteString(fmt.Sprintf("Currency: %s\n", g.Currency))

	if len(g.MainAttractions) > 0 {
		b.WriteString("\nAttractions: " + strings.Join(g.MainAttractions, ", ") + "\n")
	}
	if len(g.LocalCuisine) > 0 {
		b.WriteString("Cuisine: " + strings.Join(g.LocalCuisine, ", ") + "\n")
	}
	if g.TravelTips != "" {
		b.WriteString("\n" + styles.warn.Render("Tip: "+g.TravelTips) + "\n")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.pin, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))

	return b.String()
}
