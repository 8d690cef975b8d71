package sim

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/events"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries an event log line for the viewport.
type logMsg struct{ line string }

// snapshotMsg carries the latest ship snapshot.
type snapshotMsg struct{ events.SnapshotRow }

// failureMsg carries a failure log line.
type failureMsg struct{ line string }

// TUIWriter renders the simulation using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cat *catalog.Catalog) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cat), tea.WithAltScreen())
	w.program = p
	go func() {
		_ = p.Start()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements EventWriter.
func (w *TUIWriter) Write(row events.EventRow) error {
	line := fmt.Sprintf("%s[%s]%s %s",
		colorGray, row.Time().Format("15:04:05"), colorReset, row.Message)
	w.program.Send(logMsg{line: line})
	return nil
}

// WriteBatch outputs multiple event rows.
func (w *TUIWriter) WriteBatch(rows []events.EventRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteSnapshot implements SnapshotWriter.
func (w *TUIWriter) WriteSnapshot(row events.SnapshotRow) error {
	w.program.Send(snapshotMsg{SnapshotRow: row})
	return nil
}

// WriteFailure implements FailureWriter.
func (w *TUIWriter) WriteFailure(row events.FailureReportRow) error {
	line := fmt.Sprintf("%sFAILURE%s %s repairs=%d -%.0f cr -%.0f energy",
		colorRed, colorReset, row.Reason, row.RepairCount, row.CreditsPenalty, row.EnergyPenalty)
	w.program.Send(failureMsg{line: line})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	cat        *catalog.Catalog
	market     table.Model
	vp         viewport.Model
	logs       []string
	failures   []string
	snapshot   events.SnapshotRow
	wrap       bool
	autoscroll bool
	height     int
}

func newTUIModel(cat *catalog.Catalog) tuiModel {
	cols := []table.Column{
		{Title: "Product", Width: 16},
		{Title: "Price", Width: 10},
		{Title: "Demand", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(len(cat.Products)+1))
	return tuiModel{
		cat:        cat,
		market:     t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.market.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m, nil
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > 1000 {
			m.logs = m.logs[len(m.logs)-1000:]
		}
		m.refreshViewport()
	case failureMsg:
		m.failures = append(m.failures, msg.line)
		if len(m.failures) > 50 {
			m.failures = m.failures[len(m.failures)-50:]
		}
	case snapshotMsg:
		m.snapshot = msg.SnapshotRow
		m.refreshMarket()
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	headerHeight := lipgloss.Height(m.renderHeader())
	bottomHeight := lipgloss.Height(m.renderBottom())
	h := m.height - headerHeight - bottomHeight - 3
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshMarket() {
	ids := make([]string, 0, len(m.snapshot.Market))
	for id := range m.snapshot.Market {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		q := m.snapshot.Market[id]
		rows = append(rows, table.Row{
			m.cat.ResourceLabel(id),
			fmt.Sprintf("%.2f", q.Price),
			fmt.Sprintf("%.3f", q.Demand),
		})
	}
	m.market.SetRows(rows)
}

func (m tuiModel) View() string {
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.renderHeader(),
		divider,
		m.vp.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	snap := m.snapshot
	status := fmt.Sprintf("sector=%s credits=%.2f energy=%.1f/%.1f charging=%t targets=%d failures=%d",
		snap.SectorID, snap.Credits, snap.Energy, snap.MaxEnergy, snap.Charging, snap.WorldRemaining, snap.FailureCount)
	title := lipgloss.NewStyle().Bold(true).Render("astromine")
	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+status, m.market.View())
}

func (m tuiModel) renderBottom() string {
	crewParts := make([]string, 0, len(m.snapshot.Crew))
	for _, c := range m.snapshot.Crew {
		color := colorGreen
		if c.Status != "normal" {
			color = colorRed
		}
		crewParts = append(crewParts, fmt.Sprintf("%s%s:%s%s", color, c.Name, c.Status, colorReset))
	}
	crewLine := "crew: none"
	if len(crewParts) > 0 {
		crewLine = "crew: " + strings.Join(crewParts, " ")
	}
	lines := []string{crewLine}
	if n := len(m.failures); n > 0 {
		lines = append(lines, m.failures[n-1])
	}
	lines = append(lines, "q quit | w wrap | s autoscroll")
	return strings.Join(lines, "\n")
}
