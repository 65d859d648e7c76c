package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"antsim/internal/config"
	"antsim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stateMsg carries a per-tick state update.
type stateMsg struct{ telemetry.ColonyStateRow }

// eventMsg carries a formatted event log line.
type eventMsg struct{ line string }

// statsMsg carries a closed stats window.
type statsMsg struct{ telemetry.WindowStats }

const maxEventLines = 1000

// TUIWriter renders the simulation using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.SimulationConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row telemetry.ColonyStateRow) error {
	w.program.Send(stateMsg{row})
	return nil
}

// WriteStates outputs multiple state rows.
func (w *TUIWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(ev telemetry.SimEventRow) error {
	col, ok := eventColors[ev.Type]
	if !ok {
		col = colorGray
	}
	line := fmt.Sprintf("%s[%s]%s %s%s%s entity=%s detail=%s pos=(%.1f,%.1f) value=%.1f",
		colorGray, ev.Timestamp.Format(time.RFC3339), colorReset,
		col, ev.Type, colorReset,
		ev.EntityID, ev.Detail, ev.X, ev.Y, ev.Value)
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple events.
func (w *TUIWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	for _, ev := range rows {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteStats implements StatsWriter.
func (w *TUIWriter) WriteStats(ws telemetry.WindowStats) error {
	w.program.Send(statsMsg{ws})
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
	cfg        *config.SimulationConfig
	table      table.Model
	vp         viewport.Model
	logs       []string
	state      telemetry.ColonyStateRow
	stats      telemetry.WindowStats
	haveStats  bool
	wrap       bool
	autoscroll bool
	help       bool
	height     int
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	cols := []table.Column{
		{Title: "Metric", Width: 16},
		{Title: "Value", Width: 14},
		{Title: "Metric", Width: 16},
		{Title: "Value", Width: 14},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(5))
	return tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
			}
			return m, nil
		}
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
		case "h", "?":
			m.help = true
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
			}
		}
		return m, nil
	case stateMsg:
		m.state = msg.ColonyStateRow
		m.table.SetRows(m.stateRows())
	case eventMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxEventLines {
			m.logs = m.logs[len(m.logs)-maxEventLines:]
		}
		m.refreshViewport()
	case statsMsg:
		m.stats = msg.WindowStats
		m.haveStats = true
	}
	return m, nil
}

func (m tuiModel) stateRows() []table.Row {
	s := m.state
	return []table.Row{
		{"Tick", fmt.Sprintf("%d", s.Tick), "Sim Time", fmt.Sprintf("%.0fs", s.SimTime)},
		{"Ants", fmt.Sprintf("%d", s.Population), "Storage", fmt.Sprintf("%.1f", s.Storage)},
		{"Brood (e/l/p)", fmt.Sprintf("%d/%d/%d", s.Eggs, s.Larvae, s.Pupae), "Generation", fmt.Sprintf("%d", s.Generation)},
		{"Deaths", fmt.Sprintf("%d", s.Deaths), "Termites", fmt.Sprintf("%d", s.Termites)},
		{"Food Nodes", fmt.Sprintf("%d", s.FoodNodes), "Pheromones", fmt.Sprintf("%d", s.Pheromones)},
	}
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	tableHeight := lipgloss.Height(m.table.View())
	h := m.height - tableHeight - bottomHeight - 3
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

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.table.View(),
		divider,
		"Events:",
		m.vp.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderBottom() string {
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	wrapIndicator := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	scrollIndicator := lipgloss.NewStyle().Foreground(scrollColor).Render("●")

	weatherColor := colorGreen
	if m.state.Weather == "rain" {
		weatherColor = colorBlue
	}
	line := fmt.Sprintf("%sweather=%s%s colony=%s | Wrap %s | Scroll %s | h help | q quit",
		weatherColor, m.state.Weather, colorReset, m.state.ColonyID, wrapIndicator, scrollIndicator)
	if m.haveStats {
		stats := fmt.Sprintf("%sWINDOW%s end=%.0fs births=%d deaths=%d depletions=%d raids=%d energy_p50=%.1f",
			colorBlue, colorReset, m.stats.WindowEnd, m.stats.Births, m.stats.Deaths,
			m.stats.Depletions, m.stats.Raids, m.stats.EnergyP50)
		return stats + "\n" + line
	}
	return line
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" w  toggle wrap for event log",
		" s  toggle auto-scroll",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
