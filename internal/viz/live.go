package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/config"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/sim"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

const (
	canvasWidth     = 72
	canvasHeight    = 20
	historyCapacity = 600
	dropMass        = 5000.0
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a live terminal view of one simulation. It is the editing
// collaborator: all structure mutation happens here, between ticks.
type Model struct {
	simulation *sim.Simulation
	preset     config.Preset
	canvas     *Canvas
	history    []float64
	loads      []truss.LoadID
	paused     bool
	status     string
}

func NewModel(preset config.Preset, cfg sim.Config) Model {
	s := sim.New(preset.Build(), cfg)
	s.SetRunning(true)
	return Model{
		simulation: s,
		preset:     preset,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		history:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if !m.paused {
			m.simulation.Tick()
			m.observe()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return *m, tea.Quit
	case " ":
		m.paused = !m.paused
		m.simulation.SetRunning(!m.paused)
	case "r":
		m.simulation.Reset()
		m.history = m.history[:0]
		m.status = "reset"
	case "w":
		m.dropWeight()
	case "x":
		m.liftWeight()
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.switchPreset(idx)
	}
	return *m, nil
}

// dropWeight hangs a point load on the free node nearest midspan.
func (m *Model) dropWeight() {
	st := m.simulation.Structure()
	mid, ok := st.AnchorMidpointX()
	if !ok {
		m.status = "no supports"
		return
	}
	var target *truss.Node
	best := math.Inf(1)
	for _, n := range st.Nodes() {
		if n.Fixed {
			continue
		}
		if d := math.Abs(n.Pos.X - mid); d < best {
			best = d
			target = n
		}
	}
	if target == nil {
		m.status = "no free node"
		return
	}
	id, err := st.AddLoad(target.ID, dropMass)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.loads = append(m.loads, id)
	m.status = fmt.Sprintf("%.0f kg on node %d", dropMass, target.ID)
}

func (m *Model) liftWeight() {
	st := m.simulation.Structure()
	for len(m.loads) > 0 {
		id := m.loads[len(m.loads)-1]
		m.loads = m.loads[:len(m.loads)-1]
		if err := st.RemoveLoad(id); err == nil {
			m.status = "load removed"
			return
		}
	}
	m.status = "no loads"
}

func (m *Model) switchPreset(idx int) {
	for _, p := range config.Presets() {
		if p.Index == idx {
			s := sim.New(p.Build(), m.simulation.Config())
			s.SetRunning(!m.paused)
			m.simulation = s
			m.preset = p
			m.history = m.history[:0]
			m.loads = nil
			m.status = p.Name
			return
		}
	}
}

func (m *Model) observe() {
	peak := 0.0
	st := m.simulation.Structure()
	for _, e := range st.Elements() {
		if r := st.StressRatio(e); r > peak {
			peak = r
		}
	}
	if len(m.history) == historyCapacity {
		m.history = m.history[1:]
	}
	m.history = append(m.history, peak)
}

func (m Model) View() string {
	m.drawStructure()

	left := m.canvas.String()
	right := m.statsPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	graph := ""
	if len(m.history) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("peak stress ratio"),
		))
	}

	help := helpStyle.Render("space pause · r reset · w/x drop/lift weight · 1-3 preset · q quit")

	return headerStyle.Render("bridgesim · "+m.preset.Name) + "\n" + body + "\n" + graph + "\n" + help
}

func (m Model) drawStructure() {
	st := m.simulation.Structure()
	m.canvas.Clear()

	nodes := st.Nodes()
	if len(nodes) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Pos.X)
		maxX = math.Max(maxX, n.Pos.X)
		minY = math.Min(minY, n.Pos.Y)
		maxY = math.Max(maxY, n.Pos.Y)
	}
	m.canvas.SetViewport(minX, minY, maxX, maxY)

	for _, e := range st.Elements() {
		if e.Broken {
			continue
		}
		a, b := st.Endpoints(e)
		m.canvas.DrawWorldLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
	}
	for _, n := range nodes {
		m.canvas.MarkWorld(n.Pos.X, n.Pos.Y)
	}
}

func (m Model) statsPanel() string {
	st := m.simulation.Structure()
	broken, yielded := st.FailureCounts()

	peak := 0.0
	if len(m.history) > 0 {
		peak = m.history[len(m.history)-1]
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("time", fmt.Sprintf("%.2f s", m.simulation.Time()))
	row("total mass", fmt.Sprintf("%.0f kg", st.TotalMass()))
	row("nodes", fmt.Sprintf("%d", len(st.Nodes())))
	row("elements", fmt.Sprintf("%d", len(st.Elements())))
	row("loads", fmt.Sprintf("%d", len(st.Loads())))
	row("peak ratio", ratioStyle(peak).Render(fmt.Sprintf("%.3f", peak)))
	row("yielded", fmt.Sprintf("%d", yielded))
	row("broken", fmt.Sprintf("%d", broken))

	if elapsed, duration := m.simulation.Recorder().Progress(); m.simulation.Recorder().Active() {
		row("recording", fmt.Sprintf("%.1f / %.1f s", elapsed, duration))
	}
	if m.status != "" {
		b.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.worstMembers(st))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// worstMembers lists the most stressed elements, display-clamped to 1.0.
func (m Model) worstMembers(st *truss.Structure) string {
	type ranked struct {
		id    truss.ElementID
		ratio float64
	}
	members := make([]ranked, 0, len(st.Elements()))
	for _, e := range st.Elements() {
		members = append(members, ranked{e.ID, st.StressRatio(e)})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ratio > members[j].ratio })

	var b strings.Builder
	for i, r := range members {
		if i == 4 {
			break
		}
		shown := math.Min(r.ratio, 1.0)
		b.WriteString(ratioStyle(r.ratio).Render(fmt.Sprintf("e%-3d %.2f", r.id, shown)) + "\n")
	}
	return b.String()
}

func ratioStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio >= 1.0:
		return failStyle
	case ratio >= 0.6:
		return warnStyle
	}
	return okStyle
}
