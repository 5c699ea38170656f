package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bchelf/platlab/internal/preset"
	"github.com/bchelf/platlab/internal/scenario"
	"github.com/bchelf/platlab/internal/sim"
	"github.com/bchelf/platlab/internal/storage"
)

// hudRows is the number of screen rows reserved above the world view.
const hudRows = 2

// flashFrames is how long an event flash stays in the HUD.
const flashFrames = 45

// Model is the Bubble Tea model for the interactive physics sandbox.
// It owns one (params, world, state) triple and steps it exactly once
// per tick; everything else is presentation.
type Model struct {
	params sim.Params
	world  []sim.Rect
	state  sim.State
	spawn  sim.State

	screen *Screen
	store  *storage.Store
	keymap *KeyMapper
	held   HeldButtons

	presetNames []string
	presetIdx   int

	tick       int
	paused     bool
	quitting   bool
	flash      string
	flashTicks int

	traceHash uint64
	jumped    int
	landed    int
	bonked    int

	worldH float32
}

// NewModel creates a sandbox model over the given simulation inputs.
func NewModel(params sim.Params, world []sim.Rect, spawn sim.State, store *storage.Store, width, height int) Model {
	names := make([]string, 0, len(preset.List()))
	for _, info := range preset.List() {
		names = append(names, info.Name)
	}

	return Model{
		params:      params,
		world:       world,
		state:       spawn,
		spawn:       spawn,
		screen:      NewScreen(width, height),
		store:       store,
		keymap:      NewKeyMapper(),
		presetNames: names,
		traceHash:   scenario.HashSeed(),
		worldH:      worldHeight(world),
	}
}

// worldHeight finds the lowest collider bottom, the natural view extent.
func worldHeight(world []sim.Rect) float32 {
	var h float32 = 1
	for _, r := range world {
		if bottom := r.Y + r.H; bottom > h {
			h = bottom
		}
	}
	return h
}

// Init starts the fixed tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and advances the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buttons, control := m.keymap.MapKey(msg)

	switch control {
	case ControlQuit:
		m.saveSessionRun()
		m.quitting = true
		return m, tea.Quit
	case ControlPause:
		m.paused = !m.paused
		m.held.Clear()
		return m, nil
	case ControlRespawn:
		m.state = m.spawn
		m.setFlash("RESPAWN")
		return m, nil
	case ControlNextPreset:
		m.cyclePreset()
		return m, nil
	}

	if buttons != 0 && !m.paused {
		m.held.Press(buttons)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd()
	}

	buttons := m.held.Tick()
	ev := sim.Step(&m.params, m.world, &m.state, buttons)
	m.tick++

	m.jumped += int(ev.Jumped)
	m.landed += int(ev.Landed)
	m.bonked += int(ev.Bonked)
	m.traceHash = scenario.FoldFrame(m.traceHash,
		m.state.X, m.state.Y, m.state.VX, m.state.VY, m.state.Grounded)

	switch {
	case ev.Bonked != 0:
		m.setFlash("BONK")
	case ev.Jumped != 0:
		m.setFlash("JUMP")
	case ev.Landed != 0:
		m.setFlash("LAND")
	}
	if m.flashTicks > 0 {
		m.flashTicks--
	}

	return m, tickCmd()
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashTicks = flashFrames
}

// cyclePreset swaps in the next tuning while keeping the current world
// extent and wrap mode; the preset is a feel, not a level.
func (m *Model) cyclePreset() {
	if len(m.presetNames) == 0 {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.presetNames)
	name := m.presetNames[m.presetIdx]

	p, err := preset.Get(name)
	if err != nil {
		return
	}
	p.WorldW = m.params.WorldW
	p.WorldWrapMode = m.params.WorldWrapMode
	m.params = p
	m.setFlash("PRESET " + name)
}

// saveSessionRun archives the sandbox session on exit, best-effort.
func (m *Model) saveSessionRun() {
	if m.store == nil || m.tick == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, quitting regardless
	m.store.SaveRun(storage.RunRecord{
		Scenario:  "sandbox",
		Frames:    m.tick,
		TraceHash: m.traceHash,
		FinalX:    float64(m.state.X),
		FinalY:    float64(m.state.Y),
		Jumped:    m.jumped,
		Landed:    m.landed,
		Bonked:    m.bonked,
	})
}

// View renders the HUD and the world viewport.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.drawHUD()
	m.drawWorld()

	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED - press p to resume ", ColorOrange)
	}

	return RenderScreen(m.screen)
}

func (m Model) drawHUD() {
	name := "custom"
	if len(m.presetNames) > 0 {
		name = m.presetNames[m.presetIdx]
	}
	status := fmt.Sprintf("platlab  [%s]  x=%.0f y=%.0f  vx=%.0f vy=%.0f  grounded=%d",
		name, m.state.X, m.state.Y, m.state.VX, m.state.VY, m.state.Grounded)
	m.screen.DrawText(1, 0, status, ColorDefault)

	help := "move a/d  run A/D  jump space  fast-fall s  preset tab  respawn r  quit q"
	m.screen.DrawText(1, 1, help, ColorGray)

	if m.flashTicks > 0 && m.flash != "" {
		m.screen.DrawText(m.screen.Width()-len(m.flash)-2, 0, m.flash, ColorYellow)
	}
}

// drawWorld projects world pixels onto the cell grid below the HUD.
func (m Model) drawWorld() {
	viewW := m.screen.Width()
	viewH := m.screen.Height() - hudRows
	if viewW <= 0 || viewH <= 0 {
		return
	}

	worldW := m.params.WorldW
	if worldW < 1 {
		worldW = 1
	}
	scaleX := float32(viewW) / worldW
	scaleY := float32(viewH) / m.worldH

	toCell := func(x, y float32) (int, int) {
		return int(x * scaleX), hudRows + int(y*scaleY)
	}

	for _, r := range m.world {
		cx, cy := toCell(r.X, r.Y)
		cx2, cy2 := toCell(r.X+r.W, r.Y+r.H)
		m.screen.FillRect(cx, cy, maxInt(cx2-cx, 1), maxInt(cy2-cy, 1), '█', ColorGray)
	}

	px, py := toCell(m.state.X, m.state.Y)
	px2, py2 := toCell(m.state.X+m.state.W, m.state.Y+m.state.H)
	m.screen.FillRect(px, py, maxInt(px2-px, 1), maxInt(py2-py, 1), '█', ColorYellow)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the interactive sandbox in the current terminal.
func Run(params sim.Params, world []sim.Rect, spawn sim.State, store *storage.Store, width, height int) error {
	model := NewModel(params, world, spawn, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
