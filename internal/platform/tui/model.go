package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/editor"
	"github.com/adforge/playable/internal/fpd"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/runtime"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
)

// Model is the Bubble Tea model driving one playable. It owns the frame
// clock and the canvas; the runtime owns the scene machine.
type Model struct {
	rt     *runtime.Runtime
	canvas *core.Canvas
	keymap *KeyMapper

	// editorSrv is optional: when set, editor patches are pumped into the
	// update loop and scene changes are mirrored back.
	editorSrv *editor.Server

	lastScene scene.ID
	quitting  bool
}

// NewModel creates the model for a composed runtime.
func NewModel(rt *runtime.Runtime, editorSrv *editor.Server) Model {
	cfg := rt.Env().Runtime
	if editorSrv != nil {
		rt.ObserveTracking(editorSrv.BroadcastTracking)
	}
	return Model{
		rt:        rt,
		canvas:    core.NewCanvas(cfg.CanvasW, cfg.CanvasH),
		keymap:    NewKeyMapper(),
		editorSrv: editorSrv,
	}
}

// Init boots the playable and starts the frame clock.
func (m Model) Init() tea.Cmd {
	m.rt.Start()
	cmds := []tea.Cmd{tickCmd(m.rt.Env().Runtime.TickRate)}
	if m.editorSrv != nil {
		cmds = append(cmds, waitForPatch(m.editorSrv.Patches()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case PatchMsg:
		m.rt.ApplyPatch(patch.Message(msg))
		return m, waitForPatch(m.editorSrv.Patches())
	}

	return m, nil
}

// handleKey routes keyboard input. On the data-capture email screen, raw
// keys feed the text field directly; everywhere else keys map to semantic
// actions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if form, dc := m.emailForm(); form != nil {
		if msg.String() == "esc" {
			m.rt.HandleInput(core.ActionBack)
			return m, nil
		}
		if form.HandleKey(msg) {
			dc.NotifyKeyHandled()
		}
		return m, nil
	}

	action, isQuit := m.keymap.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.rt.HandleInput(action)
	}
	return m, nil
}

// emailForm returns the live capture form when the active scene is the data
// capture on its email screen.
func (m Model) emailForm() (*fpd.Form, *scenes.DataCaptureScene) {
	dc, ok := m.rt.Active().(*scenes.DataCaptureScene)
	if !ok {
		return nil, nil
	}
	form := dc.Form()
	if form == nil || form.Screen() != fpd.ScreenEmail {
		return nil, nil
	}
	return form, dc
}

// handleTick advances the runtime by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	rate := m.rt.Env().Runtime.TickRate
	m.rt.Tick(time.Second / time.Duration(rate))

	if m.editorSrv != nil {
		if active := m.rt.ActiveID(); active != m.lastScene {
			m.lastScene = active
			m.editorSrv.BroadcastSceneChanged(string(active))
		}
	}
	return m, tickCmd(rate)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.canvas.Clear()
	m.rt.Render(m.canvas)
	return RenderCanvas(m.canvas)
}

// Run starts the Bubble Tea program for a composed runtime.
func Run(rt *runtime.Runtime, editorSrv *editor.Server) error {
	p := tea.NewProgram(
		NewModel(rt, editorSrv),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
