package main

import (
	"context"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type model struct {
	width  int
	height int

	store   *EntityStore
	graph   *ConnectionGraph
	vp      Viewport
	drag    *DragSession
	pan     *PanSession
	gateway Gateway
	updates chan tea.Msg

	config *Config
	logger zerolog.Logger
	userID string

	selected    *NodeRef
	showMinimap bool

	errorMessage   string
	successMessage string
	statusSeq      int
}

func newModel(gateway Gateway, updates chan tea.Msg, config *Config, logger zerolog.Logger) *model {
	store := NewEntityStore()
	return &model{
		store:       store,
		graph:       NewConnectionGraph(store),
		vp:          Viewport{Zoom: 1},
		drag:        NewDragSession(),
		pan:         NewPanSession(),
		gateway:     gateway,
		updates:     updates,
		config:      config,
		logger:      logger,
		userID:      config.UserID,
		showMinimap: config.ShowMinimap,
	}
}

type entitiesLoadedMsg struct{ entities []*Entity }

type loadFailedMsg struct{ err error }

type savePositionMsg struct{ write positionWrite }

type saveResultMsg struct {
	what string
	err  error
}

type remoteEntityMsg struct{ entity *Entity }

type entitiesChangedMsg struct{}

type clearStatusMsg struct{ seq int }

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadEntitiesCmd()}
	if m.updates != nil {
		cmds = append(cmds, waitForUpdate(m.updates))
	}
	return tea.Batch(cmds...)
}

func (m *model) loadEntitiesCmd() tea.Cmd {
	gw, user := m.gateway, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entities, err := gw.ListEntities(ctx, user)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return entitiesLoadedMsg{entities: entities}
	}
}

// schedulePositionSave starts the trailing debounce for one drag's
// final position. The write is re-validated against the session's
// sequence when the timer fires.
func (m *model) schedulePositionSave(w positionWrite) tea.Cmd {
	return tea.Tick(saveDebounce, func(time.Time) tea.Msg {
		return savePositionMsg{write: w}
	})
}

func (m *model) savePositionCmd(w positionWrite) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := gw.UpdateEntityPosition(ctx, w.Ref.Kind, w.Ref.ID, w.Pos)
		return saveResultMsg{what: "position", err: err}
	}
}

func (m *model) saveConnectionsCmd(w *connectionWrite) tea.Cmd {
	gw := m.gateway
	ref, targets := w.Ref, w.Targets
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := gw.UpdateEntityConnections(ctx, ref.Kind, ref.ID, targets)
		return saveResultMsg{what: "connection", err: err}
	}
}

func (m *model) setError(msg string) tea.Cmd {
	m.errorMessage = msg
	m.successMessage = ""
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *model) setSuccess(msg string) tea.Cmd {
	m.successMessage = msg
	m.errorMessage = ""
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case entitiesLoadedMsg:
		m.store.Seed(msg.entities)
		m.logger.Info().Int("count", len(msg.entities)).Msg("entities loaded")
		return m, nil

	case loadFailedMsg:
		m.logger.Error().Err(msg.err).Msg("load failed")
		return m, m.setError("couldn't load entities: " + msg.err.Error())

	case savePositionMsg:
		if !m.drag.Due(msg.write) {
			return m, nil
		}
		return m, m.savePositionCmd(msg.write)

	case saveResultMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("what", msg.what).Msg("save failed")
			// Optimistic value stands; no rollback, no retry.
			return m, m.setError(msg.what + " not saved: " + msg.err.Error())
		}
		return m, nil

	case remoteEntityMsg:
		cmd := waitForUpdate(m.updates)
		// Last-write-wins, except the entity under the user's finger:
		// the local drag stays authoritative until it ends.
		if m.drag.Active() && m.drag.Ref() == msg.entity.Ref() {
			return m, cmd
		}
		m.store.Apply(msg.entity)
		return m, cmd

	case entitiesChangedMsg:
		cmd := waitForUpdate(m.updates)
		if m.drag.Active() || m.pan.Active() {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.loadEntitiesCmd())

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.errorMessage = ""
			m.successMessage = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.drag.Cancel()
		m.pan.Cancel()
		return m, tea.Quit

	case "esc":
		m.drag.Cancel()
		m.pan.Cancel()
		m.selected = nil
		return m, nil

	case "c":
		if m.graph.ToggleConnectMode() {
			return m, m.setSuccess("connect mode: pick two cards")
		}
		return m, nil

	case "+", "=":
		m.vp = zoomBy(zoomStep, m.viewportCenter(), m.vp)
		return m, nil

	case "-", "_":
		m.vp = zoomBy(-zoomStep, m.viewportCenter(), m.vp)
		return m, nil

	case "m":
		m.showMinimap = !m.showMinimap
		return m, nil

	case "y":
		return m, m.copySelectedTitle()

	case "p":
		name := m.config.GetSavePath("notemap.png")
		if err := exportPNG(m.store, m.graph, name); err != nil {
			return m, m.setError("export failed: " + err.Error())
		}
		return m, m.setSuccess("exported " + name)

	case "h", "l", "k", "j", "left", "right", "up", "down",
		"H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handlePanKey(key, m.getPanSpeed(key))
		return m, nil
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	screen := Point{X: float64(msg.X) * cellWidth, Y: float64(msg.Y) * cellHeight}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp = zoomBy(zoomStep, m.viewportCenter(), m.vp)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.vp = zoomBy(-zoomStep, m.viewportCenter(), m.vp)
			return m, nil
		case tea.MouseButtonLeft:
			return m.handlePress(msg.X, msg.Y, screen)
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.Update(screen, m.vp, m.store)
		} else if m.pan.Active() {
			m.vp = m.pan.Update(screen, m.vp)
		}
		return m, nil

	case tea.MouseActionRelease:
		var cmd tea.Cmd
		if m.drag.Active() {
			if w, ok := m.drag.End(); ok {
				cmd = m.schedulePositionSave(w)
			}
		}
		m.pan.End()
		return m, cmd
	}
	return m, nil
}

// handlePress routes pointer-down: connect gesture first, then drag
// on a card, then pan on empty canvas.
func (m *model) handlePress(cellX, cellY int, screen Point) (tea.Model, tea.Cmd) {
	if ref, ok := m.entityAt(cellX, cellY); ok {
		sel := ref
		m.selected = &sel
		if w, consumed := m.graph.NodeActivated(ref); consumed {
			if w != nil {
				return m, m.saveConnectionsCmd(w)
			}
			return m, nil
		}
		if !m.pan.Active() {
			m.drag.Begin(ref, screen, m.vp, m.store, m.graph.ConnectMode())
		}
		return m, nil
	}
	m.pan.Begin(screen, m.vp, m.drag)
	return m, nil
}

// entityAt hit-tests terminal cells against card rectangles, topmost
// (last drawn) first.
func (m *model) entityAt(cellX, cellY int) (NodeRef, bool) {
	entities := m.store.All()
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		x, y, w, h := entityCellRect(e, m.vp)
		if cellX >= x && cellX < x+w && cellY >= y && cellY < y+h {
			return e.Ref(), true
		}
	}
	return NodeRef{}, false
}

// entityCellRect projects a card's world footprint into terminal
// cells under the current viewport.
func entityCellRect(e *Entity, vp Viewport) (x, y, w, h int) {
	sp := toScreen(e.Pos(), vp)
	x = int(math.Floor(sp.X / cellWidth))
	y = int(math.Floor(sp.Y / cellHeight))
	w = int(math.Round(entityWidth * vp.Zoom / cellWidth))
	h = int(math.Round(entityHeight * vp.Zoom / cellHeight))
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return x, y, w, h
}

func (m *model) canvasRows() int {
	rows := m.height - 1
	if rows < 1 {
		rows = 24
	}
	return rows
}

func (m *model) canvasCols() int {
	if m.width < 1 {
		return 80
	}
	return m.width
}

// viewportCenter is the zoom anchor, in screen pixels.
func (m *model) viewportCenter() Point {
	return Point{
		X: float64(m.canvasCols()) * cellWidth / 2,
		Y: float64(m.canvasRows()) * cellHeight / 2,
	}
}

func (m *model) View() string {
	cols, rows := m.canvasCols(), m.canvasRows()

	var mm *Minimap
	if m.showMinimap {
		derived := deriveMinimap(m.store, m.graph, m.vp,
			float64(cols)*cellWidth, float64(rows)*cellHeight,
			float64(minimapCols-2)*cellWidth, float64(minimapRows-2)*cellHeight)
		mm = &derived
	}

	canvas := renderCanvas(m.store, m.graph, m.vp, cols, rows, m.selected, mm)
	return canvas + "\n" + m.statusBar()
}

func (m *model) statusBar() string {
	mode := "NORMAL"
	if m.graph.ConnectMode() {
		if m.graph.Pending() != nil {
			mode = "CONNECT *"
		} else {
			mode = "CONNECT"
		}
	}

	info := fmt.Sprintf(" %s | %d%% | %d cards", mode, int(math.Round(m.vp.Zoom*100)), m.store.Len())
	if m.selected != nil {
		if e, ok := m.store.Get(*m.selected); ok {
			info += " | " + e.Title
		}
	}
	switch {
	case m.errorMessage != "":
		return statusStyle.Render(info) + errorStyle.Render(" "+m.errorMessage)
	case m.successMessage != "":
		return statusStyle.Render(info) + successStyle.Render(" "+m.successMessage)
	}
	return statusStyle.Render(info)
}
