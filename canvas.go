package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// Paint codes for the cell grid; resolved to styles when a row is
// flushed.
const (
	paintNone = iota
	paintEdge
	paintSelected
	paintPending
	paintMinimap
	paintViewRect
	paintTagBase // + color tag index
)

var paintStyles = map[int]lipgloss.Style{
	paintEdge:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	paintSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	paintPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	paintMinimap:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	paintViewRect: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
}

var tagStyles = [numColorTags]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("105")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
}

type cellGrid struct {
	cols, rows int
	runes      [][]rune
	paint      [][]int
}

func newCellGrid(cols, rows int) *cellGrid {
	g := &cellGrid{cols: cols, rows: rows}
	g.runes = make([][]rune, rows)
	g.paint = make([][]int, rows)
	for y := 0; y < rows; y++ {
		g.runes[y] = make([]rune, cols)
		g.paint[y] = make([]int, cols)
		for x := 0; x < cols; x++ {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune, paint int) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return
	}
	g.runes[y][x] = r
	g.paint[y][x] = paint
}

// flush renders the grid to terminal lines, grouping runs of equal
// paint so styling stays cheap.
func (g *cellGrid) flush() string {
	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		runStart := 0
		for x := 1; x <= g.cols; x++ {
			if x < g.cols && g.paint[y][x] == g.paint[y][runStart] {
				continue
			}
			segment := string(g.runes[y][runStart:x])
			p := g.paint[y][runStart]
			if p == paintNone {
				b.WriteString(segment)
			} else if p >= paintTagBase {
				b.WriteString(tagStyles[(p-paintTagBase)%numColorTags].Render(segment))
			} else {
				b.WriteString(paintStyles[p].Render(segment))
			}
			runStart = x
		}
		if y < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderCanvas draws edges, then cards, then the minimap panel, into
// one frame. Cards overwrite edges so lines appear to run between
// card borders.
func renderCanvas(store *EntityStore, graph *ConnectionGraph, vp Viewport, cols, rows int, selected *NodeRef, mm *Minimap) string {
	g := newCellGrid(cols, rows)

	for _, c := range graph.Connections() {
		drawEdge(g, store, vp, c)
	}
	for _, e := range store.All() {
		drawCard(g, e, vp, selected, graph.Pending())
	}
	if mm != nil {
		drawMinimap(g, mm)
	}
	return g.flush()
}

func drawCard(g *cellGrid, e *Entity, vp Viewport, selected, pending *NodeRef) {
	x, y, w, h := entityCellRect(e, vp)

	paint := paintTagBase + e.ColorTag%numColorTags
	if pending != nil && *pending == e.Ref() {
		paint = paintPending
	} else if selected != nil && *selected == e.Ref() {
		paint = paintSelected
	}

	corner := [4]rune{'┌', '┐', '└', '┘'}
	if e.Kind == KindFolder {
		corner = [4]rune{'╔', '╗', '╚', '╝'}
	}
	g.set(x, y, corner[0], paint)
	g.set(x+w-1, y, corner[1], paint)
	g.set(x, y+h-1, corner[2], paint)
	g.set(x+w-1, y+h-1, corner[3], paint)
	for cx := x + 1; cx < x+w-1; cx++ {
		g.set(cx, y, '─', paint)
		g.set(cx, y+h-1, '─', paint)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		g.set(x, cy, '│', paint)
		g.set(x+w-1, cy, '│', paint)
		for cx := x + 1; cx < x+w-1; cx++ {
			g.set(cx, cy, ' ', paint)
		}
	}

	if h < 3 || w < 4 {
		return
	}
	title := e.Title
	if e.CrossedOut {
		title = "✗ " + title
	}
	runes := []rune(title)
	if len(runes) > w-2 {
		runes = runes[:w-2]
	}
	for i, r := range runes {
		g.set(x+1+i, y+1, r, paint)
	}
}

// drawEdge draws one directed connection from card center to card
// center, with an arrowhead where the line meets the target card.
func drawEdge(g *cellGrid, store *EntityStore, vp Viewport, c Connection) {
	from, ok := store.Get(c.From)
	if !ok {
		return
	}
	to, ok := store.Get(c.To)
	if !ok {
		return
	}
	fx, fy, fw, fh := entityCellRect(from, vp)
	tx, ty, tw, th := entityCellRect(to, vp)

	cells := lineCells(fx+fw/2, fy+fh/2, tx+tw/2, ty+th/2)
	arrowAt := -1
	for i, p := range cells {
		if p.x >= tx && p.x < tx+tw && p.y >= ty && p.y < ty+th {
			arrowAt = i - 1
			break
		}
	}
	for i, p := range cells {
		if i == arrowAt && i > 0 {
			g.set(p.x, p.y, arrowRune(cells[i-1], p), paintEdge)
			continue
		}
		g.set(p.x, p.y, edgeRune(cells, i), paintEdge)
	}
}

type cell struct{ x, y int }

func lineCells(x0, y0, x1, y1 int) []cell {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	var out []cell
	for {
		out = append(out, cell{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func edgeRune(cells []cell, i int) rune {
	var prev, next cell
	if i > 0 {
		prev = cells[i-1]
	} else {
		prev = cells[i]
	}
	if i < len(cells)-1 {
		next = cells[i+1]
	} else {
		next = cells[i]
	}
	dx := next.x - prev.x
	dy := next.y - prev.y
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func arrowRune(prev, at cell) rune {
	dx := at.x - prev.x
	dy := at.y - prev.y
	switch {
	case abs(dx) >= abs(dy) && dx > 0:
		return '▶'
	case abs(dx) >= abs(dy) && dx < 0:
		return '◀'
	case dy > 0:
		return '▼'
	default:
		return '▲'
	}
}

// drawMinimap paints the derived minimap into the top-right corner:
// border, entity dots, edges and the viewport rectangle, all shifted
// so the bounds origin sits at the panel origin.
func drawMinimap(g *cellGrid, mm *Minimap) {
	px := g.cols - minimapCols
	py := 0
	if px < 0 {
		return
	}

	g.set(px, py, '┌', paintMinimap)
	g.set(px+minimapCols-1, py, '┐', paintMinimap)
	g.set(px, py+minimapRows-1, '└', paintMinimap)
	g.set(px+minimapCols-1, py+minimapRows-1, '┘', paintMinimap)
	for x := px + 1; x < px+minimapCols-1; x++ {
		g.set(x, py, '─', paintMinimap)
		g.set(x, py+minimapRows-1, '─', paintMinimap)
	}
	for y := py + 1; y < py+minimapRows-1; y++ {
		g.set(px, y, '│', paintMinimap)
		g.set(px+minimapCols-1, y, '│', paintMinimap)
		for x := px + 1; x < px+minimapCols-1; x++ {
			g.set(x, y, ' ', paintMinimap)
		}
	}

	shiftX := mm.Bounds.MinX * mm.Scale
	shiftY := mm.Bounds.MinY * mm.Scale
	toCell := func(p Point) (int, int, bool) {
		cx := int((p.X - shiftX) / cellWidth)
		cy := int((p.Y - shiftY) / cellHeight)
		if cx < 0 || cx > minimapCols-3 || cy < 0 || cy > minimapRows-3 {
			return 0, 0, false
		}
		return px + 1 + cx, py + 1 + cy, true
	}

	for _, e := range mm.Edges {
		a, okA := pointInPanel(e[0], shiftX, shiftY)
		b, okB := pointInPanel(e[1], shiftX, shiftY)
		if !okA || !okB {
			continue
		}
		for _, c := range lineCells(a.x, a.y, b.x, b.y) {
			g.set(px+1+c.x, py+1+c.y, '·', paintMinimap)
		}
	}
	for _, d := range mm.Dots {
		if cx, cy, ok := toCell(d.Pos); ok {
			r := '▫'
			if d.Kind == KindFolder {
				r = '▪'
			}
			g.set(cx, cy, r, paintMinimap)
		}
	}

	// Viewport indicator, clamped to the panel interior.
	vx0 := int(math.Floor((mm.Viewport.X - shiftX) / cellWidth))
	vy0 := int(math.Floor((mm.Viewport.Y - shiftY) / cellHeight))
	vx1 := int(math.Ceil((mm.Viewport.X + mm.Viewport.W - shiftX) / cellWidth))
	vy1 := int(math.Ceil((mm.Viewport.Y + mm.Viewport.H - shiftY) / cellHeight))
	vx0 = clampInt(vx0, 0, minimapCols-3)
	vy0 = clampInt(vy0, 0, minimapRows-3)
	vx1 = clampInt(vx1, 0, minimapCols-3)
	vy1 = clampInt(vy1, 0, minimapRows-3)
	for x := vx0; x <= vx1; x++ {
		g.set(px+1+x, py+1+vy0, '─', paintViewRect)
		g.set(px+1+x, py+1+vy1, '─', paintViewRect)
	}
	for y := vy0; y <= vy1; y++ {
		g.set(px+1+vx0, py+1+y, '│', paintViewRect)
		g.set(px+1+vx1, py+1+y, '│', paintViewRect)
	}
}

func pointInPanel(p Point, shiftX, shiftY float64) (cell, bool) {
	cx := int((p.X - shiftX) / cellWidth)
	cy := int((p.Y - shiftY) / cellHeight)
	if cx < 0 || cx > minimapCols-3 || cy < 0 || cy > minimapRows-3 {
		return cell{}, false
	}
	return cell{cx, cy}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
