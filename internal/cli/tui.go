package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/render/sink"
	"github.com/matzehuels/kintree/pkg/render/styles"
	"github.com/matzehuels/kintree/pkg/tree"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// A terminal cell covers cellWidth x cellHeight screen units, which keeps the
// aspect ratio of a typical monospace font.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
	panCells   = 4
	chromeRows = 2 // status and help lines
)

// =============================================================================
// ViewerModel - Interactive tree browser
// =============================================================================

// layoutMsg carries a recomputed layout after a mode switch.
type layoutMsg struct {
	layout tree.Layout
	err    error
}

// exportMsg reports the outcome of an export.
type exportMsg struct {
	path string
	err  error
}

// ViewerModel is the bubbletea model for browsing a laid-out family. Zoom and
// pan go through a viewport controller; exports capture an off-screen canvas.
type ViewerModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	family *pipeline.Family
	opts   pipeline.Options
	layout tree.Layout

	ctrl   *viewport.Controller
	canvas *sink.Canvas
	style  styles.Style

	cols, rows int
	fitted     bool

	searching bool
	query     string
	matches   filter.Set

	exportDir string
	status    string
	err       error
}

// NewViewerModel creates a viewer showing l. exportDir receives exported files.
func NewViewerModel(ctx context.Context, runner *pipeline.Runner, fam *pipeline.Family, l tree.Layout, opts pipeline.Options, vo viewport.Options, exportDir string) (ViewerModel, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return ViewerModel{}, err
	}
	m := ViewerModel{
		ctx:       ctx,
		runner:    runner,
		family:    fam,
		opts:      opts,
		layout:    l,
		ctrl:      viewport.New(vo, viewport.Size{}),
		style:     style,
		exportDir: exportDir,
	}
	m.ctrl.SetBounds(l.Bounds)
	m.canvas = m.newCanvas()
	return m, nil
}

func (m ViewerModel) newCanvas() *sink.Canvas {
	svgOpts := []sink.SVGOption{sink.WithStyle(m.style)}
	if m.query != "" {
		f := filter.All()
		f.Query = m.query
		svgOpts = append(svgOpts, sink.WithWeights(filter.Weights(m.family.People, f)))
	}
	c := sink.NewCanvas(m.layout, m.ctrl.Size(), svgOpts...)
	c.SetRasterScale(m.opts.Scale)
	return c
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if !m.fitted {
			m.ctrl.FitToScreen()
			m.fitted = true
		}
	case layoutMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.layout = msg.layout
		m.canvas.SetLayout(msg.layout)
		m.ctrl.SetBounds(msg.layout.Bounds)
		m.ctrl.FitToScreen()
		m.status = "mode " + msg.layout.Mode
		m.err = nil
	case exportMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "exported " + msg.path
		m.err = nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m ViewerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := float64(panCells)
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "+", "=":
		m.ctrl.ZoomIn()
	case "-", "_":
		m.ctrl.ZoomOut()
	case "0":
		m.ctrl.ResetZoom()
	case "f":
		m.ctrl.FitToScreen()
	case "left", "h":
		m.ctrl.Pan(step*cellWidth, 0)
	case "right", "l":
		m.ctrl.Pan(-step*cellWidth, 0)
	case "up", "k":
		m.ctrl.Pan(0, step*cellHeight)
	case "down", "j":
		m.ctrl.Pan(0, -step*cellHeight)
	case "m":
		return m, m.relayout()
	case "/":
		m.searching = true
		m.query = ""
	case "e":
		return m, m.export(viewport.FormatSVG)
	case "p":
		return m, m.export(viewport.FormatPNG)
	}
	return m, nil
}

func (m ViewerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.applySearch()
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
		m.applySearch()
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
	}
	return m, nil
}

func (m *ViewerModel) applySearch() {
	m.matches = nil
	if q := strings.TrimSpace(m.query); q != "" {
		m.matches = filter.SearchIDs(m.family.People, q)
		m.status = fmt.Sprintf("%d matches for %q", m.matches.Len(), q)
	} else {
		m.status = ""
	}
	m.canvas = m.newCanvas()
}

func (m *ViewerModel) resize(width, height int) {
	m.cols = width
	m.rows = max(height-chromeRows, 1)
	size := viewport.Size{Width: float64(m.cols) * cellWidth, Height: float64(m.rows) * cellHeight}
	m.ctrl.SetSize(size)
	m.canvas.Resize(size)
}

// relayout switches to the next projection.
func (m ViewerModel) relayout() tea.Cmd {
	mode, err := layout.ParseMode(m.layout.Mode)
	if err != nil {
		mode = layout.Vertical
	}
	opts := m.opts
	opts.Mode = mode.Next().String()
	ctx, runner, fam := m.ctx, m.runner, m.family
	return func() tea.Msg {
		l, err := runner.Layout(ctx, fam, opts)
		return layoutMsg{layout: l, err: err}
	}
}

func (m ViewerModel) export(format viewport.Format) tea.Cmd {
	// The command runs off the update loop, so it exports from a copy of the
	// controller onto a canvas of its own.
	ctrl := *m.ctrl
	ctx, canvas, dir := m.ctx, m.newCanvas(), m.exportDir
	return func() tea.Msg {
		data, err := ctrl.Export(ctx, canvas, format)
		if err != nil {
			return exportMsg{err: err}
		}
		if data == nil {
			return exportMsg{err: fmt.Errorf("nothing to export")}
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", appName, uuid.NewString()[:8], format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportMsg{err: err}
		}
		return exportMsg{path: path}
	}
}

// =============================================================================
// Drawing
// =============================================================================

// ink selects how a drawn cell is styled.
type ink uint8

const (
	inkNone ink = iota
	inkEdge
	inkSpouse
	inkCard
	inkMatch
)

var inkStyles = map[ink]lipgloss.Style{
	inkEdge:   styleInkEdge,
	inkSpouse: styleInkSpouse,
	inkCard:   styleInkCard,
	inkMatch:  styleInkMatch,
}

// cell is one character of the drawn frame.
type cell struct {
	r   rune
	ink ink
}

type grid struct {
	cols, rows int
	cells      []cell
}

func newGrid(cols, rows int) *grid {
	return &grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

func (g *grid) put(col, row int, r rune, k ink) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = cell{r: r, ink: k}
}

func (g *grid) text(col, row int, s string, k ink) {
	for i, r := range []rune(s) {
		g.put(col+i, row, r, k)
	}
}

// String renders the grid, styling runs of equally inked cells together.
func (g *grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		var run strings.Builder
		current := inkNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := inkStyles[current]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			c := g.cells[row*g.cols+col]
			if c.ink != current {
				flush()
				current = c.ink
			}
			if c.ink == inkNone {
				run.WriteRune(' ')
			} else {
				run.WriteRune(c.r)
			}
		}
		flush()
		if row < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// toCell maps a layout point to a terminal cell.
func toCell(t viewport.Transform, x, y float64) (col, row int) {
	sx, sy := t.Apply(x, y)
	return int(math.Floor(sx / cellWidth)), int(math.Floor(sy / cellHeight))
}

func (m ViewerModel) draw() *grid {
	g := newGrid(m.cols, m.rows)
	t := m.ctrl.Transform()

	for _, e := range m.layout.Edges {
		c0, r0 := toCell(t, e.X1, e.Y1)
		c1, r1 := toCell(t, e.X2, e.Y2)
		mark, k := '·', inkEdge
		if e.IsSpouse() {
			mark, k = '═', inkSpouse
		}
		line(g, c0, r0, c1, r1, mark, k)
	}

	for _, c := range m.layout.Cards {
		r := c.Rect()
		c0, r0 := toCell(t, r.MinX, r.MinY)
		c1, _ := toCell(t, r.MaxX, r.MaxY)
		_, rc := toCell(t, c.X, c.Y)
		k := inkCard
		if m.matches.Has(c.ID) {
			k = inkMatch
		}
		width := c1 - c0
		switch {
		case width >= 4:
			label := fitLabel(c.Label, c.Initials, width-2)
			g.put(c0, rc, '[', k)
			g.text(c0+1, rc, label, k)
			g.put(c0+1+len([]rune(label)), rc, ']', k)
		case width >= 2:
			g.text(c0, rc, fitLabel(c.Initials, "", width), k)
		default:
			g.put(c0, r0, '•', k)
		}
	}
	return g
}

// line plots a straight segment between two cells.
func line(g *grid, c0, r0, c1, r1 int, mark rune, k ink) {
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		g.put(c0, r0, mark, k)
		return
	}
	// Off-screen segments can span millions of cells when zoomed in.
	if steps > 4*(g.cols+g.rows) {
		steps = 4 * (g.cols + g.rows)
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		col := c0 + int(math.Round(f*float64(c1-c0)))
		row := r0 + int(math.Round(f*float64(r1-r0)))
		g.put(col, row, mark, k)
	}
}

// fitLabel returns label if it fits in width runes, else short if that
// fits, else label truncated with an ellipsis.
func fitLabel(label, short string, width int) string {
	r := []rune(label)
	if len(r) <= width {
		return label
	}
	if short != "" && len([]rune(short)) <= width {
		return short
	}
	if width <= 1 {
		return string(r[:max(width, 0)])
	}
	return string(r[:width-1]) + "…"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (m ViewerModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(m.draw().String())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(StyleHighlight.Render("/" + m.query + "█"))
	} else {
		b.WriteString(StyleDim.Render("+/- zoom  0 reset  f fit  ←↑↓→ pan  m mode  / search  e svg  p png  q quit"))
	}
	return b.String()
}

func (m ViewerModel) statusLine() string {
	parts := []string{
		m.layout.Mode,
		fmt.Sprintf("%d%%", int(math.Round(m.ctrl.Transform().Scale*100))),
		fmt.Sprintf("%d people", m.family.Len()),
	}
	line := styleMuted.Render(strings.Join(parts, markSep))
	if m.err != nil {
		return line + "  " + styleFail.Render(m.err.Error())
	}
	if m.status != "" {
		line += "  " + StyleValue.Render(m.status)
	}
	return line
}
