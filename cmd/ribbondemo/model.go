package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/ribbon"
	"github.com/gogpu/ribbon/backend/software"
)

const (
	// sampleCount is the number of polyline samples per curve.
	sampleCount = 30

	// frameInterval paces the animation; the clock advances by this
	// much per tick.
	frameInterval = 50 * time.Millisecond
)

// viewport is the world rectangle shown in the terminal.
var viewport = ribbon.NewRect(ribbon.Pt(-1.1, -1.1), ribbon.Pt(1.1, 1.1))

// Styles
var (
	borderCol  = lipgloss.Color("#243141")
	accentFg   = lipgloss.Color("#7C3AED")
	dimFg      = lipgloss.Color("#6B7280")
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
)

type tickMsg time.Time

type model struct {
	width  int // terminal cells
	height int

	elapsed   float64 // animation clock, seconds
	paused    bool
	meshView  bool // mesh fill vs centerline
	halfWidth float64

	status string
}

func newModel() model {
	return model{
		meshView:  true,
		halfWidth: 0.05,
		status:    "ribbon demo",
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

// curve returns the animated control points at the current clock, the
// same oscillation the GPU demo drives: each control point bobs on its
// own sine phase.
func (m model) curve() ribbon.QuadBez {
	t := m.elapsed
	return ribbon.NewQuadBez(
		ribbon.Pt(-0.5, math.Sin(t)*0.5),
		ribbon.Pt(0, math.Sin(2*t)),
		ribbon.Pt(0.5, math.Sin(1.5*t)*0.5),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.meshView = !m.meshView
			if m.meshView {
				m.status = "mesh view"
			} else {
				m.status = "centerline view"
			}
		case "+", "=":
			m.halfWidth = math.Min(m.halfWidth*1.25, 0.5)
			m.status = fmt.Sprintf("half-width %.3f", m.halfWidth)
		case "-", "_":
			m.halfWidth = math.Max(m.halfWidth/1.25, 0.005)
			m.status = fmt.Sprintf("half-width %.3f", m.halfWidth)
		case "p":
			m.paused = !m.paused
			if m.paused {
				m.status = "paused"
			} else {
				m.status = "running"
			}
		}
	case tickMsg:
		if !m.paused {
			m.elapsed += frameInterval.Seconds()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	if m.width < 10 || m.height < 6 {
		return "terminal too small"
	}

	// Border takes 2 cells each way, status line one row.
	cellsW := m.width - 2
	cellsH := m.height - 3
	microW := cellsW * 2
	microH := cellsH * 4

	buf := newBrailleBuf(cellsW, cellsH)
	line, err := m.curve().Subdivide(sampleCount)
	if err == nil {
		if m.meshView {
			m.drawMesh(buf, line, microW, microH)
		} else {
			m.drawCenterline(buf, line, microW, microH)
		}
	}

	canvas := strings.Join(buf.toLines(), "\n")
	header := titleStyle.Render("ribbon") + dimStyle.Render("  space: view  +/-: width  p: pause  q: quit")
	status := dimStyle.Render(fmt.Sprintf("%s  t=%.1fs", m.status, m.elapsed))
	return boxStyle.Render(canvas) + "\n" + header + "  " + status
}

// drawMesh strokes the polyline and rasterizes the triangles at the
// microgrid resolution, thresholding coverage into braille dots.
func (m model) drawMesh(buf *brailleBuf, line ribbon.PolyLine, microW, microH int) {
	mesh, err := ribbon.Stroke(line, m.halfWidth)
	if err != nil {
		return
	}
	r, err := software.New(microW, microH)
	if err != nil {
		return
	}
	r.SetViewport(viewport)
	if err := r.RenderMesh(mesh); err != nil {
		return
	}
	buf.drawImage(r.Image())
}

// drawCenterline draws the raw polyline with Bresenham segments.
func (m model) drawCenterline(buf *brailleBuf, line ribbon.PolyLine, microW, microH int) {
	toMicro := func(p ribbon.Point) (int, int) {
		x := (p.X - viewport.Min.X) / viewport.Width() * float64(microW)
		y := (viewport.Max.Y - p.Y) / viewport.Height() * float64(microH)
		return int(x), int(y)
	}
	for i := 0; i+1 < line.Len(); i++ {
		x0, y0 := toMicro(line[i])
		x1, y1 := toMicro(line[i+1])
		buf.drawLineMicro(x0, y0, x1, y1)
	}
}
