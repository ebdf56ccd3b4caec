package render

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanshika/recipenet/internal/network"
	"github.com/vanshika/recipenet/internal/service"
)

const (
	defaultSnapshotWidth  = 1200
	defaultSnapshotHeight = 800
	defaultIterations     = 200
	snapshotMargin        = 48.0
	captionHeight         = 40.0
)

// SnapshotOptions controls the static export.
type SnapshotOptions struct {
	Width      int
	Height     int
	Seed       int64
	Iterations int
	// Hovered, when set, draws the highlight state of hovering that node.
	Hovered string
}

type placedNode struct {
	ID    string
	X, Y  float64
	Style NodeStyle
}

type placedEdge struct {
	From, To int
	Weight   float64
}

// Snapshot is a laid-out view ready to be written as SVG or PNG. The layout is a
// force-directed placement driven by a seeded generator, so equal inputs give
// equal images.
type Snapshot struct {
	Width   int
	Height  int
	Caption string
	Nodes   []placedNode
	Edges   []placedEdge
}

// NewSnapshot lays out view.
func NewSnapshot(view service.View, opts SnapshotOptions) *Snapshot {
	if opts.Width <= 0 {
		opts.Width = defaultSnapshotWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultSnapshotHeight
	}
	if opts.Iterations <= 0 {
		opts.Iterations = defaultIterations
	}

	s := &Snapshot{
		Width:   opts.Width,
		Height:  opts.Height,
		Caption: caption(view),
	}
	if len(view.Nodes) == 0 || view.Adjacency == nil {
		return s
	}

	hover := network.NoHover
	if opts.Hovered != "" {
		hover = network.HoverOn(opts.Hovered)
	}
	states := network.Project(view.Adjacency, hover)

	index := make(map[string]int, len(view.Nodes))
	for i, n := range view.Nodes {
		index[n.ID] = i
		s.Nodes = append(s.Nodes, placedNode{ID: n.ID, Style: StyleFor(states[n.ID])})
	}
	for _, e := range view.Edges {
		s.Edges = append(s.Edges, placedEdge{From: index[e.Source], To: index[e.Target], Weight: e.Weight})
	}

	s.layout(view.Adjacency, index, opts)
	return s
}

func caption(view service.View) string {
	if len(view.Edges) == 0 {
		return fmt.Sprintf("%s | no edges match the current filter", view.Label)
	}
	return fmt.Sprintf("%s | nodes: %d  edges: %d", view.Label, len(view.Nodes), len(view.Edges))
}

// layout runs a Fruchterman-Reingold placement in a unit square and then scales
// the result into the drawable area.
func (s *Snapshot) layout(adj *network.Adjacency, index map[string]int, opts SnapshotOptions) {
	n := len(s.Nodes)
	rng := rand.New(rand.NewSource(opts.Seed))

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range s.Nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		xs[i] = 0.5 + 0.35*math.Cos(angle) + (rng.Float64()-0.5)*0.05
		ys[i] = 0.5 + 0.35*math.Sin(angle) + (rng.Float64()-0.5)*0.05
	}

	links := make([][2]int, 0, len(s.Edges))
	for i, node := range s.Nodes {
		for _, id := range adj.Neighbors(node.ID) {
			if j := index[id]; j > i {
				links = append(links, [2]int{i, j})
			}
		}
	}

	k := math.Sqrt(1.0 / float64(n))
	dx := make([]float64, n)
	dy := make([]float64, n)
	for iter := 0; iter < opts.Iterations; iter++ {
		temp := 0.1 * (1 - float64(iter)/float64(opts.Iterations))
		clear(dx)
		clear(dy)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx, ddy := xs[i]-xs[j], ys[i]-ys[j]
				dist := math.Max(math.Hypot(ddx, ddy), 1e-4)
				force := k * k / dist
				dx[i] += ddx / dist * force
				dy[i] += ddy / dist * force
				dx[j] -= ddx / dist * force
				dy[j] -= ddy / dist * force
			}
		}
		for _, l := range links {
			i, j := l[0], l[1]
			ddx, ddy := xs[i]-xs[j], ys[i]-ys[j]
			dist := math.Max(math.Hypot(ddx, ddy), 1e-4)
			force := dist * dist / k
			dx[i] -= ddx / dist * force
			dy[i] -= ddy / dist * force
			dx[j] += ddx / dist * force
			dy[j] += ddy / dist * force
		}

		for i := 0; i < n; i++ {
			disp := math.Max(math.Hypot(dx[i], dy[i]), 1e-9)
			step := math.Min(disp, temp)
			xs[i] = clamp01(xs[i] + dx[i]/disp*step)
			ys[i] = clamp01(ys[i] + dy[i]/disp*step)
		}
	}

	s.fit(xs, ys)
}

// fit scales unit-square coordinates into the canvas, leaving room for the caption.
func (s *Snapshot) fit(xs, ys []float64) {
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)

	w := float64(s.Width) - 2*snapshotMargin
	h := float64(s.Height) - 2*snapshotMargin - captionHeight
	for i := range s.Nodes {
		if len(xs) == 1 {
			s.Nodes[i].X = snapshotMargin + w/2
			s.Nodes[i].Y = snapshotMargin + h/2
			continue
		}
		s.Nodes[i].X = snapshotMargin + (xs[i]-minX)/spanX*w
		s.Nodes[i].Y = snapshotMargin + (ys[i]-minY)/spanY*h
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func radius(style NodeStyle) float64 {
	return float64(style.Size)/2 + 4
}

// WriteSVG writes the snapshot as an SVG document.
func (s *Snapshot) WriteSVG(w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, e := range s.Edges {
		from, to := s.Nodes[e.From], s.Nodes[e.To]
		c := edgeColor(e.Weight)
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.1f;stroke-width:%.1f",
				c.R, c.G, c.B, network.EdgeAlpha(e.Weight), edgeWidth(e.Weight)))
	}

	for _, n := range s.Nodes {
		canvas.Circle(int(n.X), int(n.Y), int(radius(n.Style)), fmt.Sprintf("fill:%s", css(n.Style.Fill)))
		canvas.Text(int(n.X), int(n.Y)+n.Style.FontSize/3, n.ID,
			fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif;text-anchor:middle", css(n.Style.FontColor), n.Style.FontSize))
	}

	s.captionSVG(canvas)
	canvas.End()
	return nil
}

func (s *Snapshot) captionSVG(canvas *svg.SVG) {
	top := s.Height - int(captionHeight)
	canvas.Rect(0, top, s.Width, int(captionHeight), fmt.Sprintf("fill:%s", css(colorCaptionBG)))
	canvas.Text(16, top+25, s.Caption, fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace", css(colorCaption)))
}

// WritePNG writes the snapshot as a PNG image.
func (s *Snapshot) WritePNG(w io.Writer) error {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, e := range s.Edges {
		from, to := s.Nodes[e.From], s.Nodes[e.To]
		dc.SetColor(edgeColor(e.Weight))
		dc.SetLineWidth(edgeWidth(e.Weight))
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()
	}

	for _, n := range s.Nodes {
		dc.SetColor(n.Style.Fill)
		dc.DrawCircle(n.X, n.Y, radius(n.Style))
		dc.Fill()
		dc.SetColor(n.Style.FontColor)
		dc.DrawStringAnchored(n.ID, n.X, n.Y, 0.5, 0.5)
	}

	top := float64(s.Height) - captionHeight
	dc.SetColor(colorCaptionBG)
	dc.DrawRectangle(0, top, float64(s.Width), captionHeight)
	dc.Fill()
	dc.SetColor(colorCaption)
	dc.DrawStringAnchored(s.Caption, 16, top+captionHeight/2, 0, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func edgeWidth(weight float64) float64 {
	return 1 + 2*network.EdgeAlpha(weight)
}

// Write encodes the snapshot as "svg" or "png".
func (s *Snapshot) Write(w io.Writer, format string) error {
	switch format {
	case "svg":
		return s.WriteSVG(w)
	case "png":
		return s.WritePNG(w)
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}
