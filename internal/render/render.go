// Package render rasterizes generated comparison frames to PNG images. It
// performs the frame auto-layout (row/column stacking with spacing and
// padding) that the live host would otherwise do.
package render

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/pairview/pairview/internal/host"
)

const (
	// Placeholder box for instances whose master carries no layout of its
	// own. Matches roughly what a small component occupies on the canvas.
	placeholderWidth  = 160.0
	placeholderHeight = 96.0

	defaultTextColor   = "#111827"
	placeholderStroke  = "#9CA3AF"
	lineHeightFactor   = 1.4
	placeholderPadding = 8.0
)

// Renderer draws node trees with the faces from a FontSet.
type Renderer struct {
	fonts *FontSet

	// measuring context; never drawn to
	mc *gg.Context
}

// NewRenderer creates a renderer over the given fonts.
func NewRenderer(fonts *FontSet) *Renderer {
	return &Renderer{fonts: fonts, mc: gg.NewContext(1, 1)}
}

// RenderPNG lays out the tree rooted at root and writes it as a PNG.
func (r *Renderer) RenderPNG(root *host.Node, path string) error {
	w, h := r.measure(root)
	width := int(math.Ceil(math.Max(w, 1)))
	height := int(math.Ceil(math.Max(h, 1)))

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	r.draw(dc, root, 0, 0)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// measure computes the laid-out size of a node.
func (r *Renderer) measure(n *host.Node) (w, h float64) {
	switch n.Kind {
	case host.KindText:
		return r.measureText(n)
	case host.KindFrame:
		return r.measureFrame(n)
	case host.KindInstance:
		if n.Master != nil && n.Master.Frame != nil {
			return r.measure(n.Master)
		}
		return placeholderWidth, placeholderHeight
	case host.KindComponent:
		if n.Frame != nil {
			return r.measureFrame(n)
		}
		return placeholderWidth, placeholderHeight
	default:
		return placeholderWidth, placeholderHeight
	}
}

func (r *Renderer) measureText(n *host.Node) (w, h float64) {
	props := n.Text
	if props == nil {
		return 0, 0
	}
	r.mc.SetFontFace(r.fonts.Face(props.Weight, props.Size))
	tw, _ := r.mc.MeasureString(props.Content)
	return tw, props.Size * lineHeightFactor
}

func (r *Renderer) measureFrame(n *host.Node) (w, h float64) {
	props := n.Frame
	if props == nil {
		return 0, 0
	}

	var main, cross float64
	for i, c := range n.Children {
		cw, ch := r.measure(c)
		a, b := cw, ch
		if props.Direction == host.Column {
			a, b = ch, cw
		}
		main += a
		if i > 0 {
			main += props.Spacing
		}
		cross = math.Max(cross, b)
	}

	w = main + 2*props.Padding
	h = cross + 2*props.Padding
	if props.Direction == host.Column {
		w, h = cross+2*props.Padding, main+2*props.Padding
	}
	return w, h
}

// draw paints a node with its origin at (x, y) in canvas coordinates.
func (r *Renderer) draw(dc *gg.Context, n *host.Node, x, y float64) {
	switch n.Kind {
	case host.KindText:
		r.drawText(dc, n, x, y)
	case host.KindFrame:
		r.drawFrame(dc, n, x, y)
	case host.KindInstance:
		if n.Master != nil && n.Master.Frame != nil {
			r.draw(dc, n.Master, x, y)
			return
		}
		r.drawPlaceholder(dc, n, x, y)
	case host.KindComponent:
		if n.Frame != nil {
			r.drawFrame(dc, n, x, y)
			return
		}
		r.drawPlaceholder(dc, n, x, y)
	default:
		r.drawPlaceholder(dc, n, x, y)
	}
}

func (r *Renderer) drawText(dc *gg.Context, n *host.Node, x, y float64) {
	props := n.Text
	if props == nil {
		return
	}

	color := props.Color
	if color == "" {
		color = defaultTextColor
	}

	dc.SetFontFace(r.fonts.Face(props.Weight, props.Size))
	dc.SetHexColor(color)
	dc.DrawString(props.Content, x, y+props.Size)
}

func (r *Renderer) drawFrame(dc *gg.Context, n *host.Node, x, y float64) {
	props := n.Frame
	if props == nil {
		return
	}

	w, h := r.measureFrame(n)
	if props.Fill != "" {
		dc.SetHexColor(props.Fill)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}
	if props.Stroke != "" {
		dc.SetHexColor(props.Stroke)
		dc.SetLineWidth(1.5)
		dc.DrawRectangle(x+0.75, y+0.75, w-1.5, h-1.5)
		dc.Stroke()
	}

	cx, cy := x+props.Padding, y+props.Padding
	for _, c := range n.Children {
		cw, ch := r.measure(c)
		r.draw(dc, c, cx, cy)
		if props.Direction == host.Column {
			cy += ch + props.Spacing
		} else {
			cx += cw + props.Spacing
		}
	}
}

// drawPlaceholder stands in for an imported instance: a bordered box with
// the component name centered.
func (r *Renderer) drawPlaceholder(dc *gg.Context, n *host.Node, x, y float64) {
	w, h := placeholderWidth, placeholderHeight

	dc.SetHexColor(placeholderStroke)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
	dc.Stroke()

	name := n.Name
	if name == "" {
		name = string(n.Kind)
	}
	dc.SetFontFace(r.fonts.Face(host.WeightRegular, 12))
	dc.SetHexColor(defaultTextColor)
	dc.DrawStringAnchored(name, x+w/2, y+h/2, 0.5, 0.5)
}
