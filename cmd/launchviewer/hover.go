package main

import (
	"fmt"
	"image/color"
	"math"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/render"
)

// max distance in image pixels between the cursor and a point for it to be picked
const hoverPickRadius = 14

// computeContainRect returns where an imgW x imgH image lands inside a viewW x
// viewH view under ImageFillContain, and the scale applied.
func computeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	scale = viewW / imgW
	if sy := viewH / imgH; sy < scale {
		scale = sy
	}
	w, h = imgW*scale, imgH*scale
	return (viewW - w) / 2, (viewH - h) / 2, w, h, scale
}

// nearestPosition picks the point closest to (x, y); ok is false when none lies within maxDist.
func nearestPosition(pos []render.PointPosition, x, y, maxDist float32) (int, bool) {
	best := -1
	bestD := float32(math.MaxFloat32)
	for i, p := range pos {
		dx, dy := p.X-x, p.Y-y
		d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if d < bestD {
			bestD = d
			best = i
		}
	}
	if best < 0 || bestD > maxDist {
		return 0, false
	}
	return best, true
}

// hoverText describes one scatter point.
func hoverText(spec analysis.ScatterSpec, p render.PointPosition) string {
	if p.Series < 0 || p.Series >= len(spec.Series) || p.Index < 0 || p.Index >= len(spec.Series[p.Series].Points) {
		return ""
	}
	ser := spec.Series[p.Series]
	pt := ser.Points[p.Index]
	flight := "-"
	if pt.FlightNumber != 0 {
		flight = fmt.Sprintf("%d", pt.FlightNumber)
	}
	return fmt.Sprintf("Flight %s · %s\n%.0f kg · %s\n%s (%s)", flight, pt.Site, pt.PayloadMassKg, pt.Outcome.Label(), pt.BoosterVersion, ser.Category)
}

// hoverOverlay sits on top of the scatter image and labels the point under the cursor.
type hoverOverlay struct {
	widget.BaseWidget
	state    *uiState
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newHoverOverlay(state *uiState) *hoverOverlay {
	h := &hoverOverlay{state: state, enabled: state != nil && state.hoverEnabled}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	// transparent background for a full hit area
	bg := canvas.NewRectangle(color.RGBA{})
	ring := canvas.NewCircle(color.RGBA{})
	ring.StrokeWidth = 2
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 190})
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapOff
	return &hoverRenderer{h: h, bg: bg, ring: ring, labelBG: labelBG, label: label,
		objs: []fyne.CanvasObject{bg, ring, labelBG, label}}
}

type hoverRenderer struct {
	h       *hoverOverlay
	bg      *canvas.Rectangle
	ring    *canvas.Circle
	labelBG *canvas.Rectangle
	label   *widget.Label
	objs    []fyne.CanvasObject
}

func (r *hoverRenderer) hide() {
	r.ring.Resize(fyne.NewSize(0, 0))
	r.ring.Move(fyne.NewPos(-1000, -1000))
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *hoverRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	st := r.h.state
	if !r.h.enabled || !r.h.hovering || st == nil || st.scatterCanvas == nil || st.scatterCanvas.Image == nil {
		r.hide()
		return
	}
	b := st.scatterCanvas.Image.Bounds()
	imgW, imgH := float32(b.Dx()), float32(b.Dy())
	drawX, drawY, drawW, drawH, scale := computeContainRect(imgW, imgH, size.Width, size.Height)
	x, y := r.h.mouse.X, r.h.mouse.Y
	if x < drawX || x > drawX+drawW || y < drawY || y > drawY+drawH || scale <= 0 {
		r.hide()
		return
	}
	pos := st.scatterPos
	i, ok := nearestPosition(pos, (x-drawX)/scale, (y-drawY)/scale, hoverPickRadius)
	if !ok {
		r.hide()
		return
	}
	p := pos[i]
	px, py := drawX+p.X*scale, drawY+p.Y*scale
	rad := float32(7)
	r.ring.StrokeColor = theme.Color(theme.ColorNameForeground)
	r.ring.Resize(fyne.NewSize(2*rad, 2*rad))
	r.ring.Move(fyne.NewPos(px-rad, py-rad))

	r.label.SetText(hoverText(st.dash.Scatter, p))
	pad := float32(4)
	ts := r.label.MinSize()
	bgW, bgH := ts.Width+2*pad, ts.Height+2*pad
	tx, ty := px+10, py+10
	if tx+bgW > size.Width {
		tx = px - 10 - bgW
	}
	if ty+bgH > size.Height {
		ty = py - 10 - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Resize(ts)
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *hoverRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *hoverRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *hoverRenderer) Destroy()                     {}
func (r *hoverRenderer) Refresh() {
	r.Layout(r.h.Size())
	r.ring.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (h *hoverOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !h.enabled {
		return
	}
	h.hovering = true
	h.mouse = ev.Position
	h.Refresh()
}
func (h *hoverOverlay) MouseIn(ev *desktop.MouseEvent) { h.hovering = true; h.Refresh() }
func (h *hoverOverlay) MouseOut()                      { h.hovering = false; h.Refresh() }

var _ desktop.Hoverable = (*hoverOverlay)(nil)
