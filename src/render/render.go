package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// EmptyHint is drawn on charts whose selection matched nothing.
const EmptyHint = "No launches match the current selection"

// outcome axis padding keeps the 0/1 rows off the plot border
const outcomePad = 0.25

// scatterPadding is the background padding of the scatter chart.
var scatterPadding = chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}

// Color converts a "#rrggbb" (or "rgb") string to a go-chart colour.
func Color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Pie draws the outcome pie. An empty spec yields a blank image carrying EmptyHint.
func Pie(spec analysis.PieSpec, w, h int) (image.Image, error) {
	if spec.Empty() {
		return DrawHint(Blank(w, h), spec.Title+": "+EmptyHint), nil
	}
	values := make([]chart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%% (%d)", s.Label, s.Percent, s.Count),
			Value: float64(s.Count),
			Style: chart.Style{
				FillColor:   Color(s.Color),
				StrokeColor: Color(spec.OutlineColor),
				StrokeWidth: spec.OutlineWidth,
			},
		})
	}
	pc := chart.PieChart{
		Title:      spec.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}
	if len(values) == 1 {
		// a lone value is drawn as a full circle with SliceStyle, not its own Style
		pc.SliceStyle = values[0].Style
	}
	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode pie: %w", err)
	}
	return img, nil
}

// Scatter draws payload (X) against outcome (Y), one coloured series per booster category.
func Scatter(spec analysis.ScatterSpec, w, h int) (image.Image, error) {
	if spec.Empty() {
		return DrawHint(Blank(w, h), spec.Title+": "+EmptyHint), nil
	}
	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.PayloadMassKg
			ys[i] = float64(p.Outcome)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Category,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(Color(s.Color)),
		})
	}
	ch := scatterChart(spec, w, h, series)
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode scatter: %w", err)
	}
	return img, nil
}

// scatterChart lays out the payload/outcome axes around series.
func scatterChart(spec analysis.ScatterSpec, w, h int, series []chart.Series) chart.Chart {
	xMin, xMax := xBounds(spec)
	xTicks := make([]chart.Tick, 0, 8)
	for _, v := range BuildNumericTicks(xMin, xMax, 5) {
		if v < xMin || v > xMax {
			continue
		}
		xTicks = append(xTicks, chart.Tick{Value: v, Label: FormatNumericTick(v)})
	}
	return chart.Chart{
		Title:      spec.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: scatterPadding},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: &chart.ContinuousRange{Min: -outcomePad, Max: 1 + outcomePad},
			Ticks: []chart.Tick{
				{Value: -outcomePad, Label: ""},
				{Value: float64(types.Failure), Label: "0 " + types.Failure.Label()},
				{Value: float64(types.Success), Label: "1 " + types.Success.Label()},
				{Value: 1 + outcomePad, Label: ""},
			},
		},
		Series: series,
	}
}

// xBounds widens the spec's X range so every point is visible.
func xBounds(spec analysis.ScatterSpec) (float64, float64) {
	lo, hi := spec.XRange.Low, spec.XRange.High
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if p.PayloadMassKg < lo {
				lo = p.PayloadMassKg
			}
			if p.PayloadMassKg > hi {
				hi = p.PayloadMassKg
			}
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// PointPosition is where one scatter point lands in image pixels.
type PointPosition struct {
	X, Y   float32
	Series int
	Index  int
}

// axisFrame maps data coordinates to pixels: (x0, y0) is where (xMin, 0) is
// drawn and (x1, y1) is where (xMax, 1) is drawn.
type axisFrame struct {
	xMin, xMax     float64
	x0, y0, x1, y1 float32
}

func (f axisFrame) point(kg float64, o types.Outcome) (float32, float32) {
	fx := float32((kg - f.xMin) / (f.xMax - f.xMin))
	return f.x0 + fx*(f.x1-f.x0), f.y0 + float32(o)*(f.y1-f.y0)
}

type frameKey struct {
	w, h           int
	xMin, xMax     float64
	xLabel, yLabel string
}

var (
	frameMu    sync.Mutex
	frameCache = map[frameKey]axisFrame{}
)

// calibration marker colours; nothing else on a scatter uses them
var (
	markerLow  = drawing.Color{R: 255, G: 0, B: 255, A: 255}
	markerHigh = drawing.Color{R: 0, G: 255, B: 255, A: 255}
)

// scatterFrame renders the scatter axes with one marker at (xMin, 0) and one at
// (xMax, 1) and locates them, so positions follow go-chart's own layout.
func scatterFrame(spec analysis.ScatterSpec, w, h int) (axisFrame, error) {
	xMin, xMax := xBounds(spec)
	key := frameKey{w: w, h: h, xMin: xMin, xMax: xMax, xLabel: spec.XLabel, yLabel: spec.YLabel}
	frameMu.Lock()
	f, ok := frameCache[key]
	frameMu.Unlock()
	if ok {
		return f, nil
	}
	ch := scatterChart(spec, w, h, []chart.Series{
		chart.ContinuousSeries{XValues: []float64{xMin}, YValues: []float64{float64(types.Failure)}, Style: pointStyle(markerLow)},
		chart.ContinuousSeries{XValues: []float64{xMax}, YValues: []float64{float64(types.Success)}, Style: pointStyle(markerHigh)},
	})
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return axisFrame{}, fmt.Errorf("render scatter frame: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return axisFrame{}, fmt.Errorf("decode scatter frame: %w", err)
	}
	x0, y0, ok0 := centroid(img, markerLow)
	x1, y1, ok1 := centroid(img, markerHigh)
	if !ok0 || !ok1 {
		return axisFrame{}, fmt.Errorf("scatter frame: calibration markers not found at %dx%d", w, h)
	}
	f = axisFrame{xMin: xMin, xMax: xMax, x0: x0, y0: y0, x1: x1, y1: y1}
	frameMu.Lock()
	frameCache[key] = f
	frameMu.Unlock()
	return f, nil
}

// centroid averages the positions of pixels exactly matching c.
func centroid(img image.Image, c drawing.Color) (float32, float32, bool) {
	want := color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	b := img.Bounds()
	var sx, sy float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == want {
				sx += float64(x)
				sy += float64(y)
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return float32(sx / float64(n)), float32(sy / float64(n)), true
}

// ScatterPositions maps every point of spec to the pixel Scatter draws it at
// in a w x h image.
func ScatterPositions(spec analysis.ScatterSpec, w, h int) ([]PointPosition, error) {
	if spec.Empty() {
		return nil, nil
	}
	f, err := scatterFrame(spec, w, h)
	if err != nil {
		return nil, err
	}
	out := make([]PointPosition, 0, spec.Points())
	for si, s := range spec.Series {
		for pi, p := range s.Points {
			x, y := f.point(p.PayloadMassKg, p.Outcome)
			out = append(out, PointPosition{X: x, Y: y, Series: si, Index: pi})
		}
	}
	return out, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}
