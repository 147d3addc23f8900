package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

var bounds = types.PayloadRange{Low: 0, High: 10000}

func sampleRecords() []types.LaunchRecord {
	return []types.LaunchRecord{
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Outcome: types.Success, BoosterVersionCategory: "FT"},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 5600, Outcome: types.Failure, BoosterVersionCategory: "FT"},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 500, Outcome: types.Failure, BoosterVersionCategory: "v1.0"},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, Outcome: types.Success, BoosterVersionCategory: "FT"},
	}
}

func TestPie_Size(t *testing.T) {
	sel := analysis.Selection{Site: analysis.AllSites, Payload: bounds}
	spec := analysis.ProjectPie(sampleRecords(), sel, analysis.DefaultChartStyle())
	img, err := Pie(spec, 640, 360)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 640, 360), img.Bounds())
}

// colourShare is the fraction of pixels in img exactly matching hex.
func colourShare(img image.Image, hex string) float64 {
	want := color.RGBAModel.Convert(Color(hex)).(color.RGBA)
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == want {
				n++
			}
		}
	}
	return float64(n) / float64(b.Dx()*b.Dy())
}

func TestPie_SingleClass(t *testing.T) {
	style := analysis.DefaultChartStyle()
	cases := []struct {
		name string
		recs []types.LaunchRecord
		fill string
	}{
		{"success only", sampleRecords()[:1], style.SuccessColor},
		{"failure only", sampleRecords()[1:2], style.FailureColor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := analysis.ProjectPie(tc.recs, analysis.Selection{Site: "KSC LC-39A"}, style)
			require.Len(t, spec.Slices, 1)
			img, err := Pie(spec, 400, 300)
			require.NoError(t, err)
			assert.Equal(t, 400, img.Bounds().Dx())
			assert.Greater(t, colourShare(img, tc.fill), 0.15, "disc not filled with %s", tc.fill)
		})
	}
}

func TestPie_TwoClassesUseOutcomeColours(t *testing.T) {
	style := analysis.DefaultChartStyle()
	spec := analysis.ProjectPie(sampleRecords()[:2], analysis.Selection{Site: "KSC LC-39A"}, style)
	img, err := Pie(spec, 400, 300)
	require.NoError(t, err)
	assert.Greater(t, colourShare(img, style.SuccessColor), 0.05)
	assert.Greater(t, colourShare(img, style.FailureColor), 0.05)
}

func TestScatter_Size(t *testing.T) {
	sel := analysis.Selection{Site: analysis.AllSites, Payload: bounds}
	spec := analysis.ProjectScatter(sampleRecords(), sel, bounds, []string{"FT", "v1.0"}, analysis.DefaultChartStyle())
	img, err := Scatter(spec, 900, 420)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 900, 420), img.Bounds())
}

func TestScatter_SinglePoint(t *testing.T) {
	recs := sampleRecords()[2:3]
	sel := analysis.Selection{Site: "CCAFS LC-40", Payload: bounds}
	spec := analysis.ProjectScatter(recs, sel, bounds, nil, analysis.DefaultChartStyle())
	_, err := Scatter(spec, 600, 300)
	require.NoError(t, err)
}

func TestEmptySpecsRenderBlankWithHint(t *testing.T) {
	sel := analysis.Selection{Site: analysis.AllSites, Payload: types.PayloadRange{Low: 3000, High: 5000}}
	pie := analysis.ProjectPie(nil, sel, analysis.DefaultChartStyle())
	sc := analysis.ProjectScatter(nil, sel, bounds, nil, analysis.DefaultChartStyle())

	pImg, err := Pie(pie, 500, 200)
	require.NoError(t, err)
	sImg, err := Scatter(sc, 500, 200)
	require.NoError(t, err)

	blank := Blank(500, 200)
	assert.Equal(t, blank.Bounds(), pImg.Bounds())
	assert.Equal(t, blank.Bounds(), sImg.Bounds())
	// the hint paints near the bottom-left; the blank background stays untouched in the top-right
	assert.Equal(t, blank.At(499, 0), pImg.At(499, 0))
	assert.NotEqual(t, blank.At(10, 195), pImg.At(10, 195))
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, Blank(32, 16)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestBuildNumericTicks_SliderBounds(t *testing.T) {
	assert.Equal(t, []float64{0, 2500, 5000, 7500, 10000}, BuildNumericTicks(0, 10000, 5))
	assert.Nil(t, BuildNumericTicks(0, 1, 1))
	assert.Equal(t, "2500", FormatNumericTick(2500))
	assert.Equal(t, "0", FormatNumericTick(0))
	assert.Equal(t, "5000.25", FormatNumericTick(5000.25))
}

func TestColor(t *testing.T) {
	c := Color("#008000")
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(255), c.A)
}

// dotCentre finds the centroid of pixels coloured hex within radius r of (cx, cy).
func dotCentre(img image.Image, hex string, cx, cy float32, r int) (float32, float32, bool) {
	want := color.RGBAModel.Convert(Color(hex)).(color.RGBA)
	var sx, sy float32
	n := 0
	for y := int(cy) - r; y <= int(cy)+r; y++ {
		for x := int(cx) - r; x <= int(cx)+r; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == want {
				sx += float32(x)
				sy += float32(y)
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return sx / float32(n), sy / float32(n), true
}

func TestScatterPositions_MatchRenderedDots(t *testing.T) {
	style := analysis.DefaultChartStyle()
	sel := analysis.Selection{Site: analysis.AllSites, Payload: bounds}
	for _, size := range [][2]int{{900, 420}, {640, 300}, {1400, 520}} {
		for _, kg := range []float64{0, 2500, 5000, 9600, 10000} {
			for _, o := range []types.Outcome{types.Failure, types.Success} {
				recs := []types.LaunchRecord{{LaunchSite: "KSC LC-39A", PayloadMassKg: kg, Outcome: o, BoosterVersionCategory: "FT"}}
				spec := analysis.ProjectScatter(recs, sel, bounds, []string{"FT"}, style)
				img, err := Scatter(spec, size[0], size[1])
				require.NoError(t, err)
				pos, err := ScatterPositions(spec, size[0], size[1])
				require.NoError(t, err)
				require.Len(t, pos, 1)

				x, y, ok := dotCentre(img, spec.Series[0].Color, pos[0].X, pos[0].Y, 8)
				require.True(t, ok, "no dot near predicted %v for %.0f kg at %v", pos[0], kg, size)
				assert.InDelta(t, x, pos[0].X, 2, "x for %.0f kg %s at %v", kg, o, size)
				assert.InDelta(t, y, pos[0].Y, 2, "y for %.0f kg %s at %v", kg, o, size)
			}
		}
	}
}

func TestScatterPositions_Ordering(t *testing.T) {
	sel := analysis.Selection{Site: analysis.AllSites, Payload: bounds}
	spec := analysis.ProjectScatter(sampleRecords(), sel, bounds, []string{"FT", "v1.0"}, analysis.DefaultChartStyle())
	pos, err := ScatterPositions(spec, 900, 420)
	require.NoError(t, err)
	require.Len(t, pos, 4)
	byPayload := map[float64]PointPosition{}
	for _, p := range pos {
		assert.GreaterOrEqual(t, p.X, float32(0))
		assert.LessOrEqual(t, p.X, float32(900))
		pt := spec.Series[p.Series].Points[p.Index]
		byPayload[pt.PayloadMassKg] = p
	}
	// heavier payloads sit further right, successes sit higher
	assert.Less(t, byPayload[500].X, byPayload[2490].X)
	assert.Less(t, byPayload[2490].X, byPayload[9600].X)
	assert.Less(t, byPayload[2490].Y, byPayload[5600].Y)
	assert.InDelta(t, byPayload[2490].Y, byPayload[9600].Y, 0.01)

	empty, err := ScatterPositions(analysis.ScatterSpec{}, 900, 420)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
