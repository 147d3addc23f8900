package analysis

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

var sliderBounds = types.PayloadRange{Low: 0, High: 10000}

func TestProject_SingleSiteFullRange(t *testing.T) {
	ds := twoLaunches(t)
	sel := Selection{Site: "A", Payload: sliderBounds}
	dash := Project(ds, sel, sliderBounds, DefaultChartStyle())

	assert.Equal(t, 2, dash.Total)
	assert.Equal(t, 1, dash.Matched)
	require.Len(t, dash.Pie.Slices, 1)
	s := dash.Pie.Slices[0]
	assert.Equal(t, types.Success, s.Outcome)
	assert.Equal(t, 100.0, s.Percent)
	assert.Equal(t, "#008000", s.Color)
	assert.Equal(t, "Success and Failure Launches for A", dash.Pie.Title)
	assert.Equal(t, "Correlation between Payload and Success for A", dash.Scatter.Title)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	b, err := json.MarshalIndent(dash, "", "  ")
	require.NoError(t, err)
	g.Assert(t, "dashboard_site_a", append(b, '\n'))
}

func TestProject_EmptySubsetIsValid(t *testing.T) {
	ds := twoLaunches(t)
	dash := Project(ds, Selection{Site: AllSites, Payload: types.PayloadRange{Low: 3000, High: 5000}}, sliderBounds, DefaultChartStyle())

	assert.Equal(t, 0, dash.Matched)
	assert.True(t, dash.Pie.Empty())
	assert.Empty(t, dash.Pie.Slices)
	assert.True(t, dash.Scatter.Empty())
	assert.Equal(t, "Total Success and Failure Launches for All Sites", dash.Pie.Title)
	assert.Equal(t, "Correlation between Payload and Success for All Sites", dash.Scatter.Title)
}

func TestProjectPie_CountsAndOrder(t *testing.T) {
	ds := fixture(t)
	sel := DefaultSelection(ds)
	pie := ProjectPie(Filter(ds, sel), sel, DefaultChartStyle())

	require.Len(t, pie.Slices, 2)
	assert.Equal(t, types.Success, pie.Slices[0].Outcome)
	assert.Equal(t, types.Failure, pie.Slices[1].Outcome)
	assert.Equal(t, 9, pie.Slices[0].Count)
	assert.Equal(t, 15, pie.Slices[1].Count)
	assert.Equal(t, 24, pie.Total)
	assert.InDelta(t, 100.0, pie.Slices[0].Percent+pie.Slices[1].Percent, 1e-9)
	assert.Equal(t, "#ff0000", pie.Slices[1].Color)
	assert.Equal(t, 0.3, pie.Hole)

	failed, ok := pie.Slice(types.Failure)
	require.True(t, ok)
	assert.Equal(t, "Failed", failed.Label)
}

func TestProjectPie_SingleClass(t *testing.T) {
	recs := []types.LaunchRecord{
		{LaunchSite: "X", PayloadMassKg: 1, Outcome: types.Failure},
		{LaunchSite: "X", PayloadMassKg: 2, Outcome: types.Failure},
	}
	pie := ProjectPie(recs, Selection{Site: "X"}, DefaultChartStyle())
	require.Len(t, pie.Slices, 1)
	assert.Equal(t, 100.0, pie.Slices[0].Percent)
	_, ok := pie.Slice(types.Success)
	assert.False(t, ok)
}

func TestProjectScatter_StableCategoryColours(t *testing.T) {
	ds := fixture(t)
	style := DefaultChartStyle()
	all := ProjectScatter(Filter(ds, DefaultSelection(ds)), DefaultSelection(ds), sliderBounds, ds.Categories(), style)
	assert.Equal(t, ds.Len(), all.Points())

	colours := map[string]string{}
	for _, s := range all.Series {
		colours[s.Category] = s.Color
	}
	// narrowing the filter must not repaint the remaining categories
	sel := Selection{Site: "KSC LC-39A", Payload: sliderBounds}
	ksc := ProjectScatter(Filter(ds, sel), sel, sliderBounds, ds.Categories(), style)
	require.Len(t, ksc.Series, 1)
	assert.Equal(t, "FT", ksc.Series[0].Category)
	assert.Equal(t, colours["FT"], ksc.Series[0].Color)
	for _, p := range ksc.Series[0].Points {
		assert.Equal(t, "KSC LC-39A", p.Site)
	}
	assert.Equal(t, PayloadAxisLabel, ksc.XLabel)
	assert.Equal(t, OutcomeAxisLabel, ksc.YLabel)
	assert.Equal(t, sliderBounds, ksc.XRange)
}

func TestProjectScatter_UnknownCategoryAppended(t *testing.T) {
	recs := []types.LaunchRecord{
		{LaunchSite: "X", PayloadMassKg: 1, BoosterVersionCategory: "Heavy"},
		{LaunchSite: "X", PayloadMassKg: 2, BoosterVersionCategory: "FT"},
	}
	sc := ProjectScatter(recs, Selection{Site: "X"}, sliderBounds, []string{"FT"}, DefaultChartStyle())
	require.Len(t, sc.Series, 2)
	assert.Equal(t, "FT", sc.Series[0].Category)
	assert.Equal(t, DefaultChartStyle().PaletteColor(0), sc.Series[0].Color)
	assert.Equal(t, DefaultChartStyle().PaletteColor(1), sc.Series[1].Color)
}

func TestStyleFromConfig(t *testing.T) {
	st := StyleFromConfig(config.ChartsConfig{SuccessColor: "00AA00", FailureColor: "#CC0000", Hole: 0})
	assert.Equal(t, "#00aa00", st.SuccessColor)
	assert.Equal(t, "#cc0000", st.FailureColor)
	assert.Equal(t, "#000000", st.OutlineColor)
	assert.Equal(t, 0.0, st.Hole)
}
