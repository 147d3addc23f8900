package analysis

import (
	"fmt"
	"sort"

	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// Axis labels of the scatter chart.
const (
	PayloadAxisLabel = "Payload Mass (kg)"
	OutcomeAxisLabel = "Launch Outcome"
)

// ChartStyle is the colour scheme shared by both projections. Colours are hex strings.
type ChartStyle struct {
	SuccessColor string   `json:"success_color" yaml:"success_color"`
	FailureColor string   `json:"failure_color" yaml:"failure_color"`
	OutlineColor string   `json:"outline_color" yaml:"outline_color"`
	OutlineWidth float64  `json:"outline_width" yaml:"outline_width"`
	Hole         float64  `json:"hole" yaml:"hole"`
	Palette      []string `json:"palette" yaml:"palette"`
}

// DefaultChartStyle is the stock look: red/green pie with a 30%
// hole and black slice borders, plotly's qualitative palette for categories.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		SuccessColor: "#008000",
		FailureColor: "#ff0000",
		OutlineColor: "#000000",
		OutlineWidth: 2,
		Hole:         0.3,
		Palette: []string{
			"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
			"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
		},
	}
}

// OutcomeColor returns the fixed colour for an outcome.
func (cs ChartStyle) OutcomeColor(o types.Outcome) string {
	if o == types.Success {
		return cs.SuccessColor
	}
	return cs.FailureColor
}

// PaletteColor cycles through the palette.
func (cs ChartStyle) PaletteColor(i int) string {
	if len(cs.Palette) == 0 {
		return "#808080"
	}
	return cs.Palette[i%len(cs.Palette)]
}

type PieSlice struct {
	Outcome types.Outcome `json:"outcome" yaml:"outcome"`
	Label   string        `json:"label" yaml:"label"`
	Count   int           `json:"count" yaml:"count"`
	Percent float64       `json:"percent" yaml:"percent"`
	Color   string        `json:"color" yaml:"color"`
}

// PieSpec describes the outcome pie. Slices with a zero count are omitted, so
// an empty subset yields no slices at all.
type PieSpec struct {
	Title        string     `json:"title" yaml:"title"`
	Hole         float64    `json:"hole" yaml:"hole"`
	OutlineColor string     `json:"outline_color" yaml:"outline_color"`
	OutlineWidth float64    `json:"outline_width" yaml:"outline_width"`
	Total        int        `json:"total" yaml:"total"`
	Slices       []PieSlice `json:"slices" yaml:"slices"`
}

func (p PieSpec) Empty() bool { return p.Total == 0 }

// Slice returns the slice for an outcome, if present.
func (p PieSpec) Slice(o types.Outcome) (PieSlice, bool) {
	for _, s := range p.Slices {
		if s.Outcome == o {
			return s, true
		}
	}
	return PieSlice{}, false
}

type ScatterPoint struct {
	PayloadMassKg  float64       `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	Outcome        types.Outcome `json:"class" yaml:"class"`
	Site           string        `json:"launch_site" yaml:"launch_site"`
	BoosterVersion string        `json:"booster_version,omitempty" yaml:"booster_version,omitempty"`
	FlightNumber   int           `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
}

type ScatterSeries struct {
	Category string         `json:"category" yaml:"category"`
	Color    string         `json:"color" yaml:"color"`
	Points   []ScatterPoint `json:"points" yaml:"points"`
}

// ScatterSpec describes the payload/outcome scatter, one series per booster category.
type ScatterSpec struct {
	Title  string             `json:"title" yaml:"title"`
	XLabel string             `json:"x_label" yaml:"x_label"`
	YLabel string             `json:"y_label" yaml:"y_label"`
	XRange types.PayloadRange `json:"x_range" yaml:"x_range"`
	Series []ScatterSeries    `json:"series" yaml:"series"`
}

// Points counts all points across series.
func (s ScatterSpec) Points() int {
	n := 0
	for _, ser := range s.Series {
		n += len(ser.Points)
	}
	return n
}

func (s ScatterSpec) Empty() bool { return s.Points() == 0 }

// Dashboard is everything one render cycle needs.
type Dashboard struct {
	Selection Selection            `json:"selection" yaml:"selection"`
	Total     int                  `json:"total" yaml:"total"`
	Matched   int                  `json:"matched" yaml:"matched"`
	Pie       PieSpec              `json:"pie" yaml:"pie"`
	Scatter   ScatterSpec          `json:"scatter" yaml:"scatter"`
	Records   []types.LaunchRecord `json:"-" yaml:"-"`
}

// PieTitle and ScatterTitle are the chart headings for a selection.
func PieTitle(sel Selection) string {
	if sel.IsAllSites() {
		return "Total Success and Failure Launches for All Sites"
	}
	return fmt.Sprintf("Success and Failure Launches for %s", sel.Site)
}

func ScatterTitle(sel Selection) string {
	return fmt.Sprintf("Correlation between Payload and Success for %s", sel.SiteLabel())
}

// ProjectPie counts the subset by outcome. Success is listed before Failure.
func ProjectPie(records []types.LaunchRecord, sel Selection, style ChartStyle) PieSpec {
	counts := map[types.Outcome]int{}
	for _, r := range records {
		counts[r.Outcome]++
	}
	spec := PieSpec{
		Title:        PieTitle(sel),
		Hole:         style.Hole,
		OutlineColor: style.OutlineColor,
		OutlineWidth: style.OutlineWidth,
		Total:        len(records),
		Slices:       []PieSlice{},
	}
	for _, o := range []types.Outcome{types.Success, types.Failure} {
		n := counts[o]
		if n == 0 {
			continue
		}
		spec.Slices = append(spec.Slices, PieSlice{
			Outcome: o,
			Label:   o.Label(),
			Count:   n,
			Percent: float64(n) / float64(len(records)) * 100,
			Color:   style.OutcomeColor(o),
		})
	}
	return spec
}

// ProjectScatter emits one point per record grouped by booster category.
// Colours are keyed by the category's position in categories so they stay put
// while the filter changes; categories absent from that list are appended in
// sorted order.
func ProjectScatter(records []types.LaunchRecord, sel Selection, xRange types.PayloadRange, categories []string, style ChartStyle) ScatterSpec {
	colorIdx := map[string]int{}
	for i, c := range categories {
		colorIdx[c] = i
	}
	groups := map[string][]ScatterPoint{}
	for _, r := range records {
		groups[r.BoosterVersionCategory] = append(groups[r.BoosterVersionCategory], ScatterPoint{
			PayloadMassKg:  r.PayloadMassKg,
			Outcome:        r.Outcome,
			Site:           r.LaunchSite,
			BoosterVersion: r.BoosterVersion,
			FlightNumber:   r.FlightNumber,
		})
	}
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)
	next := len(categories)
	spec := ScatterSpec{
		Title:  ScatterTitle(sel),
		XLabel: PayloadAxisLabel,
		YLabel: OutcomeAxisLabel,
		XRange: xRange,
		Series: []ScatterSeries{},
	}
	for _, name := range names {
		i, ok := colorIdx[name]
		if !ok {
			i = next
			next++
		}
		spec.Series = append(spec.Series, ScatterSeries{
			Category: name,
			Color:    style.PaletteColor(i),
			Points:   groups[name],
		})
	}
	return spec
}

// Project filters the dataset once and builds both chart specs. xRange is the
// scatter's X axis, normally the slider bounds.
func Project(ds *dataset.Dataset, sel Selection, xRange types.PayloadRange, style ChartStyle) Dashboard {
	rows := Filter(ds, sel)
	return Dashboard{
		Selection: sel,
		Total:     ds.Len(),
		Matched:   len(rows),
		Pie:       ProjectPie(rows, sel, style),
		Scatter:   ProjectScatter(rows, sel, xRange, ds.Categories(), style),
		Records:   rows,
	}
}
