package uihelpers

import (
	"fmt"
	"math"
	"strings"
)

// AllSitesOption is the dropdown entry standing for every site.
const AllSitesOption = "All Sites"

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 600 {
		w = 600
	}
	h := int(float32(w) * 0.45)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// SiteOptions builds the dropdown entries: "All Sites" followed by the sites as given.
func SiteOptions(sites []string) []string {
	out := make([]string, 0, len(sites)+1)
	out = append(out, AllSitesOption)
	return append(out, sites...)
}

// SiteFromOption maps a dropdown entry back to a site selection value; allValue
// is returned for the "All Sites" entry and for an empty selection.
func SiteFromOption(opt, allValue string) string {
	if opt == "" || opt == AllSitesOption {
		return allValue
	}
	return opt
}

// OrderRange keeps low <= high after one end moved. When the moved end crosses
// the other one, the other end follows it.
func OrderRange(low, high float64, movedLow bool) (float64, float64) {
	if low <= high {
		return low, high
	}
	if movedLow {
		return low, low
	}
	return high, high
}

// RangeMarks returns mark positions every `every` units across [min,max], inclusive.
func RangeMarks(min, max, every float64) []float64 {
	if every <= 0 || max < min {
		return []float64{min, max}
	}
	var out []float64
	for v := min; v <= max+every*1e-9; v += every {
		out = append(out, math.Round(v*1e6)/1e6)
	}
	return out
}

// MarksLabel renders marks the way the range control labels them, e.g. "0 Kg · 2500 Kg".
func MarksLabel(marks []float64) string {
	parts := make([]string, len(marks))
	for i, m := range marks {
		parts[i] = fmt.Sprintf("%.0f Kg", m)
	}
	return strings.Join(parts, " · ")
}

// FormatRange is the text next to the payload sliders.
func FormatRange(low, high float64) string {
	return fmt.Sprintf("Payload range (Kg): %.0f – %.0f", low, high)
}
