package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

func records() []types.LaunchRecord {
	return []types.LaunchRecord{
		{FlightNumber: 19, LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Outcome: types.Success, BoosterVersion: "F9 FT B1031.1", BoosterVersionCategory: "FT", Extra: map[string]string{"Orbit": "LEO"}},
		{FlightNumber: 21, LaunchSite: "KSC LC-39A", PayloadMassKg: 5600, Outcome: types.Failure, BoosterVersion: "F9 FT B1030", BoosterVersionCategory: "FT", Extra: map[string]string{"Orbit": "GTO"}},
		{FlightNumber: 6, LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500, Outcome: types.Failure, BoosterVersion: "F9 v1.1  B1003", BoosterVersionCategory: "v1.1"},
	}
}

func TestSiteSummaries(t *testing.T) {
	got := SiteSummaries(records())
	require.Len(t, got, 2)
	assert.Equal(t, SiteSummary{Site: "KSC LC-39A", Launches: 2, Successes: 1, SuccessRatePct: 50, MinPayloadKg: 2490, MaxPayloadKg: 5600}, got[0])
	assert.Equal(t, "VAFB SLC-4E", got[1].Site)
	assert.Equal(t, 0.0, got[1].SuccessRatePct)
	assert.Empty(t, SiteSummaries(nil))
}

func TestSitesTable(t *testing.T) {
	out := SitesTable(SiteSummaries(records()), ASCII)
	assert.Contains(t, out, "KSC LC-39A")
	assert.Contains(t, out, "50.0")
	assert.Contains(t, out, "33.3")

	md := SitesTable(SiteSummaries(records()), Markdown)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(md), "|"), md)
}

func TestRecordsTable_ExtraColumns(t *testing.T) {
	out := RecordsTable(records(), []string{"Orbit"}, ASCII)
	assert.Contains(t, strings.ToLower(out), "orbit")
	assert.Contains(t, out, "GTO")
	assert.Contains(t, out, "F9 FT B1031.1")
	assert.Contains(t, out, "Failure")
}

func TestPieLine(t *testing.T) {
	sel := analysis.Selection{Site: "KSC LC-39A"}
	pie := analysis.ProjectPie(records()[:2], sel, analysis.DefaultChartStyle())
	assert.Equal(t, "Success and Failure Launches for KSC LC-39A: Success=1 (50.0%) Failed=1 (50.0%)", PieLine(pie))
	empty := analysis.ProjectPie(nil, sel, analysis.DefaultChartStyle())
	assert.Equal(t, "Success and Failure Launches for KSC LC-39A: no launches", PieLine(empty))
}
