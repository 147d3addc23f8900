package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iafilius/LaunchRecordsDashboard/cmd/launchviewer/uihelpers"
	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

func testState(t *testing.T) *uiState {
	t.Helper()
	csvPath, err := filepath.Abs(filepath.Join("..", "..", "src", "dataset", "testdata", "spacex_launch_dash.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// keep a stray launchdash.yaml from leaking into the defaults
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	cfg, err := config.Load(config.New(), "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	ds, err := dataset.Load(csvPath)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return newState(ds, cfg)
}

func TestNewState_DefaultsShowEverything(t *testing.T) {
	st := testState(t)
	st.refresh()
	if !st.sel.IsAllSites() {
		t.Fatalf("default site should be all sites, got %q", st.sel.Site)
	}
	if st.sel.Payload.Low != 0 || st.sel.Payload.High != 9600 {
		t.Fatalf("default payload range %+v", st.sel.Payload)
	}
	if st.dash.Matched != 24 || st.dash.Total != 24 {
		t.Fatalf("matched %d of %d, want 24 of 24", st.dash.Matched, st.dash.Total)
	}
	if got := st.statusText(); got != "All Sites: 24 of 24 launches" {
		t.Fatalf("status %q", got)
	}
}

func TestOnSiteChanged(t *testing.T) {
	st := testState(t)
	st.onSiteChanged("KSC LC-39A")
	if st.dash.Matched != 6 {
		t.Fatalf("KSC LC-39A matched %d want 6", st.dash.Matched)
	}
	if s, ok := st.dash.Pie.Slice(types.Success); !ok || s.Count != 5 {
		t.Fatalf("success slice %+v ok=%v", s, ok)
	}
	st.onSiteChanged(uihelpers.AllSitesOption)
	if st.sel.Site != analysis.AllSites || st.dash.Matched != 24 {
		t.Fatalf("back to all sites: site=%q matched=%d", st.sel.Site, st.dash.Matched)
	}
}

func TestOnRangeChanged_KeepsOrder(t *testing.T) {
	st := testState(t)
	st.onSiteChanged("KSC LC-39A")
	st.onRangeChanged(3000, true)
	st.onRangeChanged(6000, false)
	if st.dash.Matched != 3 {
		t.Fatalf("KSC LC-39A in [3000,6000] matched %d want 3", st.dash.Matched)
	}
	// moving low above high drags high along
	st.onRangeChanged(7000, true)
	if st.sel.Payload.Low != 7000 || st.sel.Payload.High != 7000 {
		t.Fatalf("range %+v", st.sel.Payload)
	}
	if st.dash.Matched != 0 || !st.dash.Pie.Empty() || !st.dash.Scatter.Empty() {
		t.Fatalf("empty subset expected, got %d", st.dash.Matched)
	}
	st.onRangeChanged(1000, false)
	if st.sel.Payload.Low != 1000 || st.sel.Payload.High != 1000 {
		t.Fatalf("range %+v", st.sel.Payload)
	}
}

func TestTableCell(t *testing.T) {
	st := testState(t)
	st.onSiteChanged("CCAFS SLC-40")
	if got := st.tableCell(0, 1); got != "Launch Site" {
		t.Fatalf("header %q", got)
	}
	if got := st.tableCell(1, 0); got != "43" {
		t.Fatalf("first flight %q", got)
	}
	if got := st.tableCell(2, 2); got != "3697" {
		t.Fatalf("payload cell %q", got)
	}
	if got := st.tableCell(2, 3); got != "Failure" {
		t.Fatalf("outcome cell %q", got)
	}
	if st.tableCell(99, 0) != "" || st.tableCell(1, 99) != "" {
		t.Fatalf("out of range cells must be empty")
	}
}

func TestChartImagesHeadless(t *testing.T) {
	st := testState(t)
	st.refresh()
	w, h := st.chartSize()
	if w != 900 || h != 420 {
		t.Fatalf("headless chart size %dx%d", w, h)
	}
	if b := st.pieImage(w, h).Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("pie bounds %v", b)
	}
	if b := st.scatterImage(w, h).Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("scatter bounds %v", b)
	}
}

func TestRunScreenshotsMode(t *testing.T) {
	st := testState(t)
	out := t.TempDir()
	res, err := runScreenshotsMode(context.Background(), st.ds, st.cfg, out, "VAFB SLC-4E")
	if err != nil {
		t.Fatalf("screenshots: %v", err)
	}
	if len(res) != 1 || res[0].Matched != 4 {
		t.Fatalf("results %+v", res)
	}
	for _, p := range []string{res[0].Pie, res[0].Scatter, res[0].Spec} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Fatalf("missing output %s: %v", p, err)
		}
	}
	if _, err := runScreenshotsMode(context.Background(), st.ds, st.cfg, out, "Nowhere"); err == nil {
		t.Fatalf("expected error for unknown site")
	}
}
