package main

import (
	"fmt"
	"image"
	"image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/LaunchRecordsDashboard/cmd/launchviewer/uihelpers"
	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
	"github.com/iafilius/LaunchRecordsDashboard/src/render"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// preference keys
const prefHover = "hover"

type uiState struct {
	app    fyne.App
	window fyne.Window

	// read-only after startup
	ds     *dataset.Dataset
	cfg    *config.Config
	style  analysis.ChartStyle
	xRange types.PayloadRange

	// current control values and the charts derived from them
	sel  analysis.Selection
	dash analysis.Dashboard

	// widgets
	siteSelect    *widget.Select
	lowSlider     *widget.Slider
	highSlider    *widget.Slider
	rangeLabel    *widget.Label
	statusLabel   *widget.Label
	pieCanvas     *canvas.Image
	scatterCanvas *canvas.Image
	table         *widget.Table
	hover         *hoverOverlay

	// pixel positions of the points in scatterCanvas.Image
	scatterPos []render.PointPosition

	// point details under the cursor on the scatter chart
	hoverEnabled bool

	// set while one slider is being moved to follow the other
	syncing bool
}

func newState(ds *dataset.Dataset, cfg *config.Config) *uiState {
	return &uiState{
		ds:     ds,
		cfg:    cfg,
		style:  analysis.StyleFromConfig(cfg.Charts),
		xRange: types.PayloadRange{Low: cfg.UI.PayloadMin, High: cfg.UI.PayloadMax},
		sel:    analysis.DefaultSelection(ds),
	}
}

// onSiteChanged handles the dropdown.
func (s *uiState) onSiteChanged(opt string) {
	s.sel.Site = uihelpers.SiteFromOption(opt, analysis.AllSites)
	logging.Debugf("[viewer] site changed to %q", s.sel.Site)
	s.refresh()
}

// onRangeChanged handles either slider. The opposite slider follows when the
// moved one crosses it so the selection never has low > high.
func (s *uiState) onRangeChanged(v float64, movedLow bool) {
	if s.syncing {
		return
	}
	low, high := s.sel.Payload.Low, s.sel.Payload.High
	if movedLow {
		low = v
	} else {
		high = v
	}
	low, high = uihelpers.OrderRange(low, high, movedLow)
	s.sel.Payload = types.PayloadRange{Low: low, High: high}
	s.syncing = true
	if movedLow && s.highSlider != nil && s.highSlider.Value != high {
		s.highSlider.SetValue(high)
	}
	if !movedLow && s.lowSlider != nil && s.lowSlider.Value != low {
		s.lowSlider.SetValue(low)
	}
	s.syncing = false
	s.refresh()
}

// refresh recomputes everything from the full dataset and the current controls.
func (s *uiState) refresh() {
	s.dash = analysis.Project(s.ds, s.sel, s.xRange, s.style)
	if s.rangeLabel != nil {
		s.rangeLabel.SetText(uihelpers.FormatRange(s.sel.Payload.Low, s.sel.Payload.High))
	}
	if s.statusLabel != nil {
		s.statusLabel.SetText(s.statusText())
	}
	if s.table != nil {
		s.table.Refresh()
	}
	s.redrawCharts()
}

func (s *uiState) statusText() string {
	return fmt.Sprintf("%s: %d of %d launches", s.sel.SiteLabel(), s.dash.Matched, s.dash.Total)
}

func (s *uiState) redrawCharts() {
	cw, chh := s.chartSize()
	if s.pieCanvas != nil {
		s.pieCanvas.Image = s.pieImage(cw, chh)
		s.pieCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
		s.pieCanvas.Refresh()
	}
	if s.scatterCanvas != nil {
		s.scatterCanvas.Image = s.scatterImage(cw, chh)
		s.scatterCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
		s.scatterCanvas.Refresh()
		pos, err := render.ScatterPositions(s.dash.Scatter, cw, chh)
		if err != nil {
			logging.Errorf("[viewer] scatter positions: %v", err)
		}
		s.scatterPos = pos
	}
	if s.hover != nil {
		s.hover.Refresh()
	}
}

// setHoverEnabled toggles point details and remembers the choice.
func (s *uiState) setHoverEnabled(on bool) {
	s.hoverEnabled = on
	if s.hover != nil {
		s.hover.enabled = on
		s.hover.Refresh()
	}
	if s.app != nil {
		s.app.Preferences().SetBool(prefHover, on)
	}
}

func (s *uiState) pieImage(w, h int) image.Image {
	img, err := render.Pie(s.dash.Pie, w, h)
	if err != nil {
		logging.Errorf("[viewer] pie chart render error: %v; showing blank fallback", err)
		return render.Blank(w, h)
	}
	return img
}

func (s *uiState) scatterImage(w, h int) image.Image {
	img, err := render.Scatter(s.dash.Scatter, w, h)
	if err != nil {
		logging.Errorf("[viewer] scatter chart render error: %v; showing blank fallback", err)
		return render.Blank(w, h)
	}
	return img
}

// chartSize computes a chart size based on the current window width.
func (s *uiState) chartSize() (int, int) {
	if s.window == nil || s.window.Canvas() == nil {
		return s.cfg.Charts.Width, s.cfg.Charts.Height
	}
	sz := s.window.Canvas().Size()
	if sz.Width <= 0 {
		return s.cfg.Charts.Width, s.cfg.Charts.Height
	}
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

// tableColumns is the fixed record columns followed by passthrough ones.
func (s *uiState) tableColumns() []string {
	cols := []string{"Flight", "Launch Site", "Payload (kg)", "Outcome", "Booster Version", "Category"}
	return append(cols, s.ds.ExtraColumns()...)
}

// tableCell returns the text for a records-table cell; row 0 is the header.
func (s *uiState) tableCell(row, col int) string {
	cols := s.tableColumns()
	if col < 0 || col >= len(cols) {
		return ""
	}
	if row == 0 {
		return cols[col]
	}
	rix := row - 1
	if rix < 0 || rix >= len(s.dash.Records) {
		return ""
	}
	r := s.dash.Records[rix]
	switch col {
	case 0:
		if r.FlightNumber == 0 {
			return "-"
		}
		return fmt.Sprintf("%d", r.FlightNumber)
	case 1:
		return r.LaunchSite
	case 2:
		return fmt.Sprintf("%.0f", r.PayloadMassKg)
	case 3:
		return r.Outcome.String()
	case 4:
		return r.BoosterVersion
	case 5:
		return r.BoosterVersionCategory
	default:
		return r.Extra[cols[col]]
	}
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}
