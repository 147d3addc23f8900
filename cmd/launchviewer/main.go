package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"github.com/iafilius/LaunchRecordsDashboard/cmd/launchviewer/uihelpers"
	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
)

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

type viewerOptions struct {
	configPath  string
	screenshots string
	site        string
}

func newRootCommand() *cobra.Command {
	opts := &viewerOptions{}
	v := config.New()
	cmd := &cobra.Command{
		Use:           "launchviewer",
		Short:         "SpaceX Launch Records Dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, opts.configPath)
			if err != nil {
				return err
			}
			logging.SetLogLevel(cfg.Log.Level)
			if f := cfg.UsedFile(); f != "" {
				logging.Infof("[viewer] config loaded from %s", f)
			}
			// the dataset is loaded exactly once; a missing or malformed file aborts startup
			ds, err := dataset.Load(cfg.Dataset.Path)
			if err != nil {
				return err
			}
			if opts.screenshots != "" {
				_, err := runScreenshotsMode(cmd.Context(), ds, cfg, opts.screenshots, opts.site)
				return err
			}
			runUI(ds, cfg)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to launchdash.yaml")
	f.String("file", "", "Path to spacex_launch_dash.csv")
	f.String("log-level", "", "debug|info|warn|error")
	f.StringVar(&opts.screenshots, "screenshots", "", "Render charts as PNGs into this directory and exit")
	f.StringVar(&opts.site, "site", analysis.AllSites, "Site for --screenshots (ALL renders every site)")
	_ = v.BindPFlag("dataset.path", f.Lookup("file"))
	_ = v.BindPFlag("log.level", f.Lookup("log-level"))
	return cmd
}

func main() {
	defer logging.Sync()
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runUI(ds *dataset.Dataset, cfg *config.Config) {
	a := app.NewWithID("com.launchdash.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("SpaceX Launch Records Dashboard")
	w.Resize(fyne.NewSize(float32(cfg.UI.Width), float32(cfg.UI.Height)))

	state := newState(ds, cfg)
	state.app = a
	state.window = w
	state.hoverEnabled = a.Preferences().BoolWithFallback(prefHover, true)

	title := widget.NewLabelWithStyle("SpaceX Launch Records Dashboard", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	// Create controls without callbacks first; we'll wire them after canvases exist
	state.siteSelect = widget.NewSelect(uihelpers.SiteOptions(ds.Sites()), nil)
	state.siteSelect.PlaceHolder = "Select a Launch Site here"
	state.siteSelect.Selected = uihelpers.AllSitesOption

	state.lowSlider = widget.NewSlider(cfg.UI.PayloadMin, cfg.UI.PayloadMax)
	state.lowSlider.Step = cfg.UI.PayloadStep
	state.lowSlider.SetValue(state.sel.Payload.Low)
	state.highSlider = widget.NewSlider(cfg.UI.PayloadMin, cfg.UI.PayloadMax)
	state.highSlider.Step = cfg.UI.PayloadStep
	state.highSlider.SetValue(state.sel.Payload.High)
	state.rangeLabel = widget.NewLabel(uihelpers.FormatRange(state.sel.Payload.Low, state.sel.Payload.High))
	marks := widget.NewLabel(uihelpers.MarksLabel(uihelpers.RangeMarks(cfg.UI.PayloadMin, cfg.UI.PayloadMax, cfg.UI.MarkEvery)))
	state.statusLabel = widget.NewLabel("")
	hoverChk := widget.NewCheck("Point details", nil)
	hoverChk.SetChecked(state.hoverEnabled)

	// chart placeholders
	state.pieCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.pieCanvas.FillMode = canvas.ImageFillContain
	state.pieCanvas.SetMinSize(fyne.NewSize(float32(cfg.Charts.Width), float32(cfg.Charts.Height)))
	state.scatterCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.scatterCanvas.FillMode = canvas.ImageFillContain
	state.scatterCanvas.SetMinSize(fyne.NewSize(float32(cfg.Charts.Width), float32(cfg.Charts.Height)))
	state.hover = newHoverOverlay(state)

	// Records table (filtered rows, passthrough columns included)
	cols := state.tableColumns()
	state.table = widget.NewTable(
		func() (int, int) { return len(state.dash.Records) + 1, len(cols) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(state.tableCell(id.Row, id.Col))
		},
	)
	for i, wdt := range []float32{70, 140, 110, 90, 170, 90} {
		state.table.SetColumnWidth(i, wdt)
	}
	for i := 6; i < len(cols); i++ {
		state.table.SetColumnWidth(i, 140)
	}

	controls := container.NewVBox(
		title,
		container.NewBorder(nil, nil, widget.NewLabel("Launch Site:"), nil, state.siteSelect),
		state.rangeLabel,
		container.NewGridWithColumns(2,
			container.NewBorder(nil, nil, widget.NewLabel("Min"), nil, state.lowSlider),
			container.NewBorder(nil, nil, widget.NewLabel("Max"), nil, state.highSlider),
		),
		marks,
		container.NewHBox(state.statusLabel, layout.NewSpacer(), hoverChk),
	)
	chartsColumn := container.NewVBox(
		state.pieCanvas,
		widget.NewSeparator(),
		container.NewStack(state.scatterCanvas, state.hover),
	)
	tabs := container.NewAppTabs(
		container.NewTabItem("Charts", container.NewVScroll(chartsColumn)),
		container.NewTabItem("Records", state.table),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	w.SetContent(container.NewBorder(controls, nil, nil, nil, tabs))

	// Redraw charts on window resize so they scale with width
	prevW := 0
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(state.redrawCharts)
				}
			}
		}
	}()

	// Now that canvases are ready, wire the controls
	state.siteSelect.OnChanged = state.onSiteChanged
	state.lowSlider.OnChanged = func(v float64) { state.onRangeChanged(v, true) }
	state.highSlider.OnChanged = func(v float64) { state.onRangeChanged(v, false) }
	hoverChk.OnChanged = state.setHoverEnabled

	buildMenus(state)
	state.refresh()
	logging.Infof("[viewer] showing %d launches across %d sites from %s", ds.Len(), len(ds.Sites()), ds.Source())
	w.ShowAndRun()
}

// menus and shortcuts
func buildMenus(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	exportPie := fyne.NewMenuItem("Export Pie Chart…", func() { exportChartPNG(state, state.pieCanvas, "success_pie_chart.png") })
	exportScatter := fyne.NewMenuItem("Export Scatter Chart…", func() {
		exportChartPNG(state, state.scatterCanvas, "success_payload_scatter_chart.png")
	})
	fileMenu := fyne.NewMenu("File",
		exportPie,
		exportScatter,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}
