package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
)

// probeText summarises what the dashboard would show at startup.
func probeText(ds *dataset.Dataset) string {
	return fmt.Sprintf("%d launches across %d sites, payload %.0f–%.0f kg",
		ds.Len(), len(ds.Sites()), ds.MinPayload(), ds.MaxPayload())
}

func main() {
	var file string
	var wait time.Duration
	flag.StringVar(&file, "file", "", "Path to spacex_launch_dash.csv (default: dataset.path from config)")
	flag.DurationVar(&wait, "wait", 5*time.Second, "Close the window after this long")
	flag.Parse()
	defer logging.Sync()

	cfg, err := config.Load(nil, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if file == "" {
		file = cfg.Dataset.Path
	}
	ds, err := dataset.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("[fyneprobe] starting minimal Fyne app")
	a := app.New()
	w := a.NewWindow("Launch Dashboard Probe")
	w.SetContent(container.NewVBox(
		widget.NewLabel(probeText(ds)),
		widget.NewLabel(fmt.Sprintf("Window will close in %s", wait)),
	))
	go func() {
		time.Sleep(wait)
		fmt.Println("[fyneprobe] closing window via fyne.Do")
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}
