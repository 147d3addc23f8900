package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/export"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
)

// runScreenshotsMode renders the pie and scatter charts and writes them as PNGs under outDir.
// It runs headlessly without creating a UI window. site "ALL" renders the
// all-sites view plus one view per site.
func runScreenshotsMode(ctx context.Context, ds *dataset.Dataset, cfg *config.Config, outDir, site string) ([]export.Result, error) {
	st := newState(ds, cfg)
	site = strings.TrimSpace(site)
	all := site == "" || strings.EqualFold(site, analysis.AllSites)
	if !all {
		if !ds.HasSite(site) {
			return nil, fmt.Errorf("unknown launch site %q", site)
		}
		st.sel.Site = site
	}
	res, err := export.Run(ctx, ds, export.Options{
		OutDir:    outDir,
		Selection: st.sel,
		AllSites:  all,
		XRange:    st.xRange,
		Style:     st.style,
		Width:     cfg.Charts.Width,
		Height:    cfg.Charts.Height,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range res {
		logging.Infof("[viewer] %s: %d launches -> %s, %s", r.Site, r.Matched, filepath.Base(r.Pie), filepath.Base(r.Scatter))
	}
	return res, nil
}
