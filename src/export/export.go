package export

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
	"github.com/iafilius/LaunchRecordsDashboard/src/render"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// Options controls a headless export run.
type Options struct {
	OutDir string
	// Selection is used as given; callers resolve the payload range first
	// (analysis.DefaultSelection for the full extent).
	Selection analysis.Selection
	// AllSites exports the "ALL" view plus one view per site, ignoring Selection.Site.
	AllSites bool
	XRange   types.PayloadRange
	Style    analysis.ChartStyle
	Width    int
	Height   int
	// SpecFormat is "json" (default) or "yaml".
	SpecFormat string
	// Parallel bounds concurrent renders; <=0 means GOMAXPROCS.
	Parallel int
}

// Result lists the files written for one view.
type Result struct {
	Site    string `json:"site"`
	Matched int    `json:"matched"`
	Pie     string `json:"pie"`
	Scatter string `json:"scatter"`
	Spec    string `json:"spec"`
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a site name into a file-name prefix, e.g. "KSC LC-39A" -> "ksc_lc_39a".
func Slug(site string) string {
	s := unsafeChars.ReplaceAllString(strings.ToLower(site), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "site"
	}
	return s
}

// Run renders the requested views into opts.OutDir. The dataset is only read,
// so views are rendered concurrently.
func Run(ctx context.Context, ds *dataset.Dataset, opts Options) ([]Result, error) {
	defer logging.TimeTrack(time.Now(), "export")
	if opts.OutDir == "" {
		return nil, fmt.Errorf("export: output directory is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 900, 420
	}
	if opts.XRange.High <= opts.XRange.Low {
		opts.XRange = types.PayloadRange{Low: 0, High: 10000}
	}
	if len(opts.Style.Palette) == 0 {
		opts.Style = analysis.DefaultChartStyle()
	}
	views := []analysis.Selection{opts.Selection}
	if opts.AllSites {
		views = views[:0]
		for _, site := range append([]string{analysis.AllSites}, ds.Sites()...) {
			views = append(views, analysis.Selection{Site: site, Payload: opts.Selection.Payload})
		}
	}

	prefixes := viewPrefixes(views)

	results := make([]Result, len(views))
	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, sel := range views {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := exportView(ds, sel, prefixes[i], opts)
			if err != nil {
				return fmt.Errorf("export %s: %w", sel.SiteLabel(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.Infof("[export] wrote %d view(s) to %s", len(results), opts.OutDir)
	return results, nil
}

// viewPrefixes assigns each view a unique file prefix. Sites whose slugs
// collide get a numeric suffix in view order.
func viewPrefixes(views []analysis.Selection) []string {
	out := make([]string, len(views))
	taken := map[string]bool{}
	for i, sel := range views {
		base := "all_sites"
		if !sel.IsAllSites() {
			base = Slug(sel.Site)
		}
		p := base
		for n := 2; taken[p]; n++ {
			p = fmt.Sprintf("%s_%d", base, n)
		}
		taken[p] = true
		out[i] = p
	}
	return out
}

func exportView(ds *dataset.Dataset, sel analysis.Selection, prefix string, opts Options) (Result, error) {
	dash := analysis.Project(ds, sel, opts.XRange, opts.Style)
	res := Result{
		Site:    sel.SiteLabel(),
		Matched: dash.Matched,
		Pie:     filepath.Join(opts.OutDir, prefix+"_pie.png"),
		Scatter: filepath.Join(opts.OutDir, prefix+"_scatter.png"),
	}
	pie, err := render.Pie(dash.Pie, opts.Width, opts.Height)
	if err != nil {
		return res, err
	}
	if err := writePNG(res.Pie, pie); err != nil {
		return res, err
	}
	sc, err := render.Scatter(dash.Scatter, opts.Width, opts.Height)
	if err != nil {
		return res, err
	}
	if err := writePNG(res.Scatter, sc); err != nil {
		return res, err
	}
	res.Spec, err = writeSpec(opts.OutDir, prefix, dash, opts.SpecFormat)
	if err != nil {
		return res, err
	}
	logging.Debugf("[export] %s matched=%d/%d", res.Site, dash.Matched, dash.Total)
	return res, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// EncodeSpec serializes a dashboard as indented JSON or YAML.
func EncodeSpec(dash analysis.Dashboard, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		b, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(dash)
	default:
		return nil, fmt.Errorf("unknown spec format %q", format)
	}
}

func writeSpec(dir, prefix string, dash analysis.Dashboard, format string) (string, error) {
	b, err := EncodeSpec(dash, format)
	if err != nil {
		return "", err
	}
	ext := ".json"
	if f := strings.ToLower(format); f == "yaml" || f == "yml" {
		ext = ".yaml"
	}
	path := filepath.Join(dir, prefix+"_charts"+ext)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
