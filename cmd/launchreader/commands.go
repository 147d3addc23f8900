package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/export"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
	"github.com/iafilius/LaunchRecordsDashboard/src/report"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// selectionFlags are shared by filter and render.
type selectionFlags struct {
	site string
	low  float64
	high float64
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.site, "site", analysis.AllSites, "launch site, or ALL")
	cmd.Flags().Float64Var(&s.low, "low", 0, "lower payload bound in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&s.high, "high", 0, "upper payload bound in kg (default: dataset maximum)")
}

// selection resolves the flags against the dataset; unset bounds fall back to
// the dataset's payload extent.
func (s *selectionFlags) selection(cmd *cobra.Command, ds *dataset.Dataset) (analysis.Selection, error) {
	sel := analysis.DefaultSelection(ds)
	sel.Site = s.site
	if cmd.Flags().Changed("low") {
		sel.Payload.Low = s.low
	}
	if cmd.Flags().Changed("high") {
		sel.Payload.High = s.high
	}
	if sel.Payload.Low > sel.Payload.High {
		return sel, fmt.Errorf("invalid payload range: low %.0f > high %.0f", sel.Payload.Low, sel.Payload.High)
	}
	if !sel.IsAllSites() && !ds.HasSite(sel.Site) {
		logging.Warnf("[reader] site %q is not in %s; result will be empty", sel.Site, ds.Source())
	}
	return sel, nil
}

// NewSitesCommand lists per-site launch summaries.
func NewSitesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "Summarise launches per site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.loadDataset()
			if err != nil {
				return err
			}
			rows := report.SiteSummaries(ds.Records())
			out := opts.formatter(cmd.OutOrStdout())
			if out.Structured() {
				return out.Data(rows)
			}
			return out.Text(report.SitesTable(rows, out.TableMode()))
		},
	}
}

// filterResult is the structured output of the filter command.
type filterResult struct {
	Selection analysis.Selection   `json:"selection" yaml:"selection"`
	Total     int                  `json:"total" yaml:"total"`
	Matched   int                  `json:"matched" yaml:"matched"`
	Pie       analysis.PieSpec     `json:"pie" yaml:"pie"`
	Records   []types.LaunchRecord `json:"records" yaml:"records"`
}

// NewFilterCommand prints the launches matching a site and payload range.
func NewFilterCommand(opts *RootOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List launches for a site and payload range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.loadDataset()
			if err != nil {
				return err
			}
			sel, err := flags.selection(cmd, ds)
			if err != nil {
				return err
			}
			style := analysis.StyleFromConfig(opts.cfg.Charts)
			xRange := types.PayloadRange{Low: opts.cfg.UI.PayloadMin, High: opts.cfg.UI.PayloadMax}
			dash := analysis.Project(ds, sel, xRange, style)
			out := opts.formatter(cmd.OutOrStdout())
			if out.Structured() {
				return out.Data(filterResult{Selection: sel, Total: dash.Total, Matched: dash.Matched, Pie: dash.Pie, Records: dash.Records})
			}
			if err := out.Text(report.RecordsTable(dash.Records, ds.ExtraColumns(), out.TableMode())); err != nil {
				return err
			}
			return out.Text(report.PieLine(dash.Pie))
		},
	}
	flags.register(cmd)
	return cmd
}

// NewRenderCommand writes chart PNGs and chart specs without a window.
func NewRenderCommand(opts *RootOptions) *cobra.Command {
	flags := &selectionFlags{}
	var outDir, specFormat string
	var allSites bool
	var parallel int
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the pie and scatter charts to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if specFormat != "json" && specFormat != "yaml" {
				return fmt.Errorf("invalid spec format %q: must be json or yaml", specFormat)
			}
			ds, err := opts.loadDataset()
			if err != nil {
				return err
			}
			sel, err := flags.selection(cmd, ds)
			if err != nil {
				return err
			}
			cfg := opts.cfg
			res, err := export.Run(cmd.Context(), ds, export.Options{
				OutDir:     outDir,
				Selection:  sel,
				AllSites:   allSites,
				XRange:     types.PayloadRange{Low: cfg.UI.PayloadMin, High: cfg.UI.PayloadMax},
				Style:      analysis.StyleFromConfig(cfg.Charts),
				Width:      cfg.Charts.Width,
				Height:     cfg.Charts.Height,
				SpecFormat: specFormat,
				Parallel:   parallel,
			})
			if err != nil {
				return err
			}
			out := opts.formatter(cmd.OutOrStdout())
			if out.Structured() {
				return out.Data(res)
			}
			for _, r := range res {
				if err := out.Text(fmt.Sprintf("%s: %d launches -> %s %s %s", r.Site, r.Matched, r.Pie, r.Scatter, r.Spec)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "charts", "output directory")
	cmd.Flags().BoolVar(&allSites, "all-sites", false, "render the ALL view and every site")
	cmd.Flags().StringVar(&specFormat, "spec-format", "json", "chart spec format (json|yaml)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent renders (0 = GOMAXPROCS)")
	return cmd
}
