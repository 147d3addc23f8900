package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iafilius/LaunchRecordsDashboard/src/config"
	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "text" | "markdown" | "json" | "yaml"

	v   *viper.Viper
	cfg *config.Config
	ds  *dataset.Dataset
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "markdown", "json", "yaml"}

// NewRootCommand creates the root command for the launch records reader.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{v: config.New()}

	cmd := &cobra.Command{
		Use:           "launchreader",
		Short:         "Query and render SpaceX launch records",
		Long:          "Summarise, filter and render the launch records dataset without opening the dashboard window.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load(opts.v, opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if !logging.ValidLevel(cfg.Log.Level) {
				return fmt.Errorf("invalid log level %q", cfg.Log.Level)
			}
			logging.SetLogLevel(cfg.Log.Level)
			if f := cfg.UsedFile(); f != "" {
				logging.Debugf("[reader] config loaded from %s", f)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "Path to launchdash.yaml")
	pf.String("file", "", "Path to spacex_launch_dash.csv (overrides dataset.path)")
	pf.String("log-level", "", "debug|info|warn|error")
	pf.StringVar(&opts.Format, "format", "text", "output format (text|markdown|json|yaml)")
	_ = opts.v.BindPFlag("dataset.path", pf.Lookup("file"))
	_ = opts.v.BindPFlag("log.level", pf.Lookup("log-level"))

	cmd.AddCommand(NewSitesCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

// loadDataset loads the configured CSV once per invocation.
func (o *RootOptions) loadDataset() (*dataset.Dataset, error) {
	if o.ds != nil {
		return o.ds, nil
	}
	ds, err := dataset.Load(o.cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	o.ds = ds
	return ds, nil
}
