package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/LaunchRecordsDashboard/src/report"
)

// OutputFormatter writes either a rendered text table or a structured document.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func (o *RootOptions) formatter(w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: w}
}

// Structured reports whether data documents are written instead of tables.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "yaml"
}

// TableMode maps the text formats onto report table modes.
func (f *OutputFormatter) TableMode() report.Mode {
	if f.Format == "markdown" {
		return report.Markdown
	}
	return report.ASCII
}

// Data writes v as JSON or YAML.
func (f *OutputFormatter) Data(v any) error {
	switch f.Format {
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Text writes s followed by a newline.
func (f *OutputFormatter) Text(s string) error {
	_, err := fmt.Fprintln(f.Writer, s)
	return err
}
