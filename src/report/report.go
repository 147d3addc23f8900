package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// Mode controls the table output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// SiteSummary aggregates one launch site.
type SiteSummary struct {
	Site           string  `json:"site" yaml:"site"`
	Launches       int     `json:"launches" yaml:"launches"`
	Successes      int     `json:"successes" yaml:"successes"`
	SuccessRatePct float64 `json:"success_rate_pct" yaml:"success_rate_pct"`
	MinPayloadKg   float64 `json:"min_payload_kg" yaml:"min_payload_kg"`
	MaxPayloadKg   float64 `json:"max_payload_kg" yaml:"max_payload_kg"`
}

// SiteSummaries groups records by site, sorted by site name.
func SiteSummaries(records []types.LaunchRecord) []SiteSummary {
	by := map[string]*SiteSummary{}
	for _, r := range records {
		s, ok := by[r.LaunchSite]
		if !ok {
			s = &SiteSummary{Site: r.LaunchSite, MinPayloadKg: math.Inf(1), MaxPayloadKg: math.Inf(-1)}
			by[r.LaunchSite] = s
		}
		s.Launches++
		if r.Outcome == types.Success {
			s.Successes++
		}
		s.MinPayloadKg = math.Min(s.MinPayloadKg, r.PayloadMassKg)
		s.MaxPayloadKg = math.Max(s.MaxPayloadKg, r.PayloadMassKg)
	}
	out := make([]SiteSummary, 0, len(by))
	for _, s := range by {
		s.SuccessRatePct = float64(s.Successes) / float64(s.Launches) * 100
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Site < out[j].Site })
	return out
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func renderWriter(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// SitesTable renders per-site summaries with a totals footer.
func SitesTable(rows []SiteSummary, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Launch Site", "Launches", "Successes", "Success %", "Min kg", "Max kg"})
	launches, successes := 0, 0
	for _, s := range rows {
		w.AppendRow(table.Row{s.Site, s.Launches, s.Successes, fmt.Sprintf("%.1f", s.SuccessRatePct), fmt.Sprintf("%.0f", s.MinPayloadKg), fmt.Sprintf("%.0f", s.MaxPayloadKg)})
		launches += s.Launches
		successes += s.Successes
	}
	rate := 0.0
	if launches > 0 {
		rate = float64(successes) / float64(launches) * 100
	}
	w.AppendFooter(table.Row{"Total", launches, successes, fmt.Sprintf("%.1f", rate), "", ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return renderWriter(w, m)
}

// RecordsTable lists filtered launches, followed by any passthrough columns.
func RecordsTable(records []types.LaunchRecord, extraColumns []string, m Mode) string {
	w := newWriter(m)
	header := table.Row{"Flight", "Launch Site", "Payload kg", "Outcome", "Booster Version", "Category"}
	for _, c := range extraColumns {
		header = append(header, c)
	}
	w.AppendHeader(header)
	for _, r := range records {
		row := table.Row{r.FlightNumber, r.LaunchSite, fmt.Sprintf("%.0f", r.PayloadMassKg), r.Outcome.String(), r.BoosterVersion, r.BoosterVersionCategory}
		for _, c := range extraColumns {
			row = append(row, r.Extra[c])
		}
		w.AppendRow(row)
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return renderWriter(w, m)
}

// PieLine is the one-line textual form of the pie chart.
func PieLine(p analysis.PieSpec) string {
	if p.Empty() {
		return p.Title + ": no launches"
	}
	parts := make([]string, 0, len(p.Slices))
	for _, s := range p.Slices {
		parts = append(parts, fmt.Sprintf("%s=%d (%.1f%%)", s.Label, s.Count, s.Percent))
	}
	return p.Title + ": " + strings.Join(parts, " ")
}
