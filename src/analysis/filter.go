package analysis

import (
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/dataset"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// AllSites is the site selection that disables the site constraint.
const AllSites = "ALL"

// Selection is the current state of the dashboard controls. It is rebuilt on
// every interaction and carries no identity beyond one render cycle.
type Selection struct {
	Site    string             `json:"site" yaml:"site"`
	Payload types.PayloadRange `json:"payload" yaml:"payload"`
}

// DefaultSelection is what the dashboard shows at startup: every site over the
// dataset's own payload bounds.
func DefaultSelection(ds *dataset.Dataset) Selection {
	return Selection{
		Site:    AllSites,
		Payload: types.PayloadRange{Low: ds.MinPayload(), High: ds.MaxPayload()},
	}
}

// IsAllSites reports whether the selection spans every site. The sentinel is
// matched case-insensitively; real site names are always matched exactly.
func (s Selection) IsAllSites() bool {
	return s.Site == "" || strings.EqualFold(s.Site, AllSites)
}

// SiteLabel is the human form used in chart titles.
func (s Selection) SiteLabel() string {
	if s.IsAllSites() {
		return "All Sites"
	}
	return s.Site
}

// Matches applies both constraints to one record.
func (s Selection) Matches(r types.LaunchRecord) bool {
	if !s.IsAllSites() && r.LaunchSite != s.Site {
		return false
	}
	return s.Payload.Contains(r.PayloadMassKg)
}

// Filter returns the records of ds that satisfy sel, in dataset order. An
// empty result is valid.
func Filter(ds *dataset.Dataset, sel Selection) []types.LaunchRecord {
	out := []types.LaunchRecord{}
	ds.Each(func(r types.LaunchRecord) {
		if sel.Matches(r) {
			out = append(out, r)
		}
	})
	return out
}

// FilterRecords is Filter over a plain slice.
func FilterRecords(records []types.LaunchRecord, sel Selection) []types.LaunchRecord {
	out := make([]types.LaunchRecord, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
