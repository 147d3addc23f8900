package analysis

import (
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/config"
)

// StyleFromConfig overlays configured colours on the default style.
func StyleFromConfig(c config.ChartsConfig) ChartStyle {
	st := DefaultChartStyle()
	if c.SuccessColor != "" {
		st.SuccessColor = normalizeHex(c.SuccessColor)
	}
	if c.FailureColor != "" {
		st.FailureColor = normalizeHex(c.FailureColor)
	}
	if c.OutlineColor != "" {
		st.OutlineColor = normalizeHex(c.OutlineColor)
	}
	if c.OutlineWidth > 0 {
		st.OutlineWidth = c.OutlineWidth
	}
	st.Hole = c.Hole
	return st
}

func normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}
