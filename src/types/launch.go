package types

// Outcome is the binary mission result stored in the "class" column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// Label is the short legend text used on charts.
func (o Outcome) Label() string {
	if o == Success {
		return "Success"
	}
	return "Failed"
}

// LaunchRecord is one row of the launch dataset. Records are never mutated after load.
type LaunchRecord struct {
	FlightNumber           int               `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
	LaunchSite             string            `json:"launch_site" yaml:"launch_site"`
	PayloadMassKg          float64           `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	Outcome                Outcome           `json:"class" yaml:"class"`
	BoosterVersion         string            `json:"booster_version,omitempty" yaml:"booster_version,omitempty"`
	BoosterVersionCategory string            `json:"booster_version_category" yaml:"booster_version_category"`
	// passthrough columns (hover/table only)
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// PayloadRange is an inclusive [Low, High] payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether kg lies within the range, both ends inclusive.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}
