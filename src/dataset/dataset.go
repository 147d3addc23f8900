package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/logging"
	"github.com/iafilius/LaunchRecordsDashboard/src/types"
)

// Column names of the launch CSV.
const (
	ColFlightNumber   = "Flight Number"
	ColLaunchSite     = "Launch Site"
	ColClass          = "class"
	ColPayloadMass    = "Payload Mass (kg)"
	ColBoosterVersion = "Booster Version"
	ColBoosterCat     = "Booster Version Category"
)

var requiredColumns = []string{ColLaunchSite, ColPayloadMass, ColClass, ColBoosterCat}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrEmptyDataset  = errors.New("dataset has no rows")
)

// Dataset is the read-only launch table. It is built once by Load/Read and
// never mutated afterwards, so a *Dataset may be shared by any number of readers.
type Dataset struct {
	source       string
	records      []types.LaunchRecord
	extraColumns []string
	minPayload   float64
	maxPayload   float64
	sites        []string
	categories   []string
}

// Load reads the CSV at path. Any error is meant to abort startup; there is no partial load.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	ds, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ds.source = path
	logging.Infof("[dataset] loaded %d launches from %s (sites=%d payload=%.0f..%.0fkg)", ds.Len(), path, len(ds.sites), ds.minPayload, ds.maxPayload)
	return ds, nil
}

// Read parses launch records from r. Columns are located by header name.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			// pandas index column
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	known := map[string]bool{ColFlightNumber: true, ColLaunchSite: true, ColClass: true, ColPayloadMass: true, ColBoosterVersion: true, ColBoosterCat: true}
	var extras []string
	for name := range idx {
		if !known[name] {
			extras = append(extras, name)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return idx[extras[i]] < idx[extras[j]] })

	ds := &Dataset{extraColumns: extras}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		rec, err := parseRow(row, idx, extras)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		ds.records = append(ds.records, rec)
	}
	if len(ds.records) == 0 {
		return nil, ErrEmptyDataset
	}
	ds.index()
	return ds, nil
}

// FromRecords builds a Dataset from already-parsed rows (fixtures, other sources).
// The slice is copied.
func FromRecords(records []types.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	ds := &Dataset{records: append([]types.LaunchRecord(nil), records...)}
	for i, r := range ds.records {
		if r.PayloadMassKg < 0 || math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0) {
			return nil, fmt.Errorf("%w: record %d: payload mass %v out of range", ErrMalformedRow, i, r.PayloadMassKg)
		}
	}
	ds.index()
	return ds, nil
}

func parseRow(row []string, idx map[string]int, extras []string) (types.LaunchRecord, error) {
	field := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}
	var rec types.LaunchRecord
	rec.LaunchSite, _ = field(ColLaunchSite)
	if rec.LaunchSite == "" {
		return rec, errors.New("empty launch site")
	}
	raw, _ := field(ColPayloadMass)
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rec, fmt.Errorf("payload mass %q: %v", raw, err)
	}
	if kg < 0 || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return rec, fmt.Errorf("payload mass %q out of range", raw)
	}
	rec.PayloadMassKg = kg
	raw, _ = field(ColClass)
	cls, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil:
		return rec, fmt.Errorf("class %q: %v", raw, err)
	case cls == 1:
		rec.Outcome = types.Success
	case cls == 0:
		rec.Outcome = types.Failure
	default:
		return rec, fmt.Errorf("class %q is not 0 or 1", raw)
	}
	rec.BoosterVersionCategory, _ = field(ColBoosterCat)
	rec.BoosterVersion, _ = field(ColBoosterVersion)
	if raw, ok := field(ColFlightNumber); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return rec, fmt.Errorf("flight number %q: %v", raw, err)
		}
		rec.FlightNumber = n
	}
	if len(extras) > 0 {
		rec.Extra = make(map[string]string, len(extras))
		for _, name := range extras {
			v, _ := field(name)
			rec.Extra[name] = v
		}
	}
	return rec, nil
}

// index derives the payload bounds and the distinct sites/categories.
func (ds *Dataset) index() {
	ds.minPayload = math.Inf(1)
	ds.maxPayload = math.Inf(-1)
	sites := map[string]struct{}{}
	cats := map[string]struct{}{}
	for _, r := range ds.records {
		ds.minPayload = math.Min(ds.minPayload, r.PayloadMassKg)
		ds.maxPayload = math.Max(ds.maxPayload, r.PayloadMassKg)
		sites[r.LaunchSite] = struct{}{}
		cats[r.BoosterVersionCategory] = struct{}{}
	}
	ds.sites = sortedKeys(sites)
	ds.categories = sortedKeys(cats)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Records returns a copy of the rows in file order. Extra maps are shared and must not be modified.
func (ds *Dataset) Records() []types.LaunchRecord {
	out := make([]types.LaunchRecord, len(ds.records))
	copy(out, ds.records)
	return out
}

// Each calls fn for every record in file order without copying the table.
func (ds *Dataset) Each(fn func(types.LaunchRecord)) {
	for _, r := range ds.records {
		fn(r)
	}
}

func (ds *Dataset) Len() int            { return len(ds.records) }
func (ds *Dataset) MinPayload() float64 { return ds.minPayload }
func (ds *Dataset) MaxPayload() float64 { return ds.maxPayload }
func (ds *Dataset) Source() string      { return ds.source }

// Sites returns the sorted distinct launch site names.
func (ds *Dataset) Sites() []string { return append([]string(nil), ds.sites...) }

// Categories returns the sorted distinct booster version categories.
func (ds *Dataset) Categories() []string { return append([]string(nil), ds.categories...) }

// ExtraColumns lists passthrough column names in file order.
func (ds *Dataset) ExtraColumns() []string { return append([]string(nil), ds.extraColumns...) }

// HasSite reports whether name is one of the loaded sites (exact match).
func (ds *Dataset) HasSite(name string) bool {
	i := sort.SearchStrings(ds.sites, name)
	return i < len(ds.sites) && ds.sites[i] == name
}
