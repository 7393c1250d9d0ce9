package weather

// Coordinates is a geocoded place. Name is the resolved name reported by the
// geocoder, falling back to the query string when the upstream omits it.
type Coordinates struct {
	Lat  float64
	Lon  float64
	Name string
}

// Reading holds current conditions for one coordinate pair. Nil means the
// upstream omitted the field, which is distinct from a present zero.
type Reading struct {
	Temperature   *float64
	Windspeed     *float64
	Winddirection *float64
	Weathercode   *int
	Timestamp     *string
}

// Entry is the per-city slice of a Reading that lands in the report.
// Weathercode is fetched but intentionally not reported.
type Entry struct {
	Temperature   *float64 `json:"temperature"`
	Windspeed     *float64 `json:"windspeed"`
	Winddirection *float64 `json:"winddirection"`
	Timestamp     *string  `json:"timestamp"`
}

// Stats is the min/max/average reduction over collected temperatures.
// All fields are nil when no temperatures were collected.
type Stats struct {
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Average *float64 `json:"average"`
}

// Report is the aggregated outcome of one pipeline run: one entry per
// successfully fetched city plus the temperature statistics. City order
// follows input order; a duplicate resolved name overwrites the entry but
// keeps its original position.
type Report struct {
	names  []string
	cities map[string]Entry
	stats  Stats
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{cities: make(map[string]Entry)}
}

// Add records an entry under the resolved city name.
func (r *Report) Add(name string, e Entry) {
	if _, ok := r.cities[name]; !ok {
		r.names = append(r.names, name)
	}
	r.cities[name] = e
}

// SetStats stores the statistics summary.
func (r *Report) SetStats(s Stats) {
	r.stats = s
}

// Stats returns the statistics summary.
func (r *Report) Stats() Stats {
	return r.stats
}

// CityNames returns resolved city names in input order.
func (r *Report) CityNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// City returns the entry for a resolved city name.
func (r *Report) City(name string) (Entry, bool) {
	e, ok := r.cities[name]
	return e, ok
}

// Len reports the number of city entries.
func (r *Report) Len() int {
	return len(r.cities)
}

// Flatten renders the report as the flat mapping used by the output file:
// one key per city plus the reserved "stats" key. The stats entry is written
// last, so a city that literally resolves to "stats" is overwritten by it.
func (r *Report) Flatten() map[string]interface{} {
	m := make(map[string]interface{}, len(r.cities)+1)
	for name, e := range r.cities {
		m[name] = e
	}
	m["stats"] = r.stats
	return m
}
