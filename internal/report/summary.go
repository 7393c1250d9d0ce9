package report

import (
	"fmt"
	"os"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/weather"
)

// Summarize renders the report to the summary writer: one line per city,
// then the statistics block. Only true absence renders as "n/a"; a computed
// value of exactly zero is shown as 0.00.
func (w *Writer) Summarize(rep *weather.Report) {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "--- Weather Summary ---")

	for _, name := range rep.CityNames() {
		e, _ := rep.City(name)
		fmt.Fprintf(out, "%-20s  Temp: %s°C  Wind Speed: %s km/h  Time: %s\n",
			name, plainValue(e.Temperature), plainValue(e.Windspeed), timeValue(e.Timestamp))
	}

	s := rep.Stats()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Max Temp: %s\n", tempValue(s.Max))
	fmt.Fprintf(out, "  Min Temp: %s\n", tempValue(s.Min))
	fmt.Fprintf(out, "  Avg Temp: %s\n", tempValue(s.Average))
	fmt.Fprintln(out, "------------------------")
}

func plainValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return trimFloat(*v)
}

func tempValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f°C", *v)
}

func timeValue(v *string) string {
	if v == nil {
		return "n/a"
	}
	return *v
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
