// Package report serializes an aggregated weather report to a file and
// renders the human-readable console summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/weather"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Writer persists a report to Path in the selected Format and prints the
// summary to Out (stdout when nil).
type Writer struct {
	Format string
	Path   string
	Out    io.Writer
}

// Persist writes the report to the output file. Failures are logged and
// swallowed: the in-memory report was still produced and summarized.
func (w *Writer) Persist(rep *weather.Report) {
	var err error
	switch w.Format {
	case FormatCSV:
		err = writeCSV(w.Path, rep)
	default:
		err = writeJSON(w.Path, rep)
	}
	if err != nil {
		logger.Errorf("failed to save data to %s: %v", w.Path, err)
		return
	}
	logger.Infof("data successfully saved to %s", w.Path)
}

// writeJSON writes the flat city mapping with 4-space indentation and
// without HTML escaping, so non-ASCII city names stay readable.
func writeJSON(path string, rep *weather.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(rep.Flatten()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeCSV writes one row per city in input order plus a labeled stats row.
func writeCSV(path string, rep *weather.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)

	if err := cw.Write([]string{"city", "temperature", "windspeed", "winddirection", "timestamp"}); err != nil {
		f.Close()
		return err
	}

	for _, name := range rep.CityNames() {
		e, _ := rep.City(name)
		record := []string{
			name,
			formatFloat(e.Temperature),
			formatFloat(e.Windspeed),
			formatFloat(e.Winddirection),
			formatString(e.Timestamp),
		}
		if err := cw.Write(record); err != nil {
			f.Close()
			return err
		}
	}

	s := rep.Stats()
	statsRecord := []string{
		"stats",
		"min=" + formatFloat(s.Min),
		"max=" + formatFloat(s.Max),
		"average=" + formatFloat(s.Average),
	}
	if err := cw.Write(statsRecord); err != nil {
		f.Close()
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
