package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/san-kum/orrery/internal/sim"
)

type RunData struct {
	Seed    int64              `json:"seed"`
	Ticks   int                `json:"ticks"`
	Skipped int                `json:"skipped"`
	Metrics map[string]float64 `json:"metrics"`
}

// StatsData summarizes an ensemble of runs seeded seedStart, seedStart+1, ...
type StatsData struct {
	Runs []RunData          `json:"runs"`
	Mean map[string]float64 `json:"mean"`
}

func NewStats(seedStart int64, results []*sim.Result) *StatsData {
	data := &StatsData{
		Runs: make([]RunData, 0, len(results)),
		Mean: make(map[string]float64),
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		data.Runs = append(data.Runs, RunData{
			Seed:    seedStart + int64(i),
			Ticks:   res.Ticks,
			Skipped: res.Skipped,
			Metrics: res.Metrics,
		})
		for k, v := range res.Metrics {
			data.Mean[k] += v
		}
	}
	if n := len(data.Runs); n > 0 {
		for k := range data.Mean {
			data.Mean[k] /= float64(n)
		}
	}
	return data
}

// MetricNames returns the metric names in sorted order.
func (s *StatsData) MetricNames() []string {
	names := make([]string, 0, len(s.Mean))
	for k := range s.Mean {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func WriteJSON(w io.Writer, s *StatsData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// WriteCSV writes one row per run: seed, ticks, skipped, then each metric.
func WriteCSV(w io.Writer, s *StatsData) error {
	names := s.MetricNames()
	cw := csv.NewWriter(w)

	header := append([]string{"seed", "ticks", "skipped"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, run := range s.Runs {
		row := []string{
			strconv.FormatInt(run.Seed, 10),
			strconv.Itoa(run.Ticks),
			strconv.Itoa(run.Skipped),
		}
		for _, n := range names {
			row = append(row, strconv.FormatFloat(run.Metrics[n], 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatsFile picks the format from the extension of path.
func WriteStatsFile(path string, s *StatsData) error {
	var write func(io.Writer, *StatsData) error
	switch ext := filepath.Ext(path); ext {
	case ".json":
		write = WriteJSON
	case ".csv":
		write = WriteCSV
	default:
		return fmt.Errorf("export %s: unsupported format %q", path, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return write(file, s)
}
