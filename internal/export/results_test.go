package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/sim"
)

func sampleResults() []*sim.Result {
	return []*sim.Result{
		{Ticks: 100, Metrics: map[string]float64{"revolutions": 2, "transition_ticks": 0}},
		{Ticks: 100, Skipped: 1, Metrics: map[string]float64{"revolutions": 4, "transition_ticks": 10}},
	}
}

func TestNewStats(t *testing.T) {
	s := NewStats(7, sampleResults())
	if len(s.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(s.Runs))
	}
	if s.Runs[1].Seed != 8 {
		t.Errorf("expected seed 8, got %d", s.Runs[1].Seed)
	}
	if s.Mean["revolutions"] != 3 || s.Mean["transition_ticks"] != 5 {
		t.Errorf("unexpected means %v", s.Mean)
	}
	names := s.MetricNames()
	if len(names) != 2 || names[0] != "revolutions" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewStats(1, sampleResults())); err != nil {
		t.Fatal(err)
	}
	var back StatsData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if back.Runs[0].Metrics["revolutions"] != 2 {
		t.Errorf("metrics lost: %+v", back.Runs[0])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, NewStats(1, sampleResults())); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	want := []string{"seed", "ticks", "skipped", "revolutions", "transition_ticks"}
	for i, h := range want {
		if rows[0][i] != h {
			t.Errorf("header %d: expected %s, got %s", i, h, rows[0][i])
		}
	}
	if rows[2][2] != "1" || rows[2][3] != "4" {
		t.Errorf("unexpected row %v", rows[2])
	}
}

func TestWriteStatsFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStats(1, sampleResults())

	for _, name := range []string{"stats.json", "stats.csv"} {
		path := filepath.Join(dir, name)
		if err := WriteStatsFile(path, s); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s: file not written", name)
		}
	}
	if err := WriteStatsFile(filepath.Join(dir, "stats.txt"), s); err == nil {
		t.Error("expected unsupported format error")
	}
}
