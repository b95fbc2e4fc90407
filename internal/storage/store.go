// Package storage persists run results: metadata as JSON, the field and
// moment history as CSV. It is the persistence boundary for
// diagnostics; the solver never touches it mid-step.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/vlasim/internal/config"
	"github.com/san-kum/vlasim/internal/diagnostics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Nx         int                `json:"nx"`
	Nv         int                `json:"nv"`
	Xmax       float64            `json:"xmax"`
	Vmax       float64            `json:"vmax"`
	Dt         float64            `json:"dt"`
	Nt         int                `json:"nt"`
	Nu         float64            `json:"nu"`
	Operator   string             `json:"operator"`
	Integrator string             `json:"integrator"`
	DriverK0   float64            `json:"driver_k0"`
	DriverW0   float64            `json:"driver_w0"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, hist *diagnostics.FieldHistory, health *diagnostics.Health, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("vlasim_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Nx:         cfg.Nx,
		Nv:         cfg.Nv,
		Xmax:       cfg.Xmax,
		Vmax:       cfg.Vmax,
		Dt:         cfg.Dt,
		Nt:         cfg.Nt,
		Nu:         cfg.Nu,
		Operator:   cfg.Operator,
		Integrator: cfg.Integrator,
		DriverK0:   cfg.Driver.K0,
		DriverW0:   cfg.Driver.W0,
		Metrics:    metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "ek1_amp", "ek1_re", "density", "momentum", "thermal"}); err != nil {
		return "", err
	}

	for i := range hist.Times {
		row := []string{
			strconv.FormatFloat(hist.Times[i], 'g', 9, 64),
			strconv.FormatFloat(hist.Amp[i], 'g', 9, 64),
			strconv.FormatFloat(hist.Re[i], 'g', 9, 64),
		}
		// Runs without a health observer leave the moment columns
		// empty rather than writing fabricated zeros.
		if health != nil && i < len(health.Density) {
			row = append(row,
				strconv.FormatFloat(health.Density[i], 'g', 9, 64),
				strconv.FormatFloat(health.Momentum[i], 'g', 9, 64),
				strconv.FormatFloat(health.Thermal[i], 'g', 9, 64),
			)
		} else {
			row = append(row, "", "", "")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// History holds the columns of a stored run's history.csv.
type History struct {
	Times    []float64
	Amp      []float64
	Re       []float64
	Density  []float64
	Momentum []float64
	Thermal  []float64
}

func (s *Store) LoadHistory(runID string) (*History, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &History{}, nil
	}

	h := &History{}
	for _, rec := range records[1:] {
		if len(rec) < 3 {
			continue
		}
		vals := make([]float64, 3)
		ok := true
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		h.Times = append(h.Times, vals[0])
		h.Amp = append(h.Amp, vals[1])
		h.Re = append(h.Re, vals[2])

		// Moment columns are present only when a health observer ran.
		if len(rec) < 6 || rec[3] == "" {
			continue
		}
		density, err1 := strconv.ParseFloat(rec[3], 64)
		momentum, err2 := strconv.ParseFloat(rec[4], 64)
		thermal, err3 := strconv.ParseFloat(rec[5], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		h.Density = append(h.Density, density)
		h.Momentum = append(h.Momentum, momentum)
		h.Thermal = append(h.Thermal, thermal)
	}
	return h, nil
}
