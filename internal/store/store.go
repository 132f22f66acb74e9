package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
	"github.com/san-kum/eos/internal/sweep"
)

var ErrNoRun = errors.New("store: run not found")

// Store keeps saved sweeps under baseDir, one directory per run holding
// metadata.json and points.csv.
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
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Fluid      eos.Info        `json:"fluid"`
	Model      string          `json:"model"`
	Args       []string        `json:"args,omitempty"`
	Numerics   eos.Numerics    `json:"numerics"`
	Domain     string          `json:"domain"`
	Vary       string          `json:"vary,omitempty"`
	Fixed      float64         `json:"fixed,omitempty"`
	From       float64         `json:"from"`
	To         float64         `json:"to"`
	Points     int             `json:"points"`
	Log        bool            `json:"log,omitempty"`
	Properties []string        `json:"properties"`
	Worst      string          `json:"worst"`
	Summaries  []sweep.Summary `json:"summaries"`
}

// Run identifies the engine a sweep was computed with.
type Run struct {
	Model  string
	Args   []string
	Engine *eos.Engine
}

// Save writes a sweep result and returns its run ID.
func (s *Store) Save(run Run, res *sweep.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	spec := res.Spec
	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		Fluid:      run.Engine.Info(),
		Model:      run.Model,
		Args:       run.Args,
		Numerics:   run.Engine.Numerics(),
		Domain:     spec.Domain.String(),
		From:       spec.From,
		To:         spec.To,
		Points:     spec.Points,
		Log:        spec.Log,
		Properties: spec.Properties,
		Worst:      res.Worst.String(),
		Summaries:  res.Summaries(),
	}
	if !spec.Domain.OneInput() {
		meta.Vary = spec.Vary.String()
		meta.Fixed = spec.Fixed
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writePoints(filepath.Join(runDir, "points.csv"), res); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// writePoints writes one row per state point: the inputs, the outputs, and
// the worst code of the point as severity and cause.
func writePoints(path string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := append(append(field.Fields{}, res.Inputs...), res.Outputs...)

	header := append(cols.Names(), "severity", "cause")
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < res.Errors.Len(); i++ {
		row := make([]string, 0, len(header))
		for _, c := range cols {
			row = append(row, formatFloat(c.At(i)))
		}
		code := res.Errors.At(i)
		row = append(row, code.Severity.String(), strconv.Itoa(int(code.Cause)))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the saved runs, newest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPoints reads back the value columns of a run as fields, with the
// per-point codes.
func (s *Store) LoadPoints(runID string) (field.Fields, *field.ErrorField, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", runID, err)
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, nil, fmt.Errorf("%s: points.csv has no header", runID)
	}

	header := records[0]
	nvals := len(header) - 2
	rows := records[1:]
	fs := field.NewFields(len(rows), header[:nvals]...)
	errs := field.NewErrorField(len(rows))

	for i, record := range rows {
		for j := 0; j < nvals; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d, %s: %w", runID, i+1, header[j], err)
			}
			fs[j].Set(i, v)
		}
		sev, err := eos.ParseSeverity(record[nvals])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: row %d: %w", runID, i+1, err)
		}
		cause, err := strconv.Atoi(record[nvals+1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: row %d, cause: %w", runID, i+1, err)
		}
		errs.Set(i, eos.NewCode(eos.Cause(cause), sev))
	}
	return fs, errs, nil
}
