package fluids

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/eos/internal/eos"
)

// SatRow is one line of a saturation table.
type SatRow struct {
	P       float64 `csv:"p"`
	TSat    float64 `csv:"T_sat"`
	HLSat   float64 `csv:"h_l_sat"`
	HVSat   float64 `csv:"h_v_sat"`
	RhoLSat float64 `csv:"rho_l_sat"`
	RhoVSat float64 `csv:"rho_v_sat"`
}

// Table is a saturation-only fluid interpolated piecewise linearly in
// pressure from a CSV table. Pressures outside the table answer
// CauseOutsideTable.
type Table struct {
	Name string
	File string

	rows  []*SatRow
	pMin  float64
	pMax  float64
	curve map[eos.Property]*interp.PiecewiseLinear
}

// OpenTable loads the table named by the "file" parameter.
func OpenTable(p Params) (*Table, error) {
	path := p.Text("file", "")
	if path == "" {
		return nil, fmt.Errorf("%w: file is required", ErrBadParam)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open saturation table: %w", err)
	}
	defer f.Close()

	var rows []*SatRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse saturation table %s: %w", path, err)
	}
	t, err := NewTable(p.Text("name", "table"), rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.File = path
	return t, nil
}

// ReadTable parses a saturation table from r.
func ReadTable(name string, r io.Reader) (*Table, error) {
	var rows []*SatRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse saturation table: %w", err)
	}
	return NewTable(name, rows)
}

// NewTable fits the interpolants. Rows must be sorted by strictly
// increasing pressure.
func NewTable(name string, rows []*SatRow) (*Table, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: saturation table needs at least 2 rows, got %d", ErrBadParam, len(rows))
	}
	ps := make([]float64, len(rows))
	for i, r := range rows {
		ps[i] = r.P
	}

	columns := map[eos.Property]func(*SatRow) float64{
		eos.TSat:    func(r *SatRow) float64 { return r.TSat },
		eos.HLSat:   func(r *SatRow) float64 { return r.HLSat },
		eos.HVSat:   func(r *SatRow) float64 { return r.HVSat },
		eos.RhoLSat: func(r *SatRow) float64 { return r.RhoLSat },
		eos.RhoVSat: func(r *SatRow) float64 { return r.RhoVSat },
	}
	t := &Table{
		Name:  name,
		rows:  rows,
		pMin:  ps[0],
		pMax:  ps[len(ps)-1],
		curve: make(map[eos.Property]*interp.PiecewiseLinear, len(columns)),
	}
	for prop, col := range columns {
		ys := make([]float64, len(rows))
		for i, r := range rows {
			ys[i] = col(r)
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(ps, ys); err != nil {
			return nil, fmt.Errorf("%w: %s column: %v", ErrBadParam, prop, err)
		}
		t.curve[prop] = &pl
	}
	return t, nil
}

func (t *Table) Info() eos.Info {
	return eos.Info{Fluid: t.Name, Table: t.File, Version: "1", Equation: "tabulated"}
}

func (t *Table) DescribeError(c eos.Code) string { return describe(c) }

func (t *Table) Params() Params {
	return Params{"name": t.Name, "file": t.File}
}

// Rows returns the parsed table.
func (t *Table) Rows() []*SatRow { return t.rows }

func (t *Table) Register(r *eos.Registry) {
	for prop, pl := range t.curve {
		pl := pl // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		r.Add1(eos.SatP, prop, func(p float64) (float64, eos.Code) {
			if p < t.pMin || p > t.pMax {
				return 0, codeOutsideTable
			}
			return pl.Predict(p), eos.CodeGood
		})
	}

	tmin, tmax := t.curve[eos.TSat].Predict(t.pMin), t.curve[eos.TSat].Predict(t.pMax)
	r.AddBound(eos.PMin, eos.Constant(t.pMin))
	r.AddBound(eos.PMax, eos.Constant(t.pMax))
	r.AddBound(eos.TMin, eos.Constant(tmin))
	r.AddBound(eos.TMax, eos.Constant(tmax))
}
