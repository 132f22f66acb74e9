// Package sweep evaluates properties along a line of states, one input
// varied over a grid and the other held fixed.
package sweep

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
)

var ErrBadGrid = errors.New("sweep: bad grid")

// Spec describes a sweep. For two-input domains Vary is pressure or the
// domain's second input and Fixed is the value of the other one. One-input
// domains ignore Vary and Fixed.
type Spec struct {
	Domain     eos.Domain
	Vary       eos.Property
	From, To   float64
	Points     int
	Log        bool // logarithmic spacing, From and To must be positive
	Fixed      float64
	Properties []string
}

// Result holds the inputs, outputs and per-point codes of a sweep. Codes
// holds one error field per output, Errors the worst code of each point
// over all outputs.
type Result struct {
	Spec    Spec
	Inputs  field.Fields
	Outputs field.Fields
	Codes   []*field.ErrorField
	Errors  *field.ErrorField
	Worst   eos.Severity
}

// Grid returns Points values between From and To inclusive.
func (s Spec) Grid() ([]float64, error) {
	if s.Points < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrBadGrid, s.Points)
	}
	xs := make([]float64, s.Points)
	if s.Log {
		if s.From <= 0 || s.To <= 0 {
			return nil, fmt.Errorf("%w: log spacing needs positive bounds", ErrBadGrid)
		}
		return floats.LogSpan(xs, s.From, s.To), nil
	}
	return floats.Span(xs, s.From, s.To), nil
}

// Run evaluates the sweep with d.
func Run(d *field.Dispatcher, s Spec) (*Result, error) {
	xs, err := s.Grid()
	if err != nil {
		return nil, err
	}
	inputs := s.Domain.Inputs()
	if inputs == nil {
		return nil, fmt.Errorf("%w: domain %s", ErrBadGrid, s.Domain)
	}
	if len(s.Properties) == 0 {
		return nil, fmt.Errorf("%w: no properties requested", ErrBadGrid)
	}

	n := len(xs)
	res := &Result{
		Spec:    s,
		Outputs: field.NewFields(n, s.Properties...),
		Errors:  field.NewErrorField(n),
	}

	var compute func(out *field.Field, errs *field.ErrorField)
	if s.Domain.OneInput() {
		in := field.Wrap(inputs[0].String(), xs)
		res.Inputs = field.Fields{in}
		compute = func(out *field.Field, errs *field.ErrorField) { d.Compute1(in, out, errs) }
	} else {
		var vary, fixed *field.Field
		switch s.Vary {
		case inputs[0]:
			vary, fixed = field.Wrap(inputs[0].String(), xs), field.New(inputs[1].String(), n)
		case inputs[1]:
			vary, fixed = field.Wrap(inputs[1].String(), xs), field.New(inputs[0].String(), n)
		default:
			return nil, fmt.Errorf("%w: %s is not an input of %s", ErrBadGrid, s.Vary, s.Domain)
		}
		for i := 0; i < n; i++ {
			fixed.Set(i, s.Fixed)
		}
		in1, in2 := vary, fixed
		if s.Vary != eos.P {
			in1, in2 = fixed, vary
		}
		res.Inputs = field.Fields{in1, in2}
		compute = func(out *field.Field, errs *field.ErrorField) { d.Compute2(in1, in2, out, errs) }
	}

	res.Codes = make([]*field.ErrorField, len(res.Outputs))
	for k, out := range res.Outputs {
		errs := field.NewErrorField(n)
		compute(out, errs)
		for i := 0; i < n; i++ {
			res.Errors.Fold(i, errs.At(i))
		}
		res.Codes[k] = errs
	}
	res.Worst = res.Errors.Severity()
	return res, nil
}

// Varied returns the input field that spans the grid.
func (r *Result) Varied() *field.Field {
	if len(r.Inputs) == 1 {
		return r.Inputs[0]
	}
	if r.Spec.Vary == r.Inputs[0].Property() {
		return r.Inputs[0]
	}
	return r.Inputs[1]
}

// Usable returns the grid values and the values of the named output at
// points whose code did not fail.
func (r *Result) Usable(name string) (xs, ys []float64, ok bool) {
	k := slices.Index(r.Outputs.Names(), name)
	if k < 0 {
		return nil, nil, false
	}
	out, codes := r.Outputs[k], r.Codes[k]
	grid := r.Varied()
	for i := 0; i < out.Len(); i++ {
		if codes.At(i).Failed() {
			continue
		}
		xs = append(xs, grid.At(i))
		ys = append(ys, out.At(i))
	}
	return xs, ys, true
}

// Summary holds the range of one output over usable points.
type Summary struct {
	Name     string
	Min, Max float64
	Usable   int
}

func (r *Result) Summaries() []Summary {
	out := make([]Summary, 0, len(r.Outputs))
	for _, f := range r.Outputs {
		_, ys, _ := r.Usable(f.Name())
		s := Summary{Name: f.Name(), Usable: len(ys)}
		if len(ys) > 0 {
			s.Min, s.Max = floats.Min(ys), floats.Max(ys)
		}
		out = append(out, s)
	}
	return out
}
