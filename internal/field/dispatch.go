package field

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/eos/internal/eos"
)

// Dispatcher evaluates properties over whole fields of state points. Input
// roles are taken from the input fields' property tags.
type Dispatcher struct {
	Engine *eos.Engine

	// Workers > 1 splits the points into chunks evaluated concurrently.
	Workers int
	// MinChunk is the smallest number of points worth a goroutine.
	MinChunk int

	Log logrus.FieldLogger
}

func NewDispatcher(eng *eos.Engine) *Dispatcher {
	return &Dispatcher{Engine: eng, Workers: 1, MinChunk: 256}
}

func (d *Dispatcher) log() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

// TwoInputDomain resolves the domain of a pressure field paired with an
// enthalpy, temperature or entropy field, in either order. swapped is true
// when pressure is the second field.
func TwoInputDomain(a, b eos.Property) (dom eos.Domain, swapped bool, ok bool) {
	if b == eos.P {
		a, b = b, a
		swapped = true
	}
	if a != eos.P {
		return eos.DomainNone, false, false
	}
	dom, ok = eos.TwoInputDomain(b)
	return dom, swapped, ok
}

// OneInputDomain resolves the domain of a single input field for the
// requested output. Pressure inputs select the limit domain for limit
// outputs and the saturation domain otherwise; a derivative taken along the
// saturation line in temperature, such as d_p_sat_d_T, resolves to SatT and
// the pressure is first converted to T_sat.
func OneInputDomain(in, out eos.Property) (eos.Domain, bool) {
	switch in {
	case eos.P, eos.PSat:
		if out.Family() == eos.FamilyLimit {
			return eos.Lim, true
		}
		if out.IsDerivative() {
			switch out.Derivative().Domain {
			case eos.Lim:
				return eos.Lim, true
			case eos.SatT:
				return eos.SatT, true
			}
		}
		return eos.SatP, true
	case eos.T, eos.TSat:
		return eos.SatT, true
	}
	return eos.DomainNone, false
}

// Compute2 evaluates out from two input fields. errs is resized to the
// number of points and reset. The return value is the worst severity over
// all points.
func (d *Dispatcher) Compute2(in1, in2, out *Field, errs *ErrorField) eos.Severity {
	return d.ComputeMany2(in1, in2, Fields{out}, errs)
}

// ComputeMany2 evaluates every field of outs from the same two inputs,
// converting each state point to enthalpy once. Codes of all outputs are
// folded into errs.
func (d *Dispatcher) ComputeMany2(in1, in2 *Field, outs Fields, errs *ErrorField) eos.Severity {
	n := in1.Len()
	checkLen(n, in2.Len(), in2.Name())
	for _, out := range outs {
		checkLen(n, out.Len(), out.Name())
	}
	errs.Resize(n)
	errs.Reset()

	dom, swapped, ok := TwoInputDomain(in1.Property(), in2.Property())
	if !ok {
		d.log().WithFields(logrus.Fields{
			"in1": in1.Name(),
			"in2": in2.Name(),
		}).Debug("no two-input domain for fields")
		d.notImplemented(outs, errs)
		return errs.Severity()
	}
	p, y := in1.Data(), in2.Data()
	if swapped {
		p, y = y, p
	}

	h := y
	var hc []eos.Code
	if dom != eos.PH {
		h = make([]float64, n)
		hc = make([]eos.Code, n)
		d.parallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				h[i], hc[i] = d.Engine.Enthalpy(dom, p[i], y[i])
			}
		})
	}

	for _, out := range outs {
		prop, data := out.Property(), out.Data()
		d.parallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				if hc != nil && hc[i].Failed() {
					data[i] = 0
					errs.Fold(i, hc[i])
					continue
				}
				v, c := d.Engine.ComputeFromEnthalpy(dom, prop, p[i], y[i], h[i])
				if hc != nil {
					c = eos.WorseCode(hc[i], c)
				}
				data[i] = v
				errs.Fold(i, c)
			}
		})
	}
	return errs.Severity()
}

// Compute1 evaluates a saturation or limit field from a single pressure or
// temperature field.
func (d *Dispatcher) Compute1(in, out *Field, errs *ErrorField) eos.Severity {
	return d.ComputeMany1(in, Fields{out}, errs)
}

// ComputeMany1 is Compute1 for a collection of outputs. Each output picks
// its own domain from the input tag and its property family.
func (d *Dispatcher) ComputeMany1(in *Field, outs Fields, errs *ErrorField) eos.Severity {
	n := in.Len()
	for _, out := range outs {
		checkLen(n, out.Len(), out.Name())
	}
	errs.Resize(n)
	errs.Reset()

	x := in.Data()
	pressure := in.Property() == eos.P || in.Property() == eos.PSat
	for _, out := range outs {
		prop, data := out.Property(), out.Data()
		dom, ok := OneInputDomain(in.Property(), prop)
		if !ok {
			d.log().WithFields(logrus.Fields{
				"in":  in.Name(),
				"out": out.Name(),
			}).Debug("no one-input domain for field")
			d.notImplemented(Fields{out}, errs)
			continue
		}
		eval := d.Engine.Compute1
		if pressure && dom == eos.SatT {
			eval = d.fromSaturationTemperature
		}
		d.parallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				v, c := eval(dom, prop, x[i])
				data[i] = v
				errs.Fold(i, c)
			}
		})
	}
	return errs.Severity()
}

// fromSaturationTemperature evaluates a SatT property at the saturation
// temperature of pressure p.
func (d *Dispatcher) fromSaturationTemperature(dom eos.Domain, prop eos.Property, p float64) (float64, eos.Code) {
	t, c := d.Engine.Compute1(eos.SatP, eos.TSat, p)
	if c.Failed() {
		return 0, c
	}
	v, c2 := d.Engine.Compute1(dom, prop, t)
	return v, eos.WorseCode(c, c2)
}

func (d *Dispatcher) notImplemented(outs Fields, errs *ErrorField) {
	for _, out := range outs {
		data := out.Data()
		for i := range data {
			data[i] = 0
			errs.Fold(i, eos.CodeNotImplemented)
		}
	}
}

// parallelFor runs fn over [0, n) in chunks. Every index belongs to exactly
// one chunk.
func (d *Dispatcher) parallelFor(n int, fn func(start, end int)) {
	minChunk := d.MinChunk
	if minChunk < 1 {
		minChunk = 1
	}
	workers := d.Workers
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

func checkLen(want, got int, name string) {
	if want != got {
		panic(fmt.Sprintf("field: %s has %d points, want %d", name, got, want))
	}
}
