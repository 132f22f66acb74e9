package eos

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Info identifies a fluid model.
type Info struct {
	Fluid    string `json:"fluid" yaml:"fluid"`
	Table    string `json:"table" yaml:"table"`
	Version  string `json:"version" yaml:"version"`
	Equation string `json:"equation" yaml:"equation"`
}

// Fluid is implemented by concrete equation-of-state models. Register is
// called once per Engine and must only add routines to r.
type Fluid interface {
	Info() Info
	Register(r *Registry)
	DescribeError(c Code) string
}

// Numerics holds the tuning constants of the numerical fallbacks.
type Numerics struct {
	Epsilon       float64 // relative finite-difference perturbation
	NewtonMaxIter int
	NewtonTol     float64 // absolute temperature residual, K
	NewtonGuess   float64 // starting pressure, Pa
}

func DefaultNumerics() Numerics {
	return Numerics{
		Epsilon:       1e-6,
		NewtonMaxIter: 50,
		NewtonTol:     1e-8,
		NewtonGuess:   1e5,
	}
}

// Engine routes property requests to a fluid's registered routines and
// synthesizes whatever the fluid leaves out.
type Engine struct {
	fluid Fluid
	reg   *Registry
	num   Numerics
	log   logrus.FieldLogger
}

type Option func(*Engine)

func WithNumerics(n Numerics) Option {
	return func(e *Engine) { e.num = n }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine and lets f fill its dispatch table.
func New(f Fluid, opts ...Option) *Engine {
	e := &Engine{
		fluid: f,
		reg:   NewRegistry(),
		num:   DefaultNumerics(),
		log:   logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	f.Register(e.reg)

	info := f.Info()
	e.log.WithFields(logrus.Fields{
		"fluid":    info.Fluid,
		"equation": info.Equation,
		"routes":   len(e.reg.two) + len(e.reg.one),
	}).Debug("eos engine ready")
	return e
}

func (e *Engine) Fluid() Fluid        { return e.fluid }
func (e *Engine) Registry() *Registry { return e.reg }
func (e *Engine) Numerics() Numerics  { return e.num }
func (e *Engine) Info() Info          { return e.fluid.Info() }

// Compute evaluates prop at the two-input state (x, y) of dom.
//
// p-h requests go to the registered routine, or to a finite difference for
// derivatives. p-T and p-s requests use a routine registered for that
// domain when one exists; otherwise the state is converted once with the
// model's h(p,T) or h(p,s) and the request is answered by the p-h family.
func (e *Engine) Compute(dom Domain, prop Property, x, y float64) (float64, Code) {
	switch dom {
	case PH:
		return e.computePH(prop, x, y)
	case PT, PS:
		if v, c, ok := e.direct(dom, prop, x, y); ok {
			return v, c
		}
		h, c := e.Enthalpy(dom, x, y)
		if c.Failed() {
			return 0, c
		}
		if prop == H {
			return h, c
		}
		v, c2 := e.computePH(prop, x, h)
		return v, WorseCode(c, c2)
	}
	return 0, CodeNotImplemented
}

// ComputeFromEnthalpy is Compute for a state whose enthalpy h has already
// been obtained with Enthalpy(dom, x, y). Batch callers use it to convert a
// state once and evaluate many properties from it.
func (e *Engine) ComputeFromEnthalpy(dom Domain, prop Property, x, y, h float64) (float64, Code) {
	if dom == PH {
		return e.computePH(prop, x, y)
	}
	if prop == H {
		return h, CodeGood
	}
	if v, c, ok := e.direct(dom, prop, x, y); ok {
		return v, c
	}
	return e.computePH(prop, x, h)
}

// Enthalpy converts a two-input state to its enthalpy.
func (e *Engine) Enthalpy(dom Domain, x, y float64) (float64, Code) {
	switch dom {
	case PH:
		return y, CodeGood
	case PT, PS:
		if fn, ok := e.reg.lookup2(dom, H); ok {
			return fn(x, y)
		}
	}
	return 0, CodeNotImplemented
}

// direct answers requests that need no conversion: a routine registered for
// the domain itself, or p and h in the p-h domain. The inputs of p-T and p-s
// states are not echoed back; they go through h so that the state is checked.
func (e *Engine) direct(dom Domain, prop Property, x, y float64) (float64, Code, bool) {
	if fn, ok := e.reg.lookup2(dom, prop); ok {
		v, c := fn(x, y)
		return v, c, true
	}
	if dom == PH {
		switch prop {
		case P:
			return x, CodeGood, true
		case H:
			return y, CodeGood, true
		}
	}
	return 0, Code{}, false
}

func (e *Engine) computePH(prop Property, p, h float64) (float64, Code) {
	if v, c, ok := e.direct(PH, prop, p, h); ok {
		return v, c
	}
	if !prop.IsDerivative() {
		return 0, CodeNotImplemented
	}
	d := prop.Derivative()
	switch d.Domain {
	case PH:
		return e.derivePH(d, p, h)
	case PT:
		t, c := e.computePH(T, p, h)
		if c.Failed() {
			return 0, c
		}
		v, c2 := e.derivePT(d, p, t)
		return v, WorseCode(c, c2)
	}
	return 0, CodeNotImplemented
}

// Compute1 evaluates a saturation or limit property from a single input:
// pressure for SatP and Lim, temperature for SatT.
func (e *Engine) Compute1(dom Domain, prop Property, x float64) (float64, Code) {
	if fn, ok := e.reg.lookup1(dom, prop); ok {
		return fn(x)
	}
	if prop.IsDerivative() {
		if d := prop.Derivative(); d.Domain == dom {
			return e.derive1(dom, d, x)
		}
	}
	switch dom {
	case SatP:
		if prop == PSat {
			return x, CodeGood
		}
	case SatT:
		switch {
		case prop == TSat:
			return x, CodeGood
		case prop == PSat:
			return e.saturationPressure(x)
		case prop.Family() == FamilySaturation:
			p, c := e.saturationPressure(x)
			if c.Failed() {
				return 0, c
			}
			v, c2 := e.Compute1(SatP, prop, p)
			return v, WorseCode(c, c2)
		}
	}
	return 0, CodeNotImplemented
}

// ComputeNamed is Compute with the property given by name.
func (e *Engine) ComputeNamed(dom Domain, name string, x, y float64) (float64, Code, error) {
	prop, err := ParseProperty(name)
	if err != nil {
		return 0, CodeNotImplemented, err
	}
	v, c := e.Compute(dom, prop, x, y)
	return v, c, nil
}

// ComputeNamed1 is Compute1 with the property given by name.
func (e *Engine) ComputeNamed1(dom Domain, name string, x float64) (float64, Code, error) {
	prop, err := ParseProperty(name)
	if err != nil {
		return 0, CodeNotImplemented, err
	}
	v, c := e.Compute1(dom, prop, x)
	return v, c, nil
}

// Bound answers a validity-range query.
func (e *Engine) Bound(b Bound) (float64, Code) {
	if fn, ok := e.reg.bounds[b]; ok {
		return fn()
	}
	return 0, CodeNotImplemented
}

// DescribeError returns a human readable description of c. Engine causes
// are described here, model causes by the fluid.
func (e *Engine) DescribeError(c Code) string {
	if c.Cause < CauseModel {
		if s, ok := coreDescriptions[c.Cause]; ok {
			return s
		}
		return fmt.Sprintf("unknown engine cause %d", c.Cause)
	}
	return e.fluid.DescribeError(c)
}

// Err converts a failed code into an error. It returns nil when the code's
// value is usable.
func (e *Engine) Err(dom Domain, prop Property, c Code) error {
	if !c.Failed() {
		return nil
	}
	return &ComputeError{Domain: dom, Property: prop, Code: c, Detail: e.DescribeError(c)}
}
