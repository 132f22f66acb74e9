package eos_test

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/eos/internal/eos"
)

// fakeFluid lets each test register exactly the routines it needs.
type fakeFluid struct {
	name     string
	register func(r *eos.Registry)
}

func (f *fakeFluid) Info() eos.Info {
	return eos.Info{Fluid: f.name, Equation: "test"}
}

func (f *fakeFluid) Register(r *eos.Registry) {
	if f.register != nil {
		f.register(r)
	}
}

func (f *fakeFluid) DescribeError(c eos.Code) string {
	if c.Cause == causeOutOfRange {
		return "input out of range"
	}
	return "fake model error"
}

const causeOutOfRange = eos.CauseModel + 1

var (
	codeOutOfRange = eos.NewCode(causeOutOfRange, eos.Bad)
	codeFatal      = eos.NewCode(eos.CauseModel+2, eos.Error)
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newEngine(register func(r *eos.Registry), opts ...eos.Option) *eos.Engine {
	opts = append([]eos.Option{eos.WithLogger(quiet())}, opts...)
	return eos.New(&fakeFluid{name: "fake", register: register}, opts...)
}

// counter wraps a routine and counts its calls.
type counter struct{ n int }

func (c *counter) wrap2(fn eos.Func2) eos.Func2 {
	return func(x, y float64) (float64, eos.Code) {
		c.n++
		return fn(x, y)
	}
}

func (c *counter) wrap1(fn eos.Func1) eos.Func1 {
	return func(x float64) (float64, eos.Code) {
		c.n++
		return fn(x)
	}
}

// idealGas registers T(p,h), rho(p,h), s(p,h), h(p,T) and h(p,s) of a
// calorically perfect gas.
func idealGas(r *eos.Registry) {
	const cp, rgas, pref = 1000.0, 287.0, 1e5
	r.Add(eos.PH, eos.T, func(p, h float64) (float64, eos.Code) {
		return h / cp, eos.CodeGood
	})
	r.Add(eos.PH, eos.Rho, func(p, h float64) (float64, eos.Code) {
		return p / (rgas * h / cp), eos.CodeGood
	})
	r.Add(eos.PH, eos.S, func(p, h float64) (float64, eos.Code) {
		return cp*math.Log(h/cp/300) - rgas*math.Log(p/pref), eos.CodeGood
	})
	r.Add(eos.PT, eos.H, func(p, t float64) (float64, eos.Code) {
		return cp * t, eos.CodeGood
	})
	r.Add(eos.PS, eos.H, func(p, s float64) (float64, eos.Code) {
		return cp * 300 * math.Exp((s+rgas*math.Log(p/pref))/cp), eos.CodeGood
	})
}
