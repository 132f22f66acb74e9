package fluids

import (
	"math"

	"github.com/san-kum/eos/internal/eos"
)

// PerfectGas is a calorically perfect gas:
//
//	h = h_ref + cp (T - T_ref)
//	rho = p / (R T)
//	s = s_ref + cp ln(T/T_ref) - R ln(p/p_ref)
//
// Only base routines are registered; derivatives come from the engine.
type PerfectGas struct {
	Cp   float64 // J/(kg K)
	R    float64 // specific gas constant, J/(kg K)
	Name string

	PRef, TRef, HRef, SRef float64

	PMin, PMax, TMin, TMax float64
}

// NewPerfectGas reads cp, R, the reference state and validity range from p.
// Defaults describe dry air.
func NewPerfectGas(p Params) (*PerfectGas, error) {
	f := floats{p: p}
	g := &PerfectGas{
		Name: p.Text("name", "air"),
		Cp:   f.get("cp", 1004.5),
		R:    f.get("R", 287.05),
		PRef: f.get("p_ref", 1e5),
		TRef: f.get("T_ref", 298.15),
		HRef: f.get("h_ref", 0),
		SRef: f.get("s_ref", 0),
		PMin: f.get("p_min", 1),
		PMax: f.get("p_max", 1e8),
		TMin: f.get("T_min", 50),
		TMax: f.get("T_max", 3000),
	}
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range []struct {
		key string
		v   float64
	}{{"cp", g.Cp}, {"R", g.R}, {"p_ref", g.PRef}, {"T_ref", g.TRef}} {
		if err := positive(c.key, c.v); err != nil {
			return nil, err
		}
	}
	if g.Cp <= g.R {
		return nil, positive("cp - R", g.Cp-g.R)
	}
	return g, nil
}

// SetReference moves the reference state the enthalpy and entropy are
// measured from. It must not run concurrently with computations.
func (g *PerfectGas) SetReference(pRef, tRef, hRef, sRef float64) error {
	if err := positive("p_ref", pRef); err != nil {
		return err
	}
	if err := positive("T_ref", tRef); err != nil {
		return err
	}
	g.PRef, g.TRef, g.HRef, g.SRef = pRef, tRef, hRef, sRef
	return nil
}

func (g *PerfectGas) Info() eos.Info {
	return eos.Info{Fluid: g.Name, Table: "none", Version: "1", Equation: "perfect_gas"}
}

func (g *PerfectGas) DescribeError(c eos.Code) string { return describe(c) }

func (g *PerfectGas) Params() Params {
	return floatParams(map[string]float64{
		"cp": g.Cp, "R": g.R,
		"p_ref": g.PRef, "T_ref": g.TRef, "h_ref": g.HRef, "s_ref": g.SRef,
		"p_min": g.PMin, "p_max": g.PMax, "T_min": g.TMin, "T_max": g.TMax,
	}, "name", g.Name)
}

func (g *PerfectGas) gamma() float64 { return g.Cp / (g.Cp - g.R) }

// temperature returns T(p,h) and the code for the state.
func (g *PerfectGas) temperature(p, h float64) (float64, eos.Code) {
	t := g.TRef + (h-g.HRef)/g.Cp
	if p <= 0 || t <= 0 {
		return t, codeNonPhysical
	}
	c := within(eos.CodeGood, p, g.PMin, g.PMax)
	return t, within(c, t, g.TMin, g.TMax)
}

// ph lifts a function of (p, T) to a p-h routine.
func (g *PerfectGas) ph(fn func(p, t float64) float64) eos.Func2 {
	return func(p, h float64) (float64, eos.Code) {
		t, c := g.temperature(p, h)
		if c.Failed() {
			return 0, c
		}
		return fn(p, t), c
	}
}

func (g *PerfectGas) Register(r *eos.Registry) {
	r.Add(eos.PH, eos.T, g.ph(func(p, t float64) float64 { return t }))
	r.Add(eos.PH, eos.Rho, g.ph(func(p, t float64) float64 { return p / (g.R * t) }))
	r.Add(eos.PH, eos.S, g.ph(func(p, t float64) float64 {
		return g.SRef + g.Cp*math.Log(t/g.TRef) - g.R*math.Log(p/g.PRef)
	}))
	r.Add(eos.PH, eos.U, g.ph(func(p, t float64) float64 {
		return g.HRef + g.Cp*(t-g.TRef) - g.R*t
	}))
	r.Add(eos.PH, eos.Cp, g.ph(func(p, t float64) float64 { return g.Cp }))
	r.Add(eos.PH, eos.Cv, g.ph(func(p, t float64) float64 { return g.Cp - g.R }))
	r.Add(eos.PH, eos.W, g.ph(func(p, t float64) float64 { return math.Sqrt(g.gamma() * g.R * t) }))
	r.Add(eos.PH, eos.Beta, g.ph(func(p, t float64) float64 { return 1 / t }))

	r.Add(eos.PT, eos.H, func(p, t float64) (float64, eos.Code) {
		if p <= 0 || t <= 0 {
			return 0, codeNonPhysical
		}
		c := within(eos.CodeGood, p, g.PMin, g.PMax)
		return g.HRef + g.Cp*(t-g.TRef), within(c, t, g.TMin, g.TMax)
	})
	r.Add(eos.PS, eos.H, func(p, s float64) (float64, eos.Code) {
		if p <= 0 {
			return 0, codeNonPhysical
		}
		t := g.TRef * math.Exp((s-g.SRef+g.R*math.Log(p/g.PRef))/g.Cp)
		c := within(eos.CodeGood, p, g.PMin, g.PMax)
		return g.HRef + g.Cp*(t-g.TRef), within(c, t, g.TMin, g.TMax)
	})

	r.AddBound(eos.PMin, func() (float64, eos.Code) { return g.PMin, eos.CodeGood })
	r.AddBound(eos.PMax, func() (float64, eos.Code) { return g.PMax, eos.CodeGood })
	r.AddBound(eos.TMin, func() (float64, eos.Code) { return g.TMin, eos.CodeGood })
	r.AddBound(eos.TMax, func() (float64, eos.Code) { return g.TMax, eos.CodeGood })
	r.AddBound(eos.HMin, func() (float64, eos.Code) { return g.HRef + g.Cp*(g.TMin-g.TRef), eos.CodeGood })
	r.AddBound(eos.HMax, func() (float64, eos.Code) { return g.HRef + g.Cp*(g.TMax-g.TRef), eos.CodeGood })
}
