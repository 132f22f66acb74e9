package fluids

import (
	"math"

	"github.com/san-kum/eos/internal/eos"
)

// StiffenedGas is the stiffened gas law p = (gamma-1) rho (e - q) - gamma p_inf
// with constant cv, so that
//
//	h = q + gamma cv T
//	rho = (p + p_inf) / ((gamma-1) cv T)
//	s = cv ln(T^gamma / (p + p_inf)^(gamma-1)) + q'
//
// The saturation line is an Antoine correlation for T_sat(p) only. The
// engine inverts it for p_sat(T) and differentiates it numerically.
type StiffenedGas struct {
	Gamma  float64
	PInf   float64 // Pa
	Cv     float64 // J/(kg K)
	Q      float64 // J/kg
	QPrime float64 // J/(kg K)
	Name   string

	// log10(p/Pa) = A - B/(T + C)
	A, B, C float64
	Latent  float64 // J/kg, added to h_l_sat for h_v_sat

	PMin, PMax, TMin, TMax float64
	// Antoine validity range in pressure
	SatPMin, SatPMax float64
}

// NewStiffenedGas reads the model constants from p. Defaults are the
// liquid water fit of Le Métayer et al. with the Antoine constants of
// water.
func NewStiffenedGas(p Params) (*StiffenedGas, error) {
	f := floats{p: p}
	g := &StiffenedGas{
		Name:    p.Text("name", "water"),
		Gamma:   f.get("gamma", 2.35),
		PInf:    f.get("p_inf", 1e9),
		Cv:      f.get("cv", 1816),
		Q:       f.get("q", -1167e3),
		QPrime:  f.get("q_prime", 0),
		A:       f.get("antoine_a", 10.19621),
		B:       f.get("antoine_b", 1730.63),
		C:       f.get("antoine_c", -39.724),
		Latent:  f.get("latent", 2.257e6),
		PMin:    f.get("p_min", 1e3),
		PMax:    f.get("p_max", 1e8),
		TMin:    f.get("T_min", 273.15),
		TMax:    f.get("T_max", 650),
		SatPMin: f.get("sat_p_min", 611.2),
		SatPMax: f.get("sat_p_max", 2.2064e7),
	}
	if f.err != nil {
		return nil, f.err
	}
	if err := positive("gamma - 1", g.Gamma-1); err != nil {
		return nil, err
	}
	if err := positive("cv", g.Cv); err != nil {
		return nil, err
	}
	if err := positive("antoine_b", g.B); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *StiffenedGas) Info() eos.Info {
	return eos.Info{Fluid: g.Name, Table: "antoine", Version: "1", Equation: "stiffened_gas"}
}

func (g *StiffenedGas) DescribeError(c eos.Code) string { return describe(c) }

func (g *StiffenedGas) Params() Params {
	return floatParams(map[string]float64{
		"gamma": g.Gamma, "p_inf": g.PInf, "cv": g.Cv, "q": g.Q, "q_prime": g.QPrime,
		"antoine_a": g.A, "antoine_b": g.B, "antoine_c": g.C, "latent": g.Latent,
		"p_min": g.PMin, "p_max": g.PMax, "T_min": g.TMin, "T_max": g.TMax,
		"sat_p_min": g.SatPMin, "sat_p_max": g.SatPMax,
	}, "name", g.Name)
}

func (g *StiffenedGas) cp() float64 { return g.Gamma * g.Cv }

func (g *StiffenedGas) state(p, t float64) eos.Code {
	if p+g.PInf <= 0 || t <= 0 {
		return codeNonPhysical
	}
	c := within(eos.CodeGood, p, g.PMin, g.PMax)
	return within(c, t, g.TMin, g.TMax)
}

func (g *StiffenedGas) ph(fn func(p, t float64) float64) eos.Func2 {
	return func(p, h float64) (float64, eos.Code) {
		t := (h - g.Q) / g.cp()
		c := g.state(p, t)
		if c.Failed() {
			return 0, c
		}
		return fn(p, t), c
	}
}

func (g *StiffenedGas) density(p, t float64) float64 {
	return (p + g.PInf) / ((g.Gamma - 1) * g.Cv * t)
}

func (g *StiffenedGas) entropy(p, t float64) float64 {
	return g.Cv*(g.Gamma*math.Log(t)-(g.Gamma-1)*math.Log(p+g.PInf)) + g.QPrime
}

// saturationTemperature evaluates the Antoine correlation.
func (g *StiffenedGas) saturationTemperature(p float64) (float64, eos.Code) {
	if p <= 0 {
		return 0, codeNonPhysical
	}
	d := g.A - math.Log10(p)
	if d <= 0 {
		return 0, codeNonPhysical
	}
	return g.B/d - g.C, within(eos.CodeGood, p, g.SatPMin, g.SatPMax)
}

// sat lifts a function of (p, T_sat) to a saturation routine.
func (g *StiffenedGas) sat(fn func(p, t float64) float64) eos.Func1 {
	return func(p float64) (float64, eos.Code) {
		t, c := g.saturationTemperature(p)
		if c.Failed() {
			return 0, c
		}
		return fn(p, t), c
	}
}

func (g *StiffenedGas) Register(r *eos.Registry) {
	r.Add(eos.PH, eos.T, g.ph(func(p, t float64) float64 { return t }))
	r.Add(eos.PH, eos.Rho, g.ph(g.density))
	r.Add(eos.PH, eos.S, g.ph(g.entropy))
	r.Add(eos.PH, eos.U, g.ph(func(p, t float64) float64 {
		return g.Q + g.Cv*t*(p+g.Gamma*g.PInf)/(p+g.PInf)
	}))
	r.Add(eos.PH, eos.Cp, g.ph(func(p, t float64) float64 { return g.cp() }))
	r.Add(eos.PH, eos.Cv, g.ph(func(p, t float64) float64 { return g.Cv }))
	r.Add(eos.PH, eos.W, g.ph(func(p, t float64) float64 {
		return math.Sqrt(g.Gamma * (p + g.PInf) / g.density(p, t))
	}))

	r.Add(eos.PT, eos.H, func(p, t float64) (float64, eos.Code) {
		c := g.state(p, t)
		if c.Failed() {
			return 0, c
		}
		return g.Q + g.cp()*t, c
	})
	r.Add(eos.PS, eos.H, func(p, s float64) (float64, eos.Code) {
		if p+g.PInf <= 0 {
			return 0, codeNonPhysical
		}
		t := math.Exp(((s-g.QPrime)/g.Cv + (g.Gamma-1)*math.Log(p+g.PInf)) / g.Gamma)
		return g.Q + g.cp()*t, g.state(p, t)
	})

	r.Add1(eos.SatP, eos.TSat, g.saturationTemperature)
	r.Add1(eos.SatP, eos.HLSat, g.sat(func(p, t float64) float64 { return g.Q + g.cp()*t }))
	r.Add1(eos.SatP, eos.HVSat, g.sat(func(p, t float64) float64 { return g.Q + g.cp()*t + g.Latent }))
	r.Add1(eos.SatP, eos.RhoLSat, g.sat(g.density))
	r.Add1(eos.SatP, eos.CpLSat, g.sat(func(p, t float64) float64 { return g.cp() }))
	r.Add1(eos.SatP, eos.SLSat, g.sat(g.entropy))
	r.Add1(eos.SatP, eos.SVSat, g.sat(func(p, t float64) float64 { return g.entropy(p, t) + g.Latent/t }))

	r.AddBound(eos.PMin, eos.Constant(g.PMin))
	r.AddBound(eos.PMax, eos.Constant(g.PMax))
	r.AddBound(eos.TMin, eos.Constant(g.TMin))
	r.AddBound(eos.TMax, eos.Constant(g.TMax))
	r.AddBound(eos.HMin, eos.Constant(g.Q+g.cp()*g.TMin))
	r.AddBound(eos.HMax, eos.Constant(g.Q+g.cp()*g.TMax))
}
