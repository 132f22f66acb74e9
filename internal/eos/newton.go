package eos

import (
	"math"

	"github.com/sirupsen/logrus"
)

var dTSatdP = D(TSat, P, Unknown)

// saturationPressure inverts T_sat(p) for the temperature t with Newton's
// method. The derivative dT_sat/dp is the registered one when available,
// a finite difference otherwise.
//
// The iteration starts from Numerics.NewtonGuess without bracketing. An
// evaluation with Error severity aborts with that code, one with Bad
// severity aborts with CodeNewtonBad, and an exhausted budget yields
// CodeNewtonNoConvergence.
func (e *Engine) saturationPressure(t float64) (float64, Code) {
	p := e.num.NewtonGuess
	for i := 0; i < e.num.NewtonMaxIter; i++ {
		ts, c := e.Compute1(SatP, TSat, p)
		if c.Severity == Error {
			return 0, c
		}
		dt, cd := e.Compute1(SatP, dTSatdP, p)
		if cd.Severity == Error {
			return 0, cd
		}
		if c.Severity == Bad || cd.Severity == Bad {
			return 0, CodeNewtonBad
		}

		res := t - ts
		p += res / dt
		if math.Abs(res) <= e.num.NewtonTol {
			return p, c
		}
	}

	e.log.WithFields(logrus.Fields{
		"T":        t,
		"p":        p,
		"max_iter": e.num.NewtonMaxIter,
	}).Warn("saturation pressure: newton did not converge")
	return 0, CodeNewtonNoConvergence
}
