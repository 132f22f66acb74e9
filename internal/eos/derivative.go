package eos

// differentiate returns the centered difference of f around v with the
// engine's relative perturbation:
//
//	(f(v(1+eps)) - f(v(1-eps))) / (2 eps v)
//
// A zero v has no relative perturbation and fails with CodeBadCompute. A
// failing side is returned as is with a zero value.
func (e *Engine) differentiate(v float64, f func(float64) (float64, Code)) (float64, Code) {
	if v == 0 {
		return 0, CodeBadCompute
	}
	eps := e.num.Epsilon

	lo, cl := f(v * (1 - eps))
	if cl.Failed() {
		return 0, cl
	}
	hi, ch := f(v * (1 + eps))
	if ch.Failed() {
		return 0, ch
	}
	return (hi - lo) / (2 * eps * v), WorseCode(cl, ch)
}

// derivePH differentiates d.Of along pressure or enthalpy in the p-h domain.
// Second derivatives recurse through Compute on the first-derivative
// identifier, which is either registered or differentiated in turn.
func (e *Engine) derivePH(d Derivative, p, h float64) (float64, Code) {
	switch d.Wrt {
	case P:
		return e.differentiate(p, func(v float64) (float64, Code) {
			return e.computePH(d.Of, v, h)
		})
	case H:
		return e.differentiate(h, func(v float64) (float64, Code) {
			return e.computePH(d.Of, p, v)
		})
	}
	return 0, CodeNotImplemented
}

// derivePT differentiates d.Of along pressure or temperature in the p-T
// domain. Each perturbed state goes through the regular p-T routing.
func (e *Engine) derivePT(d Derivative, p, t float64) (float64, Code) {
	switch d.Wrt {
	case P:
		return e.differentiate(p, func(v float64) (float64, Code) {
			return e.Compute(PT, d.Of, v, t)
		})
	case T:
		return e.differentiate(t, func(v float64) (float64, Code) {
			return e.Compute(PT, d.Of, p, v)
		})
	}
	return 0, CodeNotImplemented
}

func (e *Engine) derive1(dom Domain, d Derivative, x float64) (float64, Code) {
	return e.differentiate(x, func(v float64) (float64, Code) {
		return e.Compute1(dom, d.Of, v)
	})
}
