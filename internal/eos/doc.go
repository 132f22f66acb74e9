// Package eos provides the property dispatch engine for equation-of-state
// fluid models.
//
// A concrete fluid model registers only the routines it knows how to
// evaluate. The [Engine] fills the rest:
//
//   - [Registry]: dispatch table from (domain, property) to a routine
//   - [Engine.Compute]: routes p-h, p-T and p-s requests, converting
//     p-T and p-s states to p-h through the model's own h(p,T) and h(p,s)
//   - finite differences for any derivative the model does not provide
//   - Newton inversion of T_sat(p) for p_sat(T)
//   - [Code] and [Severity]: per-point error codes and their ordering
//
// # Example
//
//	fl, _ := fluids.Open("perfect_gas", []string{"r=287.058", "cp=1004.5"})
//	eng := eos.New(fl)
//	cp, code := eng.Compute(eos.PT, eos.MustParse("d_h_d_T_p"), 1e5, 300)
//	if code.Failed() {
//		return eng.Err(eos.PT, eos.MustParse("d_h_d_T_p"), code)
//	}
//
// # Thread Safety
//
// Registered routines are expected to be pure functions of their inputs, so
// an Engine may be shared between goroutines once built. Reference-state
// updates on a model must not race with computations.
package eos
