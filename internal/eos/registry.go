package eos

import (
	"fmt"
	"sort"
)

// Func2 evaluates a property from two inputs of a two-input domain.
type Func2 func(x, y float64) (float64, Code)

// Func1 evaluates a property from the single input of a one-input domain.
type Func1 func(x float64) (float64, Code)

// BoundFunc answers a validity-range query.
type BoundFunc func() (float64, Code)

// Bound names a validity-range query.
type Bound uint8

const (
	PMin Bound = iota
	PMax
	TMin
	TMax
	HMin
	HMax
	RhoMin
	RhoMax
	numBounds
)

var boundNames = [numBounds]string{"p_min", "p_max", "T_min", "T_max", "h_min", "h_max", "rho_min", "rho_max"}

func (b Bound) String() string {
	if b < numBounds {
		return boundNames[b]
	}
	return "unknown"
}

// Bounds lists every range query.
func Bounds() []Bound {
	out := make([]Bound, numBounds)
	for i := range out {
		out[i] = Bound(i)
	}
	return out
}

// Route is one entry of the dispatch table.
type Route struct {
	Domain   Domain
	Property Property
}

func (r Route) String() string {
	return fmt.Sprintf("%s_%s", r.Property, r.Domain)
}

// Registry is the dispatch table a fluid model fills once. Any route left
// empty answers CodeNotImplemented unless the engine can synthesize it.
type Registry struct {
	two    map[Route]Func2
	one    map[Route]Func1
	bounds map[Bound]BoundFunc
}

func NewRegistry() *Registry {
	return &Registry{
		two:    make(map[Route]Func2),
		one:    make(map[Route]Func1),
		bounds: make(map[Bound]BoundFunc),
	}
}

// Add registers a two-input routine. It panics when dom is a one-input
// domain, which is a programming error in the fluid model.
func (r *Registry) Add(dom Domain, prop Property, fn Func2) {
	if dom.OneInput() || dom == DomainNone {
		panic(fmt.Sprintf("eos: Add called with one-input domain %s for %s", dom, prop))
	}
	r.two[Route{dom, prop}] = fn
}

// Add1 registers a one-input routine.
func (r *Registry) Add1(dom Domain, prop Property, fn Func1) {
	if !dom.OneInput() {
		panic(fmt.Sprintf("eos: Add1 called with two-input domain %s for %s", dom, prop))
	}
	r.one[Route{dom, prop}] = fn
}

// AddBound registers a range query.
func (r *Registry) AddBound(b Bound, fn BoundFunc) {
	r.bounds[b] = fn
}

// Constant returns a BoundFunc answering v.
func Constant(v float64) BoundFunc {
	return func() (float64, Code) { return v, CodeGood }
}

func (r *Registry) lookup2(dom Domain, prop Property) (Func2, bool) {
	fn, ok := r.two[Route{dom, prop}]
	return fn, ok
}

func (r *Registry) lookup1(dom Domain, prop Property) (Func1, bool) {
	fn, ok := r.one[Route{dom, prop}]
	return fn, ok
}

// Has reports whether the model registered a routine for the route.
func (r *Registry) Has(dom Domain, prop Property) bool {
	if dom.OneInput() {
		_, ok := r.one[Route{dom, prop}]
		return ok
	}
	_, ok := r.two[Route{dom, prop}]
	return ok
}

// Routes lists registered routes sorted by domain then property.
func (r *Registry) Routes() []Route {
	out := make([]Route, 0, len(r.two)+len(r.one))
	for k := range r.two {
		out = append(out, k)
	}
	for k := range r.one {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Property < out[j].Property
	})
	return out
}
