package fluids

import (
	"fmt"
	"sort"

	"github.com/san-kum/eos/internal/eos"
)

// Model is a fluid whose parameters can be reported back.
type Model interface {
	eos.Fluid
	Params() Params
}

type factory func(p Params) (Model, error)

type Registry struct {
	models map[string]factory
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]factory)}

	r.models["perfect_gas"] = func(p Params) (Model, error) { return NewPerfectGas(p) }
	r.models["stiffened_gas"] = func(p Params) (Model, error) { return NewStiffenedGas(p) }
	r.models["tabulated"] = func(p Params) (Model, error) { return OpenTable(p) }

	return r
}

// Get builds the named model from its parameters.
func (r *Registry) Get(name string, p Params) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFluid, name)
	}
	m, err := fn(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Open builds a model from "key=value" arguments.
func Open(name string, args []string) (Model, error) {
	p, err := ParseParams(args)
	if err != nil {
		return nil, err
	}
	return defaultRegistry.Get(name, p)
}

// Names lists the available models.
func Names() []string { return defaultRegistry.List() }
