package fluids

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrUnknownFluid is returned by Open for an unregistered model name.
	ErrUnknownFluid = errors.New("fluids: unknown fluid model")

	// ErrBadParam indicates a malformed or out-of-range model parameter.
	ErrBadParam = errors.New("fluids: bad parameter")
)

// Params holds model initialization arguments given as "key=value"
// strings. Keys are case sensitive.
type Params map[string]string

// ParseParams splits "key=value" arguments. Later keys override earlier
// ones.
func ParseParams(args []string) (Params, error) {
	p := make(Params, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrBadParam, arg)
		}
		p[k] = strings.TrimSpace(v)
	}
	return p, nil
}

// Float returns the value of key, or def when it is absent.
func (p Params) Float(key string, def float64) (float64, error) {
	s, ok := p[key]
	if !ok {
		return def, nil
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrBadParam, key, s, err)
	}
	return v, nil
}

func (p Params) Text(key, def string) string {
	if s, ok := p[key]; ok {
		return s
	}
	return def
}

// Args renders p back to sorted "key=value" strings.
func (p Params) Args() []string {
	out := make([]string, 0, len(p))
	for k, v := range p {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// floats reads several float parameters at once, stopping at the first
// error.
type floats struct {
	p   Params
	err error
}

func (f *floats) get(key string, def float64) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.p.Float(key, def)
	f.err = err
	return v
}

func positive(key string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrBadParam, key, v)
	}
	return nil
}

// floatParams formats numeric parameters, followed by extra key, value
// string pairs.
func floatParams(vals map[string]float64, extra ...string) Params {
	p := make(Params, len(vals)+len(extra)/2)
	for k, v := range vals {
		p[k] = cast.ToString(v)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		p[extra[i]] = extra[i+1]
	}
	return p
}
