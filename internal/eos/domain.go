package eos

import (
	"fmt"
	"strings"
)

// Domain names the independent variables a state is specified with.
type Domain uint8

const (
	DomainNone Domain = iota
	PH                // pressure, enthalpy
	PT                // pressure, temperature
	PS                // pressure, entropy
	SatP              // saturation curve, by pressure
	SatT              // saturation curve, by temperature
	Lim               // limit (spinodal) curve, by pressure
)

var domainNames = map[Domain]string{
	PH:   "ph",
	PT:   "pT",
	PS:   "ps",
	SatP: "sat_p",
	SatT: "sat_T",
	Lim:  "lim_p",
}

func (d Domain) String() string {
	if n, ok := domainNames[d]; ok {
		return n
	}
	return "none"
}

// OneInput reports whether the domain takes a single input variable.
func (d Domain) OneInput() bool {
	return d == SatP || d == SatT || d == Lim
}

// Inputs returns the properties carried by the domain's input variables.
func (d Domain) Inputs() []Property {
	switch d {
	case PH:
		return []Property{P, H}
	case PT:
		return []Property{P, T}
	case PS:
		return []Property{P, S}
	case SatP, Lim:
		return []Property{P}
	case SatT:
		return []Property{T}
	}
	return nil
}

// ParseDomain resolves a domain name. Matching is case-insensitive so that
// "pt" and "pT" are both accepted on the command line.
func ParseDomain(name string) (Domain, error) {
	for d, n := range domainNames {
		if strings.EqualFold(n, name) {
			return d, nil
		}
	}
	return DomainNone, fmt.Errorf("eos: unknown domain %q", name)
}

// TwoInputDomain returns the domain spanned by pressure and other.
func TwoInputDomain(other Property) (Domain, bool) {
	switch other {
	case H:
		return PH, true
	case T:
		return PT, true
	case S:
		return PS, true
	}
	return DomainNone, false
}
