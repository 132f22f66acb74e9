package eos

import "fmt"

// Property identifies a thermodynamic property. Base identifiers are
// declared as constants; derivative identifiers are generated at package
// initialisation and resolved by name with [ParseProperty] or built with [D].
type Property int

const (
	Unknown Property = iota

	// State properties
	P      // pressure, Pa
	H      // specific enthalpy, J/kg
	T      // temperature, K
	Rho    // density, kg/m3
	S      // specific entropy, J/kg/K
	U      // specific internal energy, J/kg
	Cp     // isobaric heat capacity, J/kg/K
	Cv     // isochoric heat capacity, J/kg/K
	Mu     // dynamic viscosity, Pa.s
	Lambda // thermal conductivity, W/m/K
	W      // speed of sound, m/s
	Beta   // isobaric expansivity, 1/K
	Sigma  // surface tension, N/m

	// Saturation properties
	TSat
	PSat
	HLSat
	HVSat
	RhoLSat
	RhoVSat
	CpLSat
	CpVSat
	SLSat
	SVSat
	SigmaSat

	// Limit (spinodal) properties
	HLLim
	HVLim
	TLLim
	TVLim

	// Mixture correlation coefficients
	CamixCp
	CamixMu
	CamixLambda

	numBase
)

// Family groups properties by how they are evaluated.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyState
	FamilyDerivative
	FamilySaturation
	FamilyLimit
	FamilyMixture
)

func (f Family) String() string {
	switch f {
	case FamilyState:
		return "state"
	case FamilyDerivative:
		return "derivative"
	case FamilySaturation:
		return "saturation"
	case FamilyLimit:
		return "limit"
	case FamilyMixture:
		return "mixture"
	default:
		return "none"
	}
}

// Derivative describes a derivative identifier: the partial derivative of Of
// with respect to Wrt holding Held constant, evaluated in Domain. Held is
// Unknown for one-input domains. For second derivatives Of is itself a
// derivative identifier.
type Derivative struct {
	Of     Property
	Wrt    Property
	Held   Property
	Domain Domain
	Order  int
}

type propertyInfo struct {
	name   string
	family Family
	deriv  *Derivative
}

type propertyTable struct {
	info    []propertyInfo
	byName  map[string]Property
	byDeriv map[Derivative]Property
}

// Built by a variable initializer so that MustParse and D are usable in
// package-level variables.
var table = buildTable()

// Properties differentiated in the p-h domain.
var phDifferentiable = []Property{T, Rho, S, U, Cp, Cv, Mu, Lambda, W, Beta, Sigma}

// Properties differentiated in the p-T domain.
var ptDifferentiable = []Property{H, Rho, S, U, Cp, Cv, Mu, Lambda, W, Beta, Sigma}

// Saturation and limit properties differentiated along pressure.
var satDifferentiable = []Property{TSat, HLSat, HVSat, RhoLSat, RhoVSat, CpLSat, CpVSat, SLSat, SVSat, SigmaSat}
var limDifferentiable = []Property{HLLim, HVLim, TLLim, TVLim}

func buildTable() *propertyTable {
	t := &propertyTable{
		info:    make([]propertyInfo, numBase),
		byName:  make(map[string]Property),
		byDeriv: make(map[Derivative]Property),
	}

	base := func(p Property, name string, fam Family) {
		t.info[p] = propertyInfo{name: name, family: fam}
		t.byName[name] = p
	}
	base(P, "p", FamilyState)
	base(H, "h", FamilyState)
	base(T, "T", FamilyState)
	base(Rho, "rho", FamilyState)
	base(S, "s", FamilyState)
	base(U, "u", FamilyState)
	base(Cp, "cp", FamilyState)
	base(Cv, "cv", FamilyState)
	base(Mu, "mu", FamilyState)
	base(Lambda, "lambda", FamilyState)
	base(W, "w", FamilyState)
	base(Beta, "beta", FamilyState)
	base(Sigma, "sigma", FamilyState)
	base(TSat, "T_sat", FamilySaturation)
	base(PSat, "p_sat", FamilySaturation)
	base(HLSat, "h_l_sat", FamilySaturation)
	base(HVSat, "h_v_sat", FamilySaturation)
	base(RhoLSat, "rho_l_sat", FamilySaturation)
	base(RhoVSat, "rho_v_sat", FamilySaturation)
	base(CpLSat, "cp_l_sat", FamilySaturation)
	base(CpVSat, "cp_v_sat", FamilySaturation)
	base(SLSat, "s_l_sat", FamilySaturation)
	base(SVSat, "s_v_sat", FamilySaturation)
	base(SigmaSat, "sigma_sat", FamilySaturation)
	base(HLLim, "h_l_lim", FamilyLimit)
	base(HVLim, "h_v_lim", FamilyLimit)
	base(TLLim, "T_l_lim", FamilyLimit)
	base(TVLim, "T_v_lim", FamilyLimit)
	base(CamixCp, "camix_cp", FamilyMixture)
	base(CamixMu, "camix_mu", FamilyMixture)
	base(CamixLambda, "camix_lambda", FamilyMixture)

	for _, x := range phDifferentiable {
		n := t.info[x].name
		dp := t.derive(fmt.Sprintf("d_%s_d_p_h", n), FamilyDerivative, Derivative{Of: x, Wrt: P, Held: H, Domain: PH, Order: 1})
		dh := t.derive(fmt.Sprintf("d_%s_d_h_p", n), FamilyDerivative, Derivative{Of: x, Wrt: H, Held: P, Domain: PH, Order: 1})
		t.derive(fmt.Sprintf("d2_%s_d_p_d_p_h", n), FamilyDerivative, Derivative{Of: dp, Wrt: P, Held: H, Domain: PH, Order: 2})
		t.derive(fmt.Sprintf("d2_%s_d_h_d_h_p", n), FamilyDerivative, Derivative{Of: dh, Wrt: H, Held: P, Domain: PH, Order: 2})
		t.derive(fmt.Sprintf("d2_%s_d_p_d_h", n), FamilyDerivative, Derivative{Of: dh, Wrt: P, Held: H, Domain: PH, Order: 2})
	}
	for _, x := range ptDifferentiable {
		n := t.info[x].name
		t.derive(fmt.Sprintf("d_%s_d_p_T", n), FamilyDerivative, Derivative{Of: x, Wrt: P, Held: T, Domain: PT, Order: 1})
		t.derive(fmt.Sprintf("d_%s_d_T_p", n), FamilyDerivative, Derivative{Of: x, Wrt: T, Held: P, Domain: PT, Order: 1})
	}
	for _, x := range satDifferentiable {
		n := t.info[x].name
		d1 := t.derive(fmt.Sprintf("d_%s_d_p", n), FamilySaturation, Derivative{Of: x, Wrt: P, Domain: SatP, Order: 1})
		t.derive(fmt.Sprintf("d2_%s_d_p_d_p", n), FamilySaturation, Derivative{Of: d1, Wrt: P, Domain: SatP, Order: 2})
	}
	d1 := t.derive("d_p_sat_d_T", FamilySaturation, Derivative{Of: PSat, Wrt: T, Domain: SatT, Order: 1})
	t.derive("d2_p_sat_d_T_d_T", FamilySaturation, Derivative{Of: d1, Wrt: T, Domain: SatT, Order: 2})
	for _, x := range limDifferentiable {
		n := t.info[x].name
		d1 := t.derive(fmt.Sprintf("d_%s_d_p", n), FamilyLimit, Derivative{Of: x, Wrt: P, Domain: Lim, Order: 1})
		t.derive(fmt.Sprintf("d2_%s_d_p_d_p", n), FamilyLimit, Derivative{Of: d1, Wrt: P, Domain: Lim, Order: 2})
	}
	return t
}

func (t *propertyTable) derive(name string, fam Family, d Derivative) Property {
	p := Property(len(t.info))
	dc := d
	t.info = append(t.info, propertyInfo{name: name, family: fam, deriv: &dc})
	t.byName[name] = p
	t.byDeriv[d] = p
	return p
}

// ParseProperty resolves a property name such as "rho" or "d_T_d_p_h".
func ParseProperty(name string) (Property, error) {
	p, ok := table.byName[name]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return p, nil
}

// MustParse is like ParseProperty but panics on unknown names. It is meant
// for package-level variables and tests.
func MustParse(name string) Property {
	p, err := ParseProperty(name)
	if err != nil {
		panic(err)
	}
	return p
}

// D returns the first derivative of x with respect to wrt holding held
// constant. held is ignored for saturation and limit properties.
func D(x, wrt, held Property) Property {
	fam := x.Family()
	if fam == FamilySaturation || fam == FamilyLimit || (x.IsDerivative() && x.Derivative().Domain.OneInput()) {
		held = Unknown
	}
	for dom := PH; dom <= Lim; dom++ {
		if p, ok := table.byDeriv[Derivative{Of: x, Wrt: wrt, Held: held, Domain: dom, Order: x.order() + 1}]; ok {
			return p
		}
	}
	return Unknown
}

// All returns every known property identifier in declaration order.
func All() []Property {
	out := make([]Property, 0, len(table.info)-1)
	for p := Property(1); int(p) < len(table.info); p++ {
		out = append(out, p)
	}
	return out
}

func (p Property) valid() bool {
	return p > Unknown && int(p) < len(table.info)
}

func (p Property) String() string {
	if !p.valid() {
		return "unknown"
	}
	return table.info[p].name
}

// Family reports the property family.
func (p Property) Family() Family {
	if !p.valid() {
		return FamilyNone
	}
	return table.info[p].family
}

// IsDerivative reports whether p is a derivative identifier.
func (p Property) IsDerivative() bool {
	return p.valid() && table.info[p].deriv != nil
}

// Derivative returns the derivative description of p. It returns the zero
// value when p is not a derivative.
func (p Property) Derivative() Derivative {
	if !p.IsDerivative() {
		return Derivative{}
	}
	return *table.info[p].deriv
}

func (p Property) order() int {
	if !p.IsDerivative() {
		return 0
	}
	return table.info[p].deriv.Order
}

// InputDomain returns the one-input domain a saturation or limit property is
// evaluated in. It returns false for state and mixture properties.
func (p Property) InputDomain() (Domain, bool) {
	if p.IsDerivative() {
		d := p.Derivative()
		if d.Domain.OneInput() {
			return d.Domain, true
		}
		return 0, false
	}
	switch p.Family() {
	case FamilySaturation:
		if p == PSat {
			return SatT, true
		}
		return SatP, true
	case FamilyLimit:
		return Lim, true
	}
	return 0, false
}
