package eos_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/eos/internal/eos"
)

func TestPropertyNamesRoundTrip(t *testing.T) {
	for _, p := range eos.All() {
		got, err := eos.ParseProperty(p.String())
		require.NoError(t, err, p.String())
		require.Equal(t, p, got, p.String())
	}
}

func TestDerivativeIdentifiersAreUnique(t *testing.T) {
	require := require.New(t)

	for _, p := range eos.All() {
		if !p.IsDerivative() {
			continue
		}
		d := p.Derivative()
		require.NotEqual(eos.Unknown, d.Of, p.String())
		require.Contains(d.Domain.Inputs(), d.Wrt, p.String())
		if d.Domain.OneInput() {
			require.Equal(eos.Unknown, d.Held, p.String())
		} else {
			require.Contains(d.Domain.Inputs(), d.Held, p.String())
			require.NotEqual(d.Wrt, d.Held, p.String())
		}
		require.Equal(p, eos.D(d.Of, d.Wrt, d.Held), p.String())
	}
}

func TestDerivativeLookup(t *testing.T) {
	tests := []struct {
		name string
		want eos.Derivative
	}{
		{"d_T_d_p_h", eos.Derivative{Of: eos.T, Wrt: eos.P, Held: eos.H, Domain: eos.PH, Order: 1}},
		{"d_rho_d_h_p", eos.Derivative{Of: eos.Rho, Wrt: eos.H, Held: eos.P, Domain: eos.PH, Order: 1}},
		{"d_h_d_T_p", eos.Derivative{Of: eos.H, Wrt: eos.T, Held: eos.P, Domain: eos.PT, Order: 1}},
		{"d2_rho_d_p_d_h", eos.Derivative{Of: eos.MustParse("d_rho_d_h_p"), Wrt: eos.P, Held: eos.H, Domain: eos.PH, Order: 2}},
		{"d2_T_d_h_d_h_p", eos.Derivative{Of: eos.MustParse("d_T_d_h_p"), Wrt: eos.H, Held: eos.P, Domain: eos.PH, Order: 2}},
		{"d_T_sat_d_p", eos.Derivative{Of: eos.TSat, Wrt: eos.P, Domain: eos.SatP, Order: 1}},
		{"d2_h_l_sat_d_p_d_p", eos.Derivative{Of: eos.MustParse("d_h_l_sat_d_p"), Wrt: eos.P, Domain: eos.SatP, Order: 2}},
		{"d_p_sat_d_T", eos.Derivative{Of: eos.PSat, Wrt: eos.T, Domain: eos.SatT, Order: 1}},
		{"d_h_v_lim_d_p", eos.Derivative{Of: eos.HVLim, Wrt: eos.P, Domain: eos.Lim, Order: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := eos.ParseProperty(tt.name)
			require.NoError(t, err)
			require.True(t, p.IsDerivative())
			require.Equal(t, tt.want, p.Derivative())
		})
	}
}

func TestPropertyFamilies(t *testing.T) {
	require := require.New(t)

	require.Equal(eos.FamilyState, eos.Rho.Family())
	require.Equal(eos.FamilyDerivative, eos.MustParse("d_s_d_p_T").Family())
	require.Equal(eos.FamilySaturation, eos.MustParse("d_rho_v_sat_d_p").Family())
	require.Equal(eos.FamilyLimit, eos.TLLim.Family())
	require.Equal(eos.FamilyMixture, eos.CamixMu.Family())
	require.Equal(eos.FamilyNone, eos.Unknown.Family())
	require.False(eos.Rho.IsDerivative())
	require.Equal(eos.Derivative{}, eos.Rho.Derivative())
}

func TestInputDomain(t *testing.T) {
	tests := []struct {
		prop eos.Property
		dom  eos.Domain
		ok   bool
	}{
		{eos.TSat, eos.SatP, true},
		{eos.HLSat, eos.SatP, true},
		{eos.PSat, eos.SatT, true},
		{eos.MustParse("d_p_sat_d_T"), eos.SatT, true},
		{eos.MustParse("d_T_sat_d_p"), eos.SatP, true},
		{eos.HVLim, eos.Lim, true},
		{eos.Rho, eos.DomainNone, false},
		{eos.MustParse("d_rho_d_p_h"), eos.DomainNone, false},
		{eos.CamixCp, eos.DomainNone, false},
	}
	for _, tt := range tests {
		dom, ok := tt.prop.InputDomain()
		require.Equal(t, tt.ok, ok, tt.prop.String())
		if ok {
			require.Equal(t, tt.dom, dom, tt.prop.String())
		}
	}
}

func TestParseUnknownProperty(t *testing.T) {
	_, err := eos.ParseProperty("d_T_d_q_h")
	require.Error(t, err)
	require.True(t, errors.Is(err, eos.ErrUnknownProperty))
	require.Panics(t, func() { eos.MustParse("nope") })
}

func TestParseDomain(t *testing.T) {
	for _, name := range []string{"pT", "pt", "PT"} {
		d, err := eos.ParseDomain(name)
		require.NoError(t, err)
		require.Equal(t, eos.PT, d)
	}
	d, err := eos.ParseDomain("sat_T")
	require.NoError(t, err)
	require.Equal(t, eos.SatT, d)

	_, err = eos.ParseDomain("xy")
	require.Error(t, err)
}
