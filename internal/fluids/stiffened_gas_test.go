package fluids

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eos/internal/eos"
)

func water(t *testing.T) *StiffenedGas {
	g, err := NewStiffenedGas(Params{})
	require.NoError(t, err)
	return g
}

func TestStiffenedGasBoilingPoint(t *testing.T) {
	eng := engine(water(t))

	tsat, c := eng.Compute1(eos.SatP, eos.TSat, 101325)
	require.Equal(t, eos.CodeGood, c)
	assert.InDelta(t, 373.15, tsat, 0.05)

	p, c := eng.Compute1(eos.SatT, eos.PSat, tsat)
	require.Equal(t, eos.CodeGood, c)
	assert.InEpsilon(t, 101325, p, 1e-6)
}

func TestStiffenedGasSaturationDerivative(t *testing.T) {
	g := water(t)
	eng := engine(g)

	const p = 5e5
	d := g.A - math.Log10(p)
	want := g.B / (d * d) / (p * math.Ln10)

	got, c := eng.Compute1(eos.SatP, eos.MustParse("d_T_sat_d_p"), p)
	require.Equal(t, eos.CodeGood, c)
	assert.InEpsilon(t, want, got, 1e-6)

	dp, c := eng.Compute1(eos.SatT, eos.MustParse("d_p_sat_d_T"), 400)
	require.Equal(t, eos.CodeGood, c)
	pAt400, _ := eng.Compute1(eos.SatT, eos.PSat, 400)
	dt, _ := eng.Compute1(eos.SatP, eos.MustParse("d_T_sat_d_p"), pAt400)
	assert.InEpsilon(t, 1/dt, dp, 1e-4)
}

func TestStiffenedGasLatentHeat(t *testing.T) {
	eng := engine(water(t))

	hl, c := eng.Compute1(eos.SatT, eos.HLSat, 350)
	require.Equal(t, eos.CodeGood, c)
	hv, _ := eng.Compute1(eos.SatT, eos.HVSat, 350)
	assert.InDelta(t, 2.257e6, hv-hl, 1e-6)

	_, c = eng.Compute1(eos.SatP, eos.RhoVSat, 1e5)
	assert.Equal(t, eos.CodeNotImplemented, c)
}

func TestStiffenedGasState(t *testing.T) {
	g := water(t)
	eng := engine(g)

	rho, c := eng.Compute(eos.PT, eos.Rho, 1e5, 300)
	require.Equal(t, eos.CodeGood, c)
	assert.InEpsilon(t, (1e5+1e9)/(1.35*1816*300), rho, 1e-12)

	cp, _ := eng.Compute(eos.PT, eos.MustParse("d_h_d_T_p"), 1e5, 300)
	assert.InEpsilon(t, 2.35*1816, cp, 1e-6)

	s, _ := eng.Compute(eos.PT, eos.S, 2e5, 320)
	back, c := eng.Compute(eos.PS, eos.T, 2e5, s)
	require.False(t, c.Failed())
	assert.InEpsilon(t, 320, back, 1e-9)

	_, c = eng.Compute(eos.PT, eos.Rho, 1e5, 800)
	assert.Equal(t, codeExtrapolated, c)

	_, c = eng.Compute(eos.PT, eos.Rho, -2e9, 300)
	assert.Equal(t, codeNonPhysical, c)
}

func TestStiffenedGasSaturationRange(t *testing.T) {
	eng := engine(water(t))

	_, c := eng.Compute1(eos.SatP, eos.TSat, 0)
	assert.Equal(t, codeNonPhysical, c)

	_, c = eng.Compute1(eos.SatP, eos.TSat, 100)
	assert.Equal(t, codeExtrapolated, c)
}

func TestStiffenedGasRejectsBadConstants(t *testing.T) {
	_, err := NewStiffenedGas(Params{"gamma": "0.9"})
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = NewStiffenedGas(Params{"cv": "x"})
	assert.ErrorIs(t, err, ErrBadParam)
}
