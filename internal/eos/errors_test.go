package eos_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eos/internal/eos"
)

func TestSeverityOrder(t *testing.T) {
	require := require.New(t)

	require.Less(eos.Good, eos.OK)
	require.Less(eos.OK, eos.Bad)
	require.Less(eos.Bad, eos.Error)

	require.False(eos.Good.Failed())
	require.False(eos.OK.Failed())
	require.True(eos.Bad.Failed())
	require.True(eos.Error.Failed())
}

func TestWorstSeverity(t *testing.T) {
	tests := []struct {
		a, b, want eos.Severity
	}{
		{eos.Good, eos.Good, eos.Good},
		{eos.Good, eos.OK, eos.OK},
		{eos.Bad, eos.OK, eos.Bad},
		{eos.Error, eos.Bad, eos.Error},
		{eos.OK, eos.Error, eos.Error},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, eos.WorstSeverity(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestWorseCode(t *testing.T) {
	okA := eos.NewCode(eos.CauseModel+10, eos.OK)
	okB := eos.NewCode(eos.CauseModel+11, eos.OK)
	bareOK := eos.Code{Severity: eos.OK}

	tests := []struct {
		name    string
		a, b    eos.Code
		want    eos.Code
		worseAB bool
	}{
		{"higher severity wins", eos.CodeGood, codeOutOfRange, codeOutOfRange, false},
		{"existing kept when worse", codeFatal, codeOutOfRange, codeFatal, true},
		{"equal keeps first specific", okA, okB, okA, false},
		{"specific beats bare", bareOK, okB, okB, false},
		{"bare never replaces specific", okA, bareOK, okA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eos.WorseCode(tt.a, tt.b))
			assert.Equal(t, tt.worseAB, tt.a.WorseThan(tt.b))
		})
	}
}

func TestParseSeverity(t *testing.T) {
	s, err := eos.ParseSeverity("BAD")
	require.NoError(t, err)
	require.Equal(t, eos.Bad, s)

	_, err = eos.ParseSeverity("catastrophic")
	require.Error(t, err)
}

func TestEngineErr(t *testing.T) {
	require := require.New(t)
	eng := newEngine(nil)

	require.NoError(eng.Err(eos.PH, eos.Rho, eos.CodeGood))
	require.NoError(eng.Err(eos.PH, eos.Rho, eos.NewCode(eos.CauseModel+5, eos.OK)))

	err := eng.Err(eos.PH, eos.Rho, eos.CodeNotImplemented)
	require.Error(err)
	require.True(errors.Is(err, eos.ErrNotImplemented))

	var ce *eos.ComputeError
	require.True(errors.As(err, &ce))
	require.Equal(eos.Rho, ce.Property)
	require.Equal(eos.PH, ce.Domain)

	err = eng.Err(eos.SatT, eos.PSat, eos.CodeNewtonNoConvergence)
	require.True(errors.Is(err, eos.ErrNoConvergence))

	err = eng.Err(eos.PH, eos.T, codeOutOfRange)
	require.True(errors.Is(err, eos.ErrModel))
	require.Contains(err.Error(), "input out of range")
}

func TestDescribeError(t *testing.T) {
	eng := newEngine(nil)

	assert.Equal(t, "newton did not converge", eng.DescribeError(eos.CodeNewtonNoConvergence))
	assert.Equal(t, "finite difference around zero input", eng.DescribeError(eos.CodeBadCompute))
	assert.Equal(t, "input out of range", eng.DescribeError(codeOutOfRange))
	assert.Equal(t, "fake model error", eng.DescribeError(codeFatal))
}
