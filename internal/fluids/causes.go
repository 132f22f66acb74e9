package fluids

import (
	"fmt"

	"github.com/san-kum/eos/internal/eos"
)

// Model causes shared by the fluids in this package.
const (
	CauseNonPhysical eos.Cause = eos.CauseModel + iota
	CauseExtrapolated
	CauseOutsideTable
)

var (
	codeNonPhysical  = eos.NewCode(CauseNonPhysical, eos.Bad)
	codeExtrapolated = eos.NewCode(CauseExtrapolated, eos.OK)
	codeOutsideTable = eos.NewCode(CauseOutsideTable, eos.Bad)
)

func describe(c eos.Code) string {
	switch c.Cause {
	case CauseNonPhysical:
		return "non-physical state (negative temperature, pressure or density)"
	case CauseExtrapolated:
		return "state outside the model's validity range, value extrapolated"
	case CauseOutsideTable:
		return "input outside the saturation table"
	}
	return fmt.Sprintf("unknown model cause %d", c.Cause)
}

// within degrades c to an extrapolation warning when v lies outside
// [lo, hi].
func within(c eos.Code, v, lo, hi float64) eos.Code {
	if v < lo || v > hi {
		return eos.WorseCode(c, codeExtrapolated)
	}
	return c
}
