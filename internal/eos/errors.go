package eos

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for property computations.
var (
	// ErrUnknownProperty indicates a property name with no identifier.
	ErrUnknownProperty = errors.New("eos: unknown property")

	// ErrNotImplemented indicates no routine or fallback exists for the request.
	ErrNotImplemented = errors.New("eos: property not implemented for domain")

	// ErrBadCompute indicates a finite difference around a zero input.
	ErrBadCompute = errors.New("eos: zero perturbation in finite difference")

	// ErrNewtonBad indicates a Newton iterate evaluated to a bad value.
	ErrNewtonBad = errors.New("eos: newton evaluation returned bad value")

	// ErrNoConvergence indicates Newton exhausted its iteration budget.
	ErrNoConvergence = errors.New("eos: newton did not converge")

	// ErrModel indicates a failure reported by the fluid model itself.
	ErrModel = errors.New("eos: fluid model error")
)

// Severity is the generic level of an error code. Levels are totally
// ordered: Good < OK < Bad < Error.
type Severity uint8

const (
	Good  Severity = iota // no problem
	OK                    // degraded but usable
	Bad                   // seriously degraded, value not usable
	Error                 // fatal for the point
)

func (s Severity) String() string {
	switch s {
	case Good:
		return "good"
	case OK:
		return "ok"
	case Bad:
		return "bad"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Failed reports whether a value carrying this severity must not be used.
func (s Severity) Failed() bool { return s >= Bad }

// ParseSeverity resolves a severity name.
func ParseSeverity(name string) (Severity, error) {
	for s := Good; s <= Error; s++ {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return Good, fmt.Errorf("eos: unknown severity %q", name)
}

// WorstSeverity returns the more serious of a and b.
func WorstSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// Cause is a specific error cause. Values below CauseModel belong to the
// engine; a fluid model numbers its own causes from CauseModel upwards.
type Cause int

const (
	CauseNone Cause = iota
	CauseNotImplemented
	CauseBadCompute
	CauseNewtonBad
	CauseNewtonNoConvergence

	CauseModel Cause = 100
)

// Code is an internal error code: a specific cause and its generic severity.
type Code struct {
	Cause    Cause
	Severity Severity
}

// Engine codes.
var (
	CodeGood                = Code{Cause: CauseNone, Severity: Good}
	CodeNotImplemented      = Code{Cause: CauseNotImplemented, Severity: Error}
	CodeBadCompute          = Code{Cause: CauseBadCompute, Severity: Error}
	CodeNewtonBad           = Code{Cause: CauseNewtonBad, Severity: Bad}
	CodeNewtonNoConvergence = Code{Cause: CauseNewtonNoConvergence, Severity: Bad}
)

// NewCode builds a model code. The severity comes from the model's own
// cause classification.
func NewCode(c Cause, s Severity) Code {
	return Code{Cause: c, Severity: s}
}

// Failed reports whether the code's severity makes the value unusable.
func (c Code) Failed() bool { return c.Severity.Failed() }

// WorseThan reports whether c is strictly more serious than o.
func (c Code) WorseThan(o Code) bool { return c.Severity > o.Severity }

func (c Code) String() string {
	return fmt.Sprintf("%s(%d)", c.Severity, c.Cause)
}

// WorseCode returns the more serious of a and b. On equal severity the more
// specific code wins: a bare severity (CauseNone) gives way to a named cause,
// otherwise a is kept.
func WorseCode(a, b Code) Code {
	switch {
	case b.Severity > a.Severity:
		return b
	case a.Severity > b.Severity:
		return a
	case a.Cause == CauseNone && b.Cause != CauseNone:
		return b
	}
	return a
}

var coreDescriptions = map[Cause]string{
	CauseNone:                "no error",
	CauseNotImplemented:      "property not implemented",
	CauseBadCompute:          "finite difference around zero input",
	CauseNewtonBad:           "newton evaluation returned bad value",
	CauseNewtonNoConvergence: "newton did not converge",
}

func (c Code) sentinel() error {
	switch c.Cause {
	case CauseNotImplemented:
		return ErrNotImplemented
	case CauseBadCompute:
		return ErrBadCompute
	case CauseNewtonBad:
		return ErrNewtonBad
	case CauseNewtonNoConvergence:
		return ErrNoConvergence
	}
	return ErrModel
}

// ComputeError wraps a failed code with the request that produced it.
type ComputeError struct {
	Domain   Domain
	Property Property
	Code     Code
	Detail   string
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("eos: %s in %s: %s: %s", e.Property, e.Domain, e.Code.Severity, e.Detail)
}

func (e *ComputeError) Unwrap() error {
	return e.Code.sentinel()
}
