package field

import "github.com/san-kum/eos/internal/eos"

// ErrorField stores the worst code seen so far at each state point.
type ErrorField struct {
	codes []eos.Code
}

func NewErrorField(n int) *ErrorField {
	return &ErrorField{codes: make([]eos.Code, n)}
}

func (e *ErrorField) Len() int              { return len(e.codes) }
func (e *ErrorField) At(i int) eos.Code     { return e.codes[i] }
func (e *ErrorField) Set(i int, c eos.Code) { e.codes[i] = c }
func (e *ErrorField) Codes() []eos.Code     { return e.codes }

// Resize changes the length to n, keeping existing codes. New slots are
// CodeGood.
func (e *ErrorField) Resize(n int) {
	if n <= cap(e.codes) {
		old := len(e.codes)
		e.codes = e.codes[:n]
		for i := old; i < n; i++ {
			e.codes[i] = eos.CodeGood
		}
		return
	}
	codes := make([]eos.Code, n)
	copy(codes, e.codes)
	e.codes = codes
}

// Reset marks every point as good.
func (e *ErrorField) Reset() {
	for i := range e.codes {
		e.codes[i] = eos.CodeGood
	}
}

// Fold stores c at i when it is strictly worse than the stored code and
// reports whether it did.
func (e *ErrorField) Fold(i int, c eos.Code) bool {
	if !c.WorseThan(e.codes[i]) {
		return false
	}
	e.codes[i] = c
	return true
}

// Worst returns the index of the first point with the highest severity,
// or -1 for an empty field.
func (e *ErrorField) Worst() int {
	worst := -1
	for i, c := range e.codes {
		if worst < 0 || c.Severity > e.codes[worst].Severity {
			worst = i
		}
	}
	return worst
}

// Severity is the highest severity in the field, Good when empty.
func (e *ErrorField) Severity() eos.Severity {
	if i := e.Worst(); i >= 0 {
		return e.codes[i].Severity
	}
	return eos.Good
}

// Count returns how many points carry severity s.
func (e *ErrorField) Count(s eos.Severity) int {
	n := 0
	for _, c := range e.codes {
		if c.Severity == s {
			n++
		}
	}
	return n
}
