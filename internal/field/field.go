package field

import (
	"fmt"

	"github.com/san-kum/eos/internal/eos"
)

// Field is a named buffer holding one property sampled at many state points.
// The property tag is resolved from the name when the field is created or
// renamed; a name that is not a property leaves the tag at eos.Unknown.
type Field struct {
	name string
	prop eos.Property
	data []float64
	// owned is false while data aliases storage passed to Wrap.
	owned bool
}

// New allocates a zeroed field of length n.
func New(name string, n int) *Field {
	f := Wrap(name, make([]float64, n))
	f.owned = true
	return f
}

// Wrap returns a field over data without copying it. Writes through the
// field are visible to the owner of data and the other way round.
func Wrap(name string, data []float64) *Field {
	f := &Field{data: data}
	f.SetName(name)
	return f
}

// Of allocates a field for a known property.
func Of(prop eos.Property, n int) *Field {
	return &Field{name: prop.String(), prop: prop, data: make([]float64, n), owned: true}
}

func (f *Field) Name() string           { return f.name }
func (f *Field) Property() eos.Property { return f.prop }
func (f *Field) Len() int               { return len(f.data) }
func (f *Field) At(i int) float64       { return f.data[i] }
func (f *Field) Set(i int, v float64)   { f.data[i] = v }

// Data exposes the underlying storage.
func (f *Field) Data() []float64 { return f.data }

// SetName renames the field and re-resolves its property tag.
func (f *Field) SetName(name string) {
	f.name = name
	prop, err := eos.ParseProperty(name)
	if err != nil {
		prop = eos.Unknown
	}
	f.prop = prop
}

// Resize changes the length to n, keeping the first min(Len(), n) values.
// Shrinking a wrapped field keeps the alias. Growing one always copies into
// new storage, so the caller's slice is never zeroed past the shrunk length;
// the field is detached from it afterwards.
func (f *Field) Resize(n int) {
	if n <= len(f.data) || (f.owned && n <= cap(f.data)) {
		old := len(f.data)
		f.data = f.data[:n]
		for i := old; i < n; i++ {
			f.data[i] = 0
		}
		return
	}
	data := make([]float64, n)
	copy(data, f.data)
	f.data = data
	f.owned = true
}

func (f *Field) String() string {
	return fmt.Sprintf("%s[%d]", f.name, len(f.data))
}

// Fields is an ordered collection of output fields.
type Fields []*Field

// NewFields allocates one field of length n per property name.
func NewFields(n int, names ...string) Fields {
	out := make(Fields, len(names))
	for i, name := range names {
		out[i] = New(name, n)
	}
	return out
}

// Lookup returns the first field with the given name.
func (fs Fields) Lookup(name string) (*Field, bool) {
	for _, f := range fs {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}
