package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
)

var _ = Describe("Field", func() {
	It("resolves its property from the name", func() {
		f := field.New("rho", 3)
		Expect(f.Property()).To(Equal(eos.Rho))
		Expect(f.Len()).To(Equal(3))

		f.SetName("d_T_d_p_h")
		Expect(f.Property()).To(Equal(eos.MustParse("d_T_d_p_h")))

		f.SetName("velocity")
		Expect(f.Property()).To(Equal(eos.Unknown))
		Expect(f.Name()).To(Equal("velocity"))
	})

	It("aliases wrapped storage", func() {
		data := []float64{1, 2, 3}
		f := field.Wrap("p", data)
		f.Set(1, 20)
		Expect(data[1]).To(Equal(20.0))
		data[2] = 30
		Expect(f.At(2)).To(Equal(30.0))
	})

	It("keeps leading values on resize", func() {
		f := field.Wrap("h", []float64{1, 2, 3, 4})
		f.Resize(2)
		Expect(f.Data()).To(Equal([]float64{1, 2}))
		f.Resize(5)
		Expect(f.Data()).To(Equal([]float64{1, 2, 0, 0, 0}))
	})

	It("never writes past the shrunk length of wrapped storage", func() {
		data := []float64{1, 2, 3, 4}
		f := field.Wrap("h", data)
		f.Resize(2)
		f.Set(0, 10)
		Expect(data[0]).To(Equal(10.0))

		f.Resize(3)
		Expect(f.Data()).To(Equal([]float64{10, 2, 0}))
		Expect(data).To(Equal([]float64{10, 2, 3, 4}))

		f.Set(1, 20)
		Expect(data[1]).To(Equal(2.0))
	})

	It("reuses its own capacity when growing", func() {
		f := field.New("h", 4)
		f.Set(3, 7)
		f.Resize(2)
		f.Resize(4)
		Expect(f.Data()).To(Equal([]float64{0, 0, 0, 0}))
	})

	It("looks fields up by name", func() {
		fs := field.NewFields(4, "T", "rho")
		Expect(fs.Names()).To(Equal([]string{"T", "rho"}))
		f, ok := fs.Lookup("rho")
		Expect(ok).To(BeTrue())
		Expect(f.Property()).To(Equal(eos.Rho))
		_, ok = fs.Lookup("mu")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ErrorField", func() {
	ok := eos.NewCode(eos.CauseModel+5, eos.OK)
	otherOK := eos.NewCode(eos.CauseModel+6, eos.OK)
	bad := eos.NewCode(eos.CauseModel+7, eos.Bad)

	It("folds only strictly worse codes", func() {
		e := field.NewErrorField(1)
		Expect(e.Fold(0, ok)).To(BeTrue())
		Expect(e.Fold(0, otherOK)).To(BeFalse())
		Expect(e.At(0)).To(Equal(ok))
		Expect(e.Fold(0, eos.CodeGood)).To(BeFalse())
		Expect(e.Fold(0, bad)).To(BeTrue())
		Expect(e.At(0)).To(Equal(bad))
	})

	It("reports the first point of highest severity", func() {
		e := field.NewErrorField(6)
		e.Set(1, ok)
		e.Set(2, bad)
		e.Set(3, otherOK)
		e.Set(4, eos.NewCode(eos.CauseModel+8, eos.Bad))
		Expect(e.Worst()).To(Equal(2))
		Expect(e.Severity()).To(Equal(eos.Bad))
		Expect(e.Count(eos.OK)).To(Equal(2))
	})

	It("handles empty and all-good fields", func() {
		Expect(field.NewErrorField(0).Worst()).To(Equal(-1))
		Expect(field.NewErrorField(0).Severity()).To(Equal(eos.Good))
		Expect(field.NewErrorField(3).Worst()).To(Equal(0))
	})

	It("resets and resizes", func() {
		e := field.NewErrorField(2)
		e.Set(0, bad)
		e.Resize(3)
		Expect(e.At(0)).To(Equal(bad))
		Expect(e.At(2)).To(Equal(eos.CodeGood))
		e.Reset()
		Expect(e.Severity()).To(Equal(eos.Good))
	})
})
