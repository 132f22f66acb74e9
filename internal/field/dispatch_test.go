package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
)

var _ = Describe("Dispatcher", func() {
	var (
		eng  *eos.Engine
		disp *field.Dispatcher
	)

	BeforeEach(func() {
		eng = newEngine()
		disp = field.NewDispatcher(eng)
	})

	Describe("two-input dispatch", func() {
		It("evaluates every point from p and h", func() {
			p := field.Wrap("p", []float64{1e5, 2e5, 3e5})
			h := field.Wrap("h", []float64{3e5, 3e5, 6e5})
			out := field.New("T", 3)
			errs := field.NewErrorField(0)

			sev := disp.Compute2(p, h, out, errs)
			Expect(sev).To(Equal(eos.Good))
			Expect(out.Data()).To(Equal([]float64{300, 300, 600}))
			Expect(errs.Len()).To(Equal(3))
		})

		It("accepts inputs in either order", func() {
			p := field.Wrap("p", []float64{1e5, 2e5})
			h := field.Wrap("h", []float64{3e5, 4e5})
			a, b := field.New("rho", 2), field.New("rho", 2)
			errs := field.NewErrorField(2)

			disp.Compute2(p, h, a, errs)
			disp.Compute2(h, p, b, errs)
			Expect(b.Data()).To(Equal(a.Data()))
		})

		It("matches point-wise computation for p-T inputs", func() {
			p := field.Wrap("p", []float64{1e5, 5e5, 2e6})
			t := field.Wrap("T", []float64{250, 300, 400})
			out := field.New("rho", 3)
			errs := field.NewErrorField(3)

			Expect(disp.Compute2(p, t, out, errs)).To(Equal(eos.Good))
			for i := 0; i < 3; i++ {
				want, _ := eng.Compute(eos.PT, eos.Rho, p.At(i), t.At(i))
				Expect(out.At(i)).To(Equal(want))
			}
		})

		It("matches point-wise computation for p-s inputs", func() {
			p := field.Wrap("p", []float64{1e5, 2e5, 3e5})
			st := field.Wrap("s", []float64{1000, 1200, -1})
			outs := field.NewFields(3, "T", "rho", "h")
			errs := field.NewErrorField(3)

			Expect(disp.ComputeMany2(st, p, outs, errs)).To(Equal(eos.Bad))
			Expect(outs[0].Data()).To(Equal([]float64{300, 360, 0}))
			for _, out := range outs {
				for i := 0; i < 3; i++ {
					want, c := eng.Compute(eos.PS, out.Property(), p.At(i), st.At(i))
					Expect(out.At(i)).To(Equal(want), "%s at point %d", out.Name(), i)
					Expect(c.Severity).To(BeNumerically("<=", errs.At(i).Severity))
				}
			}
			Expect(errs.At(2)).To(Equal(codeOutside))
		})

		It("records failed conversions per point", func() {
			p := field.Wrap("p", []float64{1e5, 1e5, 1e5})
			t := field.Wrap("T", []float64{300, -5, 310})
			out := field.New("rho", 3)
			errs := field.NewErrorField(3)

			Expect(disp.Compute2(p, t, out, errs)).To(Equal(eos.Bad))
			Expect(errs.At(1)).To(Equal(codeOutside))
			Expect(out.At(1)).To(BeZero())
			Expect(errs.At(0)).To(Equal(eos.CodeGood))
			Expect(errs.Worst()).To(Equal(1))
		})

		It("fills the error field when input roles are unknown", func() {
			a := field.Wrap("h", []float64{1, 2})
			b := field.Wrap("T", []float64{1, 2})
			out := field.New("rho", 2)
			errs := field.NewErrorField(2)

			Expect(disp.Compute2(a, b, out, errs)).To(Equal(eos.Error))
			Expect(errs.Codes()).To(Equal([]eos.Code{eos.CodeNotImplemented, eos.CodeNotImplemented}))
		})

		It("discards codes from earlier calls", func() {
			p := field.Wrap("p", []float64{1e5})
			h := field.Wrap("h", []float64{3e5})
			errs := field.NewErrorField(1)
			errs.Set(0, eos.CodeNotImplemented)

			Expect(disp.Compute2(p, h, field.New("T", 1), errs)).To(Equal(eos.Good))
		})

		It("panics on length mismatch", func() {
			p := field.New("p", 3)
			h := field.New("h", 2)
			Expect(func() { disp.Compute2(p, h, field.New("T", 3), field.NewErrorField(3)) }).To(Panic())
			Expect(func() { disp.Compute2(p, field.New("h", 3), field.New("T", 2), field.NewErrorField(3)) }).To(Panic())
		})
	})

	Describe("multi-output dispatch", func() {
		It("accumulates the worst code across outputs", func() {
			p := field.Wrap("p", []float64{1e5, 2e5})
			h := field.Wrap("h", []float64{3e5, 3e5})
			outs := field.NewFields(2, "T", "rho", "mu")
			errs := field.NewErrorField(2)

			Expect(disp.ComputeMany2(p, h, outs, errs)).To(Equal(eos.Error))
			Expect(outs[0].Data()).To(Equal([]float64{300, 300}))
			Expect(errs.At(0)).To(Equal(eos.CodeNotImplemented))
		})

		It("converts temperature to enthalpy once per point", func() {
			calls := 0
			counted := eos.New(countingGas{calls: &calls}, eos.WithLogger(quietLogger()))
			d := field.NewDispatcher(counted)

			p := field.Wrap("p", []float64{1e5, 2e5, 3e5})
			t := field.Wrap("T", []float64{300, 310, 320})
			outs := field.NewFields(3, "T", "rho", "h")
			Expect(d.ComputeMany2(p, t, outs, field.NewErrorField(3))).To(Equal(eos.Good))
			Expect(calls).To(Equal(3))
			Expect(outs[2].Data()).To(Equal([]float64{3e5, 3.1e5, 3.2e5}))
		})
	})

	Describe("one-input dispatch", func() {
		It("picks saturation or limit by output family", func() {
			p := field.Wrap("p", []float64{1e5, 2e5})
			outs := field.NewFields(2, "T_sat", "h_l_lim", "d_h_l_lim_d_p", "rho_v_sat")
			errs := field.NewErrorField(0)

			Expect(disp.ComputeMany1(p, outs, errs)).To(Equal(eos.Error))
			Expect(outs[0].Data()).To(Equal([]float64{300, 310}))
			Expect(outs[1].Data()).To(Equal([]float64{3e5, 6e5}))
			Expect(outs[2].At(0)).To(BeNumerically("~", 3, 1e-6))
			Expect(errs.At(1)).To(Equal(eos.CodeNotImplemented))
		})

		It("solves saturation states from temperature", func() {
			t := field.Wrap("T_sat", []float64{300, 350})
			out := field.New("h_l_sat", 2)
			errs := field.NewErrorField(2)

			Expect(disp.Compute1(t, out, errs)).To(Equal(eos.Good))
			Expect(out.At(0)).To(BeNumerically("~", 2e5, 1e-3))
			Expect(out.At(1)).To(BeNumerically("~", 1.2e6, 1e-3))
		})

		It("differentiates along the saturation line from temperature", func() {
			t := field.Wrap("T_sat", []float64{300, 310})
			outs := field.NewFields(2, "d_h_l_sat_d_p", "d_p_sat_d_T", "p_sat")
			errs := field.NewErrorField(2)

			Expect(disp.ComputeMany1(t, outs, errs)).To(Equal(eos.Good))
			for i := 0; i < 2; i++ {
				Expect(outs[0].At(i)).To(BeNumerically("~", 2, 1e-4))
				Expect(outs[1].At(i)).To(BeNumerically("~", 1e4, 1e-2))
			}
			Expect(outs[2].At(1)).To(BeNumerically("~", 2e5, 1e-3))
		})

		It("converts pressure to T_sat for temperature derivatives", func() {
			p := field.Wrap("p", []float64{1e5, 2e5})
			outs := field.NewFields(2, "d_p_sat_d_T", "T_sat")
			errs := field.NewErrorField(2)

			dom, ok := field.OneInputDomain(eos.P, outs[0].Property())
			Expect(ok).To(BeTrue())
			Expect(dom).To(Equal(eos.SatT))

			Expect(disp.ComputeMany1(p, outs, errs)).To(Equal(eos.Good))
			for i := 0; i < 2; i++ {
				Expect(outs[0].At(i)).To(BeNumerically("~", 1e4, 1e-2))
			}
			Expect(outs[1].At(1)).To(BeNumerically("~", 310, 1e-9))
		})

		It("rejects inputs that are neither pressure nor temperature", func() {
			in := field.Wrap("rho", []float64{1})
			out := field.New("T_sat", 1)
			errs := field.NewErrorField(1)
			Expect(disp.Compute1(in, out, errs)).To(Equal(eos.Error))
		})
	})

	Describe("parallel dispatch", func() {
		It("gives the same result as the serial path", func() {
			const n = 1000
			p, h := field.New("p", n), field.New("h", n)
			for i := 0; i < n; i++ {
				p.Set(i, 1e5+float64(i)*100)
				h.Set(i, 2e5+float64(i)*50)
			}
			serial, parallel := field.New("rho", n), field.New("rho", n)
			disp.Compute2(p, h, serial, field.NewErrorField(n))

			disp.Workers, disp.MinChunk = 4, 64
			Expect(disp.Compute2(p, h, parallel, field.NewErrorField(n))).To(Equal(eos.Good))
			Expect(parallel.Data()).To(Equal(serial.Data()))
		})
	})
})
