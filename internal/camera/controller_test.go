package camera_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/orbit"
)

const eps = 1e-9

func newSystem() *body.Registry {
	reg, err := body.Build([]body.Spec{
		{Name: "Matahari", Kind: body.KindSun, Radius: 3},
		{Name: "Bumi", Kind: body.KindPlanet, Radius: 0.65,
			Elements: orbit.Elements{A: 11, E: 0.017, SpeedBase: 0.035}, SpinRate: 0.02},
		{Name: "Mars", Kind: body.KindPlanet, Radius: 0.5,
			Elements: orbit.Elements{A: 15, E: 0.093, SpeedBase: 0.028}, SpinRate: 0.02, Theta: 2},
	}, body.Options{Seed: 7})
	Expect(err).NotTo(HaveOccurred())
	return reg
}

func home() camera.Pose {
	return camera.Pose{Position: mgl64.Vec3{0, 80, 100}}
}

func runTicks(reg *body.Registry, c *camera.Controller, n int) {
	for i := 0; i < n; i++ {
		if reg != nil {
			reg.Advance()
		}
		c.Advance()
	}
}

var _ = Describe("Controller", func() {
	var (
		reg   *body.Registry
		pose  camera.Pose
		ctrl  *camera.Controller
		earth *body.Body
		mars  *body.Body
	)

	BeforeEach(func() {
		reg = newSystem()
		pose = home()
		ctrl = camera.NewController(&pose, camera.DefaultSettings(), nil)
		var err error
		earth, err = reg.ByName("bumi")
		Expect(err).NotTo(HaveOccurred())
		mars, err = reg.ByName("mars")
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts free with no focus", func() {
		Expect(ctrl.State()).To(Equal(camera.Free))
		Expect(ctrl.Focused()).To(BeNil())
		Expect(ctrl.OwnsPose()).To(BeFalse())
		Expect(ctrl.Home()).To(Equal(home()))
	})

	Describe("focusing a planet", func() {
		It("reaches the body in exactly 20 ticks at ten times its radius", func() {
			Expect(earth.Theta).To(BeNumerically("==", 0))
			ctrl.FocusOn(earth)
			Expect(ctrl.State()).To(Equal(camera.TransitionIn))

			runTicks(nil, ctrl, 19)
			Expect(ctrl.State()).To(Equal(camera.TransitionIn))
			Expect(ctrl.Progress()).To(BeNumerically("<", 1))

			runTicks(nil, ctrl, 1)
			Expect(ctrl.State()).To(Equal(camera.Following))
			Expect(ctrl.Progress()).To(BeNumerically("==", 1))

			wp := earth.WorldPosition()
			Expect(pose.Target.ApproxEqualThreshold(wp, eps)).To(BeTrue())
			Expect(pose.Position.Sub(wp).Len()).To(BeNumerically("~", 6.5, 1e-9))
			Expect(ctrl.Focus().Offset.Len()).To(BeNumerically("~", 6.5, 1e-9))
		})

		It("tracks the moving body during the transition", func() {
			ctrl.FocusOn(mars)
			runTicks(reg, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Following))
			wp := mars.WorldPosition()
			Expect(pose.Target.ApproxEqualThreshold(wp, eps)).To(BeTrue())
			Expect(pose.Position.ApproxEqualThreshold(wp.Add(ctrl.Focus().Offset), eps)).To(BeTrue())
		})

		It("blends up, side and radial directions", func() {
			off := ctrl.FocusOffset(earth)
			Expect(off.Y()).To(BeNumerically(">", 0))
			radial := earth.WorldPosition().Normalize()
			Expect(off.Dot(radial)).To(BeNumerically(">", 0))
		})

		It("rigidly follows the body", func() {
			ctrl.FocusOn(mars)
			runTicks(reg, ctrl, 20)
			runTicks(reg, ctrl, 50)
			wp := mars.WorldPosition()
			Expect(pose.Position.ApproxEqualThreshold(wp.Add(ctrl.Focus().Offset), eps)).To(BeTrue())
			Expect(ctrl.OwnsPose()).To(BeTrue())
		})
	})

	Describe("user override", func() {
		BeforeEach(func() {
			ctrl.FocusOn(mars)
			runTicks(reg, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Following))
		})

		It("keeps the position and re-centers the target", func() {
			ctrl.NotifyUserMovement()
			Expect(ctrl.Focus().UserOverrode).To(BeTrue())
			Expect(ctrl.OwnsPose()).To(BeFalse())

			before := pose.Position
			runTicks(reg, ctrl, 30)
			Expect(pose.Position).To(Equal(before))
			Expect(pose.Target.ApproxEqualThreshold(mars.WorldPosition(), eps)).To(BeTrue())
			Expect(ctrl.State()).To(Equal(camera.Following))
		})

		It("is cleared by a new focus", func() {
			ctrl.NotifyUserMovement()
			ctrl.FocusOn(earth)
			Expect(ctrl.Focus().UserOverrode).To(BeFalse())
		})

		It("is ignored outside following", func() {
			ctrl.Reset()
			ctrl.NotifyUserMovement()
			Expect(ctrl.Focus().UserOverrode).To(BeFalse())
		})
	})

	Describe("reset", func() {
		It("returns to the overview pose", func() {
			ctrl.FocusOn(earth)
			runTicks(reg, ctrl, 20)
			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(camera.TransitionOut))
			Expect(ctrl.Focused()).To(BeNil())

			runTicks(reg, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Free))
			Expect(pose.ApproxEqual(home(), eps)).To(BeTrue())
			Expect(ctrl.Focus().Following).To(BeFalse())
			Expect(ctrl.Focus().UserOverrode).To(BeFalse())
		})

		It("restores the same pose across focus, reset, focus", func() {
			ctrl.FocusOn(earth)
			runTicks(reg, ctrl, 25)
			ctrl.Reset()
			runTicks(reg, ctrl, 20)
			Expect(pose.ApproxEqual(home(), eps)).To(BeTrue())

			ctrl.FocusOn(earth)
			runTicks(reg, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Following))
			Expect(pose.Distance()).To(BeNumerically("~", 6.5, 1e-9))
		})

		It("is a no-op when already free at home", func() {
			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(camera.Free))
			Expect(pose).To(Equal(home()))
		})

		It("brings a free camera moved by the controls back home", func() {
			controls := camera.NewOrbitControls(camera.DefaultControlsSettings())
			controls.Rotate(300, 80, 720)
			controls.EndDrag()
			for i := 0; i < 200; i++ {
				controls.Update(&pose)
			}
			Expect(pose.ApproxEqual(home(), 1)).To(BeFalse())

			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(camera.TransitionOut))
			Expect(ctrl.OwnsPose()).To(BeTrue())

			runTicks(nil, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Free))
			Expect(pose.ApproxEqual(home(), eps)).To(BeTrue())
		})
	})

	Describe("toggle", func() {
		It("focuses and then resets the sun", func() {
			sun := reg.Sun()
			Expect(ctrl.Toggle(sun)).To(Equal(camera.ActionFocus))
			runTicks(reg, ctrl, 20)
			Expect(pose.Distance()).To(BeNumerically("~", 25, 1e-9))

			Expect(ctrl.Toggle(sun)).To(Equal(camera.ActionReset))
			runTicks(reg, ctrl, 20)
			Expect(ctrl.Focused()).To(BeNil())
			Expect(ctrl.Focus().Following).To(BeFalse())
		})

		It("does nothing for nil", func() {
			Expect(ctrl.Toggle(nil)).To(Equal(camera.ActionNone))
			Expect(ctrl.State()).To(Equal(camera.Free))
		})
	})

	Describe("transitions in flight", func() {
		It("are replaced by a new focus", func() {
			ctrl.FocusOn(earth)
			runTicks(reg, ctrl, 10)
			mid := pose

			ctrl.FocusOn(mars)
			Expect(ctrl.Progress()).To(BeNumerically("==", 0))
			Expect(ctrl.Focused()).To(Equal(mars))

			runTicks(reg, ctrl, 1)
			Expect(pose.Position.Sub(mid.Position).Len()).To(BeNumerically("<", mid.Position.Sub(mars.WorldPosition()).Len()))

			runTicks(reg, ctrl, 19)
			Expect(ctrl.State()).To(Equal(camera.Following))
			Expect(pose.Target.ApproxEqualThreshold(mars.WorldPosition(), eps)).To(BeTrue())
		})

		It("are replaced by a reset", func() {
			ctrl.FocusOn(earth)
			runTicks(reg, ctrl, 5)
			ctrl.Reset()
			runTicks(reg, ctrl, 20)
			Expect(ctrl.State()).To(Equal(camera.Free))
			Expect(pose.ApproxEqual(home(), eps)).To(BeTrue())
		})

		It("own the pose", func() {
			ctrl.FocusOn(earth)
			Expect(ctrl.OwnsPose()).To(BeTrue())
			ctrl.Reset()
			Expect(ctrl.OwnsPose()).To(BeTrue())
		})
	})
})

var _ = Describe("State", func() {
	DescribeTable("round-trips through its name",
		func(s camera.State) {
			got, err := camera.ParseState(s.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(s))
		},
		Entry("free", camera.Free),
		Entry("transition in", camera.TransitionIn),
		Entry("following", camera.Following),
		Entry("transition out", camera.TransitionOut),
	)

	It("rejects unknown names", func() {
		_, err := camera.ParseState("orbiting")
		Expect(err).To(HaveOccurred())
	})
})
