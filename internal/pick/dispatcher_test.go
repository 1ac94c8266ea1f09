package pick_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
)

var _ = Describe("Ray", func() {
	It("hits the near side of a sphere", func() {
		r := pick.Ray{Origin: mgl64.Vec3{0, 0, 10}, Dir: mgl64.Vec3{0, 0, -1}}
		t, ok := r.IntersectSphere(mgl64.Vec3{}, 2)
		Expect(ok).To(BeTrue())
		Expect(t).To(BeNumerically("~", 8, 1e-12))
	})

	It("misses spheres beside or behind it", func() {
		r := pick.Ray{Origin: mgl64.Vec3{0, 0, 10}, Dir: mgl64.Vec3{0, 0, -1}}
		_, ok := r.IntersectSphere(mgl64.Vec3{5, 0, 0}, 2)
		Expect(ok).To(BeFalse())
		_, ok = r.IntersectSphere(mgl64.Vec3{0, 0, 20}, 2)
		Expect(ok).To(BeFalse())
	})

	It("passes through the screen center along the view direction", func() {
		pose := camera.Pose{Position: mgl64.Vec3{0, 80, 100}}
		vp := camera.Viewport{Width: 1280, Height: 720}
		r, ok := pick.RayFromScreen(640, 360, pose, camera.DefaultLens(), vp)
		Expect(ok).To(BeTrue())
		f, _ := pose.Forward()
		Expect(r.Dir.ApproxEqualThreshold(f, 1e-12)).To(BeTrue())
	})

	It("inverts projection", func() {
		pose := camera.Pose{Position: mgl64.Vec3{0, 80, 100}}
		lens := camera.DefaultLens()
		vp := camera.Viewport{Width: 1280, Height: 720}
		p := mgl64.Vec3{12, -3, 7}
		s, _, ok := camera.Project(p, pose, lens, vp)
		Expect(ok).To(BeTrue())
		r, ok := pick.RayFromScreen(s.X(), s.Y(), pose, lens, vp)
		Expect(ok).To(BeTrue())
		want := p.Sub(pose.Position).Normalize()
		Expect(r.Dir.ApproxEqualThreshold(want, 1e-9)).To(BeTrue())
	})

	It("needs a valid viewport", func() {
		_, ok := pick.NDC(1, 1, camera.Viewport{})
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		reg  *body.Registry
		pose camera.Pose
		ctrl *camera.Controller
		disp *pick.Dispatcher
		lens camera.Lens
		vp   camera.Viewport
	)

	screenOf := func(p mgl64.Vec3) (float64, float64) {
		s, _, ok := camera.Project(p, pose, lens, vp)
		Expect(ok).To(BeTrue())
		return s.X(), s.Y()
	}

	BeforeEach(func() {
		var err error
		reg, err = body.Build([]body.Spec{
			{Name: "Matahari", Kind: body.KindSun, Radius: 3},
			{Name: "Bumi", Kind: body.KindPlanet, Radius: 0.65,
				Elements: orbit.Elements{A: 11, E: 0.017, SpeedBase: 0.035}},
			{Name: "Mars", Kind: body.KindPlanet, Radius: 0.5,
				Elements: orbit.Elements{A: 15, E: 0.093, SpeedBase: 0.028}, Theta: math.Pi / 2},
		}, body.Options{})
		Expect(err).NotTo(HaveOccurred())
		pose = camera.Pose{Position: mgl64.Vec3{0, 80, 100}}
		ctrl = camera.NewController(&pose, camera.DefaultSettings(), nil)
		disp = pick.NewDispatcher(reg, ctrl, nil)
		lens = camera.DefaultLens()
		vp = camera.Viewport{Width: 1280, Height: 720}
	})

	It("focuses the clicked planet", func() {
		earth, _ := reg.ByName("Bumi")
		x, y := screenOf(earth.WorldPosition())
		Expect(disp.Click(x, y, pose, lens, vp)).To(Equal(camera.ActionFocus))
		Expect(ctrl.Focused()).To(Equal(earth))
		Expect(ctrl.State()).To(Equal(camera.TransitionIn))
	})

	It("resets when the focused body is clicked again", func() {
		x, y := screenOf(mgl64.Vec3{})
		Expect(disp.Click(x, y, pose, lens, vp)).To(Equal(camera.ActionFocus))
		Expect(ctrl.Focused()).To(Equal(reg.Sun()))
		Expect(disp.Click(x, y, pose, lens, vp)).To(Equal(camera.ActionReset))
		Expect(ctrl.Focused()).To(BeNil())
		Expect(ctrl.State()).To(Equal(camera.TransitionOut))
	})

	It("ignores clicks on an orbit line", func() {
		mars, _ := reg.ByName("mars")
		r, _ := mars.Elements.Radius(3 * math.Pi / 2)
		onOrbit := mgl64.Vec3{0, 0, -r}
		x, y := screenOf(onOrbit)

		before := ctrl.Focus()
		Expect(disp.Click(x, y, pose, lens, vp)).To(Equal(camera.ActionNone))
		Expect(ctrl.Focus()).To(Equal(before))
		Expect(ctrl.State()).To(Equal(camera.Free))
	})

	It("ignores clicks on empty space", func() {
		Expect(disp.Click(2, 2, pose, lens, vp)).To(Equal(camera.ActionNone))
		Expect(ctrl.Focused()).To(BeNil())
	})

	It("prefers the nearest body along the ray", func() {
		mars, _ := reg.ByName("mars")
		r := pick.Ray{Origin: mgl64.Vec3{0, 0, 100}, Dir: mgl64.Vec3{0, 0, -1}}
		hit, ok := disp.Cast(r)
		Expect(ok).To(BeTrue())
		Expect(hit.Body).To(Equal(mars))
		Expect(hit.Distance).To(BeNumerically("~", 100-mars.WorldPosition().Z()-0.5, 1e-9))
	})

	It("does nothing for an empty registry", func() {
		empty := pick.NewDispatcher(body.NewRegistry(), ctrl, nil)
		Expect(empty.Click(640, 360, pose, lens, vp)).To(Equal(camera.ActionNone))
		Expect(ctrl.State()).To(Equal(camera.Free))
	})

	It("does nothing for a zero-sized viewport", func() {
		Expect(disp.Click(0, 0, pose, lens, camera.Viewport{})).To(Equal(camera.ActionNone))
	})

	It("selects bodies by name", func() {
		a, err := disp.ClickBody("MARS")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(camera.ActionFocus))

		_, err = disp.ClickBody("Pluto")
		Expect(err).To(MatchError(body.ErrUnknownBody))
	})
})
