package camera_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/camera"
)

var _ = Describe("OrbitControls", func() {
	var (
		pose     camera.Pose
		controls *camera.OrbitControls
		starts   int
	)

	BeforeEach(func() {
		pose = camera.Pose{Position: mgl64.Vec3{0, 80, 100}}
		controls = camera.NewOrbitControls(camera.DefaultControlsSettings())
		starts = 0
		controls.OnStart = func() { starts++ }
	})

	It("keeps distance while rotating", func() {
		d := pose.Distance()
		controls.Rotate(120, 30, 720)
		for i := 0; i < 200; i++ {
			controls.Update(&pose)
		}
		Expect(pose.Distance()).To(BeNumerically("~", d, 1e-9))
		Expect(pose.Position).NotTo(Equal(mgl64.Vec3{0, 80, 100}))
	})

	It("damps rotation over several frames", func() {
		controls.Rotate(100, 0, 720)
		Expect(controls.Update(&pose)).To(BeTrue())
		first := pose.Position
		Expect(controls.Pending()).To(BeTrue())
		controls.Update(&pose)
		Expect(pose.Position).NotTo(Equal(first))
	})

	It("applies the whole delta at once without damping", func() {
		s := camera.DefaultControlsSettings()
		s.EnableDamping = false
		controls = camera.NewOrbitControls(s)
		controls.Rotate(100, 0, 720)
		controls.Update(&pose)
		Expect(controls.Pending()).To(BeFalse())
	})

	It("signals the start of a drag once", func() {
		controls.Rotate(5, 0, 720)
		controls.Rotate(5, 0, 720)
		Expect(starts).To(Equal(1))
		controls.EndDrag()
		controls.Rotate(5, 0, 720)
		Expect(starts).To(Equal(2))
	})

	It("signals every zoom step", func() {
		controls.Zoom(1)
		controls.Zoom(-1)
		Expect(starts).To(Equal(2))
	})

	It("ignores zero movement and empty viewports", func() {
		controls.Rotate(0, 0, 720)
		controls.Rotate(10, 10, 0)
		Expect(starts).To(BeZero())
		Expect(controls.Pending()).To(BeFalse())
	})

	It("zooms toward the target and clamps the distance", func() {
		d := pose.Distance()
		controls.Zoom(1)
		controls.Update(&pose)
		Expect(pose.Distance()).To(BeNumerically("~", d*0.95, 1e-9))

		controls.Zoom(-200)
		controls.Update(&pose)
		Expect(pose.Distance()).To(BeNumerically("~", 500, 1e-9))

		controls.Zoom(500)
		controls.Update(&pose)
		Expect(pose.Distance()).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("clamps the polar angle", func() {
		controls.Rotate(0, -100000, 720)
		for i := 0; i < 300; i++ {
			controls.Update(&pose)
		}
		off := pose.Position.Sub(pose.Target)
		phi := math.Acos(off.Y() / off.Len())
		Expect(phi).To(BeNumerically(">=", 0.01-1e-9))
		Expect(phi).To(BeNumerically("<=", math.Pi-0.01+1e-9))
	})

	It("discards pending input", func() {
		controls.Rotate(50, 50, 720)
		controls.Zoom(3)
		controls.Discard()
		Expect(controls.Pending()).To(BeFalse())
		Expect(controls.Update(&pose)).To(BeFalse())
	})
})

var _ = Describe("Projection", func() {
	vp := camera.Viewport{Width: 800, Height: 600}
	lens := camera.DefaultLens()
	pose := camera.Pose{Position: mgl64.Vec3{0, 80, 100}}

	It("puts the target at the screen center", func() {
		s, depth, ok := camera.Project(pose.Target, pose, lens, vp)
		Expect(ok).To(BeTrue())
		Expect(depth).To(BeNumerically(">", 0))
		Expect(s.X()).To(BeNumerically("~", 400, 1e-6))
		Expect(s.Y()).To(BeNumerically("~", 300, 1e-6))
	})

	It("rejects points behind the camera", func() {
		_, _, ok := camera.Project(mgl64.Vec3{0, 160, 200}, pose, lens, vp)
		Expect(ok).To(BeFalse())
	})

	It("rejects a zero-sized viewport", func() {
		_, _, ok := camera.Project(pose.Target, pose, lens, camera.Viewport{})
		Expect(ok).To(BeFalse())
		_, ok = camera.Viewport{Width: 10}.Aspect()
		Expect(ok).To(BeFalse())
	})
})
