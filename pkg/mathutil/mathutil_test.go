package mathutil_test

import (
	"math"
	"sync"
	"testing"

	"github.com/okian/xprank/pkg/mathutil"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func TestInterpolation(t *testing.T) {
	Convey("Given lerp", t, func() {
		So(mathutil.Lerp(0, 10, 0), ShouldEqual, 0)
		So(mathutil.Lerp(0, 10, 1), ShouldEqual, 10)
		So(mathutil.Lerp(0, 10, 0.25), ShouldEqual, 2.5)

		Convey("Then t outside [0,1] extrapolates", func() {
			So(mathutil.Lerp(0, 10, 2), ShouldEqual, 20)
			So(mathutil.Lerp(0, 10, -1), ShouldEqual, -10)
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Given clamp", t, func() {
		So(mathutil.Clamp(5, 0, 10), ShouldEqual, 5)
		So(mathutil.Clamp(-3, 0, 10), ShouldEqual, 0)
		So(mathutil.Clamp(42, 0, 10), ShouldEqual, 10)

		Convey("When lo is greater than hi", func() {
			Convey("Then lo wins", func() {
				So(mathutil.Clamp(5, 10, 0), ShouldEqual, 10)
				So(mathutil.Clamp(-5, 10, 0), ShouldEqual, 10)
			})
		})
	})
}

func TestEasing(t *testing.T) {
	Convey("Given easing curves", t, func() {
		Convey("Then easeOutQuad hits its endpoints", func() {
			So(mathutil.EaseOutQuad(0), ShouldEqual, 0)
			So(mathutil.EaseOutQuad(1), ShouldEqual, 1)
			So(mathutil.EaseOutQuad(0.5), ShouldEqual, 0.75)
		})

		Convey("Then easeInOutCubic is symmetric around the midpoint", func() {
			So(mathutil.EaseInOutCubic(0), ShouldEqual, 0)
			So(mathutil.EaseInOutCubic(1), ShouldEqual, 1)
			So(mathutil.EaseInOutCubic(0.5), ShouldAlmostEqual, 0.5, epsilon)
			So(mathutil.EaseInOutCubic(0.25), ShouldAlmostEqual, 0.0625, epsilon)
			So(mathutil.EaseInOutCubic(0.75), ShouldAlmostEqual, 0.9375, epsilon)
		})
	})
}

func TestDegToRad(t *testing.T) {
	Convey("Given degree conversion", t, func() {
		So(mathutil.DegToRad(0), ShouldEqual, 0)
		So(mathutil.DegToRad(180), ShouldAlmostEqual, math.Pi, epsilon)
		So(mathutil.DegToRad(-90), ShouldAlmostEqual, -math.Pi/2, epsilon)
	})
}

func TestRandomRange(t *testing.T) {
	Convey("Given the process-wide random source", t, func() {
		Convey("Then values stay inside [lo, hi)", func() {
			for i := 0; i < 1000; i++ {
				v := mathutil.RandomRange(-5, 5)
				So(v, ShouldBeGreaterThanOrEqualTo, -5)
				So(v, ShouldBeLessThan, 5)
			}
		})

		Convey("Then concurrent callers do not race", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						_ = mathutil.RandomRange(0, 1)
					}
				}()
			}
			wg.Wait()
		})
	})

	Convey("Given two seeded sources", t, func() {
		a := mathutil.NewSource(7)
		b := mathutil.NewSource(7)

		Convey("Then they produce the same sequence", func() {
			for i := 0; i < 10; i++ {
				So(a.Range(10, 20), ShouldEqual, b.Range(10, 20))
			}
		})
	})
}
