package plot

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// randomPolyline generates a deterministic jittery polyline of n points
// inside a size×size square, roughly what a plotted trajectory looks like.
func randomPolyline(n, size int) []vec.Vec2 {
	rng := rand.New(rand.NewSource(1))
	pts := make([]vec.Vec2, n)
	x, y := float64(size)/2, float64(size)/2
	for i := range pts {
		pts[i] = vec.Vec2{X: x, Y: y}
		x += (rng.Float64() - 0.5) * float64(size) / 20
		y += (rng.Float64() - 0.5) * float64(size) / 20
	}
	return pts
}

// BenchmarkStrokePolyline benchmarks our rasterizer stroking a trajectory.
func BenchmarkStrokePolyline(b *testing.B) {
	sizes := []int{200, 800}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := newRasterizer(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			pts := randomPolyline(500, size)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.begin()
				r.strokePolyline(pts, 1.25, graphics.LineCapRound)
				r.fill(func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorPolyline benchmarks x/image/vector filling the same
// stroke geometry, one quad per polyline segment.
func BenchmarkVectorPolyline(b *testing.B) {
	sizes := []int{200, 800}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			pts := randomPolyline(500, size)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)

				const d = 1.25 / 2
				for i := 0; i+1 < len(pts); i++ {
					a, c := pts[i], pts[i+1]
					t := c.Sub(a)
					length := t.Length()
					if length < zeroLengthTol {
						continue
					}
					t = t.Mul(1 / length)
					n := vec.Vec2{X: -t.Y, Y: t.X}

					p0 := a.Add(n.Mul(d))
					p1 := c.Add(n.Mul(d))
					p2 := c.Sub(n.Mul(d))
					p3 := a.Sub(n.Mul(d))
					r.MoveTo(float32(p0.X), float32(p0.Y))
					r.LineTo(float32(p1.X), float32(p1.Y))
					r.LineTo(float32(p2.X), float32(p2.Y))
					r.LineTo(float32(p3.X), float32(p3.Y))
					r.ClosePath()
				}

				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}
