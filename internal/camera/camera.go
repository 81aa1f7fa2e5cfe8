// Package camera maps galaxy coordinates onto a screen rectangle. The
// galactic plane is viewed from above: x runs right and z runs down, y is
// dropped.
package camera

import (
	"math"

	"github.com/spacehole-rogue/holejump/internal/galaxy"
)

const (
	MinScale = 1e-4 // pixels per galaxy unit
	MaxScale = 1.0
)

// Camera implements picker.Projector.
type Camera struct {
	X, Y, W, H       float64 // screen rectangle in pixels
	CenterX, CenterZ float64 // galaxy point at the middle of the rectangle
	Scale            float64 // pixels per galaxy unit
}

// Fit frames a galaxy of the given width in the rectangle, centered on the
// origin.
func Fit(x, y, w, h, width float64) Camera {
	c := Camera{X: x, Y: y, W: w, H: h, Scale: MinScale}
	if width > 0 {
		c.Scale = clampScale(math.Min(w, h) / width)
	}
	return c
}

// Project returns the screen position of p. ok is false outside the
// rectangle or for non-finite positions.
func (c Camera) Project(p galaxy.Position) (x, y float64, ok bool) {
	if !p.Finite() {
		return 0, 0, false
	}
	x = c.X + c.W/2 + (p.X-c.CenterX)*c.Scale
	y = c.Y + c.H/2 + (p.Z-c.CenterZ)*c.Scale
	return x, y, c.Contains(x, y)
}

// Unproject returns the galaxy x/z under a screen point.
func (c Camera) Unproject(sx, sy float64) (x, z float64) {
	x = c.CenterX + (sx-c.X-c.W/2)/c.Scale
	z = c.CenterZ + (sy-c.Y-c.H/2)/c.Scale
	return x, z
}

// Contains reports whether a screen point lies inside the rectangle.
func (c Camera) Contains(sx, sy float64) bool {
	return sx >= c.X && sx < c.X+c.W && sy >= c.Y && sy < c.Y+c.H
}

// Pixels converts a galaxy distance to screen pixels.
func (c Camera) Pixels(d float64) float64 { return d * c.Scale }

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.CenterX -= dx / c.Scale
	c.CenterZ -= dy / c.Scale
}

// Zoom scales the view by factor while keeping the galaxy point under
// (sx, sy) fixed on screen.
func (c *Camera) Zoom(factor, sx, sy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	gx, gz := c.Unproject(sx, sy)
	c.Scale = clampScale(c.Scale * factor)
	c.CenterX = gx - (sx-c.X-c.W/2)/c.Scale
	c.CenterZ = gz - (sy-c.Y-c.H/2)/c.Scale
}

// LookAt centers the view on p.
func (c *Camera) LookAt(p galaxy.Position) {
	c.CenterX, c.CenterZ = p.X, p.Z
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}
