package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spacehole-rogue/holejump/internal/camera"
	"github.com/spacehole-rogue/holejump/internal/galaxy"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/picker"
)

// Scene is what the star map needs from a session for one frame.
type Scene struct {
	Galaxy    *galaxy.Galaxy
	Jump      jump.Config
	CurrentID string
	Targets   []string // black holes within jump range
	MaxJump   float64  // jump radius around the current location; 0 hides it
	Hovered   string
	Rings     func(fn func(picker.Ring))
}

// DrawStarMap draws stars, black holes, their rings, and the jump radius
// straight onto the screen.
func (r *GridRenderer) DrawStarMap(screen *ebiten.Image, cam camera.Camera, sc Scene) {
	g := sc.Galaxy
	if g == nil {
		return
	}

	if here, ok := g.Locate(sc.CurrentID); ok && sc.MaxJump > 0 {
		// The radius can reach the screen even when its center does not.
		x, y, _ := cam.Project(here)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(cam.Pixels(sc.MaxJump)),
			1, Palette[ColorRange], true)
	}

	for _, s := range g.Systems {
		x, y, ok := cam.Project(s.Pos)
		if !ok {
			continue
		}
		r.DrawGlyphAt(screen, GlyphStar, StarColor(s.Kind), x, y)
	}

	if sc.Rings != nil {
		sc.Rings(func(ring picker.Ring) {
			x, y, ok := cam.Project(ring.Pos)
			if !ok {
				return
			}
			clr := uint8(ColorHole)
			if ring.Owner == sc.Hovered {
				clr = ColorWhite
			}
			switch ring.Kind {
			case picker.RingVertical:
				strokeEllipse(screen, x, y, ring.Radius*0.4, ring.Radius, clr)
			case picker.RingHorizontal:
				strokeEllipse(screen, x, y, ring.Radius, ring.Radius*0.35, clr)
			case picker.RingSelection:
				vector.StrokeCircle(screen, float32(x), float32(y), float32(ring.Radius*1.4),
					2, Palette[ColorSelection], true)
			}
		})
	}

	targets := make(map[string]bool, len(sc.Targets))
	for _, id := range sc.Targets {
		targets[id] = true
	}
	for _, bh := range g.BlackHoles {
		x, y, ok := cam.Project(bh.Pos)
		if !ok {
			continue
		}
		clr := uint8(ColorHole)
		switch {
		case targets[bh.ID]:
			clr = ColorTarget
		case jump.IsCenter(sc.Jump, bh):
			clr = ColorCenter
		}
		r.DrawGlyphAt(screen, GlyphHole, clr, x, y)
	}

	if here, ok := g.Locate(sc.CurrentID); ok {
		if x, y, ok := cam.Project(here); ok {
			r.DrawGlyphAt(screen, '@', ColorCurrent, x, y)
		}
	}
}

const ellipseSegments = 24

func strokeEllipse(screen *ebiten.Image, cx, cy, rx, ry float64, clr uint8) {
	px, py := cx+rx, cy
	for i := 1; i <= ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x, y := cx+rx*math.Cos(a), cy+ry*math.Sin(a)
		vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1, Palette[clr], true)
		px, py = x, y
	}
}
