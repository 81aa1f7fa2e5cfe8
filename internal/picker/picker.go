// Package picker turns cursor input into black hole selections. Each black
// hole gets exactly one interactive handle; its rings are render-only
// entities that are never hit-tested.
package picker

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
	"github.com/spacehole-rogue/holejump/internal/galaxy"
)

// SelectionEvent names the black hole the player picked.
type SelectionEvent struct {
	ID  string
	Pos galaxy.Position
}

// Cursor is the pointer shape the picker asks for.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// CursorFunc applies a cursor shape. It is only called on hover transitions.
type CursorFunc func(Cursor)

// Projector maps galaxy space to screen pixels. ok is false when the point
// is off screen.
type Projector interface {
	Project(p galaxy.Position) (x, y float64, ok bool)
}

// Handle is the interactive core of a black hole.
type Handle struct {
	ID  string
	Pos galaxy.Position
}

// HitRegion is the clickable radius of a handle, in screen pixels.
type HitRegion struct {
	Radius float64
}

// RingKind says how a ring is drawn.
type RingKind uint8

const (
	RingVertical   RingKind = iota // faces the camera
	RingHorizontal                 // lies in the galactic plane
	RingSelection                  // drawn only while selected
)

// Ring is pure render output. Entities carrying a Ring never carry a
// HitRegion.
type Ring struct {
	Owner  string
	Pos    galaxy.Position
	Kind   RingKind
	Radius float64 // screen pixels
}

// Sizes for the handle and its rings, in screen pixels.
const (
	DefaultHitRadius  = 6.0
	DefaultRingRadius = 14.0
)

// Picker owns the selection surfaces of the current galaxy.
type Picker struct {
	world   *ecs.World
	cursor  CursorFunc
	hovered string
	sel     *SelectionEvent

	HitRadius  float64
	RingRadius float64
}

// New creates an empty picker. cursor may be nil.
func New(cursor CursorFunc) *Picker {
	return &Picker{
		world:      ecs.NewWorld(64),
		cursor:     cursor,
		HitRadius:  DefaultHitRadius,
		RingRadius: DefaultRingRadius,
	}
}

// Load replaces all selection surfaces with those for holes. Selection and
// hover state are reset; the cursor reverts if it was a pointer.
func (p *Picker) Load(holes []galaxy.BlackHole) {
	p.world = ecs.NewWorld(64)
	if p.hovered != "" {
		p.setCursor(CursorDefault)
	}
	p.hovered = ""
	p.sel = nil

	handles := ecs.NewMap2[Handle, HitRegion](p.world)
	rings := ecs.NewMap1[Ring](p.world)
	for _, bh := range holes {
		handles.NewEntity(
			&Handle{ID: bh.ID, Pos: bh.Pos},
			&HitRegion{Radius: p.HitRadius},
		)
		for _, kind := range []RingKind{RingVertical, RingHorizontal, RingSelection} {
			rings.NewEntity(&Ring{Owner: bh.ID, Pos: bh.Pos, Kind: kind, Radius: p.RingRadius})
		}
	}
}

// Click resolves a click at screen (x, y). At most one event is produced:
// the nearest handle under the cursor, ties broken by id.
func (p *Picker) Click(x, y float64, proj Projector) (SelectionEvent, bool) {
	h, ok := p.hit(x, y, proj)
	if !ok {
		return SelectionEvent{}, false
	}
	ev := SelectionEvent{ID: h.ID, Pos: h.Pos}
	p.sel = &ev
	return ev, true
}

// Hover updates the cursor for a pointer at screen (x, y).
func (p *Picker) Hover(x, y float64, proj Projector) {
	id := ""
	if h, ok := p.hit(x, y, proj); ok {
		id = h.ID
	}
	switch {
	case p.hovered == "" && id != "":
		p.setCursor(CursorPointer)
	case p.hovered != "" && id == "":
		p.setCursor(CursorDefault)
	}
	p.hovered = id
}

// Hovered returns the id under the cursor, or "".
func (p *Picker) Hovered() string { return p.hovered }

// Selected returns the last selection.
func (p *Picker) Selected() (SelectionEvent, bool) {
	if p.sel == nil {
		return SelectionEvent{}, false
	}
	return *p.sel, true
}

// ClearSelection drops the current selection.
func (p *Picker) ClearSelection() { p.sel = nil }

// Rings calls fn for every render-only ring. Selection rings are only
// reported for the selected black hole.
func (p *Picker) Rings(fn func(Ring)) {
	q := ecs.NewFilter1[Ring](p.world).Query()
	for q.Next() {
		r := q.Get()
		if r.Kind == RingSelection && (p.sel == nil || p.sel.ID != r.Owner) {
			continue
		}
		fn(*r)
	}
}

func (p *Picker) hit(x, y float64, proj Projector) (Handle, bool) {
	type candidate struct {
		h  Handle
		d2 float64
	}
	var found []candidate

	// Only entities with a HitRegion are hit-tested.
	q := ecs.NewFilter2[Handle, HitRegion](p.world).Query()
	for q.Next() {
		h, region := q.Get()
		sx, sy, ok := proj.Project(h.Pos)
		if !ok {
			continue
		}
		dx, dy := sx-x, sy-y
		d2 := dx*dx + dy*dy
		if d2 <= region.Radius*region.Radius {
			found = append(found, candidate{h: *h, d2: d2})
		}
	}
	if len(found) == 0 {
		return Handle{}, false
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].d2 != found[j].d2 {
			return found[i].d2 < found[j].d2
		}
		return found[i].h.ID < found[j].h.ID
	})
	return found[0].h, true
}

func (p *Picker) setCursor(c Cursor) {
	if p.cursor != nil {
		p.cursor(c)
	}
}
