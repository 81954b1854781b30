// Package physics wraps a Chipmunk space for the level's platforms and actors.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/behave/internal/domain/entity"
)

const allLayers = ^uint(0)

// collisionSlop is the overlap allowed between resting shapes, in tiles
const collisionSlop = 0.01

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

// World owns the Chipmunk space, the static level geometry and the bodies
// mirroring tracked actors.
type World struct {
	space *cp.Space

	obstacles map[entity.EntityID]*cp.Shape
	tracked   map[*entity.Kinematics]*trackedBody
	order     []*entity.Kinematics
}

type trackedBody struct {
	body    *cp.Body
	shape   *cp.Shape
	dynamic bool
	layer   entity.Layer
}

// NewWorld creates an empty world with gravity pointing down (+Y).
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetCollisionSlop(collisionSlop)
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	return &World{
		space:     space,
		obstacles: make(map[entity.EntityID]*cp.Shape),
		tracked:   make(map[*entity.Kinematics]*trackedBody),
	}
}

// AddPlatforms adds static solid boxes
func (w *World) AddPlatforms(rects []entity.Rect) {
	for _, r := range rects {
		w.addStatic(r)
	}
}

// AddObstacle adds a removable solid box
func (w *World) AddObstacle(id entity.EntityID, r entity.Rect) {
	w.RemoveObstacle(id)
	w.obstacles[id] = w.addStatic(r)
}

// RemoveObstacle drops an obstacle's shape, if present
func (w *World) RemoveObstacle(id entity.EntityID) {
	shape, ok := w.obstacles[id]
	if !ok {
		return
	}
	w.space.RemoveShape(shape)
	delete(w.obstacles, id)
}

func (w *World) addStatic(r entity.Rect) *cp.Shape {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(1)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filterFor(entity.LayerPlatform))
	w.space.AddShape(shape)
	return shape
}

// Track mirrors k with a body. Dynamic actors fall and collide; the rest
// move kinematically at their velocity.
func (w *World) Track(k *entity.Kinematics) {
	if _, ok := w.tracked[k]; ok {
		return
	}

	var body *cp.Body
	if k.Dynamic {
		body = cp.NewBody(mass(k), math.Inf(1))
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(k.Pos)
	body.SetVelocityVector(k.Vel)

	shape := cp.NewBox(body, k.Size.X, k.Size.Y, 0)
	shape.SetFilter(filterFor(k.Layer))
	if k.Layer == entity.LayerPlatform {
		shape.SetFriction(1)
		shape.SetCollisionType(collisionTypeSolid)
	} else {
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeActor)
	}

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.tracked[k] = &trackedBody{body: body, shape: shape, dynamic: k.Dynamic, layer: k.Layer}
	w.order = append(w.order, k)
}

// Untrack removes k's body
func (w *World) Untrack(k *entity.Kinematics) {
	tb, ok := w.tracked[k]
	if !ok {
		return
	}
	w.space.RemoveShape(tb.shape)
	w.space.RemoveBody(tb.body)
	delete(w.tracked, k)
	for i, o := range w.order {
		if o == k {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Tracked returns the number of mirrored actors
func (w *World) Tracked() int {
	return len(w.order)
}

// Step pushes actor state into the space, advances it by dt and reads the
// result back. Removed actors are dropped first.
func (w *World) Step(dt float64) {
	for i := len(w.order) - 1; i >= 0; i-- {
		if k := w.order[i]; k.Removed {
			w.Untrack(k)
		}
	}

	for _, k := range w.order {
		w.push(k, w.tracked[k])
	}

	w.space.Step(dt)

	for _, k := range w.order {
		tb := w.tracked[k]
		k.Pos = tb.body.Position()
		k.Vel = tb.body.Velocity()
	}
}

func (w *World) push(k *entity.Kinematics, tb *trackedBody) {
	if k.Dynamic != tb.dynamic {
		if k.Dynamic {
			tb.body.SetType(cp.BODY_DYNAMIC)
			tb.body.SetMass(mass(k))
			tb.body.SetMoment(math.Inf(1))
		} else {
			tb.body.SetType(cp.BODY_KINEMATIC)
		}
		tb.dynamic = k.Dynamic
	}
	if k.Layer != tb.layer {
		tb.shape.SetFilter(filterFor(k.Layer))
		tb.layer = k.Layer
	}
	tb.body.SetPosition(k.Pos)
	tb.body.SetVelocityVector(k.Vel)
}

// CircleCast sweeps a circle of radius from origin along dir for distance
// and reports whether it hits anything on the mask layers.
func (w *World) CircleCast(origin cp.Vector, radius float64, dir cp.Vector, distance float64, mask entity.Layer) bool {
	end := origin.Add(dir.Normalize().Mult(distance))
	info := w.space.SegmentQueryFirst(origin, end, radius, cp.NewShapeFilter(0, allLayers, uint(mask)))
	return info.Shape != nil
}

// filterFor maps a layer to its collision filter. Platforms block every
// layer; everything else only lands on platforms.
func filterFor(l entity.Layer) cp.ShapeFilter {
	if l == entity.LayerPlatform {
		return cp.NewShapeFilter(0, uint(l), allLayers)
	}
	return cp.NewShapeFilter(0, uint(l), uint(entity.LayerPlatform))
}

func mass(k *entity.Kinematics) float64 {
	if k.Mass <= 0 {
		return 1
	}
	return k.Mass
}
