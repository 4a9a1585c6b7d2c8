package ecs

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shooter/common"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeProjectile
)

// Contact is a projectile touching the player during a physics step.
type Contact struct {
	Projectile Entity
	Other      Entity
}

// PhysicsWorld owns the Chipmunk space used for thrown projectiles. The
// arena floor is the X/Z plane; Chipmunk's Y axis carries world Z and the
// height of each body is tracked on the side.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*physicsBody
	contacts      []Contact
}

type physicsBody struct {
	body   *cp.Body
	shape  *cp.Shape
	height float64
	mass   float64
	moment float64
	thrown bool
}

// NewPhysicsWorld creates an empty top-down space without gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		bodies:        make(map[Entity]*physicsBody),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddPlayerBody registers a kinematic circle that systems move by hand.
func (pw *PhysicsWorld) AddPlayerBody(e Entity, pos common.Vec3, radius float64) {
	if pw == nil || radius <= 0 {
		return
	}
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypePlayer)
	pw.add(e, &physicsBody{body: body, shape: shape, height: pos.Y})
}

// AddProjectileBody registers a projectile. It starts kinematic, the way it
// rests in its thrower's hand.
func (pw *PhysicsWorld) AddProjectileBody(e Entity, pos common.Vec3, radius, mass float64) {
	if pw == nil || radius <= 0 {
		return
	}
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeProjectile)
	pw.add(e, &physicsBody{body: body, shape: shape, height: pos.Y, mass: mass, moment: moment, thrown: true})
	log.Printf("physics: projectile %s registered (mass %.1f)", e, mass)
}

func (pw *PhysicsWorld) add(e Entity, pb *physicsBody) {
	pw.forget(e)
	pw.space.AddBody(pb.body)
	pw.space.AddShape(pb.shape)
	pw.shapeToEntity[pb.shape] = e
	pw.bodies[e] = pb
}

// Has reports whether e owns a body.
func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

func (pw *PhysicsWorld) Position(e Entity) (common.Vec3, bool) {
	pb, ok := pw.lookup(e)
	if !ok {
		return common.Vec3{}, false
	}
	return fromCP(pb.body.Position(), pb.height), true
}

func (pw *PhysicsWorld) SetPosition(e Entity, pos common.Vec3) {
	pb, ok := pw.lookup(e)
	if !ok {
		return
	}
	pb.body.SetPosition(toCP(pos))
	pb.height = pos.Y
}

// Velocity is the body's velocity on the arena floor.
func (pw *PhysicsWorld) Velocity(e Entity) common.Vec3 {
	pb, ok := pw.lookup(e)
	if !ok {
		return common.Vec3{}
	}
	return fromCP(pb.body.Velocity(), 0)
}

// SetKinematic switches a body between hand-driven and simulated. Either
// way it comes to a stop.
func (pw *PhysicsWorld) SetKinematic(e Entity, kinematic bool) {
	pb, ok := pw.lookup(e)
	if !ok {
		return
	}
	if kinematic {
		pb.body.SetType(cp.BODY_KINEMATIC)
	} else {
		pb.body.SetType(cp.BODY_DYNAMIC)
		pb.body.SetMass(pb.mass)
		pb.body.SetMoment(pb.moment)
	}
	pb.body.SetVelocityVector(cp.Vector{})
	pb.body.SetAngularVelocity(0)
}

// ApplyImpulse pushes a simulated body through its centre. The vertical
// component is ignored.
func (pw *PhysicsWorld) ApplyImpulse(e Entity, impulse common.Vec3) {
	pb, ok := pw.lookup(e)
	if !ok || pb.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	pb.body.ApplyImpulseAtLocalPoint(toCP(impulse), cp.Vector{})
}

// Step advances the simulation and collects new projectile contacts.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// DrainContacts returns the contacts that began since the last drain.
func (pw *PhysicsWorld) DrainContacts() []Contact {
	if pw == nil || len(pw.contacts) == 0 {
		return nil
	}
	out := pw.contacts
	pw.contacts = nil
	return out
}

func (pw *PhysicsWorld) lookup(e Entity) (*physicsBody, bool) {
	if pw == nil {
		return nil, false
	}
	pb, ok := pw.bodies[e]
	return pb, ok
}

func (pw *PhysicsWorld) forget(e Entity) {
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(pb.shape)
	pw.space.RemoveBody(pb.body)
	delete(pw.shapeToEntity, pb.shape)
	delete(pw.bodies, e)
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	hitHandler := pw.space.NewCollisionHandler(collisionTypeProjectile, collisionTypePlayer)
	hitHandler.UserData = pw
	hitHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		projectile, okA := world.shapeToEntity[shapeA]
		other, okB := world.shapeToEntity[shapeB]
		if !okA || !okB {
			return true
		}
		if pb := world.bodies[projectile]; pb == nil || !pb.thrown {
			projectile, other = other, projectile
		}
		world.contacts = append(world.contacts, Contact{Projectile: projectile, Other: other})
		return true
	}

	pw.handlersReady = true
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromCP(v cp.Vector, height float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: height, Z: v.Y}
}
