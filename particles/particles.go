// Package particles advects point particles through a flow field. It is a
// pure numeric stepper: external loops read positions back out after each
// step for rendering or instancing.
package particles

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/flow"
)

// Position is a particle's world position.
type Position struct {
	X, Y float64
}

// Velocity is a particle's velocity.
type Velocity struct {
	X, Y float64
}

// Params tunes the integration step.
type Params struct {
	Drag     float64 // velocity retained per step
	MaxSpeed float64 // speed clamp
	TimeStep float64 // field time advance per step
}

// DefaultParams returns the standard advection parameters.
func DefaultParams() Params {
	return Params{
		Drag:     0.95,
		MaxSpeed: 3.0,
		TimeStep: 0.5,
	}
}

// System steps particles through a flow field with drag, a speed clamp,
// and wrapping at the canvas edges.
type System struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Velocity]
	filter *ecs.Filter2[Position, Velocity]

	field         *flow.Field
	width, height float64
	params        Params

	time  float64
	count int
}

// NewSystem creates an advection system over the given field and canvas.
func NewSystem(field *flow.Field, width, height float64, params Params) *System {
	world := ecs.NewWorld()
	return &System{
		world:  world,
		mapper: ecs.NewMap2[Position, Velocity](world),
		filter: ecs.NewFilter2[Position, Velocity](world),
		field:  field,
		width:  width,
		height: height,
		params: params,
	}
}

// Seed spawns one particle at rest for each point.
func (s *System) Seed(points []flow.Point) {
	for _, p := range points {
		pos := Position{X: p.X, Y: p.Y}
		vel := Velocity{}
		s.mapper.NewEntity(&pos, &vel)
	}
	s.count += len(points)
}

// Count returns the number of live particles.
func (s *System) Count() int {
	return s.count
}

// Time returns the accumulated field time.
func (s *System) Time() float64 {
	return s.time
}

// Step advances every particle by one tick: apply the local flow force,
// drag, and the speed clamp, then move and wrap at the edges.
func (s *System) Step() {
	maxSq := s.params.MaxSpeed * s.params.MaxSpeed

	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()

		fx, fy := s.field.Flow(pos.X, pos.Y, s.time)
		vel.X += fx
		vel.Y += fy

		vel.X *= s.params.Drag
		vel.Y *= s.params.Drag

		// Skip the sqrt when clearly under the limit.
		if speedSq := vel.X*vel.X + vel.Y*vel.Y; speedSq > maxSq {
			scale := s.params.MaxSpeed / math.Sqrt(speedSq)
			vel.X *= scale
			vel.Y *= scale
		}

		pos.X += vel.X
		pos.Y += vel.Y

		if pos.X < 0 {
			pos.X += s.width
		} else if pos.X > s.width {
			pos.X -= s.width
		}
		if pos.Y < 0 {
			pos.Y += s.height
		} else if pos.Y > s.height {
			pos.Y -= s.height
		}
	}

	s.time += s.params.TimeStep
}

// Positions returns a snapshot of all particle positions.
func (s *System) Positions() []flow.Point {
	points := make([]flow.Point, 0, s.count)
	query := s.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		points = append(points, flow.Point{X: pos.X, Y: pos.Y})
	}
	return points
}
