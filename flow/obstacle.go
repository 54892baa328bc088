package flow

import "fmt"

// Defaults applied when an obstacle is constructed without explicit values.
const (
	defaultInfluenceFactor = 2.5
	defaultStrength        = 1.0
)

// Obstacle is a circular region that deflects flow and shapes point
// density. Value semantics; treat as immutable after construction.
//
// InfluenceRadius is the distance beyond which the obstacle has no effect.
// The default keeps InfluenceRadius >= Radius; a caller supplying a smaller
// custom value is responsible for the consequences.
type Obstacle struct {
	X, Y            float64
	Radius          float64
	InfluenceRadius float64
	Strength        float64
}

// NewObstacle creates an obstacle with the default influence radius
// (2.5x the radius) and strength (1.0). A non-positive radius is a
// configuration error.
func NewObstacle(x, y, radius float64) (Obstacle, error) {
	if radius <= 0 {
		return Obstacle{}, fmt.Errorf("obstacle radius must be positive, got %v", radius)
	}
	return Obstacle{
		X:               x,
		Y:               y,
		Radius:          radius,
		InfluenceRadius: radius * defaultInfluenceFactor,
		Strength:        defaultStrength,
	}, nil
}

// WithStrength returns a copy with the given deflection/density strength.
func (o Obstacle) WithStrength(s float64) Obstacle {
	o.Strength = s
	return o
}

// WithInfluenceRadius returns a copy with the given influence radius.
func (o Obstacle) WithInfluenceRadius(r float64) Obstacle {
	o.InfluenceRadius = r
	return o
}

// contains reports whether (x, y) lies strictly inside the obstacle.
func (o Obstacle) contains(x, y float64) bool {
	dx := x - o.X
	dy := y - o.Y
	return dx*dx+dy*dy < o.Radius*o.Radius
}
