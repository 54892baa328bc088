package flow

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Point is a generated 2D coordinate.
type Point struct {
	X, Y float64
}

// ClusteringConfig holds point generation parameters.
type ClusteringConfig struct {
	BaseDensity               float64 // target points per unit area for probabilistic generation
	ObstacleDensityMultiplier float64 // peak density boost at an obstacle edge
	MinDistance               float64 // minimum separation between accepted points
	ClusterFalloff            float64 // decay shape of the boost between edge and influence radius
	EdgeOffset                float64 // width of the full-boost band outside an obstacle edge
}

// DefaultClusteringConfig returns the standard clustering parameters.
func DefaultClusteringConfig() ClusteringConfig {
	return ClusteringConfig{
		BaseDensity:               0.001,
		ObstacleDensityMultiplier: 3.0,
		MinDistance:               5.0,
		ClusterFalloff:            0.5,
		EdgeOffset:                10.0,
	}
}

// Attempt budget per requested point for rejection sampling. Large enough
// for practical obstacle layouts, finite so generation always terminates.
const attemptsPerPoint = 30

// PointClusterer generates point sets over a bounded canvas, excluding
// obstacle interiors and clustering density around obstacle edges. It owns
// a seeded random source consumed only by GeneratePoints, so identical
// seed, bounds, config, and obstacles reproduce identical output.
type PointClusterer struct {
	width, height float64
	cfg           ClusteringConfig
	obstacles     []Obstacle
	rng           *rand.Rand
}

// NewPointClusterer creates a clusterer over a width x height canvas.
// Non-positive bounds are configuration errors. A seed of 0 selects a
// non-reproducible time-based seed.
func NewPointClusterer(width, height float64, cfg ClusteringConfig, seed int64) (*PointClusterer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("clusterer bounds must be positive, got %vx%v", width, height)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PointClusterer{
		width:  width,
		height: height,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Width returns the canvas width.
func (c *PointClusterer) Width() float64 { return c.width }

// Height returns the canvas height.
func (c *PointClusterer) Height() float64 { return c.height }

// Config returns the clustering configuration.
func (c *PointClusterer) Config() ClusteringConfig { return c.cfg }

// Obstacles returns the current obstacle list in insertion order.
func (c *PointClusterer) Obstacles() []Obstacle { return c.obstacles }

// AddObstacle appends an obstacle.
func (c *PointClusterer) AddObstacle(o Obstacle) {
	c.obstacles = append(c.obstacles, o)
}

// ClearObstacles removes all obstacles.
func (c *PointClusterer) ClearObstacles() {
	c.obstacles = nil
}

// DensityAt returns the relative point density at (x, y): 1.0 away from
// all obstacles, 0.0 inside any obstacle radius (exclusion takes precedence
// over any boost), and boosted above 1.0 within an influence ring. The
// boost holds its peak from the obstacle edge out to EdgeOffset beyond it,
// then decays to zero at the influence radius with a shape set by
// ClusterFalloff. With overlapping rings the maximum boost wins.
func (c *PointClusterer) DensityAt(x, y float64) float64 {
	var boost float64
	for _, o := range c.obstacles {
		dx := x - o.X
		dy := y - o.Y
		d := math.Hypot(dx, dy)

		if d < o.Radius {
			return 0
		}
		if d >= o.InfluenceRadius {
			continue
		}

		if b := c.ringBoost(o, d); b > boost {
			boost = b
		}
	}
	return 1 + boost
}

// ringBoost computes the density boost for a point at distance d from an
// obstacle center, with Radius <= d < InfluenceRadius.
func (c *PointClusterer) ringBoost(o Obstacle, d float64) float64 {
	peak := (c.cfg.ObstacleDensityMultiplier - 1) * o.Strength
	if peak <= 0 {
		return 0
	}

	plateauEnd := o.Radius + c.cfg.EdgeOffset
	if d <= plateauEnd || plateauEnd >= o.InfluenceRadius {
		return peak
	}

	t := (d - plateauEnd) / (o.InfluenceRadius - plateauEnd)
	exp := 1.0
	if c.cfg.ClusterFalloff > 0 {
		exp = 1 / c.cfg.ClusterFalloff
	}
	return peak * math.Pow(1-t, exp)
}

// IsValidPoint reports whether (x, y) lies inside the canvas, outside
// every obstacle radius, and at least MinDistance away from every existing
// point.
func (c *PointClusterer) IsValidPoint(x, y float64, existing []Point) bool {
	if x < 0 || x > c.width || y < 0 || y > c.height {
		return false
	}
	for _, o := range c.obstacles {
		if o.contains(x, y) {
			return false
		}
	}
	minSq := c.cfg.MinDistance * c.cfg.MinDistance
	for _, p := range existing {
		dx := x - p.X
		dy := y - p.Y
		if dx*dx+dy*dy < minSq {
			return false
		}
	}
	return true
}

// GeneratePoints draws candidates uniformly at random and accepts them by
// validity and a density-weighted test whose probability grows with
// DensityAt. It stops after count acceptances or 30*count attempts,
// whichever comes first, so it may return fewer than count points; a short
// count is the documented degraded result, not an error.
func (c *PointClusterer) GeneratePoints(count int) []Point {
	if count <= 0 {
		return nil
	}

	// Acceptance probability is density scaled so that requests at or
	// below the BaseDensity*area baseline accept every valid candidate,
	// while larger requests fill boosted regions first.
	baseline := c.cfg.BaseDensity * c.width * c.height / float64(count)

	points := make([]Point, 0, count)
	maxAttempts := count * attemptsPerPoint
	for attempts := 0; attempts < maxAttempts && len(points) < count; attempts++ {
		x := c.rng.Float64() * c.width
		y := c.rng.Float64() * c.height

		if !c.IsValidPoint(x, y, points) {
			continue
		}
		if c.rng.Float64() >= c.DensityAt(x, y)*baseline {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// GeneratePointsGrid lays out candidates on a regular grid sized to
// approximate count cells, keeping cell centers that fall outside every
// obstacle. Grid spacing itself enforces separation, so candidates are not
// checked against each other. Output is identical across runs for
// identical inputs. If no cell center survives, one refinement pass at
// double resolution runs before giving up, so any obstacle set that leaves
// uncovered canvas yields at least one point.
func (c *PointClusterer) GeneratePointsGrid(count int) []Point {
	if count <= 0 {
		return nil
	}

	cols := int(math.Round(math.Sqrt(float64(count) * c.width / c.height)))
	if cols < 1 {
		cols = 1
	}
	rows := (count + cols - 1) / cols

	points := c.gridPass(count, cols, rows)
	if len(points) == 0 {
		points = c.gridPass(count, cols*2, rows*2)
	}
	return points
}

func (c *PointClusterer) gridPass(count, cols, rows int) []Point {
	cellW := c.width / float64(cols)
	cellH := c.height / float64(rows)

	points := make([]Point, 0, count)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if len(points) >= count {
				return points
			}
			x := (float64(col) + 0.5) * cellW
			y := (float64(row) + 0.5) * cellH

			blocked := false
			for _, o := range c.obstacles {
				if o.contains(x, y) {
					blocked = true
					break
				}
			}
			if !blocked {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}
