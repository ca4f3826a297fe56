package game

import (
	"github.com/pthm-cable/sweepers/arena"
	"github.com/pthm-cable/sweepers/telemetry"
	"github.com/pthm-cable/sweepers/vecmath"
)

// SweeperView is one sweeper as the renderer sees it.
type SweeperView struct {
	Polygon vecmath.Polygon
	Elite   bool
	Fitness float64
}

// Snapshot is everything needed to draw one frame.
type Snapshot struct {
	Generation int
	Tick       int
	FastRender bool
	Halted     bool

	Sweepers []SweeperView
	Rewards  []vecmath.Polygon
	Hazards  []vecmath.Polygon

	Stats   telemetry.GenerationStats
	History []telemetry.Point
}

// Snapshot captures the current state in world coordinates. From the second
// generation on, the sweepers in the leading elite slots are flagged.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Generation: c.generation,
		Tick:       c.tick,
		FastRender: c.fastRender,
		Halted:     c.halted != nil,
		Stats:      c.lastStats,
		History:    c.history.Points(),
	}

	elites := 0
	if c.generation > 0 {
		elites = c.ga.Params().EliteSlots()
	}
	snap.Sweepers = make([]SweeperView, len(c.sweepers))
	for i, s := range c.sweepers {
		snap.Sweepers[i] = SweeperView{
			Polygon: s.Polygon(),
			Elite:   i < elites,
			Fitness: s.Fitness(),
		}
	}

	snap.Rewards = make([]vecmath.Polygon, c.arena.NumRewards())
	snap.Hazards = make([]vecmath.Polygon, c.arena.NumHazards())
	c.arena.Each(func(obj arena.Object, pos vecmath.Vec2) {
		switch obj.Kind {
		case arena.KindReward:
			snap.Rewards[obj.Index] = objectPolygon(pos, c.cfg.Objects.RewardScale)
		case arena.KindHazard:
			snap.Hazards[obj.Index] = objectPolygon(pos, c.cfg.Objects.HazardScale)
		}
	})
	return snap
}

// objectPolygon places a scaled copy of the mine outline at p.
func objectPolygon(p vecmath.Vec2, scale float64) vecmath.Polygon {
	xf := vecmath.NewAffine().Scale(scale, scale).Translate(p.X, p.Y)
	return vecmath.MineShape.Transform(xf)
}
