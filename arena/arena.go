// Package arena holds the reward and hazard objects of the toroidal testing
// ground. Objects live as entities in an ark ECS world; each kind keeps a
// fixed, ordered slot list so callers can address objects by index.
package arena

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sweepers/vecmath"
)

// Kind distinguishes rewards from hazards.
type Kind uint8

const (
	KindReward Kind = iota
	KindHazard
)

func (k Kind) String() string {
	switch k {
	case KindReward:
		return "reward"
	case KindHazard:
		return "hazard"
	}
	return "unknown"
}

// Object tags an entity with its kind and slot index.
type Object struct {
	Kind  Kind
	Index int
}

// Arena is the bounded world the sweepers move in.
type Arena struct {
	width, height float64
	rng           *rand.Rand

	world  *ecs.World
	mapper *ecs.Map2[vecmath.Vec2, Object]
	posMap *ecs.Map1[vecmath.Vec2]
	filter *ecs.Filter2[vecmath.Vec2, Object]

	rewards []ecs.Entity
	hazards []ecs.Entity
}

// New creates an arena of the given size with numRewards rewards and
// numHazards hazards at uniformly random positions.
func New(width, height float64, numRewards, numHazards int, rng *rand.Rand) *Arena {
	world := ecs.NewWorld()
	a := &Arena{
		width:  width,
		height: height,
		rng:    rng,
		world:  world,
		mapper: ecs.NewMap2[vecmath.Vec2, Object](world),
		posMap: ecs.NewMap1[vecmath.Vec2](world),
		filter: ecs.NewFilter2[vecmath.Vec2, Object](world),
	}
	a.rewards = a.spawn(KindReward, numRewards)
	a.hazards = a.spawn(KindHazard, numHazards)
	return a
}

func (a *Arena) spawn(kind Kind, n int) []ecs.Entity {
	entities := make([]ecs.Entity, n)
	for i := range entities {
		pos := a.RandomPosition()
		obj := Object{Kind: kind, Index: i}
		entities[i] = a.mapper.NewEntity(&pos, &obj)
	}
	return entities
}

// Bounds returns the arena width and height.
func (a *Arena) Bounds() (width, height float64) {
	return a.width, a.height
}

// RandomPosition returns a uniformly random point in [0,w)x[0,h).
func (a *Arena) RandomPosition() vecmath.Vec2 {
	return vecmath.Vec2{X: a.rng.Float64() * a.width, Y: a.rng.Float64() * a.height}
}

// NumRewards returns the fixed reward count.
func (a *Arena) NumRewards() int { return len(a.rewards) }

// NumHazards returns the fixed hazard count.
func (a *Arena) NumHazards() int { return len(a.hazards) }

// Reward returns the position of reward i.
func (a *Arena) Reward(i int) vecmath.Vec2 { return *a.posMap.Get(a.rewards[i]) }

// Hazard returns the position of hazard i.
func (a *Arena) Hazard(i int) vecmath.Vec2 { return *a.posMap.Get(a.hazards[i]) }

// Rewards returns a copy of all reward positions in slot order.
func (a *Arena) Rewards() []vecmath.Vec2 { return a.positions(a.rewards) }

// Hazards returns a copy of all hazard positions in slot order.
func (a *Arena) Hazards() []vecmath.Vec2 { return a.positions(a.hazards) }

func (a *Arena) positions(entities []ecs.Entity) []vecmath.Vec2 {
	out := make([]vecmath.Vec2, len(entities))
	for i, e := range entities {
		out[i] = *a.posMap.Get(e)
	}
	return out
}

// SetReward moves reward i to p.
func (a *Arena) SetReward(i int, p vecmath.Vec2) { *a.posMap.Get(a.rewards[i]) = p }

// SetHazard moves hazard i to p.
func (a *Arena) SetHazard(i int, p vecmath.Vec2) { *a.posMap.Get(a.hazards[i]) = p }

// NearestReward returns the index and position of the reward closest to p.
// ok is false when the arena has no rewards.
func (a *Arena) NearestReward(p vecmath.Vec2) (idx int, pos vecmath.Vec2, ok bool) {
	return a.nearest(a.rewards, p)
}

// NearestHazard returns the index and position of the hazard closest to p.
// ok is false when the arena has no hazards.
func (a *Arena) NearestHazard(p vecmath.Vec2) (idx int, pos vecmath.Vec2, ok bool) {
	return a.nearest(a.hazards, p)
}

// nearest scans slots in order; ties go to the lowest index.
// Distances are not seen across the wrapped edges.
func (a *Arena) nearest(entities []ecs.Entity, p vecmath.Vec2) (int, vecmath.Vec2, bool) {
	best := -1
	bestDist := math.MaxFloat64
	var bestPos vecmath.Vec2
	for i, e := range entities {
		pos := *a.posMap.Get(e)
		if d := pos.Dist(p); d < bestDist {
			best, bestDist, bestPos = i, d, pos
		}
	}
	return best, bestPos, best >= 0
}

// ConsumeReward respawns reward i at a new random position.
func (a *Arena) ConsumeReward(i int) vecmath.Vec2 {
	pos := a.RandomPosition()
	a.SetReward(i, pos)
	return pos
}

// TriggerHazard respawns hazard i at a new random position.
func (a *Arena) TriggerHazard(i int) vecmath.Vec2 {
	pos := a.RandomPosition()
	a.SetHazard(i, pos)
	return pos
}

// Each calls fn for every object in the arena. Iteration order is unspecified.
func (a *Arena) Each(fn func(obj Object, pos vecmath.Vec2)) {
	query := a.filter.Query()
	for query.Next() {
		pos, obj := query.Get()
		fn(*obj, *pos)
	}
}
