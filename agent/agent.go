// Package agent implements the sweeper: a differential-drive body steered by
// its own feedforward network.
package agent

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/sweepers/arena"
	"github.com/pthm-cable/sweepers/config"
	"github.com/pthm-cable/sweepers/neural"
	"github.com/pthm-cable/sweepers/vecmath"
)

// Params holds the per-sweeper movement and collision constants.
type Params struct {
	MaxTurnRate    float64 // radians per tick
	MaxSpeed       float64
	Scale          float64 // render size of the sweeper outline
	RewardRadius   float64
	HazardRadius   float64
	CollisionSlack float64 // added to each radius for the contact test
	DefaultTrack   float64 // track speed after Reset
	SenseHazards   bool    // feed hazard direction to the network and apply the penalty
	Outputs        int     // required network output count
}

// ParamsFromConfig extracts sweeper parameters from the loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		MaxTurnRate:    cfg.Sweeper.MaxTurnRate,
		MaxSpeed:       cfg.Sweeper.MaxSpeed,
		Scale:          cfg.Sweeper.Scale,
		RewardRadius:   cfg.Objects.RewardScale,
		HazardRadius:   cfg.Objects.HazardScale,
		CollisionSlack: cfg.Objects.CollisionSlack,
		DefaultTrack:   cfg.Sweeper.DefaultTrack,
		SenseHazards:   cfg.Derived.HazardsEnabled,
		Outputs:        cfg.Neural.NumOutputs,
	}
}

// Event reports what a sweeper collided with during one update.
type Event uint8

const (
	EventReward Event = 1 << iota
	EventHazard
)

// Has reports whether e includes flag.
func (e Event) Has(flag Event) bool { return e&flag != 0 }

// Agent is one sweeper.
type Agent struct {
	params Params
	brain  *neural.Network
	rng    *rand.Rand
	width  float64
	height float64

	position   vecmath.Vec2
	rotation   float64
	heading    vecmath.Vec2
	leftTrack  float64
	rightTrack float64
	fitness    float64
	inputs     []float64

	// nearest objects found by the last sense step, used for that tick's collision test
	nearestReward int
	nearestHazard int
}

// MinOutputs is the number of network outputs a sweeper reads: left and right track.
const MinOutputs = 2

// New creates a sweeper for an arena of the given size and places it at random.
func New(brain *neural.Network, params Params, width, height float64, rng *rand.Rand) *Agent {
	a := &Agent{
		params:        params,
		brain:         brain,
		rng:           rng,
		width:         width,
		height:        height,
		nearestReward: -1,
		nearestHazard: -1,
	}
	a.Reset()
	return a
}

// Reset clears fitness and drops the sweeper at a random position and rotation.
// Network weights are kept.
func (a *Agent) Reset() {
	a.fitness = 0
	a.rotation = a.rng.Float64() * 2 * math.Pi
	a.heading = vecmath.HeadingFromAngle(a.rotation)
	a.position = vecmath.Vec2{X: a.rng.Float64() * a.width, Y: a.rng.Float64() * a.height}
	a.leftTrack = a.params.DefaultTrack
	a.rightTrack = a.params.DefaultTrack
}

// Update runs one tick: sense the arena, run the network, move, wrap and collide.
// A network arity mismatch is returned as an error wrapping neural.ErrArity;
// the sweeper is left unmoved in that case.
func (a *Agent) Update(ar *arena.Arena) (Event, error) {
	inputs := a.sense(ar)
	a.inputs = inputs

	out, err := a.brain.Forward(inputs)
	if err != nil {
		return 0, fmt.Errorf("sweeper forward pass: %w", err)
	}
	if want := max(a.params.Outputs, MinOutputs); len(out) != want {
		return 0, fmt.Errorf("sweeper outputs: %w", &neural.ArityError{Op: "outputs", Want: want, Got: len(out)})
	}

	a.act(out[0], out[1])

	w, h := ar.Bounds()
	a.position.X = vecmath.Wrap(a.position.X, w)
	a.position.Y = vecmath.Wrap(a.position.Y, h)

	return a.collide(ar), nil
}

// sense finds the nearest reward and hazard and builds the network input vector:
// direction to reward, direction to hazard (when sensed), heading.
func (a *Agent) sense(ar *arena.Arena) []float64 {
	inputs := make([]float64, 0, config.SensedInputs(a.params.SenseHazards))

	idx, pos, ok := ar.NearestReward(a.position)
	a.nearestReward = idx
	var toReward vecmath.Vec2
	if ok {
		toReward = pos.Sub(a.position).Normalize()
	}
	inputs = append(inputs, toReward.X, toReward.Y)

	if a.params.SenseHazards {
		idx, pos, ok := ar.NearestHazard(a.position)
		a.nearestHazard = idx
		var toHazard vecmath.Vec2
		if ok {
			toHazard = pos.Sub(a.position).Normalize()
		}
		inputs = append(inputs, toHazard.X, toHazard.Y)
	}

	return append(inputs, a.heading.X, a.heading.Y)
}

// act turns the track outputs into rotation and forward motion.
func (a *Agent) act(left, right float64) {
	a.leftTrack, a.rightTrack = left, right

	turn := vecmath.Clamp(left-right, -a.params.MaxTurnRate, a.params.MaxTurnRate)
	a.rotation += turn

	speed := (left + right) * a.params.MaxSpeed / 2
	a.heading = vecmath.HeadingFromAngle(a.rotation)
	a.position = a.position.Add(a.heading.Scale(speed))
}

// collide tests the cached nearest objects against the new position.
func (a *Agent) collide(ar *arena.Arena) Event {
	var ev Event
	if i := a.nearestReward; i >= 0 {
		if a.position.Dist(ar.Reward(i)) < a.params.RewardRadius+a.params.CollisionSlack {
			a.fitness++
			ar.ConsumeReward(i)
			ev |= EventReward
		}
	}
	if i := a.nearestHazard; a.params.SenseHazards && i >= 0 {
		if a.position.Dist(ar.Hazard(i)) < a.params.HazardRadius+a.params.CollisionSlack {
			a.fitness = 0
			ar.TriggerHazard(i)
			ev |= EventHazard
		}
	}
	return ev
}

// PutWeights installs a genome's weights into the sweeper's network.
func (a *Agent) PutWeights(w []float64) error {
	return a.brain.SetWeights(w)
}

// NumWeights returns the weight count of the sweeper's network.
func (a *Agent) NumWeights() int { return a.brain.WeightCount() }

// Brain returns the sweeper's network.
func (a *Agent) Brain() *neural.Network { return a.brain }

// Inputs returns the sensor vector fed to the network on the last update,
// or nil before the first one. Callers must not modify it.
func (a *Agent) Inputs() []float64 { return a.inputs }

// Fitness returns the reward count accumulated this generation.
func (a *Agent) Fitness() float64 { return a.fitness }

// Position returns the sweeper's position.
func (a *Agent) Position() vecmath.Vec2 { return a.position }

// Rotation returns the sweeper's rotation in radians.
func (a *Agent) Rotation() float64 { return a.rotation }

// Heading returns the unit facing vector.
func (a *Agent) Heading() vecmath.Vec2 { return a.heading }

// Tracks returns the left and right track speeds from the last update.
func (a *Agent) Tracks() (left, right float64) { return a.leftTrack, a.rightTrack }

// NearestReward returns the reward index cached by the last sense step, or -1.
func (a *Agent) NearestReward() int { return a.nearestReward }

// NearestHazard returns the hazard index cached by the last sense step, or -1.
func (a *Agent) NearestHazard() int { return a.nearestHazard }

// SetPose places the sweeper at pos facing rotation.
func (a *Agent) SetPose(pos vecmath.Vec2, rotation float64) {
	a.position = pos
	a.rotation = rotation
	a.heading = vecmath.HeadingFromAngle(rotation)
}

// Transform returns the local-to-world transform: scale, rotate, translate.
func (a *Agent) Transform() *vecmath.Affine {
	return vecmath.NewAffine().
		Scale(a.params.Scale, a.params.Scale).
		Rotate(a.rotation).
		Translate(a.position.X, a.position.Y)
}

// Polygon returns the sweeper outline in world space.
func (a *Agent) Polygon() vecmath.Polygon {
	return vecmath.SweeperShape.Transform(a.Transform())
}
