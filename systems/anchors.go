// Package systems provides ECS systems for the wave world.
package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefx/components"
	"github.com/pthm-cable/wavefx/effect"
)

// AnchorSpec describes an anchor to spawn.
type AnchorSpec struct {
	Name     string
	Pos      r3.Vec
	Yaw      float64
	Pitch    float64
	TurnRate float64
	Lifetime int32 // 0 = never expires
}

// AnchorSystem owns anchor entities: it turns them and removes them when
// their lifetime runs out.
type AnchorSystem struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Anchor,
		components.Position,
		components.Facing,
		components.Turn,
		components.Lifetime,
	]
	filter *ecs.Filter3[components.Facing, components.Turn, components.Lifetime]

	posMap    *ecs.Map1[components.Position]
	facingMap *ecs.Map1[components.Facing]
	anchorMap *ecs.Map1[components.Anchor]

	nextID uint32
}

// NewAnchorSystem creates the system for world.
func NewAnchorSystem(world *ecs.World) *AnchorSystem {
	return &AnchorSystem{
		world: world,
		mapper: ecs.NewMap5[
			components.Anchor,
			components.Position,
			components.Facing,
			components.Turn,
			components.Lifetime,
		](world),
		filter:    ecs.NewFilter3[components.Facing, components.Turn, components.Lifetime](world),
		posMap:    ecs.NewMap1[components.Position](world),
		facingMap: ecs.NewMap1[components.Facing](world),
		anchorMap: ecs.NewMap1[components.Anchor](world),
	}
}

// Spawn creates an anchor entity.
func (s *AnchorSystem) Spawn(spec AnchorSpec) ecs.Entity {
	s.nextID++
	anchor := components.Anchor{ID: s.nextID, Name: spec.Name}
	pos := components.Position{Vec: spec.Pos}
	facing := components.Facing{Yaw: spec.Yaw, Pitch: spec.Pitch}
	turn := components.Turn{Rate: spec.TurnRate}
	life := components.Lifetime{Remaining: spec.Lifetime, Forever: spec.Lifetime <= 0}
	return s.mapper.NewEntity(&anchor, &pos, &facing, &turn, &life)
}

// Update turns anchors and removes expired ones. Returns the number removed.
func (s *AnchorSystem) Update() int {
	var expired []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		facing, turn, life := query.Get()

		if turn.Rate != 0 {
			facing.Yaw = wrapDegrees(facing.Yaw + turn.Rate)
		}
		if life.Forever {
			continue
		}
		life.Remaining--
		if life.Remaining <= 0 {
			expired = append(expired, query.Entity())
		}
	}

	// Remove after iteration completes
	for _, e := range expired {
		s.world.RemoveEntity(e)
	}
	return len(expired)
}

// Remove deletes an anchor immediately. Effects bound to it lose their anchor.
func (s *AnchorSystem) Remove(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

// Alive reports whether the anchor entity still exists.
func (s *AnchorSystem) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Count returns the number of live anchors.
func (s *AnchorSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Location returns the location of anchor entity e.
func (s *AnchorSystem) Location(e ecs.Entity) (effect.Location, bool) {
	if !s.world.Alive(e) {
		return effect.Location{}, false
	}
	pos := s.posMap.Get(e)
	facing := s.facingMap.Get(e)
	return effect.Location{Pos: pos.Vec, Yaw: facing.Yaw, Pitch: facing.Pitch}, true
}

// Name returns the configured name of anchor entity e.
func (s *AnchorSystem) Name(e ecs.Entity) string {
	if !s.world.Alive(e) {
		return ""
	}
	return s.anchorMap.Get(e).Name
}

// Anchor binds entity e as an effect anchor.
func (s *AnchorSystem) Anchor(e ecs.Entity) effect.Anchor {
	return &entityAnchor{sys: s, entity: e}
}

// entityAnchor resolves an effect anchor through the ECS world.
type entityAnchor struct {
	sys    *AnchorSystem
	entity ecs.Entity
}

func (a *entityAnchor) Location() (effect.Location, bool) {
	return a.sys.Location(a.entity)
}

func (a *entityAnchor) Translate(d r3.Vec) {
	if !a.sys.world.Alive(a.entity) {
		return
	}
	pos := a.sys.posMap.Get(a.entity)
	pos.Vec = r3.Add(pos.Vec, d)
}

// wrapDegrees wraps an angle to [-180, 180).
func wrapDegrees(a float64) float64 {
	for a >= 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}
