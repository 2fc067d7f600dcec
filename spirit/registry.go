package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// Spirit defines the interface that all spirit effects must implement.
type Spirit interface {
	Kind() game.Spirit
	Description() string
	Apply(ctx context.Context, m *game.Match, user, opponent *game.Player) error
}

// Registry holds all registered spirit effects indexed by kind.
type Registry struct {
	spirits map[game.Spirit]Spirit
	order   []game.Spirit // registration order for deterministic AllSpirits()
}

// NewRegistry creates a new empty spirit registry.
func NewRegistry() *Registry {
	return &Registry{
		spirits: make(map[game.Spirit]Spirit),
	}
}

// Register adds a spirit effect to the registry, replacing any earlier
// effect of the same kind.
func (r *Registry) Register(s Spirit) {
	kind := s.Kind()
	if _, exists := r.spirits[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.spirits[kind] = s
}

func toDef(s Spirit) game.SpiritDef {
	return game.SpiritDef{
		Kind:        s.Kind(),
		Name:        s.Kind().Name(),
		Description: s.Description(),
		Apply:       s.Apply,
	}
}

// Spirit returns the definition for kind.
// It satisfies the game.SpiritProvider interface.
func (r *Registry) Spirit(kind game.Spirit) (game.SpiritDef, bool) {
	s, ok := r.spirits[kind]
	if !ok {
		return game.SpiritDef{}, false
	}
	return toDef(s), true
}

// AllSpirits returns every registered effect in registration order.
// It satisfies the game.SpiritProvider interface.
func (r *Registry) AllSpirits() []game.SpiritDef {
	defs := make([]game.SpiritDef, 0, len(r.order))
	for _, kind := range r.order {
		defs = append(defs, toDef(r.spirits[kind]))
	}
	return defs
}

// Missing lists catalog kinds with no registered effect.
func (r *Registry) Missing() []game.Spirit {
	var out []game.Spirit
	for _, kind := range game.AllSpirits() {
		if _, ok := r.spirits[kind]; !ok {
			out = append(out, kind)
		}
	}
	return out
}

// RegisterAll registers every built-in spirit effect.
// Call this from main so adding a new spirit only requires registering it here.
func RegisterAll(r *Registry) {
	r.Register(&AmuletSpirit{})
	r.Register(&MirrorSpirit{})
	r.Register(&RemoteControlSpirit{})
	r.Register(&EraserSpirit{})
	r.Register(&GlovesSpirit{})
	r.Register(&GreenPotionSpirit{})
	r.Register(&CreationSpirit{})
	r.Register(&MushroomSpirit{})
	r.Register(&WhitePotionSpirit{})
	r.Register(&ShufflerSpirit{})
	r.Register(&MagnifyingGlassSpirit{})
	r.Register(&RedPotionSpirit{})
	r.Register(&HandcuffsSpirit{})
	r.Register(&TelephoneSpirit{})
	r.Register(&PillowSpirit{})
	r.Register(&ContractSpirit{})
	r.Register(&RadioSpirit{})
}
