package ffi

import (
	"rtscore/config"
	"rtscore/observation"
	"rtscore/scheduler"
	"rtscore/telemetry"
	"rtscore/world"

	"go.uber.org/zap"
)

// Engine is the top-level handle an embedding host drives: one World, its
// slot registry, and the four fixed-size external buffers of §6. It plays
// the role the original GameModel plays for its renderer — the single
// object a caller holds and calls into every tick.
type Engine struct {
	World  *world.World
	Config config.EngineConfig

	slots  *SlotRegistry
	tensor *observation.Tensor
	errs   telemetry.ErrorState

	Actions    []uint8
	Rewards    []float32
	Terminated []uint8
	Truncated  []uint8
}

// NewEngine constructs an Engine over a freshly created world, following
// the original pattern of a single constructor wiring logger, manager, and
// initial state together.
func NewEngine(cfg config.EngineConfig, logger *zap.Logger) *Engine {
	log := telemetry.NewLog(logger, 4096)
	w := world.New(cfg.Seed, log)
	return &Engine{
		World:      w,
		Config:     cfg,
		slots:      NewSlotRegistry(),
		tensor:     observation.NewTensor(),
		Actions:    make([]uint8, config.MapAgents),
		Rewards:    make([]float32, config.MapAgents),
		Terminated: make([]uint8, config.MapAgents),
		Truncated:  make([]uint8, config.MapAgents),
	}
}

// Step syncs slot assignments against the currently live agent roster,
// advances the simulation by one tick, and leaves the observation tensor
// marked stale — Observation rebuilds it lazily on next read (§4.12).
func (e *Engine) Step() scheduler.Result {
	e.slots.Sync(e.World.LiveAgentIDs())
	result := scheduler.Step(e.World, e.Config, e.slots, e.Actions, e.Rewards, e.Terminated, e.Truncated)
	return result
}

// Observation returns the [NumLayers, Window, Window] uint8 slice for the
// agent bound to slot, rebuilding it first if the world changed since the
// last read. Returns nil for an unbound slot.
func (e *Engine) Observation(slot int) []uint8 {
	if _, ok := e.slots.IDAt(slot); !ok {
		return nil
	}
	if id, ok := e.slots.IDAt(slot); ok {
		e.tensor.BindSlot(slot, id)
	}
	e.tensor.Rebuild(e.World, e.World.AgentMoved, e.World.ObservationsDirty)
	e.World.ObservationsDirty = false
	return e.tensor.Slice(slot)
}

// Errors exposes the pending non-fatal control-API error state (§7).
func (e *Engine) Errors() *telemetry.ErrorState {
	return &e.errs
}

// fail records a non-fatal control-API failure and returns false, the
// shared tail of every control function below.
func (e *Engine) fail(code, message string) bool {
	e.errs.Set(code, message)
	return false
}
