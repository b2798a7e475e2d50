package action

import (
	"rtscore/combat"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/tint"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// Context carries the per-step mutable state the dispatcher needs beyond
// the world itself: the damage resolver (shared across all agents this
// step for the double-kill guard) and the current step index for tint
// decay bookkeeping.
type Context struct {
	World    *world.World
	Resolver *combat.Resolver
	Step     int
}

// verbFunc executes one verb for one agent and reports success. On false
// the dispatcher increments the agent's invalid-action counter (§4.3).
type verbFunc func(ctx *Context, h world.Handle, arg int) bool

var verbTable = [NumVerbs]verbFunc{
	Noop:          doNoop,
	Move:          doMove,
	Attack:        doAttack,
	Use:           doUse,
	Swap:          doSwap,
	Put:           doPut,
	PlantLantern:  doPlantLantern,
	PlantResource: doPlantResource,
	Build:         doBuild,
	Orient:        doOrient,
	SetRallyPoint: doSetRallyPoint,
}

// Dispatch decodes and executes one action byte for one agent (§4.3). It is
// a no-op incrementing the invalid counter if the agent is frozen, on
// move-debt cooldown, or the verb's own precondition fails; for an unknown
// or dead agent it returns without touching any counter.
func Dispatch(ctx *Context, agentID ecs.EntityID, raw uint8) {
	h := ctx.World.Resolve(agentID)
	if !h.Valid() {
		return
	}
	agent := h.Agent()
	if agent == nil || agent.Dead {
		return
	}
	if IsFrozen(ctx.World, h) {
		agent.ActionInvalid++
		return
	}
	if agent.MoveDebt > 0 {
		agent.MoveDebt--
		agent.ActionInvalid++
		return
	}
	code := Decode(raw)
	if int(code.Verb) >= len(verbTable) || code.Verb < 0 {
		agent.ActionInvalid++
		return
	}
	fn := verbTable[code.Verb]
	if fn == nil || !fn(ctx, h, code.Arg) {
		agent.ActionInvalid++
	}
}

// IsFrozen reports whether an agent is frozen, either by its own counter or
// by standing on a frozen tile (§4.6).
func IsFrozen(w *world.World, h world.Handle) bool {
	agent := h.Agent()
	if agent != nil && agent.Frozen > 0 {
		return true
	}
	return w.Tint.IsFrozen(h.Position())
}

func doNoop(ctx *Context, h world.Handle, arg int) bool { return true }

func doOrient(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	h.Agent().Orientation = dir
	return true
}

// doMove implements §4.3 verb 1.
func doMove(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	agent := h.Agent()
	if agent.Class == thing.Trebuchet && !agent.Packed {
		return false
	}
	from := h.Position()
	steps := 1
	if agent.Class.IsCavalry() {
		steps = 2
	}

	cur := from
	moved := false
	for i := 0; i < steps; i++ {
		to := dir.Step(cur)
		if !canStepInto(ctx.World, h, cur, to, dir) {
			break
		}
		if err := ctx.World.MoveEntity(h.ID, thing.KindAgent, h.Team(), cur, to); err != nil {
			break
		}
		cur = to
		moved = true
	}
	if !moved {
		return false
	}
	agent.Orientation = dir
	leaveTrailAndRipple(ctx.World, h, cur)
	return true
}

func canStepInto(w *world.World, h world.Handle, from, to coords.Position, dir coords.Direction) bool {
	if !w.Grid.InBounds(to) || w.Grid.IsBorder(to) {
		return false
	}
	fromTile := w.Grid.At(from)
	toTile := w.Grid.At(to)
	roadEitherEnd := fromTile.Terrain == thing.Road || toTile.Terrain == thing.Road || toTile.Terrain.IsRamp() || fromTile.Terrain.IsRamp()
	if !coords.CanStep(fromTile.Elevation, toTile.Elevation, dir.Diagonal(), roadEitherEnd) {
		return false
	}
	agent := h.Agent()
	if toTile.Terrain == thing.Water && !agent.Class.IsBoat() {
		return false
	}
	if occ := toTile.Blocking; occ != 0 && occ != h.ID {
		occH := w.Resolve(occ)
		if occH.Valid() {
			if occH.Kind() == thing.KindDoor && occH.Team() != h.Team() {
				return false
			}
			if occH.Kind() != thing.KindResourceNode || occH.Team() != h.Team() {
				return false
			}
		}
	}
	return true
}

func leaveTrailAndRipple(w *world.World, h world.Handle, at coords.Position) {
	team := h.Team()
	var color [3]uint8
	if t := w.Team(team); t != nil {
		color = t.Color
	}
	w.Tint.AccumulateTrail(at, config.TintAgentRadius, config.TintAgentStrength, trailRGB(color))

	if h.Agent().Class.IsBoat() && w.Grid.At(at).Terrain == thing.Water {
		spawnRippleEffect(w, at)
	}
}

// spawnRippleEffect marks a short-lived ripple at a tile a boat just entered.
// The ripple is a strength-1, pale-blue deposit into the trail channel of
// the tint field at that tile (replacing the tile's trail color) and decays
// with the trail channel, so no dedicated entity is created.
func spawnRippleEffect(w *world.World, at coords.Position) {
	w.Tint.AccumulateTrail(at, 0, 1, tint.RGB{R: 200, G: 220, B: 255})
}

func trailRGB(c [3]uint8) tint.RGB {
	return tint.RGB{R: int(c[0]), G: int(c[1]), B: int(c[2])}
}

func doSwap(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	target := dir.Step(h.Position())
	occ := ctx.World.Grid.BlockingEntity(target)
	if occ == 0 {
		return false
	}
	oh := ctx.World.Resolve(occ)
	if !oh.Valid() || oh.Kind() != thing.KindAgent || oh.Team() != h.Team() {
		return false
	}
	if IsFrozen(ctx.World, oh) {
		return false
	}
	from := h.Position()
	_ = ctx.World.MoveEntity(h.ID, thing.KindAgent, h.Team(), from, target)
	_ = ctx.World.MoveEntity(oh.ID, thing.KindAgent, oh.Team(), target, from)
	return true
}

func doPut(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	target := dir.Step(h.Position())
	occ := ctx.World.Grid.BlockingEntity(target)
	if occ == 0 {
		return false
	}
	oh := ctx.World.Resolve(occ)
	if !oh.Valid() || oh.Kind() != thing.KindAgent || oh.Team() != h.Team() {
		return false
	}
	srcInv, dstInv := h.Inventory(), oh.Inventory()
	if srcInv == nil || dstInv == nil || dstInv.Count() >= dstInv.Capacity {
		return false
	}
	for key, n := range srcInv.Items {
		if n <= 0 {
			continue
		}
		srcInv.Items[key]--
		dstInv.Items[key]++
		return true
	}
	return false
}

func doPlantLantern(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	inv := h.Inventory()
	if inv == nil || inv.Items["lantern"] <= 0 {
		return false
	}
	target := dir.Step(h.Position())
	if !ctx.World.Grid.InBounds(target) || ctx.World.Grid.IsBorder(target) {
		return false
	}
	if ctx.World.Tint.IsFrozen(target) {
		return false
	}
	if ctx.World.Grid.BackgroundEntity(target) != 0 {
		return false
	}
	ent, err := ctx.World.CreateEntity(target, thing.KindLantern, h.Team())
	if err != nil {
		return false
	}
	ent.AddComponent(world.LanternComponent, &world.LanternData{TeamColor: h.Team(), Healthy: true})
	inv.Items["lantern"]--
	return true
}

func doPlantResource(ctx *Context, h world.Handle, arg int) bool {
	if arg < 0 || arg > 7 {
		return false
	}
	dir := coords.Direction(arg % 4)
	itemKey := "wheat"
	if arg >= 4 {
		itemKey = "wood"
	}
	inv := h.Inventory()
	if inv == nil || inv.Items[itemKey] <= 0 {
		return false
	}
	target := dir.Step(h.Position())
	if !ctx.World.Grid.InBounds(target) {
		return false
	}
	if ctx.World.Grid.At(target).Terrain != thing.Fertile {
		return false
	}
	if !ctx.World.Grid.IsEmptyBlocking(target) {
		return false
	}
	ent, err := ctx.World.CreateEntity(target, thing.KindResourceNode, -1)
	if err != nil {
		return false
	}
	ent.AddComponent(world.ResourceComponent, &world.ResourceData{ItemKey: itemKey, Amount: 10})
	inv.Items[itemKey]--
	return true
}

func doBuild(ctx *Context, h world.Handle, arg int) bool {
	recipe, ok := config.RecipeAt(arg)
	if !ok {
		return false
	}
	team := ctx.World.Team(h.Team())
	if team == nil {
		return false
	}
	cost := make(map[world.Resource]int)
	for k, v := range recipe.Cost {
		cost[resourceFromKey(k)] = v
	}
	if !team.Afford(cost) {
		return false
	}
	spot, ok := ctx.World.FindNearestEmptyTile(h.Position(), 1)
	if !ok {
		return false
	}
	ent, err := ctx.World.CreateEntity(spot, thing.KindBuilding, h.Team())
	if err != nil {
		return false
	}
	team.Spend(cost)
	ctx.World.AttachBuilding(ctx.World.Resolve(ent.GetID()), recipe.MaxHP, recipe.GarrisonCap)
	bd := ctx.World.Resolve(ent.GetID()).Building()
	bd.Built = true
	bd.RecipeKey = recipe.Key
	ctx.World.ActionTint.Set(spot, tint.ActionTintBuild, config.ActionTintDecaySteps)
	return true
}

func resourceFromKey(k string) world.Resource {
	switch k {
	case "wood":
		return world.Wood
	case "stone":
		return world.Stone
	case "gold":
		return world.Gold
	case "water":
		return world.Water
	default:
		return world.Food
	}
}

func doSetRallyPoint(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	target := dir.Step(h.Position())
	blockID := ctx.World.Grid.BlockingEntity(target)
	if blockID == 0 {
		return false
	}
	bh := ctx.World.Resolve(blockID)
	if !bh.Valid() || bh.Kind() != thing.KindBuilding || bh.Team() != h.Team() {
		return false
	}
	b := bh.Building()
	if b == nil {
		return false
	}
	b.RallyPoint = target
	b.HasRally = true
	return true
}
