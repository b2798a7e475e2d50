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

// attackRange and attackWidth implement the per-class targeting patterns of
// §4.3 verb 2: melee and most classes hit the adjacent tile only; archer
// extends to ArcherBaseRange; scout and ram extend two tiles; mangonel and
// boat widen the band at a fixed one-tile range.
func attackRange(class thing.UnitClass) int {
	switch class {
	case thing.Archer:
		return config.ArcherBaseRange
	case thing.Scout, thing.Ram:
		return 2
	default:
		return 1
	}
}

func attackWidth(class thing.UnitClass) int {
	switch class {
	case thing.Mangonel:
		return 5
	case thing.BoatUnit:
		return 3
	default:
		return 1
	}
}

func attackTintCode(class thing.UnitClass) uint8 {
	switch class {
	case thing.Archer, thing.Scout:
		return tint.ActionTintAttackRanged
	case thing.Ram, thing.Mangonel, thing.Trebuchet:
		return tint.ActionTintAttackSiege
	default:
		return tint.ActionTintAttackMelee
	}
}

// doAttack implements §4.3 verb 2. Monks never deal damage here; they
// convert or heal via doMonkAction instead.
func doAttack(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	agent := h.Agent()
	if agent.Class == thing.Trebuchet && agent.Packed {
		return false
	}
	if agent.Class == thing.Monk {
		return doMonkAction(ctx, h, dir)
	}

	rangeN := attackRange(agent.Class)
	width := attackWidth(agent.Class)
	origin := h.Position()
	perpDX, perpDY := perpendicular(dir)

	for depth := 1; depth <= rangeN; depth++ {
		center := stepN(origin, dir, depth)
		targets := targetsAlongBand(ctx.World, h, center, perpDX, perpDY, width)
		if len(targets) == 0 {
			continue
		}
		agent.Orientation = dir
		for _, t := range targets {
			resolveAttack(ctx, h, t)
		}
		return true
	}
	return false
}

func perpendicular(dir coords.Direction) (int, int) {
	dx, dy := dir.Vector()
	return -dy, dx
}

func stepN(p coords.Position, dir coords.Direction, n int) coords.Position {
	dx, dy := dir.Vector()
	return coords.Position{X: p.X + dx*n, Y: p.Y + dy*n}
}

// targetsAlongBand collects valid enemy targets across a perpendicular band
// of the given width centered on `center`, used by the wide mangonel/boat
// patterns as well as the width-1 single-tile patterns.
func targetsAlongBand(w *world.World, attacker world.Handle, center coords.Position, perpDX, perpDY, width int) []world.Handle {
	half := (width - 1) / 2
	var out []world.Handle
	for o := -half; o <= half; o++ {
		p := coords.Position{X: center.X + perpDX*o, Y: center.Y + perpDY*o}
		if !w.Grid.InBounds(p) {
			continue
		}
		if w.Tint.IsFrozen(p) {
			continue
		}
		if id := w.Grid.BlockingEntity(p); id != 0 {
			if th := validTarget(w, attacker, id); th.Valid() {
				out = append(out, th)
			}
		}
	}
	return out
}

func validTarget(w *world.World, attacker world.Handle, id ecs.EntityID) world.Handle {
	th := w.Resolve(id)
	if !th.Valid() || th.ID == attacker.ID {
		return world.Handle{}
	}
	switch th.Kind() {
	case thing.KindAgent, thing.KindBuilding, thing.KindAnimal, thing.KindGoblin, thing.KindTumor:
	default:
		return world.Handle{}
	}
	if th.Team() == attacker.Team() {
		return world.Handle{}
	}
	if hp := th.Health(); hp != nil && hp.HP <= 0 {
		return world.Handle{}
	}
	return th
}

func resolveAttack(ctx *Context, attacker, target world.Handle) {
	attackerClass := attacker.Agent().Class
	targetClass := thing.Villager
	if ad := target.Agent(); ad != nil {
		targetClass = ad.Class
	}
	isStructure := target.Kind() == thing.KindBuilding
	inAura := !isStructure && combat.InTankAuraBand(ctx.World, target.Position(), target.Team())
	dmg := ctx.Resolver.ComputeDamage(attackerClass, attacker.Team(), targetClass, isStructure, inAura)

	if isStructure {
		ctx.Resolver.ApplyStructureDamage(attacker.ID, target, dmg)
	} else {
		ctx.Resolver.ApplyAgentDamage(attacker.ID, target, dmg)
	}
	ctx.World.ActionTint.Set(target.Position(), attackTintCode(attackerClass), config.ActionTintDecaySteps)
	if hp := target.Health(); hp != nil && hp.HP == 0 {
		ctx.World.ActionTint.Set(target.Position(), tint.ActionTintDeath, config.ActionTintDecaySteps)
	}
}

// doMonkAction implements the monk branch of §4.3 verb 2: convert an
// adjacent enemy agent if the monk's own team has room under its pop-cap,
// otherwise heal an adjacent wounded friendly agent.
func doMonkAction(ctx *Context, h world.Handle, dir coords.Direction) bool {
	target := dir.Step(h.Position())
	occID := ctx.World.Grid.BlockingEntity(target)
	if occID == 0 {
		return false
	}
	oh := ctx.World.Resolve(occID)
	if !oh.Valid() || oh.Kind() != thing.KindAgent {
		return false
	}
	od := oh.Agent()
	if od == nil || od.Dead {
		return false
	}

	if oh.Team() != h.Team() {
		team := ctx.World.Team(h.Team())
		if team == nil || team.PopCount >= team.PopCap {
			return false
		}
		return convertAgent(ctx.World, oh, h.Team())
	}

	hp := oh.Health()
	if hp == nil || hp.HP >= hp.MaxHP {
		return false
	}
	hp.HP++
	if hp.HP > hp.MaxHP {
		hp.HP = hp.MaxHP
	}
	ctx.World.ActionTint.Set(target, tint.ActionTintHeal, config.ActionTintDecaySteps)
	return true
}

func convertAgent(w *world.World, target world.Handle, newTeam int) bool {
	oldTeam := target.Team()
	pos := target.Position()
	w.Index.Remove(target.ID)
	w.TeamAgents[oldTeam] = removeIDFromSlice(w.TeamAgents[oldTeam], target.ID)
	target.Entity.AddComponent(world.TeamComponent, newTeam)
	w.Index.Insert(target.ID, thing.KindAgent, newTeam, pos)
	w.TeamAgents[newTeam] = append(w.TeamAgents[newTeam], target.ID)
	w.ActionTint.Set(pos, tint.ActionTintConvert, config.ActionTintDecaySteps)
	return true
}

func removeIDFromSlice(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
