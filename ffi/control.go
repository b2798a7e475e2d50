package ffi

import (
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// resolveAgent looks up a live agent entity's Handle and AgentData
// together, the shared precondition every command-slot setter below
// starts with, failing with NotFound on a missing or non-agent id.
func (e *Engine) resolveAgent(id ecs.EntityID) (world.Handle, *world.AgentData, bool) {
	h := e.World.Resolve(id)
	if !h.Valid() || h.Kind() != thing.KindAgent {
		e.fail("NOT_FOUND", "agent not found")
		return world.Handle{}, nil, false
	}
	agent := h.Agent()
	if agent == nil {
		e.fail("NOT_FOUND", "agent not found")
		return world.Handle{}, nil, false
	}
	return h, agent, true
}

// SetAttackMove arms an attack-move order toward target (§6 control API).
// The order is a hint the caller's own policy consults via AttackMove/
// HasAttackMove when deciding the agent's next action code; the engine
// does not execute it automatically.
func (e *Engine) SetAttackMove(id ecs.EntityID, target coords.Position) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands.AttackMoveTarget = target
	agent.Commands.HasAttackMove = true
	return true
}

// AttackMove reports the currently armed attack-move target, if any.
func (e *Engine) AttackMove(id ecs.EntityID) (coords.Position, bool) {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return coords.Position{}, false
	}
	return agent.Commands.AttackMoveTarget, agent.Commands.HasAttackMove
}

// SetPatrol replaces an agent's patrol waypoint list.
func (e *Engine) SetPatrol(id ecs.EntityID, waypoints []coords.Position) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands.Patrol = append([]coords.Position(nil), waypoints...)
	return true
}

// AppendPatrolWaypoint adds one waypoint to an agent's existing patrol.
func (e *Engine) AppendPatrolWaypoint(id ecs.EntityID, wp coords.Position) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands.Patrol = append(agent.Commands.Patrol, wp)
	return true
}

// Patrol returns an agent's current patrol waypoint list.
func (e *Engine) Patrol(id ecs.EntityID) ([]coords.Position, bool) {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return nil, false
	}
	return agent.Commands.Patrol, true
}

// SetStance sets an agent's engagement-rule flag (§3 Agent).
func (e *Engine) SetStance(id ecs.EntityID, stance thing.Stance) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Stance = stance
	return true
}

// Stance returns an agent's current engagement-rule flag.
func (e *Engine) Stance(id ecs.EntityID) (thing.Stance, bool) {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return 0, false
	}
	return agent.Stance, true
}

// SetHoldPosition arms a hold-position order at the agent's current tile.
func (e *Engine) SetHoldPosition(id ecs.EntityID) bool {
	h, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands.HoldPosition = h.Position()
	agent.Commands.HasHoldPosition = true
	return true
}

// SetFollow arms a follow order toward targetID.
func (e *Engine) SetFollow(id, targetID ecs.EntityID) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	if !e.World.Resolve(targetID).Valid() {
		return e.fail("NOT_FOUND", "follow target not found")
	}
	agent.Commands.FollowTargetID = targetID
	agent.Commands.HasFollowTarget = true
	return true
}

// Stop clears every standing command slot on an agent (attack-move,
// patrol, hold, follow, scout mode), the universal cancel-order verb.
func (e *Engine) Stop(id ecs.EntityID) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands = world.CommandSlots{}
	return true
}

// SetScoutMode toggles an agent's scout-mode flag (a fog-revealing,
// non-combat movement hint).
func (e *Engine) SetScoutMode(id ecs.EntityID, on bool) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	agent.Commands.ScoutMode = on
	return true
}

// AddToControlGroup records group in an agent's control-group membership
// list, a no-op if it's already a member.
func (e *Engine) AddToControlGroup(id ecs.EntityID, group int) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	for _, g := range agent.Commands.ControlGroupIDs {
		if g == group {
			return true
		}
	}
	agent.Commands.ControlGroupIDs = append(agent.Commands.ControlGroupIDs, group)
	return true
}

// RemoveFromControlGroup drops group from an agent's membership list.
func (e *Engine) RemoveFromControlGroup(id ecs.EntityID, group int) bool {
	_, agent, ok := e.resolveAgent(id)
	if !ok {
		return false
	}
	list := agent.Commands.ControlGroupIDs
	for i, g := range list {
		if g == group {
			agent.Commands.ControlGroupIDs = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return true
}

// ControlGroupMembers scans every live agent on team for group membership,
// the recall side of the select/assign/recall control-group workflow.
func (e *Engine) ControlGroupMembers(team, group int) []ecs.EntityID {
	var out []ecs.EntityID
	if team < 0 || team >= len(e.World.TeamAgents) {
		return out
	}
	for _, id := range e.World.TeamAgents[team] {
		h := e.World.Resolve(id)
		if !h.Valid() {
			continue
		}
		agent := h.Agent()
		if agent == nil {
			continue
		}
		for _, g := range agent.Commands.ControlGroupIDs {
			if g == group {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
