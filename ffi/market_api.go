package ffi

import (
	"rtscore/building"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// Buy spends team's gold for amount of resource at marketID's current
// price (§4.8).
func (e *Engine) Buy(marketID ecs.EntityID, team int, resource world.Resource, amount int) bool {
	market, ok := e.resolveBuilding(marketID)
	if !ok {
		return false
	}
	t := e.World.Team(team)
	if t == nil {
		return e.fail("NOT_FOUND", "team not found")
	}
	if err := building.Buy(market, t, resource, amount); err != nil {
		return e.fail("PRECONDITION_FAIL", err.Error())
	}
	return true
}

// Sell converts amount of resource into gold at marketID's current price.
func (e *Engine) Sell(marketID ecs.EntityID, team int, resource world.Resource, amount int) bool {
	market, ok := e.resolveBuilding(marketID)
	if !ok {
		return false
	}
	t := e.World.Team(team)
	if t == nil {
		return e.fail("NOT_FOUND", "team not found")
	}
	if err := building.Sell(market, t, resource, amount); err != nil {
		return e.fail("PRECONDITION_FAIL", err.Error())
	}
	return true
}

// Price reports team's current price for resource.
func (e *Engine) Price(team int, resource world.Resource) (int, bool) {
	t := e.World.Team(team)
	if t == nil {
		return 0, false
	}
	return building.Price(t, resource), true
}
