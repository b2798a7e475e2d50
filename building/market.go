package building

import (
	"fmt"

	"rtscore/config"
	"rtscore/world"
)

// tradeableResources is the market's {food, wood, stone} basket vs gold
// (§4.8); gold itself is never bought or sold.
var tradeableResources = [...]world.Resource{world.Food, world.Wood, world.Stone}

// Buy converts gold into a resource at the team's current price, raising
// that resource's price by MarketPriceStepOnTrade (§4.8). Fails if h is not
// a building or the team cannot afford it; the building's MarketCooldown is
// neither checked nor set.
func Buy(h world.Handle, team *world.Team, resource world.Resource, amount int) error {
	m := h.Building()
	if m == nil {
		return fmt.Errorf("buy at %d: %w", h.ID, errNotBuilding)
	}
	cost := team.MarketPrices[resource] * amount
	if team.Stockpile[world.Gold] < cost {
		return fmt.Errorf("buy at %d: %w", h.ID, errCannotAfford)
	}
	team.Stockpile[world.Gold] -= cost
	team.Stockpile[resource] += amount
	adjustPrice(team, resource, config.MarketPriceStepOnTrade)
	return nil
}

// Sell converts a resource into gold, lowering that resource's price.
func Sell(h world.Handle, team *world.Team, resource world.Resource, amount int) error {
	if h.Building() == nil {
		return fmt.Errorf("sell at %d: %w", h.ID, errNotBuilding)
	}
	if team.Stockpile[resource] < amount {
		return fmt.Errorf("sell at %d: %w", h.ID, errCannotAfford)
	}
	gain := team.MarketPrices[resource] * amount
	team.Stockpile[resource] -= amount
	team.Stockpile[world.Gold] += gain
	adjustPrice(team, resource, -config.MarketPriceStepOnTrade)
	return nil
}

func adjustPrice(team *world.Team, resource world.Resource, delta int) {
	p := team.MarketPrices[resource] + delta
	if p < config.MarketMinPrice {
		p = config.MarketMinPrice
	}
	if p > config.MarketMaxPrice {
		p = config.MarketMaxPrice
	}
	team.MarketPrices[resource] = p
}

// Price returns a team's current price for a resource.
func Price(team *world.Team, resource world.Resource) int {
	return team.MarketPrices[resource]
}

// TickMarketDecay decays every team's prices toward the base 100 every
// MarketPriceDecayInterval steps (§4.8). Per the documented Open Question
// resolution (§9), decay is resolved in the scheduler's per-step entity
// tick (step 5), which runs after action execution (step 4) — so any
// market trade dispatched this step lands on the pre-decay price and
// decay is applied on top of it afterward.
func TickMarketDecay(w *world.World, step int) {
	if step%config.MarketPriceDecayInterval != 0 {
		return
	}
	for i := range w.Teams {
		team := w.Teams[i]
		for _, r := range tradeableResources {
			p := team.MarketPrices[r]
			switch {
			case p > 100:
				p--
			case p < 100:
				p++
			}
			team.MarketPrices[r] = p
		}
	}
}
