package action

import (
	"rtscore/building"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/tint"
	"rtscore/world"
)

// craftRecipe is one station's item->item conversion (§4.3 verb 3 "craft").
type craftRecipe struct {
	station     string
	consumesKey string
	consumesQty int
	producesKey string
	producesQty int
	cooldown    int
}

var craftRecipes = []craftRecipe{
	{station: "guard_tower", consumesKey: "gold_ore", consumesQty: 1, producesKey: "bar", producesQty: 1, cooldown: 5}, // magma smelting handled at a tower-class site in this scenario
	{station: "clay_oven", consumesKey: "wheat", consumesQty: 1, producesKey: "bread", producesQty: 1, cooldown: 5},
	{station: "weaving_loom", consumesKey: "wood", consumesQty: 1, producesKey: "lantern", producesQty: 1, cooldown: 5},
	{station: "blacksmith", consumesKey: "wood", consumesQty: 1, producesKey: "spear", producesQty: 1, cooldown: 8},
}

// doUse implements §4.3 verb 3: the single context-sensitive interact verb
// covering harvest, deposit, craft, self-heal, market trade, relic
// garrison/pickup, trebuchet pack/unpack, and dock boarding.
func doUse(ctx *Context, h world.Handle, arg int) bool {
	dir := coords.Direction(arg)
	if !dir.Valid() {
		return false
	}
	target := dir.Step(h.Position())
	if !ctx.World.Grid.InBounds(target) {
		return false
	}
	if ctx.World.Tint.IsFrozen(target) {
		return false
	}

	if id := ctx.World.Grid.BlockingEntity(target); id != 0 {
		th := ctx.World.Resolve(id)
		if th.Valid() {
			return useOnEntity(ctx, h, th)
		}
	}
	if id := ctx.World.Grid.BackgroundEntity(target); id != 0 {
		th := ctx.World.Resolve(id)
		if th.Valid() && th.Kind() == thing.KindRelic {
			return useOnRelicOnMap(ctx, h, th)
		}
	}
	return useSelfHealWithBread(h)
}

func useOnEntity(ctx *Context, h world.Handle, target world.Handle) bool {
	switch target.Kind() {
	case thing.KindResourceNode:
		return harvestResource(h, target)
	case thing.KindBuilding:
		return useBuilding(ctx, h, target)
	}
	return false
}

// harvestResource decrements a resource node's inventory and self-destructs
// it at zero (§4.3 verb 3).
func harvestResource(h world.Handle, node world.Handle) bool {
	rd := node.Resource()
	if rd == nil || rd.Amount <= 0 {
		return false
	}
	inv := h.Inventory()
	if inv == nil || inv.Count() >= inv.Capacity {
		return false
	}
	rd.Amount--
	inv.Items[rd.ItemKey]++
	return true
}

// useBuilding dispatches deposit/craft/market/garrison/production-entry by
// the building's recipe key.
func useBuilding(ctx *Context, h world.Handle, bldg world.Handle) bool {
	b := bldg.Building()
	if b == nil {
		return false
	}
	switch b.RecipeKey {
	case "granary", "lumber_camp", "quarry", "mill", "town_center":
		return depositAtBuilding(ctx.World, h, bldg)
	case "market":
		return marketTradeDefault(ctx.World, h, bldg)
	case "monastery":
		return useMonastery(ctx, h, bldg)
	case "siege_workshop":
		return togglePackedTrebuchet(h)
	case "dock":
		return enterDockBoat(ctx, h, bldg)
	default:
		for _, recipe := range craftRecipes {
			if recipe.station == b.RecipeKey {
				return craftAt(h, b, recipe)
			}
		}
	}
	return false
}

// depositAtBuilding adds every carried resource item to the team stockpile
// and clears the agent's inventory. No reward is credited for a deposit:
// the step reward holds only the survival, death and victory terms.
func depositAtBuilding(w *world.World, h world.Handle, bldg world.Handle) bool {
	team := w.Team(h.Team())
	inv := h.Inventory()
	if team == nil || inv == nil || inv.Count() == 0 {
		return false
	}
	deposited := false
	for key, n := range inv.Items {
		if n <= 0 {
			continue
		}
		team.Deposit(building.ResourceFromKey(depositResourceKey(key)), n)
		inv.Items[key] = 0
		deposited = true
	}
	return deposited
}

// depositResourceKey maps a carried item key to the stockpile resource key
// it credits: wood, stone, gold and water credit themselves, and every other
// key, refined goods (bread, bar, cloth, spear, armor) included, credits food.
func depositResourceKey(itemKey string) string {
	switch itemKey {
	case "wood", "stone", "gold", "water":
		return itemKey
	default:
		return "food"
	}
}

func craftAt(h world.Handle, b *world.BuildingData, recipe craftRecipe) bool {
	if b.StationCooldown > 0 {
		return false
	}
	inv := h.Inventory()
	if inv == nil || inv.Items[recipe.consumesKey] < recipe.consumesQty {
		return false
	}
	if inv.Count()-recipe.consumesQty+recipe.producesQty > inv.Capacity {
		return false
	}
	inv.Items[recipe.consumesKey] -= recipe.consumesQty
	inv.Items[recipe.producesKey] += recipe.producesQty
	b.StationCooldown = recipe.cooldown
	return true
}

// marketTradeDefault lets an agent sell one unit of carried wood for gold
// at the market's current price, the §4.3 verb 3 "market trade" shorthand;
// the full buy/sell-by-amount surface is exposed to the control API in
// §6 via building.Buy/building.Sell directly against team stockpiles.
func marketTradeDefault(w *world.World, h world.Handle, bldg world.Handle) bool {
	b := bldg.Building()
	team := w.Team(h.Team())
	if team == nil || b == nil || b.MarketCooldown > 0 {
		return false
	}
	inv := h.Inventory()
	if inv == nil || inv.Items["wood"] <= 0 {
		return false
	}
	gain := building.Price(team, world.Wood)
	inv.Items["wood"]--
	team.Stockpile[world.Gold] += gain
	b.MarketCooldown = config.MarketCooldownSteps
	return true
}

// useMonastery picks up the monastery's first garrisoned relic when it holds
// one; it does not garrison a relic from the agent's inventory.
func useMonastery(ctx *Context, h world.Handle, monastery world.Handle) bool {
	b := monastery.Building()
	if b == nil {
		return false
	}
	if len(b.GarrisonRelics) > 0 {
		relic := ctx.World.Resolve(b.GarrisonRelics[0])
		return building.PickupRelic(ctx.World, relic, monastery)
	}
	return false
}

func useOnRelicOnMap(ctx *Context, h world.Handle, relic world.Handle) bool {
	adjacent, ok := ctx.World.Index.Nearest(h.Position(), thing.KindBuilding, 1)
	if !ok {
		return false
	}
	mh := ctx.World.Resolve(adjacent)
	if !mh.Valid() || mh.Building() == nil || mh.Building().RecipeKey != "monastery" {
		return false
	}
	return building.GarrisonRelic(ctx.World, relic, mh) == nil
}

// togglePackedTrebuchet flips a trebuchet's packed flag: packed trebuchets
// may move but not attack; unpacked ones may attack but not move (§4.3
// verb 3 "pack/unpack trebuchet").
func togglePackedTrebuchet(h world.Handle) bool {
	agent := h.Agent()
	if agent == nil || agent.Class != thing.Trebuchet {
		return false
	}
	agent.Packed = !agent.Packed
	return true
}

// enterDockBoat reclasses a non-boat agent standing at a dock into the boat
// class, the simplification this engine uses for "boarding": docks have no
// separate vehicle entities, so boarding simply grants water passage.
func enterDockBoat(ctx *Context, h world.Handle, dock world.Handle) bool {
	agent := h.Agent()
	if agent == nil || agent.Class == thing.BoatUnit {
		return false
	}
	agent.Class = thing.BoatUnit
	ctx.World.ActionTint.Set(dock.Position(), tint.ActionTintBonusAura, config.ActionTintDecaySteps)
	return true
}

// useSelfHealWithBread lets an agent consume bread from its own inventory
// to heal itself when no adjacent target exists (§4.3 verb 3).
func useSelfHealWithBread(h world.Handle) bool {
	inv := h.Inventory()
	hp := h.Health()
	if inv == nil || hp == nil || inv.Items["bread"] <= 0 || hp.HP >= hp.MaxHP {
		return false
	}
	inv.Items["bread"]--
	hp.HP += 4
	if hp.HP > hp.MaxHP {
		hp.HP = hp.MaxHP
	}
	return true
}
