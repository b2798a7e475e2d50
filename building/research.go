package building

import (
	"fmt"

	"rtscore/config"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"
)

// StartResearch locks a building on a tech entry, deducting cost from the
// team stockpile at start (§4.7). Fails (returns a wrapped error matching
// §7's PreconditionFail taxonomy) if the building is already researching,
// the tech is unknown, a prereq is missing, or the team cannot afford it.
func StartResearch(w *world.World, h world.Handle, techKey string) error {
	b := h.Building()
	if b == nil {
		return fmt.Errorf("start research on %d: %w", h.ID, errNotBuilding)
	}
	if b.ResearchActive {
		return fmt.Errorf("start research on %d: %w", h.ID, errResearchBusy)
	}
	tech, ok := config.FindTech(techKey)
	if !ok {
		return fmt.Errorf("start research %q: %w", techKey, errUnknownTech)
	}
	team := w.Team(h.Team())
	if team == nil {
		return fmt.Errorf("start research on %d: %w", h.ID, errNotBuilding)
	}
	if tech.Prereq != "" && !team.HasResearch(tech.Prereq) {
		return fmt.Errorf("start research %q: %w", techKey, errMissingPrereq)
	}
	cost := make(map[world.Resource]int, len(tech.Cost))
	for k, v := range tech.Cost {
		cost[ResourceFromKey(k)] = v
	}
	if !team.Afford(cost) {
		return fmt.Errorf("start research %q: %w", techKey, errCannotAfford)
	}
	team.Spend(cost)
	b.ResearchActive = true
	b.ResearchKey = techKey
	b.ResearchProgress = 0
	b.ResearchTotal = researchDuration(tech)
	return nil
}

// researchDuration is a fixed per-tier duration; higher tiers take longer,
// mirroring the tiered-prereq chain's escalating cost.
func researchDuration(t config.TechEntry) int {
	if t.Tier <= 0 {
		return 60
	}
	return 60 + 40*(t.Tier-1)
}

// TickResearch advances every researching building's progress by one
// (§4.1, production/research "advance by exactly one per step"). On
// completion it flips the team-wide flag and records the event.
func TickResearch(w *world.World, log *telemetry.Log, step int) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || !b.ResearchActive {
			continue
		}
		b.ResearchProgress++
		if b.ResearchProgress < b.ResearchTotal {
			continue
		}
		completeResearch(w, log, step, h, b)
	}
}

func completeResearch(w *world.World, log *telemetry.Log, step int, h world.Handle, b *world.BuildingData) {
	team := w.Team(h.Team())
	key := b.ResearchKey
	b.ResearchActive = false
	b.ResearchProgress = 0
	b.ResearchTotal = 0
	b.ResearchKey = ""
	if team == nil {
		return
	}
	team.Research[key] = true
	if log != nil {
		log.Record(telemetry.EventResearchComplete, step, h.ID, "team %d completed %s", team.ID, key)
	}
}

// HasBlacksmithUpgrade, HasUniversityTech, HasCastleTech, HasUnitUpgrade are
// the §4.7 research queries, each scoped to its own registry tier so a
// caller querying "archer_upgrade" can't accidentally match a same-named
// blacksmith entry.
func HasBlacksmithUpgrade(team *world.Team, key string) bool {
	return hasInTier(team, key, config.BlacksmithUpgrades)
}

func HasUniversityTech(team *world.Team, key string) bool {
	return hasInTier(team, key, config.UniversityTechs)
}

func HasCastleTech(team *world.Team, key string) bool {
	return hasInTier(team, key, config.CastleTechs)
}

func HasUnitUpgrade(team *world.Team, key string) bool {
	return hasInTier(team, key, config.UnitUpgradeChains)
}

func hasInTier(team *world.Team, key string, tier []config.TechEntry) bool {
	if team == nil {
		return false
	}
	for _, t := range tier {
		if t.Key == key {
			return team.HasResearch(key)
		}
	}
	return false
}

// AttackBonusFromResearch and ArmorBonusFromResearch sum every completed
// tech's flat delta for a team. The attack sum feeds
// combat.Resolver.UpgradeBonus; the armor sum is not consulted by damage
// resolution.
func AttackBonusFromResearch(team *world.Team) int {
	return sumEffect(team, func(e config.TechEffect) int { return e.AttackDelta })
}

func ArmorBonusFromResearch(team *world.Team) int {
	return sumEffect(team, func(e config.TechEffect) int { return e.ArmorDelta })
}

func sumEffect(team *world.Team, pick func(config.TechEffect) int) int {
	if team == nil {
		return 0
	}
	total := 0
	for _, t := range config.AllTech() {
		if team.HasResearch(t.Key) {
			total += pick(t.Effect)
		}
	}
	return total
}

var (
	errResearchBusy  = fmt.Errorf("building is already researching")
	errUnknownTech   = fmt.Errorf("unknown tech key")
	errMissingPrereq = fmt.Errorf("missing prerequisite tech")
	errCannotAfford  = fmt.Errorf("cannot afford research cost")
)
