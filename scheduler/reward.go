package scheduler

import (
	"rtscore/combat"
	"rtscore/config"
	"rtscore/victory"
	"rtscore/world"
)

// applyStepRewards writes §4.1 step 12's survival penalty to every agent
// still alive at the end of the step and the one-time death penalty to
// every agent this step's resolver marked dead (during pre-action,
// combat, aura, or tumor damage phases alike). rewards is overwritten, not
// accumulated, matching the buffer contract of the other per-step buffers.
func applyStepRewards(w *world.World, cfg config.EngineConfig, slots SlotMap, rewards []float32, resolver *combat.Resolver) {
	for i := range rewards {
		rewards[i] = 0
	}
	for _, id := range w.LiveAgentIDs() {
		if slot, ok := slots.SlotOf(id); ok && slot >= 0 && slot < len(rewards) {
			rewards[slot] += cfg.Rewards.SurvivalPenalty
		}
	}
	for id := range resolver.Dead {
		if slot, ok := slots.SlotOf(id); ok && slot >= 0 && slot < len(rewards) {
			rewards[slot] += cfg.Rewards.DeathPenalty
		}
	}
}

// applyVictoryRewards credits VictoryReward to every living agent on the
// winning team once a monitor fires (§4.1 step 14, §8 property 4) and
// splits terminal flags: winning-team agents are truncated (a successful
// stop, not a failure state), every other team's agents are terminated.
func applyVictoryRewards(w *world.World, cfg config.EngineConfig, slots SlotMap, rewards []float32, terminated, truncated []uint8, winner int, fired victory.Condition) {
	if fired == victory.None {
		return
	}
	for team, ids := range w.TeamAgents {
		for _, id := range ids {
			slot, ok := slots.SlotOf(id)
			if !ok || slot < 0 || slot >= len(terminated) {
				continue
			}
			if team == winner {
				truncated[slot] = 1
				if slot < len(rewards) {
					rewards[slot] += cfg.Rewards.VictoryReward
				}
			} else {
				terminated[slot] = 1
			}
		}
	}
}
