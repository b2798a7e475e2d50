// Package observation rebuilds the per-agent 11x11 observation tensor from
// world state (§4.12). It generalizes the original rendering-adjacent
// "build a view of the world around the player" pattern into a dense
// uint8 tensor suitable for an RL training loop, with the lazy dirty-bit
// rebuild contract §4.12 specifies.
package observation

import (
	"rtscore/config"
	"rtscore/thing"
)

// Window is the observation window's side length (§4.12).
const Window = config.ObservationWindow

const numTerrain = 18 // thing.TerrainType has 18 defined values
const numKinds = int(thing.KindNumKinds)

// Meta layer indices, laid out after the terrain and kind one-hot blocks.
const (
	MetaTeamID = iota
	MetaOrientation
	MetaUnitClass
	MetaIdleFlag
	MetaActionTint
	MetaRallyFlag
	MetaBiomeID
	MetaGarrisonFillRatio
	MetaRelicCount
	MetaProductionQueueLen
	MetaBuildingHPRatio
	MetaMonkFaithRatio
	MetaTrebuchetPacked
	MetaStance
	MetaObscured
	numMeta
)

// NumLayers is the total channel count L of the observation tensor.
const NumLayers = numTerrain + numKinds + numMeta

func terrainLayer(t thing.TerrainType) int { return int(t) }
func kindLayer(k thing.Kind) int           { return numTerrain + int(k) }
func metaLayer(m int) int                  { return numTerrain + numKinds + m }
