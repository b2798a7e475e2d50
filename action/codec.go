// Package action implements the per-agent action byte codec and the verb
// dispatcher (§4.3). It generalizes the original actionmanager package —
// which wraps per-entity behavior functions behind a closure table — into a
// fixed eleven-verb function table keyed by a decoded byte instead of
// runtime type switches, per §9's "avoid runtime reflection" guidance.
package action

import "rtscore/config"

// Verb is one of the eleven action verbs (§4.3).
type Verb int

const (
	Noop Verb = iota
	Move
	Attack
	Use
	Swap
	Put
	PlantLantern
	PlantResource
	Build
	Orient
	SetRallyPoint
	NumVerbs
)

// Code is a decoded action: verb plus its 0-24 argument.
type Code struct {
	Verb Verb
	Arg  int
}

// Encode packs a verb and argument into the wire byte, verb*25+arg.
func Encode(verb Verb, arg int) uint8 {
	return uint8(int(verb)*config.ArgsPerVerb + arg)
}

// Decode unpacks a wire byte into its verb and argument.
func Decode(b uint8) Code {
	return Code{Verb: Verb(int(b) / config.ArgsPerVerb), Arg: int(b) % config.ArgsPerVerb}
}
