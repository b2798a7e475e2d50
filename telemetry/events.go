// Package telemetry generalizes the original overworld/core event log
// (LogEvent/FormatEventString, consumed by overworldlog) into a typed,
// bounded step-event ring, backed by go.uber.org/zap for ambient process
// logging the way a typical Go service
// wires zap through internal/core and internal/world.
package telemetry

import (
	"fmt"

	"github.com/bytearena/ecs"
	"go.uber.org/zap"
)

// EventKind enumerates the step-boundary events other subsystems and the
// FFI layer care about: deaths, victory triggers, invariant violations.
type EventKind int

const (
	EventAgentDeath EventKind = iota
	EventBuildingDestroyed
	EventRespawn
	EventBuildingPlaced
	EventResearchComplete
	EventVictory
	EventInvariantViolation
)

func (k EventKind) String() string {
	switch k {
	case EventAgentDeath:
		return "AgentDeath"
	case EventBuildingDestroyed:
		return "BuildingDestroyed"
	case EventRespawn:
		return "Respawn"
	case EventBuildingPlaced:
		return "BuildingPlaced"
	case EventResearchComplete:
		return "ResearchComplete"
	case EventVictory:
		return "Victory"
	case EventInvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Event is one entry in the step-event log.
type Event struct {
	Kind     EventKind
	Step     int
	EntityID ecs.EntityID
	Message  string
}

// Log is a bounded ring of recent events plus a zap logger for ambient
// process-level output. New events evict the oldest once Capacity is
// reached, matching the original fixed-size overworld recorder.
type Log struct {
	logger   *zap.Logger
	events   []Event
	capacity int
}

// NewLog builds a telemetry log backed by a zap logger. Pass zap.NewNop()
// in tests to suppress output while still exercising the ring buffer.
func NewLog(logger *zap.Logger, capacity int) *Log {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Log{logger: logger, capacity: capacity}
}

// Record appends an event, logs it through zap at the appropriate level, and
// evicts the oldest entry if the ring is full.
func (l *Log) Record(kind EventKind, step int, id ecs.EntityID, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ev := Event{Kind: kind, Step: step, EntityID: id, Message: msg}

	if len(l.events) >= l.capacity {
		l.events = l.events[1:]
	}
	l.events = append(l.events, ev)

	fields := []zap.Field{
		zap.Int("step", step),
		zap.Uint64("entity", uint64(id)),
	}
	if kind == EventInvariantViolation {
		l.logger.Error(msg, append(fields, zap.String("kind", kind.String()))...)
		return
	}
	l.logger.Info(msg, append(fields, zap.String("kind", kind.String()))...)
}

// Recent returns the last n recorded events, oldest first.
func (l *Log) Recent(n int) []Event {
	if n <= 0 || n > len(l.events) {
		n = len(l.events)
	}
	return append([]Event(nil), l.events[len(l.events)-n:]...)
}

// Sync flushes the underlying zap logger.
func (l *Log) Sync() error {
	return l.logger.Sync()
}
