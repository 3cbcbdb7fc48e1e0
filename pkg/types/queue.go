package types

import "errors"

// Queued operation kinds.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Entity type tags for queued operations. These are the entity families
// whose writes are replayed by the sync engine.
const (
	EntityTrip           = "trip"
	EntityExpense        = "expense"
	EntityItinerary      = "itinerary"
	EntityJournal        = "journal"
	EntityRecommendation = "recommendation"
)

// Queue errors.
var (
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrUnknownOperation = errors.New("unknown operation kind")
)

var knownEntities = map[string]bool{
	EntityTrip:           true,
	EntityExpense:        true,
	EntityItinerary:      true,
	EntityJournal:        true,
	EntityRecommendation: true,
}

// QueuedOperation describes a write that could not be applied immediately.
// It is created by the offline write wrapper, never mutated in place, and
// destroyed on successful replay.
type QueuedOperation struct {
	ID         string `json:"id"`
	Operation  string `json:"operation"`
	EntityType string `json:"entityType"`
	Data       Record `json:"data"`
	Timestamp  int64  `json:"timestamp"`
}

// Validate checks the operation tags. The payload is opaque at this layer;
// the entity-specific apply functions validate it on replay.
func (op QueuedOperation) Validate() error {
	if !knownEntities[op.EntityType] {
		return ErrUnknownEntity
	}
	switch op.Operation {
	case OpCreate, OpUpdate, OpDelete:
		return nil
	default:
		return ErrUnknownOperation
	}
}
