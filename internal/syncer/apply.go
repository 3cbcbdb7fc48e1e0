package syncer

import (
	"fmt"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// applyOperation replays one queued write through the travel layer.
// Update payloads carry only the fields that changed; the field helpers
// below turn presence in the payload into the pointer-update structs.
func (e *Engine) applyOperation(op types.QueuedOperation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	switch op.EntityType {
	case types.EntityTrip:
		return e.applyTrip(op)
	case types.EntityExpense:
		return e.applyExpense(op)
	case types.EntityItinerary:
		return e.applyItinerary(op)
	case types.EntityJournal:
		return e.applyJournal(op)
	case types.EntityRecommendation:
		return e.applyRecommendation(op)
	default:
		return fmt.Errorf("%w: %s", types.ErrUnknownEntity, op.EntityType)
	}
}

func (e *Engine) applyTrip(op types.QueuedOperation) error {
	d := op.Data
	switch op.Operation {
	case types.OpCreate:
		return travel.CreateTrip(e.store,
			types.StringField(d, "id"),
			types.StringField(d, "user_id"),
			types.StringField(d, "destination"),
			types.StringField(d, "start_date"),
			types.StringField(d, "end_date"),
			types.StringField(d, "description"))
	case types.OpUpdate:
		return travel.UpdateTrip(e.store, types.StringField(d, "id"), travel.TripUpdate{
			Destination: strField(d, "destination"),
			StartDate:   strField(d, "start_date"),
			EndDate:     strField(d, "end_date"),
			Description: strField(d, "description"),
		})
	case types.OpDelete:
		return travel.DeleteTrip(e.store, types.StringField(d, "id"))
	}
	return fmt.Errorf("%w: %s", types.ErrUnknownOperation, op.Operation)
}

func (e *Engine) applyExpense(op types.QueuedOperation) error {
	d := op.Data
	switch op.Operation {
	case types.OpCreate:
		return travel.CreateExpense(e.store,
			types.StringField(d, "id"),
			types.StringField(d, "trip_id"),
			types.StringField(d, "user_id"),
			types.StringField(d, "title"),
			types.FloatField(d, "amount"),
			types.StringField(d, "category"),
			types.StringField(d, "description"),
			types.DecodeStringList(d["split_among"]))
	case types.OpUpdate:
		return travel.UpdateExpense(e.store, types.StringField(d, "id"), travel.ExpenseUpdate{
			Title:       strField(d, "title"),
			Amount:      floatField(d, "amount"),
			Category:    strField(d, "category"),
			Description: strField(d, "description"),
			SplitAmong:  listField(d, "split_among"),
		})
	case types.OpDelete:
		return travel.DeleteExpense(e.store, types.StringField(d, "id"))
	}
	return fmt.Errorf("%w: %s", types.ErrUnknownOperation, op.Operation)
}

func (e *Engine) applyItinerary(op types.QueuedOperation) error {
	d := op.Data
	switch op.Operation {
	case types.OpCreate:
		return travel.CreateItineraryItem(e.store,
			types.StringField(d, "id"),
			types.StringField(d, "trip_id"),
			types.IntField(d, "day"),
			types.StringField(d, "title"),
			types.StringField(d, "description"),
			types.StringField(d, "time"),
			types.StringField(d, "location"))
	case types.OpUpdate:
		return travel.UpdateItineraryItem(e.store, types.StringField(d, "id"), travel.ItineraryUpdate{
			Day:         intField(d, "day"),
			Title:       strField(d, "title"),
			Description: strField(d, "description"),
			Time:        strField(d, "time"),
			Location:    strField(d, "location"),
		})
	case types.OpDelete:
		return travel.DeleteItineraryItem(e.store, types.StringField(d, "id"))
	}
	return fmt.Errorf("%w: %s", types.ErrUnknownOperation, op.Operation)
}

func (e *Engine) applyJournal(op types.QueuedOperation) error {
	d := op.Data
	switch op.Operation {
	case types.OpCreate:
		return travel.CreateJournalEntry(e.store,
			types.StringField(d, "id"),
			types.StringField(d, "trip_id"),
			types.StringField(d, "user_id"),
			types.StringField(d, "title"),
			types.StringField(d, "content"),
			types.StringField(d, "date"),
			types.DecodeStringList(d["photos"]),
			types.StringField(d, "location"))
	case types.OpUpdate:
		return travel.UpdateJournalEntry(e.store, types.StringField(d, "id"), travel.JournalUpdate{
			Title:    strField(d, "title"),
			Content:  strField(d, "content"),
			Photos:   listField(d, "photos"),
			Date:     strField(d, "date"),
			Location: strField(d, "location"),
		})
	case types.OpDelete:
		return travel.DeleteJournalEntry(e.store, types.StringField(d, "id"))
	}
	return fmt.Errorf("%w: %s", types.ErrUnknownOperation, op.Operation)
}

func (e *Engine) applyRecommendation(op types.QueuedOperation) error {
	d := op.Data
	switch op.Operation {
	case types.OpCreate:
		return travel.CreateRecommendation(e.store,
			types.StringField(d, "id"),
			types.StringField(d, "trip_id"),
			types.StringField(d, "user_id"),
			types.StringField(d, "title"),
			types.StringField(d, "description"),
			types.StringField(d, "category"),
			types.StringField(d, "location"),
			types.FloatField(d, "rating"))
	case types.OpUpdate:
		return travel.UpdateRecommendation(e.store, types.StringField(d, "id"), travel.RecommendationUpdate{
			Title:       strField(d, "title"),
			Description: strField(d, "description"),
			Category:    strField(d, "category"),
			Location:    strField(d, "location"),
			Rating:      floatField(d, "rating"),
		})
	case types.OpDelete:
		return travel.DeleteRecommendation(e.store, types.StringField(d, "id"))
	}
	return fmt.Errorf("%w: %s", types.ErrUnknownOperation, op.Operation)
}

// strField returns a pointer only when the key appears in the payload, so
// absent fields stay untouched on replay.
func strField(r types.Record, key string) *string {
	if _, ok := r[key]; !ok {
		return nil
	}
	v := types.StringField(r, key)
	return &v
}

func floatField(r types.Record, key string) *float64 {
	if _, ok := r[key]; !ok {
		return nil
	}
	v := types.FloatField(r, key)
	return &v
}

func intField(r types.Record, key string) *int {
	if _, ok := r[key]; !ok {
		return nil
	}
	v := types.IntField(r, key)
	return &v
}

func listField(r types.Record, key string) *[]string {
	if _, ok := r[key]; !ok {
		return nil
	}
	v := types.DecodeStringList(r[key])
	return &v
}
