package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// ItineraryUpdate carries the item fields to change.
type ItineraryUpdate struct {
	Day         *int
	Title       *string
	Description *string
	Time        *string
	Location    *string
}

// CreateItineraryItem schedules an activity on a trip day.
func CreateItineraryItem(s types.Store, id, tripID string, day int, title, description, timeOfDay, location string) error {
	err := s.ExecuteWrite(
		"INSERT INTO itinerary_items (id, trip_id, day, title, description, time, location, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))",
		[]any{id, tripID, day, title, description, timeOfDay, location})
	if err != nil {
		return fmt.Errorf("creating itinerary item: %w", err)
	}
	return nil
}

// ListItineraryByTrip returns a trip's items in schedule order.
func ListItineraryByTrip(s types.Store, tripID string) ([]types.ItineraryItem, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM itinerary_items WHERE trip_id = ? ORDER BY day ASC, time ASC", []any{tripID})
	if err != nil {
		return nil, err
	}
	items := make([]types.ItineraryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.ItineraryItem{
			ID:          types.StringField(row, "id"),
			TripID:      types.StringField(row, "trip_id"),
			Day:         types.IntField(row, "day"),
			Title:       types.StringField(row, "title"),
			Description: types.StringField(row, "description"),
			Time:        types.StringField(row, "time"),
			Location:    types.StringField(row, "location"),
			CreatedAt:   types.StringField(row, "created_at"),
		})
	}
	return items, nil
}

// UpdateItineraryItem applies the non-nil fields.
func UpdateItineraryItem(s types.Store, itemID string, updates ItineraryUpdate) error {
	var fields []string
	var params []any

	if updates.Day != nil {
		fields = append(fields, "day = ?")
		params = append(params, *updates.Day)
	}
	if updates.Title != nil {
		fields = append(fields, "title = ?")
		params = append(params, *updates.Title)
	}
	if updates.Description != nil {
		fields = append(fields, "description = ?")
		params = append(params, *updates.Description)
	}
	if updates.Time != nil {
		fields = append(fields, "time = ?")
		params = append(params, *updates.Time)
	}
	if updates.Location != nil {
		fields = append(fields, "location = ?")
		params = append(params, *updates.Location)
	}
	if len(fields) == 0 {
		return nil
	}

	params = append(params, itemID)
	query := "UPDATE itinerary_items SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating itinerary item: %w", err)
	}
	return nil
}

// DeleteItineraryItem removes one item.
func DeleteItineraryItem(s types.Store, itemID string) error {
	if err := s.ExecuteWrite("DELETE FROM itinerary_items WHERE id = ?", []any{itemID}); err != nil {
		return fmt.Errorf("deleting itinerary item: %w", err)
	}
	return nil
}
