package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// TripUpdate carries the trip fields to change. Nil pointers are left
// untouched.
type TripUpdate struct {
	Destination *string
	StartDate   *string
	EndDate     *string
	Description *string
}

// CreateTrip stores a trip and enrolls the owner as its first
// participant. The participant insert ignores conflicts so replaying a
// queued create stays idempotent.
func CreateTrip(s types.Store, id, userID, destination, startDate, endDate, description string) error {
	err := s.ExecuteWrite(
		"INSERT INTO trips (id, user_id, destination, start_date, end_date, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))",
		[]any{id, userID, destination, startDate, endDate, description})
	if err != nil {
		return fmt.Errorf("creating trip: %w", err)
	}

	err = s.ExecuteWrite(
		"INSERT OR IGNORE INTO trip_participants (id, trip_id, user_id, joined_at) VALUES (?, ?, ?, datetime('now'))",
		[]any{id + "_" + userID, id, userID})
	if err != nil {
		return fmt.Errorf("enrolling trip owner: %w", err)
	}
	return nil
}

// GetTrip returns a trip by id, ErrNotFound when absent.
func GetTrip(s types.Store, tripID string) (*types.Trip, error) {
	row, err := s.QueryOne("SELECT * FROM trips WHERE id = ?", []any{tripID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.ErrNotFound
	}
	return tripFromRecord(row), nil
}

// ListTripsByUser returns the user's trips soonest first.
func ListTripsByUser(s types.Store, userID string) ([]types.Trip, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM trips WHERE user_id = ? ORDER BY start_date ASC", []any{userID})
	if err != nil {
		return nil, err
	}
	return tripsFromRecords(rows), nil
}

// ListAllTrips returns every trip, latest departure first.
func ListAllTrips(s types.Store) ([]types.Trip, error) {
	rows, err := s.QueryAll("SELECT * FROM trips ORDER BY start_date DESC", nil)
	if err != nil {
		return nil, err
	}
	return tripsFromRecords(rows), nil
}

// TripParticipants returns the user ids enrolled in a trip.
func TripParticipants(s types.Store, tripID string) ([]string, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM trip_participants WHERE trip_id = ?", []any{tripID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, types.StringField(row, "user_id"))
	}
	return ids, nil
}

// JoinTrip enrolls a user in a trip. Already enrolled is a no-op.
func JoinTrip(s types.Store, tripID, userID string) error {
	err := s.ExecuteWrite(
		"INSERT OR IGNORE INTO trip_participants (id, trip_id, user_id, joined_at) VALUES (?, ?, ?, datetime('now'))",
		[]any{tripID + "_" + userID, tripID, userID})
	if err != nil {
		return fmt.Errorf("joining trip: %w", err)
	}
	return nil
}

// UpdateTrip applies the non-nil fields and bumps updated_at.
func UpdateTrip(s types.Store, tripID string, updates TripUpdate) error {
	var fields []string
	var params []any

	if updates.Destination != nil {
		fields = append(fields, "destination = ?")
		params = append(params, *updates.Destination)
	}
	if updates.StartDate != nil {
		fields = append(fields, "start_date = ?")
		params = append(params, *updates.StartDate)
	}
	if updates.EndDate != nil {
		fields = append(fields, "end_date = ?")
		params = append(params, *updates.EndDate)
	}
	if updates.Description != nil {
		fields = append(fields, "description = ?")
		params = append(params, *updates.Description)
	}

	fields = append(fields, "updated_at = datetime('now')")
	params = append(params, tripID)

	query := "UPDATE trips SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip and everything hanging off it. The cascade is
// explicit so the object store behaves the same as the SQL engine's
// foreign keys.
func DeleteTrip(s types.Store, tripID string) error {
	children := []string{
		types.TripParticipantsTable,
		types.ItineraryItemsTable,
		types.ExpensesTable,
		types.RecommendationsTable,
		types.JournalEntriesTable,
	}
	for _, table := range children {
		err := s.ExecuteWrite("DELETE FROM "+table+" WHERE trip_id = ?", []any{tripID})
		if err != nil {
			return fmt.Errorf("deleting trip %s: %w", table, err)
		}
	}
	if err := s.ExecuteWrite("DELETE FROM trips WHERE id = ?", []any{tripID}); err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	return nil
}

// CountTrips returns the number of stored trips.
func CountTrips(s types.Store) (int, error) {
	rows, err := s.QueryAll("SELECT * FROM trips", nil)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func tripFromRecord(r types.Record) *types.Trip {
	return &types.Trip{
		ID:          types.StringField(r, "id"),
		UserID:      types.StringField(r, "user_id"),
		Destination: types.StringField(r, "destination"),
		StartDate:   types.StringField(r, "start_date"),
		EndDate:     types.StringField(r, "end_date"),
		Description: types.StringField(r, "description"),
		CreatedAt:   types.StringField(r, "created_at"),
		UpdatedAt:   types.StringField(r, "updated_at"),
	}
}

func tripsFromRecords(rows []types.Record) []types.Trip {
	trips := make([]types.Trip, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, *tripFromRecord(row))
	}
	return trips
}
