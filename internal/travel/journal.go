package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// JournalUpdate carries the entry fields to change.
type JournalUpdate struct {
	Title    *string
	Content  *string
	Photos   *[]string
	Date     *string
	Location *string
}

// CreateJournalEntry stores a dated note on a trip. Photos is stored as
// JSON text.
func CreateJournalEntry(s types.Store, id, tripID, userID, title, content, date string, photos []string, location string) error {
	err := s.ExecuteWrite(
		"INSERT INTO journal_entries (id, trip_id, user_id, title, content, photos, date, location, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))",
		[]any{id, tripID, userID, title, content, types.EncodeStringList(photos), date, location})
	if err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}
	return nil
}

// ListJournalByTrip returns a trip's entries newest date first.
func ListJournalByTrip(s types.Store, tripID string) ([]types.JournalEntry, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM journal_entries WHERE trip_id = ? ORDER BY date DESC, created_at DESC",
		[]any{tripID})
	if err != nil {
		return nil, err
	}
	entries := make([]types.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, types.JournalEntry{
			ID:        types.StringField(row, "id"),
			TripID:    types.StringField(row, "trip_id"),
			UserID:    types.StringField(row, "user_id"),
			Title:     types.StringField(row, "title"),
			Content:   types.StringField(row, "content"),
			Photos:    types.DecodeStringList(row["photos"]),
			Date:      types.StringField(row, "date"),
			Location:  types.StringField(row, "location"),
			CreatedAt: types.StringField(row, "created_at"),
		})
	}
	return entries, nil
}

// UpdateJournalEntry applies the non-nil fields.
func UpdateJournalEntry(s types.Store, entryID string, updates JournalUpdate) error {
	var fields []string
	var params []any

	if updates.Title != nil {
		fields = append(fields, "title = ?")
		params = append(params, *updates.Title)
	}
	if updates.Content != nil {
		fields = append(fields, "content = ?")
		params = append(params, *updates.Content)
	}
	if updates.Photos != nil {
		fields = append(fields, "photos = ?")
		params = append(params, types.EncodeStringList(*updates.Photos))
	}
	if updates.Date != nil {
		fields = append(fields, "date = ?")
		params = append(params, *updates.Date)
	}
	if updates.Location != nil {
		fields = append(fields, "location = ?")
		params = append(params, *updates.Location)
	}
	if len(fields) == 0 {
		return nil
	}

	params = append(params, entryID)
	query := "UPDATE journal_entries SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating journal entry: %w", err)
	}
	return nil
}

// DeleteJournalEntry removes one entry.
func DeleteJournalEntry(s types.Store, entryID string) error {
	if err := s.ExecuteWrite("DELETE FROM journal_entries WHERE id = ?", []any{entryID}); err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}
	return nil
}
