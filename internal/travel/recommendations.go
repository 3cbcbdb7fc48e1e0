package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// RecommendationUpdate carries the recommendation fields to change.
type RecommendationUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Rating      *float64
}

// CreateRecommendation stores a place tip on a trip.
func CreateRecommendation(s types.Store, id, tripID, userID, title, description, category, location string, rating float64) error {
	err := s.ExecuteWrite(
		"INSERT INTO recommendations (id, trip_id, user_id, title, description, category, location, rating, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))",
		[]any{id, tripID, userID, title, description, category, location, rating})
	if err != nil {
		return fmt.Errorf("creating recommendation: %w", err)
	}
	return nil
}

// ListRecommendationsByTrip returns a trip's tips best-rated first,
// newest breaking ties.
func ListRecommendationsByTrip(s types.Store, tripID string) ([]types.Recommendation, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM recommendations WHERE trip_id = ? ORDER BY rating DESC, created_at DESC",
		[]any{tripID})
	if err != nil {
		return nil, err
	}
	recs := make([]types.Recommendation, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, types.Recommendation{
			ID:          types.StringField(row, "id"),
			TripID:      types.StringField(row, "trip_id"),
			UserID:      types.StringField(row, "user_id"),
			Title:       types.StringField(row, "title"),
			Description: types.StringField(row, "description"),
			Category:    types.StringField(row, "category"),
			Location:    types.StringField(row, "location"),
			Rating:      types.FloatField(row, "rating"),
			CreatedAt:   types.StringField(row, "created_at"),
		})
	}
	return recs, nil
}

// UpdateRecommendation applies the non-nil fields.
func UpdateRecommendation(s types.Store, recommendationID string, updates RecommendationUpdate) error {
	var fields []string
	var params []any

	if updates.Title != nil {
		fields = append(fields, "title = ?")
		params = append(params, *updates.Title)
	}
	if updates.Description != nil {
		fields = append(fields, "description = ?")
		params = append(params, *updates.Description)
	}
	if updates.Category != nil {
		fields = append(fields, "category = ?")
		params = append(params, *updates.Category)
	}
	if updates.Location != nil {
		fields = append(fields, "location = ?")
		params = append(params, *updates.Location)
	}
	if updates.Rating != nil {
		fields = append(fields, "rating = ?")
		params = append(params, *updates.Rating)
	}
	if len(fields) == 0 {
		return nil
	}

	params = append(params, recommendationID)
	query := "UPDATE recommendations SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating recommendation: %w", err)
	}
	return nil
}

// DeleteRecommendation removes one tip.
func DeleteRecommendation(s types.Store, recommendationID string) error {
	if err := s.ExecuteWrite("DELETE FROM recommendations WHERE id = ?", []any{recommendationID}); err != nil {
		return fmt.Errorf("deleting recommendation: %w", err)
	}
	return nil
}
