package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// ProfileUpdate carries the fields to change. Nil pointers are left
// untouched.
type ProfileUpdate struct {
	Name            *string
	Bio             *string
	Country         *string
	TravelInterests *[]string
	ProfilePicture  *string
}

// CreateProfile stores the public profile for a user. The profile shares
// the user's id.
func CreateProfile(s types.Store, userID, name, bio, country string, interests []string) error {
	err := s.ExecuteWrite(
		"INSERT INTO profiles (id, name, bio, country, travel_interests, created_at, updated_at) VALUES (?, ?, ?, ?, ?, datetime('now'), datetime('now'))",
		[]any{userID, name, bio, country, types.EncodeStringList(interests)})
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile for a user, ErrNotFound when absent.
func GetProfile(s types.Store, userID string) (*types.Profile, error) {
	row, err := s.QueryOne("SELECT * FROM profiles WHERE id = ?", []any{userID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.ErrNotFound
	}
	return profileFromRecord(row), nil
}

// ListProfiles returns all profiles newest first, optionally excluding
// one user (the viewer).
func ListProfiles(s types.Store, excludeUserID string) ([]types.Profile, error) {
	query := "SELECT * FROM profiles ORDER BY created_at DESC"
	var params []any
	if excludeUserID != "" {
		query = "SELECT * FROM profiles WHERE id != ? ORDER BY created_at DESC"
		params = []any{excludeUserID}
	}

	rows, err := s.QueryAll(query, params)
	if err != nil {
		return nil, err
	}
	profiles := make([]types.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, *profileFromRecord(row))
	}
	return profiles, nil
}

// UpdateProfile applies the non-nil fields. An empty update still bumps
// updated_at.
func UpdateProfile(s types.Store, userID string, updates ProfileUpdate) error {
	var fields []string
	var params []any

	if updates.Name != nil {
		fields = append(fields, "name = ?")
		params = append(params, *updates.Name)
	}
	if updates.Bio != nil {
		fields = append(fields, "bio = ?")
		params = append(params, *updates.Bio)
	}
	if updates.Country != nil {
		fields = append(fields, "country = ?")
		params = append(params, *updates.Country)
	}
	if updates.TravelInterests != nil {
		fields = append(fields, "travel_interests = ?")
		params = append(params, types.EncodeStringList(*updates.TravelInterests))
	}
	if updates.ProfilePicture != nil {
		fields = append(fields, "profile_picture = ?")
		params = append(params, *updates.ProfilePicture)
	}

	fields = append(fields, "updated_at = datetime('now')")
	params = append(params, userID)

	query := "UPDATE profiles SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// CountProfiles returns the number of stored profiles.
func CountProfiles(s types.Store) (int, error) {
	rows, err := s.QueryAll("SELECT * FROM profiles", nil)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// SearchProfiles matches the term case-insensitively against name,
// country, and individual travel interests. The interests live in JSON
// text, so matching happens here rather than in the statement. A blank
// term matches nothing.
func SearchProfiles(s types.Store, term, excludeUserID string) ([]types.Profile, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []types.Profile{}, nil
	}
	needle := strings.ToLower(term)

	all, err := ListProfiles(s, excludeUserID)
	if err != nil {
		return nil, err
	}

	matched := []types.Profile{}
	for _, p := range all {
		if profileMatches(p, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func profileMatches(p types.Profile, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Country), needle) {
		return true
	}
	for _, interest := range p.TravelInterests {
		if strings.Contains(strings.ToLower(interest), needle) {
			return true
		}
	}
	return false
}

func profileFromRecord(r types.Record) *types.Profile {
	return &types.Profile{
		ID:              types.StringField(r, "id"),
		Name:            types.StringField(r, "name"),
		Bio:             types.StringField(r, "bio"),
		Country:         types.StringField(r, "country"),
		TravelInterests: types.DecodeStringList(r["travel_interests"]),
		ProfilePicture:  types.StringField(r, "profile_picture"),
		CreatedAt:       types.StringField(r, "created_at"),
		UpdatedAt:       types.StringField(r, "updated_at"),
	}
}
