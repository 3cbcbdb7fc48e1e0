package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

func strPtr(s string) *string      { return &s }
func intPtr(n int) *int            { return &n }
func floatPtr(f float64) *float64  { return &f }
func listPtr(v []string) *[]string { return &v }

func TestProfileRoundTrip(t *testing.T) {
	runOnBothBackends(t, func(t *testing.T, s types.Store) {
		mustCreateUser(t, s, "u1", "ana@example.com", "Ana")
		require.NoError(t, CreateProfile(s, "u1", "Ana", "mountain person", "Portugal",
			[]string{"hiking", "food"}))

		p, err := GetProfile(s, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", p.Name)
		assert.Equal(t, "Portugal", p.Country)
		assert.Equal(t, []string{"hiking", "food"}, p.TravelInterests)

		_, err = GetProfile(s, "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	runOnBothBackends(t, func(t *testing.T, s types.Store) {
		mustCreateUser(t, s, "u1", "ana@example.com", "Ana")
		require.NoError(t, CreateProfile(s, "u1", "Ana", "bio", "Portugal", nil))

		err := UpdateProfile(s, "u1", ProfileUpdate{
			Country:         strPtr("Spain"),
			TravelInterests: listPtr([]string{"surfing"}),
		})
		require.NoError(t, err)

		p, err := GetProfile(s, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Spain", p.Country)
		assert.Equal(t, []string{"surfing"}, p.TravelInterests)
		// Untouched fields survive.
		assert.Equal(t, "Ana", p.Name)
		assert.Equal(t, "bio", p.Bio)
	})
}

func TestListProfilesExcludesViewer(t *testing.T) {
	runOnBothBackends(t, func(t *testing.T, s types.Store) {
		for _, u := range []struct{ id, email, name string }{
			{"u1", "a@example.com", "Ana"},
			{"u2", "b@example.com", "Ben"},
			{"u3", "c@example.com", "Caro"},
		} {
			mustCreateUser(t, s, u.id, u.email, u.name)
			require.NoError(t, CreateProfile(s, u.id, u.name, "", "", nil))
		}

		all, err := ListProfiles(s, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		others, err := ListProfiles(s, "u2")
		require.NoError(t, err)
		require.Len(t, others, 2)
		for _, p := range others {
			assert.NotEqual(t, "u2", p.ID)
		}

		count, err := CountProfiles(s)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestSearchProfiles(t *testing.T) {
	runOnBothBackends(t, func(t *testing.T, s types.Store) {
		mustCreateUser(t, s, "u1", "a@example.com", "Ana")
		require.NoError(t, CreateProfile(s, "u1", "Ana", "", "Portugal", []string{"hiking"}))
		mustCreateUser(t, s, "u2", "b@example.com", "Ben")
		require.NoError(t, CreateProfile(s, "u2", "Ben", "", "Japan", []string{"Food tours"}))

		// Name match, case-insensitive.
		got, err := SearchProfiles(s, "ana", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "u1", got[0].ID)

		// Country match.
		got, err = SearchProfiles(s, "japan", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "u2", got[0].ID)

		// Interest match inside the JSON-text column.
		got, err = SearchProfiles(s, "food", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "u2", got[0].ID)

		// Excluded viewer never appears.
		got, err = SearchProfiles(s, "ana", "u1")
		require.NoError(t, err)
		assert.Empty(t, got)

		// Blank term matches nothing.
		got, err = SearchProfiles(s, "   ", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCorruptInterestsReadAsEmpty(t *testing.T) {
	runOnBothBackends(t, func(t *testing.T, s types.Store) {
		mustCreateUser(t, s, "u1", "a@example.com", "Ana")
		require.NoError(t, s.ExecuteWrite(
			"INSERT INTO profiles (id, name, travel_interests, created_at, updated_at) VALUES (?, ?, ?, datetime('now'), datetime('now'))",
			[]any{"u1", "Ana", "{not json"}))

		p, err := GetProfile(s, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{}, p.TravelInterests)
	})
}
