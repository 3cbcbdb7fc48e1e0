package travel

import (
	"errors"
	"fmt"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// BuddyKind selects which slice of buddy links to list.
type BuddyKind string

const (
	BuddySent     BuddyKind = "sent"     // pending requests the user sent
	BuddyReceived BuddyKind = "received" // pending requests awaiting the user
	BuddyAccepted BuddyKind = "accepted" // accepted links in either direction
)

// BuddyWithProfiles is a buddy link joined with both side's profiles.
// Either profile may be nil when the user never completed one.
type BuddyWithProfiles struct {
	types.Buddy
	Sender   *types.Profile
	Receiver *types.Profile
}

// PairKey normalizes an unordered user pair: the lexicographically
// smaller id first, joined with "|". One logical link per pair.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// RequestBuddy creates a pending link from sender to receiver. A link
// already existing in either direction, whatever its status, is rejected
// with ErrBuddyLinkExists.
func RequestBuddy(s types.Store, id, senderID, receiverID string) error {
	existing, err := GetBuddyLink(s, senderID, receiverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrBuddyLinkExists
	}

	err = s.ExecuteWrite(
		"INSERT INTO buddies (id, sender_id, receiver_id, pair_key, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, datetime('now'), datetime('now'))",
		[]any{id, senderID, receiverID, PairKey(senderID, receiverID), types.BuddyPending})
	if err != nil {
		// Two concurrent requests can race past the check; the pair_key
		// unique index catches the loser on both backends.
		if errors.Is(err, types.ErrConstraint) {
			return ErrBuddyLinkExists
		}
		return fmt.Errorf("creating buddy request: %w", err)
	}
	return nil
}

// GetBuddyLink returns the link between two users in either direction,
// or nil when none exists.
func GetBuddyLink(s types.Store, userA, userB string) (*types.Buddy, error) {
	row, err := s.QueryOne(
		"SELECT * FROM buddies WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		[]any{userA, userB, userB, userA})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return buddyFromRecord(row), nil
}

// ListBuddies returns the user's links of the given kind, newest first.
func ListBuddies(s types.Store, userID string, kind BuddyKind) ([]types.Buddy, error) {
	var (
		query  string
		params []any
	)
	switch kind {
	case BuddySent:
		query = "SELECT * FROM buddies WHERE sender_id = ? AND status = ? ORDER BY created_at DESC"
		params = []any{userID, types.BuddyPending}
	case BuddyReceived:
		query = "SELECT * FROM buddies WHERE receiver_id = ? AND status = ? ORDER BY created_at DESC"
		params = []any{userID, types.BuddyPending}
	case BuddyAccepted:
		query = "SELECT * FROM buddies WHERE (sender_id = ? OR receiver_id = ?) AND status = ? ORDER BY created_at DESC"
		params = []any{userID, userID, types.BuddyAccepted}
	default:
		return nil, fmt.Errorf("unknown buddy kind %q", kind)
	}

	rows, err := s.QueryAll(query, params)
	if err != nil {
		return nil, err
	}
	buddies := make([]types.Buddy, 0, len(rows))
	for _, row := range rows {
		buddies = append(buddies, *buddyFromRecord(row))
	}
	return buddies, nil
}

// ListBuddiesWithProfiles joins each link with both profiles.
func ListBuddiesWithProfiles(s types.Store, userID string, kind BuddyKind) ([]BuddyWithProfiles, error) {
	buddies, err := ListBuddies(s, userID, kind)
	if err != nil {
		return nil, err
	}

	out := make([]BuddyWithProfiles, 0, len(buddies))
	for _, b := range buddies {
		entry := BuddyWithProfiles{Buddy: b}
		if p, err := GetProfile(s, b.SenderID); err == nil {
			entry.Sender = p
		} else if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		if p, err := GetProfile(s, b.ReceiverID); err == nil {
			entry.Receiver = p
		} else if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// AcceptBuddy marks a pending request accepted.
func AcceptBuddy(s types.Store, requestID string) error {
	err := s.ExecuteWrite(
		"UPDATE buddies SET status = ?, updated_at = datetime('now') WHERE id = ?",
		[]any{types.BuddyAccepted, requestID})
	if err != nil {
		return fmt.Errorf("accepting buddy request: %w", err)
	}
	return nil
}

// RejectBuddy deletes the request; rejected links are not kept.
func RejectBuddy(s types.Store, requestID string) error {
	if err := s.ExecuteWrite("DELETE FROM buddies WHERE id = ?", []any{requestID}); err != nil {
		return fmt.Errorf("rejecting buddy request: %w", err)
	}
	return nil
}

// CleanupDuplicateLinks repairs data written before the pair key existed:
// it backfills missing pair keys and deletes all but the oldest link per
// pair. Returns how many duplicates were removed.
func CleanupDuplicateLinks(s types.Store) (int, error) {
	rows, err := s.QueryAll("SELECT * FROM buddies ORDER BY created_at", nil)
	if err != nil {
		return 0, err
	}

	// Delete duplicates first: a later duplicate may already carry the
	// normalized key, and backfilling the keeper while it exists would
	// trip the unique index.
	removed := 0
	seen := make(map[string]bool)
	keepers := make([]*types.Buddy, 0, len(rows))
	for _, row := range rows {
		b := buddyFromRecord(row)
		key := PairKey(b.SenderID, b.ReceiverID)

		if seen[key] {
			if err := s.ExecuteWrite("DELETE FROM buddies WHERE id = ?", []any{b.ID}); err != nil {
				return removed, fmt.Errorf("removing duplicate link: %w", err)
			}
			removed++
			continue
		}
		seen[key] = true
		keepers = append(keepers, b)
	}

	for _, b := range keepers {
		key := PairKey(b.SenderID, b.ReceiverID)
		if b.PairKey == key {
			continue
		}
		err := s.ExecuteWrite(
			"UPDATE buddies SET pair_key = ? WHERE id = ?", []any{key, b.ID})
		if err != nil {
			return removed, fmt.Errorf("backfilling pair key: %w", err)
		}
	}
	return removed, nil
}

func buddyFromRecord(r types.Record) *types.Buddy {
	return &types.Buddy{
		ID:         types.StringField(r, "id"),
		SenderID:   types.StringField(r, "sender_id"),
		ReceiverID: types.StringField(r, "receiver_id"),
		PairKey:    types.StringField(r, "pair_key"),
		Status:     types.StringField(r, "status"),
		CreatedAt:  types.StringField(r, "created_at"),
		UpdatedAt:  types.StringField(r, "updated_at"),
	}
}
