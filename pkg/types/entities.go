package types

// Entity structs mirror the stored rows. Identifiers are caller-generated
// strings; timestamps are ISO-8601 text so they collate correctly in both
// backends. Optional text fields use "" for absent.

// User owns exactly one Profile keyed by the same id.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// Profile holds the public face of a user. TravelInterests is persisted as
// JSON text and always materialized back into a slice on read.
type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	Country         string   `json:"country"`
	TravelInterests []string `json:"travel_interests"`
	ProfilePicture  string   `json:"profile_picture"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// Buddy link statuses. Rejected links are deleted, not stored.
const (
	BuddyPending  = "pending"
	BuddyAccepted = "accepted"
	BuddyRejected = "rejected"
)

// Buddy is a link between two users. PairKey is the unordered pair
// normalized with the lexicographically smaller id first, so at most one
// logical link can exist per pair.
type Buddy struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	PairKey    string `json:"pair_key"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Trip owns participants, itinerary items, expenses, recommendations, and
// journal entries; children are removed by explicit cascading deletes from
// the trips module, not by the storage layer.
type Trip struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TripParticipant joins a user to a trip, unique per (trip, user).
type TripParticipant struct {
	ID       string `json:"id"`
	TripID   string `json:"trip_id"`
	UserID   string `json:"user_id"`
	JoinedAt string `json:"joined_at"`
}

// ItineraryItem is one activity on a trip, ordered by (day, time).
type ItineraryItem struct {
	ID          string `json:"id"`
	TripID      string `json:"trip_id"`
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}

// Expense records a cost against a trip. SplitAmong is persisted as JSON
// text like Profile.TravelInterests.
type Expense struct {
	ID          string   `json:"id"`
	TripID      string   `json:"trip_id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	SplitAmong  []string `json:"split_among"`
	CreatedAt   string   `json:"created_at"`
}

// Recommendation is a rated place tip on a trip, listed by rating descending.
type Recommendation struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
}

// JournalEntry is a dated trip note with attached photo references.
type JournalEntry struct {
	ID        string   `json:"id"`
	TripID    string   `json:"trip_id"`
	UserID    string   `json:"user_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Photos    []string `json:"photos"`
	Date      string   `json:"date"`
	Location  string   `json:"location"`
	CreatedAt string   `json:"created_at"`
}

// ChatMessage is a direct message between two users. A conversation is the
// set of messages between a pair, grouped by the non-self participant.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Read       bool   `json:"read"`
	CreatedAt  string `json:"created_at"`
}
