package types

// Standard table names. Both backends create all of these during schema
// bootstrap; the docstore backend maps each to a JSONL collection.
const (
	UsersTable            = "users"
	ProfilesTable         = "profiles"
	TripsTable            = "trips"
	BuddiesTable          = "buddies"
	TripParticipantsTable = "trip_participants"
	ItineraryItemsTable   = "itinerary_items"
	ExpensesTable         = "expenses"
	RecommendationsTable  = "recommendations"
	JournalEntriesTable   = "journal_entries"
	ChatMessagesTable     = "chat_messages"
)

// StandardTableNames lists all standard table names for enumeration
// during schema bootstrap.
var StandardTableNames = []string{
	UsersTable,
	ProfilesTable,
	TripsTable,
	BuddiesTable,
	TripParticipantsTable,
	ItineraryItemsTable,
	ExpensesTable,
	RecommendationsTable,
	JournalEntriesTable,
	ChatMessagesTable,
}
