package store

// Schema statements executed at open time on whichever backend is
// configured. The SQL engine enforces the constraints; the object store
// only extracts collection names from the CREATE TABLE statements, so the
// data layer re-checks uniqueness where it matters (user emails, buddy
// pair keys).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT,
		country TEXT,
		travel_interests TEXT,
		profile_picture TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS buddies (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		pair_key TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (sender_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (receiver_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS trip_participants (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		joined_at TEXT NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE(trip_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS itinerary_items (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		time TEXT,
		location TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT,
		description TEXT,
		split_among TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		location TEXT,
		rating REAL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		photos TEXT,
		date TEXT NOT NULL,
		location TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		content TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (sender_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (receiver_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_buddies_pair_key ON buddies(pair_key)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_trip_participants_pair ON trip_participants(trip_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_buddies_sender_id ON buddies(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_buddies_receiver_id ON buddies(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trip_participants_trip_id ON trip_participants(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_itinerary_items_trip_id ON itinerary_items(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_trip_id ON recommendations(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_trip_id ON journal_entries(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_sender ON chat_messages(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_receiver ON chat_messages(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation ON chat_messages(sender_id, receiver_id)`,
}

func bootstrapSchema(s interface{ ExecuteSchema(string) error }) error {
	for _, stmt := range schemaStatements {
		if err := s.ExecuteSchema(stmt); err != nil {
			return err
		}
	}
	return nil
}
